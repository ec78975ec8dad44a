package report

import (
	"bytes"
	"io/ioutil"
	"os"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staticafi/satt/report/store"
)

var rating = store.Rating{Unknown: 0, FalseCorrect: 1, FalseIncorrect: -16, TrueCorrect: 2, TrueIncorrect: -32}

func newTestMySQLSink(t *testing.T, s *store.MockStore, out *bytes.Buffer, dir string) *MySQLSink {
	s.EXPECT().Version().Return("10.3.2-MariaDB", nil)
	s.EXPECT().YearID("2016").Return(int64(4), true, nil)
	s.EXPECT().RatingMethod("2016").Return(rating, nil)

	sink, err := NewMySQLSink(s, newTestStdoutSink(out, dir), RunInfo{
		Tool:   "symbiotic",
		Params: "*: -O1",
		Year:   "2016",
		Note:   "nightly",
		RunID:  1500000000,
	})
	require.NoError(t, err)
	return sink
}

func TestMySQLSinkStoresResults(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	s := store.NewMockStore(mockCtrl)

	var out bytes.Buffer
	sink := newTestMySQLSink(t, s, &out, "")

	tool := store.Tool{Name: "symbiotic", Version: "symbiotic 4.0", Params: "*: -O1", Tag: "symbiotic", Note: "nightly", YearID: 4}
	s.EXPECT().ToolID(tool).Return(int64(0), false, nil)
	s.EXPECT().InsertTool(tool).Return(int64(7), nil)

	s.EXPECT().CategoryID(int64(4), "Loops").Return(int64(11), true, nil).Times(2)
	s.EXPECT().Task(int64(11), "a_false-unreach-call.c").Return(store.Task{ID: 21, CorrectResult: "false(unreach-call)"}, true, nil)
	s.EXPECT().Task(int64(11), "b_true-unreach-call.c").Return(store.Task{ID: 22, CorrectResult: "true"}, true, nil)
	s.EXPECT().InsertResult(store.Result{
		ToolID: 7, TaskID: 21, Result: "false", Correct: true, Points: 1,
		CPUTime: 1.25, MemoryUsage: 64, Output: "log line", RunID: 1500000000,
	}).Return(nil)
	s.EXPECT().InsertResult(store.Result{
		ToolID: 7, TaskID: 22, Result: "false", Correct: false, Points: -16, RunID: 1500000000,
	}).Return(nil)

	assert.True(t, sink.Done(newJob("benchmarks/loops/a_false-unreach-call.c", "Loops",
		"=== VERSIONS", "symbiotic 4.0", "=== OUTPUT", "log line",
		"=== TIME CONSUMED", "1.25", "=== MEMORY USAGE", "64",
		"=== WITNESS", "confirmed", "=== RESULT", "FALSE(unreach-call)")))
	// the tool id is looked up once per version
	assert.True(t, sink.Done(newJob("benchmarks/loops/b_true-unreach-call.c", "Loops",
		"=== VERSIONS", "symbiotic 4.0", "=== RESULT", "false")))

	sink.Progress(50)
	assert.Equal(t, 50, sink.stdout.progress)
}

func TestMySQLSinkDumpsUnknownBenchmarks(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	s := store.NewMockStore(mockCtrl)

	dir := tempDir(t)
	defer os.RemoveAll(dir)
	var out bytes.Buffer
	sink := newTestMySQLSink(t, s, &out, dir)

	s.EXPECT().ToolID(gomock.Any()).Return(int64(7), true, nil)
	s.EXPECT().CategoryID(int64(4), "Nope").Return(int64(0), false, nil)
	s.EXPECT().CategoryID(int64(4), "Loops").Return(int64(11), true, nil)
	s.EXPECT().Task(int64(11), "c.c").Return(store.Task{}, false, nil)

	assert.True(t, sink.Done(newJob("c.c", "Nope", "=== RESULT", "TRUE")))
	assert.True(t, sink.Done(newJob("c.c", "Loops", "=== RESULT", "TRUE")))
	assert.Contains(t, out.String(), "^^ dumped to file (unknown category)\n")
	assert.Contains(t, out.String(), "^^ dumped to file (unknown task)\n")

	files, err := ioutil.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestMySQLSinkDuplicateResult(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	s := store.NewMockStore(mockCtrl)

	dir := tempDir(t)
	defer os.RemoveAll(dir)
	var out bytes.Buffer
	sink := newTestMySQLSink(t, s, &out, dir)

	s.EXPECT().ToolID(gomock.Any()).Return(int64(7), true, nil)
	s.EXPECT().CategoryID(gomock.Any(), gomock.Any()).Return(int64(11), true, nil)
	s.EXPECT().Task(gomock.Any(), gomock.Any()).Return(store.Task{ID: 21, CorrectResult: "true"}, true, nil)
	s.EXPECT().InsertResult(gomock.Any()).Return(
		errors.Wrap(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, "inserting result"))

	assert.True(t, sink.Done(newJob("c.c", "Loops", "=== RESULT", "TRUE")))
	assert.Contains(t, out.String(), "^^ dumped to file (duplicate result)\n")
	assert.Contains(t, duplicateHint(7, 21), "tool_id=7 AND task_id=21")
}

func TestMySQLSinkRejectsOnDatabaseErrors(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	s := store.NewMockStore(mockCtrl)

	var out bytes.Buffer
	sink := newTestMySQLSink(t, s, &out, "")

	s.EXPECT().ToolID(gomock.Any()).Return(int64(0), false, errors.New("connection reset"))
	assert.False(t, sink.Done(newJob("c.c", "Loops", "=== RESULT", "TRUE")))

	s.EXPECT().ToolID(gomock.Any()).Return(int64(7), true, nil)
	s.EXPECT().CategoryID(gomock.Any(), gomock.Any()).Return(int64(11), true, nil)
	s.EXPECT().Task(gomock.Any(), gomock.Any()).Return(store.Task{ID: 21}, true, nil)
	s.EXPECT().InsertResult(gomock.Any()).Return(errors.New("lock wait timeout"))
	assert.False(t, sink.Done(newJob("c.c", "Loops", "=== RESULT", "TRUE")))

	// rejected by the stdout part, the database isn't touched
	assert.False(t, sink.Done(newJob("c.c", "Loops", "no result")))
}

func TestNewMySQLSinkUnknownYear(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	s := store.NewMockStore(mockCtrl)

	s.EXPECT().Version().Return("5.7", nil)
	s.EXPECT().YearID("1999").Return(int64(0), false, nil)

	_, err := NewMySQLSink(s, NewStdoutSink(ioutil.Discard, nil), RunInfo{Year: "1999"})
	assert.Error(t, err)
}
