package report

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/staticafi/satt/dispatch"
	"github.com/staticafi/satt/report/store"
)

// RunInfo describes the run results are stored under.
type RunInfo struct {
	Tool   string
	Params string
	Year   string
	Note   string
	RunID  int64
}

// MySQLSink prints jobs like StdoutSink and stores their results.
type MySQLSink struct {
	store  store.Store
	stdout *StdoutSink
	run    RunInfo

	yearID int64
	rating store.Rating
	// tool ids by version
	tools map[string]int64
}

// NewMySQLSink checks that the database knows run.Year and loads the
// year's rating method.
func NewMySQLSink(s store.Store, stdout *StdoutSink, run RunInfo) (*MySQLSink, error) {
	ver, err := s.Version()
	if err != nil {
		return nil, err
	}
	log.Infof("Connected to database: MySQL version %s", ver)

	yearID, found, err := s.YearID(run.Year)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.Errorf("do not have year %s. If this is not a typo, update the database and benchmarks", run.Year)
	}
	rating, err := s.RatingMethod(run.Year)
	if err != nil {
		return nil, err
	}
	return &MySQLSink{
		store:  s,
		stdout: stdout,
		run:    run,
		yearID: yearID,
		rating: rating,
		tools:  make(map[string]int64),
	}, nil
}

func (m *MySQLSink) Progress(percent int) {
	m.stdout.Progress(percent)
}

func (m *MySQLSink) DumpToFile(job *dispatch.Job, reason string) error {
	return m.stdout.DumpToFile(job, reason)
}

// Done stores the job's result. Database errors reject the job so it runs
// again; benchmarks the database doesn't know are dumped and accepted.
func (m *MySQLSink) Done(job *dispatch.Job) bool {
	if !m.stdout.Done(job) {
		return false
	}
	fields := log.Fields{"machine": job.Machine(), "benchmark": job.Item.Basename(), "category": job.Item.Category}
	r := job.Record

	toolID, err := m.toolID(strings.TrimSpace(r.Versions()))
	if err != nil {
		log.WithFields(fields).Errorf("Failed getting tool: %v", err)
		return false
	}

	catID, found, err := m.store.CategoryID(m.yearID, job.Item.Category)
	if err != nil {
		log.WithFields(fields).Errorf("Failed getting category: %v", err)
		return false
	}
	if !found {
		m.dump(job, "unknown category")
		return true
	}

	task, found, err := m.store.Task(catID, job.Item.Basename())
	if err != nil {
		log.WithFields(fields).Errorf("Failed getting task: %v", err)
		return false
	}
	if !found {
		m.dump(job, "unknown task")
		return true
	}

	correct := IsCorrect(task.CorrectResult, r.Result, r.Property)
	res := store.Result{
		ToolID:  toolID,
		TaskID:  task.ID,
		Result:  strings.ToLower(r.Result),
		Correct: correct,
		Points:  Points(m.rating, correct, r.Result, r.Witness()),
		Output:  strings.TrimSpace(r.RawOutput()),
		RunID:   m.run.RunID,
	}
	if cpu, ok := r.CPUTime(); ok {
		res.CPUTime = cpu
	}
	if mem, ok := r.MemoryUsage(); ok {
		res.MemoryUsage = mem
	}

	if err := m.store.InsertResult(res); err != nil {
		if store.IsDuplicate(err) {
			log.WithFields(fields).Error(duplicateHint(toolID, task.ID))
			m.dump(job, "duplicate result")
			return true
		}
		log.WithFields(fields).Errorf("Failed storing result: %v", err)
		return false
	}
	return true
}

func (m *MySQLSink) toolID(version string) (int64, error) {
	if id, ok := m.tools[version]; ok {
		return id, nil
	}
	tool := store.Tool{
		Name:    m.run.Tool,
		Version: version,
		Params:  m.run.Params,
		Tag:     m.run.Tool,
		Note:    m.run.Note,
		YearID:  m.yearID,
	}
	id, found, err := m.store.ToolID(tool)
	if err != nil {
		return 0, err
	}
	if !found {
		if id, err = m.store.InsertTool(tool); err != nil {
			return 0, err
		}
		log.WithFields(log.Fields{"tool": tool.Name, "version": version}).Info("Added tool to database")
	}
	m.tools[version] = id
	return id, nil
}

func (m *MySQLSink) dump(job *dispatch.Job, reason string) {
	if err := m.DumpToFile(job, reason); err != nil {
		log.WithField("benchmark", job.Item.Basename()).Errorf("Failed dumping to file: %v", err)
		return
	}
	fmt.Fprintf(m.stdout.out, "^^ dumped to file (%s)\n", reason)
}

func duplicateHint(toolID, taskID int64) string {
	return fmt.Sprintf("Already has result of this benchmark for this tool. "+
		"Only one result per benchmark and tool (tool + version + params) is supported. "+
		"Delete the old result with 'DELETE FROM task_results WHERE tool_id=%d AND task_id=%d' "+
		"or all results of this tool with 'DELETE FROM tools WHERE id=%d'", toolID, taskID, toolID)
}

var _ dispatch.Sink = (*MySQLSink)(nil)
var _ dispatch.Sink = (*StdoutSink)(nil)
