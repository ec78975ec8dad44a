// Package store persists benchmark results in the results database.
package store

//go:generate mockgen -source=store.go -package=store -destination=store_mock.go

// Tool identifies one configuration of a verifier: results are kept per
// tool name, version, params and year.
type Tool struct {
	Name    string
	Version string
	Params  string
	Tag     string
	Note    string
	YearID  int64
}

// Task is a benchmark known to the database.
type Task struct {
	ID            int64
	CorrectResult string
}

type Result struct {
	ToolID      int64
	TaskID      int64
	Result      string
	Correct     bool
	Points      int
	CPUTime     float64
	MemoryUsage float64
	Output      string
	RunID       int64
}

// Rating holds the points awarded for each kind of answer in a year.
type Rating struct {
	Unknown        int
	FalseCorrect   int
	FalseIncorrect int
	TrueCorrect    int
	TrueIncorrect  int
}

// Store is the subset of the results database the reporter needs. Lookups
// that find nothing return found == false and a nil error.
type Store interface {
	Version() (string, error)
	YearID(year string) (id int64, found bool, err error)
	RatingMethod(year string) (Rating, error)
	ToolID(tool Tool) (id int64, found bool, err error)
	InsertTool(tool Tool) (int64, error)
	CategoryID(yearID int64, name string) (id int64, found bool, err error)
	Task(categoryID int64, name string) (task Task, found bool, err error)
	InsertResult(result Result) error
	Close() error
}
