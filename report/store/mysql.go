package store

import (
	"database/sql"
	"net"

	"github.com/cenkalti/backoff"
	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const defaultPort = "3306"

const errDuplicateEntry = 1062

// Credentials of the results database.
type Credentials struct {
	Host     string `yaml:"host"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DB       string `yaml:"db"`
}

func (c Credentials) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"host", c.Host},
		{"user", c.User},
		{"password", c.Password},
		{"db", c.DB},
	} {
		if f.value == "" {
			return errors.Errorf("missing '%s' for database", f.name)
		}
	}
	return nil
}

// DSN returns the go-sql-driver/mysql data source name. Hosts without a
// port use the MySQL default.
func (c Credentials) DSN() string {
	cfg := mysql.NewConfig()
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = c.Host
	if _, _, err := net.SplitHostPort(c.Host); err != nil {
		cfg.Addr = net.JoinHostPort(c.Host, defaultPort)
	}
	cfg.DBName = c.DB
	return cfg.FormatDSN()
}

// IsDuplicate reports whether err is MySQL's duplicate entry error.
func IsDuplicate(err error) bool {
	merr, ok := errors.Cause(err).(*mysql.MySQLError)
	return ok && merr.Number == errDuplicateEntry
}

type mysqlStore struct {
	db *sql.DB
}

// Open connects to the database, retrying the initial ping with b.
func Open(creds Credentials, b backoff.BackOff) (Store, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", creds.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	try := 1
	err = backoff.Retry(func() error {
		log.WithField("host", creds.Host).Debugf("Connecting to database, try #%d", try)
		try++
		return db.Ping()
	}, b)
	if err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "connecting to %s", creds.Host)
	}
	return &mysqlStore{db: db}, nil
}

func (s *mysqlStore) Close() error {
	return s.db.Close()
}

func (s *mysqlStore) Version() (string, error) {
	var v string
	if err := s.db.QueryRow("SELECT VERSION()").Scan(&v); err != nil {
		return "", errors.Wrap(err, "querying server version")
	}
	return v, nil
}

// queryID scans a single id column, mapping no rows to found == false.
func (s *mysqlStore) queryID(what, query string, args ...interface{}) (int64, bool, error) {
	var id int64
	err := s.db.QueryRow(query, args...).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		return 0, false, nil
	case err != nil:
		return 0, false, errors.Wrapf(err, "querying %s", what)
	}
	return id, true, nil
}

func (s *mysqlStore) YearID(year string) (int64, bool, error) {
	return s.queryID("year", "SELECT id FROM years WHERE year = ?", year)
}

func (s *mysqlStore) RatingMethod(year string) (Rating, error) {
	var r Rating
	err := s.db.QueryRow(
		"SELECT unknown, false_correct, false_incorrect, true_correct, true_incorrect "+
			"FROM rating_methods INNER JOIN years ON rating_methods.year_id = years.id "+
			"WHERE year = ?", year).
		Scan(&r.Unknown, &r.FalseCorrect, &r.FalseIncorrect, &r.TrueCorrect, &r.TrueIncorrect)
	if err == sql.ErrNoRows {
		return r, errors.Errorf("no rating method for year %s", year)
	}
	return r, errors.Wrap(err, "querying rating method")
}

func (s *mysqlStore) ToolID(t Tool) (int64, bool, error) {
	return s.queryID("tool",
		"SELECT id FROM tools WHERE name = ? AND version = ? AND params = ? AND year_id = ?",
		t.Name, t.Version, t.Params, t.YearID)
}

func (s *mysqlStore) InsertTool(t Tool) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO tools (name, year_id, version, params, tag, note) VALUES (?, ?, ?, ?, ?, ?)",
		t.Name, t.YearID, t.Version, t.Params, t.Tag, nullString(t.Note))
	if err != nil {
		return 0, errors.Wrapf(err, "inserting tool %s", t.Name)
	}
	return res.LastInsertId()
}

func (s *mysqlStore) CategoryID(yearID int64, name string) (int64, bool, error) {
	return s.queryID("category",
		"SELECT id FROM categories WHERE year_id = ? AND name = ?", yearID, name)
}

func (s *mysqlStore) Task(categoryID int64, name string) (Task, bool, error) {
	var t Task
	var correct sql.NullString
	err := s.db.QueryRow(
		"SELECT id, correct_result FROM tasks WHERE name = ? AND category_id = ?", name, categoryID).
		Scan(&t.ID, &correct)
	switch {
	case err == sql.ErrNoRows:
		return t, false, nil
	case err != nil:
		return t, false, errors.Wrapf(err, "querying task %s", name)
	}
	t.CorrectResult = correct.String
	return t, true, nil
}

// InsertResult stores one result and commits it.
func (s *mysqlStore) InsertResult(r Result) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "starting transaction")
	}
	correct := 0
	if r.Correct {
		correct = 1
	}
	_, err = tx.Exec(
		"INSERT INTO task_results "+
			"(tool_id, task_id, result, is_correct, points, cpu_time, memory_usage, output, run_id) "+
			"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		r.ToolID, r.TaskID, r.Result, correct, r.Points, r.CPUTime, r.MemoryUsage,
		nullString(r.Output), r.RunID)
	if err != nil {
		tx.Rollback()
		return errors.Wrap(err, "inserting result")
	}
	return errors.Wrap(tx.Commit(), "committing result")
}

// nullString stores empty text as NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
