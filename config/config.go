// Package config holds the settings of one run, read from a YAML file and
// overridden by command line flags.
package config

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/staticafi/satt/dispatch"
	"github.com/staticafi/satt/report"
	"github.com/staticafi/satt/report/store"
	"github.com/staticafi/satt/workset"
)

const (
	DefaultTool      = "symbiotic"
	DefaultRemoteCmd = `echo "ERROR: No command specified"`
	DefaultShell     = "/bin/sh"
	DefaultLogFile   = "satt.log"
	DefaultLockFile  = ".satt-running.lock"
)

type Config struct {
	Tool            string            `yaml:"tool"`
	ToolDir         string            `yaml:"tool-dir"`
	RemoteDir       string            `yaml:"remote-dir"`
	SSHUser         string            `yaml:"ssh-user"`
	SSHCmd          string            `yaml:"ssh-cmd"`
	SyncCmd         string            `yaml:"sync-cmd"`
	Timeout         string            `yaml:"timeout"`
	RemoteCmd       string            `yaml:"remote-cmd"`
	Machines        string            `yaml:"machines"`
	Benchmarks      string            `yaml:"benchmarks"`
	BenchmarkPrefix string            `yaml:"benchmark-prefix"`
	NoDB            bool              `yaml:"no-db"`
	Debug           bool              `yaml:"debug"`
	Year            string            `yaml:"year"`
	Note            string            `yaml:"note"`
	Params          Params            `yaml:"params"`
	Vars            map[string]string `yaml:"vars"`

	MaxRetries  int           `yaml:"max-retries"`
	KillTimeout time.Duration `yaml:"kill-timeout"`
	Shell       string        `yaml:"shell"`
	DumpDir     string        `yaml:"dump-dir"`
	LogFile     string        `yaml:"log-file"`
	LockFile    string        `yaml:"lock-file"`
	StatsFile   string        `yaml:"stats-file"`

	Database store.Credentials `yaml:"database"`
}

func Default() *Config {
	return &Config{
		Tool:            DefaultTool,
		RemoteCmd:       DefaultRemoteCmd,
		BenchmarkPrefix: workset.DefaultPrefix,
		MaxRetries:      dispatch.DefaultMaxRetries,
		KillTimeout:     dispatch.DefaultKillTimeout,
		Shell:           DefaultShell,
		DumpDir:         report.DefaultDumpDir,
		LogFile:         DefaultLogFile,
		LockFile:        DefaultLockFile,
	}
}

// DefaultPath is the config file used for tool when none is given.
func DefaultPath(tool string) string {
	return tool + ".yaml"
}

// Load reads path over the defaults. Unknown keys are an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed opening configuration file")
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return cfg, nil
}

// Validate checks that a run can start with this configuration.
func (c *Config) Validate() error {
	switch {
	case c.Tool == "":
		return errors.New("no tool given")
	case c.Machines == "":
		return errors.New("no machines file given")
	case c.Benchmarks == "":
		return errors.New("no benchmarks given")
	case c.MaxRetries < 0:
		return errors.Errorf("max-retries must not be negative, got %d", c.MaxRetries)
	}
	if c.NoDB {
		return nil
	}
	if c.Year == "" {
		return errors.New("year is needed to store results, or use no-db")
	}
	return c.Database.Validate()
}

// Placeholders maps every scalar setting and every var to its value, for
// {key} substitution in the remote command.
func (c *Config) Placeholders() map[string]string {
	m := map[string]string{
		"tool":             c.Tool,
		"tool-dir":         c.ToolDir,
		"remote-dir":       c.RemoteDir,
		"ssh-user":         c.SSHUser,
		"ssh-cmd":          c.SSHCmd,
		"sync-cmd":         c.SyncCmd,
		"timeout":          c.Timeout,
		"machines":         c.Machines,
		"benchmarks":       c.Benchmarks,
		"benchmark-prefix": c.BenchmarkPrefix,
		"year":             c.Year,
		"note":             c.Note,
		"no-db":            strconv.FormatBool(c.NoDB),
		"debug":            strconv.FormatBool(c.Debug),
	}
	for k, v := range c.Vars {
		m[k] = v
	}
	return m
}

// maxExpandDepth bounds expansion of settings that refer to each other.
const maxExpandDepth = 4

// RemoteCommand returns remote-cmd with the settings it mentions, and the
// settings those mention, substituted. Per benchmark placeholders are left
// for the dispatcher.
func (c *Config) RemoteCommand() string {
	pairs := make([]string, 0, 2*len(c.Placeholders()))
	for k, v := range c.Placeholders() {
		pairs = append(pairs, "{"+k+"}", v)
	}
	r := strings.NewReplacer(pairs...)
	cmd := c.RemoteCmd
	for i := 0; i < maxExpandDepth; i++ {
		next := r.Replace(cmd)
		if next == cmd {
			break
		}
		cmd = next
	}
	return cmd
}

// Template builds the dispatcher's command template.
func (c *Config) Template() *dispatch.Template {
	return &dispatch.Template{
		Command: c.RemoteCommand(),
		Params:  c.Params,
		Vars:    c.Placeholders(),
	}
}

// Params are tool parameters per category. A plain string in the file
// applies to every category.
type Params map[string]string

func (p *Params) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*p = Params{dispatch.WildcardCategory: value.Value}
		return nil
	}
	var m map[string]string
	if err := value.Decode(&m); err != nil {
		return err
	}
	*p = Params(m)
	return nil
}

// String renders the params the way they are recorded with results.
func (p Params) String() string {
	if len(p) == 1 {
		if v, ok := p[dispatch.WildcardCategory]; ok {
			return v
		}
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, p[k]))
	}
	return strings.Join(parts, "; ")
}
