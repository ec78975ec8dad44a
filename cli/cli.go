// Package cli is the satt command line: it loads the configuration, takes
// the run lock, enumerates the work and runs the dispatcher.
package cli

import (
	"io"
	"os"

	"github.com/cenkalti/backoff"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/staticafi/satt/config"
	"github.com/staticafi/satt/dispatch"
	"github.com/staticafi/satt/report/store"
	"github.com/staticafi/satt/workset"
)

const dbConnectRetries = 5

// CLI runs the satt command line.
type CLI interface {
	Exec() error
}

// Implements CLI
type simpleCLI struct {
	rootCmd *cobra.Command
	stdout  io.Writer

	// flags shared by every command
	configPath string
	machines   string
	benchmarks string
	debug      bool

	openStore func(store.Credentials) (store.Store, error)
}

func (c *simpleCLI) Exec() error {
	return c.rootCmd.Execute()
}

// NewSimpleCLI returns the CLI printing results to stdout.
func NewSimpleCLI(stdout io.Writer) CLI {
	return newSimpleCLI(stdout)
}

func newSimpleCLI(stdout io.Writer) *simpleCLI {
	c := &simpleCLI{stdout: stdout, openStore: openStore}

	run := &runCmd{}
	c.rootCmd = run.registerFlags()
	c.rootCmd.SilenceUsage = true
	c.rootCmd.SilenceErrors = true
	c.rootCmd.SetOutput(stdout)
	c.rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return run.run(c, cmd, args)
	}

	flags := c.rootCmd.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "configuration file (default <tool>.yaml)")
	flags.StringVar(&c.machines, "machines", "", "file with machines, one per line with an optional parallelism")
	flags.StringVar(&c.benchmarks, "benchmarks", "", "comma separated globs of .set files or directories with them")
	flags.BoolVar(&c.debug, "debug", false, "log debug messages")

	c.addCmd(&planCmd{})
	return c
}

func (c *simpleCLI) addCmd(cmd command) {
	cobraCmd := cmd.registerFlags()
	cobraCmd.RunE = func(innerCmd *cobra.Command, args []string) error {
		return cmd.run(c, innerCmd, args)
	}
	c.rootCmd.AddCommand(cobraCmd)
}

type command interface {
	registerFlags() *cobra.Command
	run(cl *simpleCLI, cmd *cobra.Command, args []string) error
}

// loadConfig reads the tool's configuration and applies the shared flags.
// The default config file is optional, one given with --config is not.
func (c *simpleCLI) loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	tool := config.DefaultTool
	if len(args) > 0 {
		tool = args[0]
	}
	path := c.configPath
	if path == "" {
		path = config.DefaultPath(tool)
	}

	cfg, err := config.Load(path)
	if err != nil {
		if c.configPath != "" || !os.IsNotExist(errors.Cause(err)) {
			return nil, err
		}
		cfg = config.Default()
	}
	if len(args) > 0 {
		cfg.Tool = tool
	}
	flags := cmd.Flags()
	if flags.Changed("machines") {
		cfg.Machines = c.machines
	}
	if flags.Changed("benchmarks") {
		cfg.Benchmarks = c.benchmarks
	}
	if flags.Changed("debug") {
		cfg.Debug = c.debug
	}
	return cfg, nil
}

// loadTasks reads the machines and deals the benchmarks out to them.
func loadTasks(cfg *config.Config) ([]*dispatch.Task, error) {
	tasks, err := workset.LoadMachines(cfg.Machines)
	if err != nil {
		return nil, err
	}
	if err := workset.NewAssigner(tasks, cfg.BenchmarkPrefix).AddSets(cfg.Benchmarks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func openStore(creds store.Credentials) (store.Store, error) {
	return store.Open(creds, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), dbConnectRetries))
}
