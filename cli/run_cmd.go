package cli

import (
	"context"
	"io/ioutil"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	satterrors "github.com/staticafi/satt/common/errors"
	"github.com/staticafi/satt/common/lockfile"
	satlog "github.com/staticafi/satt/common/log"
	"github.com/staticafi/satt/common/stats"
	"github.com/staticafi/satt/config"
	"github.com/staticafi/satt/dispatch"
	"github.com/staticafi/satt/report"
	osexec "github.com/staticafi/satt/runner/execer/os"
)

type runCmd struct {
	noDB       bool
	maxRetries int
	dumpDir    string
	statsFile  string
}

func (c *runCmd) registerFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "satt [tool]",
		Short: "satt runs a verification tool on sets of benchmarks spread over many machines",
		Args:  cobra.MaximumNArgs(1),
	}
	r.Flags().BoolVar(&c.noDB, "no-db", false, "only print results, don't store them in the database")
	r.Flags().IntVar(&c.maxRetries, "max-retries", dispatch.DefaultMaxRetries, "how often to rerun a benchmark without a result before dumping it, 0 for no limit")
	r.Flags().StringVar(&c.dumpDir, "dump-dir", report.DefaultDumpDir, "directory for results that could not be stored")
	r.Flags().StringVar(&c.statsFile, "stats-file", "", "write run statistics as JSON to this file")
	return r
}

func (c *runCmd) run(cl *simpleCLI, cmd *cobra.Command, args []string) error {
	cfg, err := cl.loadConfig(cmd, args)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("no-db") {
		cfg.NoDB = c.noDB
	}
	if flags.Changed("max-retries") {
		cfg.MaxRetries = c.maxRetries
	}
	if flags.Changed("dump-dir") {
		cfg.DumpDir = c.dumpDir
	}
	if flags.Changed("stats-file") {
		cfg.StatsFile = c.statsFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The log file belongs to whoever holds the lock.
	lock, err := lockfile.Acquire(cfg.LockFile)
	if err != nil {
		if errors.Cause(err) == lockfile.ErrLocked {
			return satterrors.Wrapf(err, satterrors.LockHeldExitCode, "satt is already running in this directory")
		}
		return err
	}
	defer lock.Release()

	level, _ := satlog.ParseLevel("", cfg.Debug)
	logFile, err := satlog.Setup(level, cfg.LogFile)
	if err != nil {
		return err
	}
	defer satlog.Close(logFile)

	tasks, err := loadTasks(cfg)
	if err != nil {
		return err
	}

	stdout := report.NewStdoutSink(cl.stdout, &report.Dumper{Dir: cfg.DumpDir})
	var sink dispatch.Sink = stdout
	if !cfg.NoDB {
		st, err := cl.openStore(cfg.Database)
		if err != nil {
			return err
		}
		defer st.Close()
		sink, err = report.NewMySQLSink(st, stdout, report.RunInfo{
			Tool:   cfg.Tool,
			Params: cfg.Params.String(),
			Year:   cfg.Year,
			Note:   cfg.Note,
			RunID:  time.Now().Unix(),
		})
		if err != nil {
			return err
		}
	}

	stat := stats.DefaultStatsReceiver()
	d := dispatch.NewDispatcher(tasks, osexec.NewExecer(cfg.Shell), sink, dispatch.Options{
		Template:    cfg.Template(),
		MaxRetries:  cfg.MaxRetries,
		KillTimeout: cfg.KillTimeout,
	}, stat)

	ctx, stop := notifyContext(context.Background(), func() {
		d.Kill()
		lock.Release()
		satlog.Close(logFile)
	})
	defer stop()

	log.WithFields(log.Fields{"tool": cfg.Tool, "machines": len(tasks), "no-db": cfg.NoDB}).Info("Starting run")
	start := time.Now()
	err = d.Run(ctx)
	writeStats(cfg, stat)

	fields := log.Fields{"done": d.Done(), "total": d.Total(), "elapsed": time.Since(start).Round(time.Second)}
	switch e := err.(type) {
	case nil:
		log.WithFields(fields).Info("Run finished")
		return nil
	case *dispatch.FatalError:
		return satterrors.NewError(e, satterrors.AbortedExitCode)
	default:
		if err == dispatch.ErrInterrupted {
			log.WithFields(fields).Warn("Run stopped")
			return satterrors.NewError(err, satterrors.InterruptedExitCode)
		}
		return err
	}
}

func writeStats(cfg *config.Config, stat stats.StatsReceiver) {
	if cfg.StatsFile == "" {
		return
	}
	if err := ioutil.WriteFile(cfg.StatsFile, stat.Render(true), 0644); err != nil {
		log.WithField("path", cfg.StatsFile).Errorf("Failed writing stats: %v", err)
	}
}
