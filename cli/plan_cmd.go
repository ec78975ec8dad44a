package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// planCmd shows how the benchmarks would be spread over the machines
// without running anything.
type planCmd struct {
	commands bool
}

func (c *planCmd) registerFlags() *cobra.Command {
	r := &cobra.Command{
		Use:   "plan [tool]",
		Short: "print how the benchmarks are distributed over the machines",
		Args:  cobra.MaximumNArgs(1),
	}
	r.Flags().BoolVar(&c.commands, "commands", false, "also print the command line of every benchmark")
	return r
}

func (c *planCmd) run(cl *simpleCLI, cmd *cobra.Command, args []string) error {
	cfg, err := cl.loadConfig(cmd, args)
	if err != nil {
		return err
	}
	tasks, err := loadTasks(cfg)
	if err != nil {
		return err
	}

	tmpl := cfg.Template()
	w := tabwriter.NewWriter(cl.stdout, 0, 8, 2, ' ', 0)
	total := 0
	fmt.Fprintln(w, "MACHINE\tPARALLEL\tBENCHMARKS")
	for _, t := range tasks {
		fmt.Fprintf(w, "%s\t%d\t%d\n", t.Machine(), t.Parallel(), t.Pending())
		total += t.Pending()
	}
	fmt.Fprintf(w, "total\t\t%d\n", total)
	if err := w.Flush(); err != nil {
		return err
	}

	if c.commands {
		for _, t := range tasks {
			for _, item := range t.Items() {
				fmt.Fprintln(cl.stdout, tmpl.Expand(t.Machine(), item))
			}
		}
	}
	return nil
}
