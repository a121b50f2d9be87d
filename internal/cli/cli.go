// Package cli wires the kernel and machine packages into a cobra-based
// command line tool, the way arctir-proctor wires its process inspector:
// a root command that does nothing on its own, with subcommands that
// each call into one library function.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gmofishsauce/wut4so/internal/kernel"
)

var rootCmd = &cobra.Command{
	Use:   "wut4so",
	Short: "A didactic operating system kernel simulator.",
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

var runOpts runOptions
var schedulerFlag string

var runCmd = &cobra.Command{
	Use:   "run <program-dir>",
	Short: "Boot the kernel against a program directory and a script of interrupts.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseSchedulerKind(schedulerFlag)
		if err != nil {
			return err
		}
		runOpts.programDir = args[0]
		runOpts.scheduler = kind
		return runScript(runOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func parseSchedulerKind(s string) (kernel.SchedulerKind, error) {
	switch s {
	case "simple", "fcfs":
		return kernel.SchedulerSimple, nil
	case "rr", "round-robin":
		return kernel.SchedulerRoundRobin, nil
	case "priority":
		return kernel.SchedulerPriority, nil
	default:
		return 0, fmt.Errorf("unknown scheduler %q (want simple, rr, or priority)", s)
	}
}

func init() {
	runCmd.Flags().StringVar(&runOpts.scriptPath, "script", "", "path to a script of interrupts to replay (required)")
	runCmd.Flags().StringVar(&schedulerFlag, "scheduler", "rr", "scheduler strategy: simple, rr, priority")
	runCmd.Flags().StringVar(&runOpts.metricsDir, "metrics-dir", ".", "directory to write the metrics file into")
	runCmd.Flags().BoolVar(&runOpts.trace, "trace", false, "print one line per interrupt to stderr")
	runCmd.Flags().IntVar(&runOpts.interval, "interval", kernel.Interval, "simulated instructions to advance the clock per event")
	runCmd.MarkFlagRequired("script")

	rootCmd.AddCommand(runCmd)
}

// SetupCommands builds and returns the root command, for main to execute.
func SetupCommands() *cobra.Command {
	return rootCmd
}

// Execute is a convenience wrapper main can call directly.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
