package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
	seed    int64
)

var rootCmd = &cobra.Command{
	Use:   "memstress",
	Short: "Stress and benchmark the memkit allocator and semaphore",
	Long: `memstress drives randomized workloads against the memkit allocation
abstraction and counting semaphore. It is a correctness shakeout as much as a
benchmark: every allocator run is leak-checked through a tracking allocator,
and every semaphore run verifies permit accounting.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 1, "Seed for randomized workloads")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// logger returns a slog.Logger honoring the --verbose flag.
func logger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func main() {
	execute()
}
