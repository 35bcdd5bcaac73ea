package main

import (
	"fmt"
	"log/slog"
	"os"

	"procdesc/internal/log"
	"procdesc/internal/sched"
)

func main() {
	// Read the configuration
	cfg := sched.Load("config.yml")
	logger := log.BuildLogger(cfg.LogLevel)
	logger.Info("loaded config", "pid_start", cfg.PIDStart, "overrun_policy", cfg.OverrunPolicy.String())

	table := sched.NewTable(logger)
	err := run(cfg, logger, table)
	// Close explicitly so the trace is flushed before any exit
	if cerr := table.Close(); cerr != nil {
		logger.Error("close csv trace", log.ErrAttr(cerr))
		if err == nil {
			err = cerr
		}
	}
	if err != nil {
		logger.Error("procdesc failed", log.ErrAttr(err))
		os.Exit(1)
	}
}

func run(cfg sched.Config, logger *slog.Logger, table *sched.Table) error {
	if cfg.CSVTrace != "" {
		if err := table.EnableCSVLogging(cfg.CSVTrace); err != nil {
			return fmt.Errorf("enable csv trace: %w", err)
		}
	}

	factory := sched.NewFactory(cfg, sched.WithLogger(logger))

	// Create processes with both constructor forms
	first := factory.New(0, 3, 1)
	second, err := factory.FromSlice([]int{2, -4, -2})
	if err != nil {
		return fmt.Errorf("create process: %w", err)
	}
	for _, p := range []*sched.Process{first, second} {
		if err := table.Add(p); err != nil {
			return fmt.Errorf("add process: %w", err)
		}
	}
	if _, err := table.Duplicate(first.PID()); err != nil {
		return fmt.Errorf("duplicate process: %w", err)
	}

	// Run the first process to completion
	for !first.Done() {
		if _, err := table.Step(first.PID()); err != nil {
			return fmt.Errorf("step process: %w", err)
		}
	}

	for _, p := range table.Processes() {
		fmt.Println(p)
	}
	return nil
}
