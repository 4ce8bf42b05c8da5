package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planward/planward/internal/service"
	"github.com/planward/planward/internal/temporal"
	"github.com/planward/planward/internal/timer"
)

var startCmd = &cobra.Command{
	Use:   "start [task-id]",
	Short: "Start the timer on a task",
	Long: `Start the focus timer on a task. Any other running timer is stopped first
and its elapsed time flushed — only one timer runs at a time.`,
	Args: cobra.ExactArgs(1),
	RunE: runStart,
}

var stopCmd = &cobra.Command{
	Use:   "stop [task-id]",
	Short: "Stop a running timer",
	Args:  cobra.ExactArgs(1),
	RunE:  runStop,
}

func runStart(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	svc := service.New(st)
	task, err := svc.FindTask(args[0])
	if err != nil {
		return err
	}
	if task.IsCompleted() {
		return fmt.Errorf("%q is already completed", task.Title)
	}

	timer.New(st).Start(task.ID)
	svc.SyncObjectiveHours()
	fmt.Printf("▶ Timer started on %q (%d of %d minutes done)\n",
		task.Title, task.CompletedMinutes, task.DurationMinutes)
	return nil
}

func runStop(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	svc := service.New(st)
	task, err := svc.FindTask(args[0])
	if err != nil {
		return err
	}

	timer.New(st).Stop(task.ID)
	svc.SyncObjectiveHours()

	after, err := svc.FindTask(task.ID)
	if err != nil {
		return err
	}
	fmt.Printf("■ Timer stopped on %q (%s of %s done)\n", after.Title,
		temporal.FormatDuration(after.CompletedMinutes), temporal.FormatDuration(after.DurationMinutes))
	return nil
}
