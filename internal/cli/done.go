package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planward/planward/internal/service"
	"github.com/planward/planward/internal/timer"
)

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Mark a task as completed",
	Long: `Mark a task as completed, crediting its full planned duration and
stopping its timer if running.

Examples:
  planward done t17054
  planward done t17054 --undo`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

var doneUndo bool

func init() {
	doneCmd.Flags().BoolVar(&doneUndo, "undo", false, "Reset the task to pending with no progress")
}

func runDone(cmd *cobra.Command, args []string) error {
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

	eng := timer.New(st)
	if doneUndo {
		eng.Uncomplete(task.ID)
		fmt.Printf("○ Reopened: %q\n", task.Title)
	} else {
		eng.Complete(task.ID)
		fmt.Printf("✓ Completed: %q\n", task.Title)
	}
	svc.SyncObjectiveHours()
	return nil
}
