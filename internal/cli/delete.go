package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/planward/planward/internal/service"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [task-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Delete a task instance. With --recurring, deletes every instance of the
recurring task it belongs to (same title, description, time and objective).

Examples:
  planward delete t17054
  planward delete t17054 --recurring`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var deleteRecurring bool

func init() {
	deleteCmd.Flags().BoolVarP(&deleteRecurring, "recurring", "r", false, "Delete the whole recurring group")
}

func runDelete(cmd *cobra.Command, args []string) error {
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

	before := len(svc.Tasks())
	if err := svc.DeleteTask(task.ID, deleteRecurring); err != nil {
		return err
	}
	removed := before - len(svc.Tasks())
	svc.SyncObjectiveHours()

	if deleteRecurring {
		fmt.Printf("✗ Deleted %q and its %d occurrences\n", task.Title, removed)
	} else {
		fmt.Printf("✗ Deleted: %q\n", task.Title)
	}
	return nil
}
