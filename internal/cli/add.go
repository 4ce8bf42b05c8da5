package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/planward/planward/internal/model"
	"github.com/planward/planward/internal/recur"
	"github.com/planward/planward/internal/service"
	"github.com/planward/planward/internal/temporal"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Schedule a task",
	Long: `Schedule a task against an objective, either once or on a weekly recurrence.

Examples:
  planward add "Grammar drills" --objective obj-abc123 --time 09:00 --duration 30
  planward add "Long run" -o obj-abc123 -t 07:00 -m 60 --days 2,4,6 --until 2026-10-01`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addObjective   string
	addDate        string
	addTime        string
	addDuration    int
	addDescription string
	addDays        []int
	addUntil       string
)

func init() {
	addCmd.Flags().StringVarP(&addObjective, "objective", "o", "", "Objective ID (required)")
	addCmd.Flags().StringVar(&addDate, "date", "", "Scheduled date (YYYY-MM-DD, default today)")
	addCmd.Flags().StringVarP(&addTime, "time", "t", "09:00", "Time of day (HH:MM)")
	addCmd.Flags().IntVarP(&addDuration, "duration", "m", 30, "Planned duration in minutes")
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Description")
	addCmd.Flags().IntSliceVar(&addDays, "days", nil, "Recurring days of week (0=Sun..6=Sat)")
	addCmd.Flags().StringVar(&addUntil, "until", "", "Recurrence end date (YYYY-MM-DD)")
	addCmd.MarkFlagRequired("objective")
}

func runAdd(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	svc := service.New(st)
	objectiveID := resolveObjectiveID(svc, addObjective)
	title := strings.Join(args, " ")

	start, err := parseDay(addDate)
	if err != nil {
		return err
	}

	// Recurring when a day set is given; one concrete task otherwise.
	if len(addDays) > 0 {
		if addUntil == "" {
			return fmt.Errorf("--days needs --until to bound the recurrence")
		}
		end, err := parseDay(addUntil)
		if err != nil {
			return err
		}

		instances := recur.Expand(model.RecurrenceRule{
			ObjectiveID:     objectiveID,
			Title:           title,
			Description:     addDescription,
			DaysOfWeek:      addDays,
			StartDate:       start,
			EndDate:         end,
			Time:            addTime,
			DurationMinutes: addDuration,
		}, start)
		if len(instances) == 0 {
			return fmt.Errorf("recurrence matches no days in range")
		}
		for _, t := range instances {
			if _, err := svc.CreateTask(t); err != nil {
				return fmt.Errorf("failed to create task: %w", err)
			}
		}
		fmt.Printf("✓ Scheduled %q %d times through %s\n", title, len(instances), temporal.DateKey(end))
		return nil
	}

	created, err := svc.CreateTask(model.Task{
		ObjectiveID:     objectiveID,
		Title:           title,
		Description:     addDescription,
		ScheduledDate:   start,
		ScheduledTime:   addTime,
		DurationMinutes: addDuration,
	})
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	fmt.Printf("✓ Scheduled [%s] %q on %s at %s (%s)\n",
		shortID(created.ID), title, temporal.DateKey(created.ScheduledDate), addTime, temporal.FormatDuration(addDuration))
	return nil
}
