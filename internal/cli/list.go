package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/planward/planward/internal/model"
	"github.com/planward/planward/internal/service"
	"github.com/planward/planward/internal/temporal"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List scheduled tasks",
	Long: `List tasks for a day (recurring groups collapsed) or a whole week.

Examples:
  planward list
  planward list --date 2026-09-01
  planward list --week`,
	RunE: runList,
}

var (
	listDate string
	listWeek bool
)

func init() {
	listCmd.Flags().StringVar(&listDate, "date", "", "Day to list (YYYY-MM-DD, default today)")
	listCmd.Flags().BoolVarP(&listWeek, "week", "w", false, "List the whole week")
}

func runList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	svc := service.New(st)
	day, err := parseDay(listDate)
	if err != nil {
		return err
	}

	if listWeek {
		start := temporal.WeekStart(day)
		for i := 0; i < 7; i++ {
			printDay(svc, start.AddDate(0, 0, i))
		}
		return nil
	}
	printDay(svc, day)
	return nil
}

func printDay(svc *service.Service, day time.Time) {
	tasks := svc.TasksForDay(day)
	if len(tasks) == 0 {
		fmt.Printf("\n%s — nothing scheduled\n", day.Format("Mon Jan 2"))
		return
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ScheduledTime < tasks[j].ScheduledTime })

	fmt.Printf("\n%s (%d tasks)\n", day.Format("Mon Jan 2"), len(tasks))
	fmt.Println(strings.Repeat("─", 72))
	for _, t := range tasks {
		printTask(t)
	}
}

func printTask(t model.Task) {
	icon := "[ ]"
	switch {
	case t.IsCompleted():
		icon = "[x]"
	case t.Status == model.TaskSkipped:
		icon = "[-]"
	case t.Timer.Running:
		icon = "[▶]"
	case t.Status == model.TaskInProgress:
		icon = "[~]"
	}

	progress := ""
	if t.CompletedMinutes > 0 && !t.IsCompleted() {
		progress = fmt.Sprintf("%d/%dmin", t.CompletedMinutes, t.DurationMinutes)
	}

	fmt.Printf("  %s  %-10s  %s  %-36s  %-10s %s\n",
		icon, shortID(t.ID), t.ScheduledTime, truncate(t.Title, 36),
		temporal.FormatDuration(t.DurationMinutes), progress)
}
