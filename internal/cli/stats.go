package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/planward/planward/internal/service"
	"github.com/planward/planward/internal/stats"
	"github.com/planward/planward/internal/temporal"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show weekly progress, trends and streak",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	svc := service.New(st)
	tasks := svc.Tasks()
	now := time.Now()

	current := stats.CurrentWeek(tasks, now)
	previous := stats.PreviousWeek(tasks, now)
	streak := stats.Streak(tasks, now)

	fmt.Printf("\nWeek of %s\n", temporal.WeekStart(now).Format("Jan 2"))
	fmt.Println(strings.Repeat("─", 48))
	fmt.Printf("  Tasks      %d planned, %d completed, %d missed\n",
		current.TotalTasksPlanned, current.TotalTasksCompleted, current.TotalTasksMissed)
	fmt.Printf("  Hours      %.1f of %.1f planned\n", current.TotalHoursCompleted, current.TotalHoursPlanned)
	fmt.Printf("  Progress   %.1f%%%s\n", current.ProgressPercentage, trendSuffix(current.ProgressPercentage, previous.ProgressPercentage))
	fmt.Printf("  Streak     %d day(s)%s\n", streak, flame(streak))

	fmt.Println()
	for _, day := range stats.WeekdayProgress(tasks, now) {
		bar := strings.Repeat("█", int(day.Percent/10))
		fmt.Printf("  %-4s %5.1f%%  %s\n", day.Day, day.Percent, bar)
	}

	if objectives := svc.Objectives(); len(objectives) > 0 {
		fmt.Println("\nObjectives")
		fmt.Println(strings.Repeat("─", 48))
		for _, o := range objectives {
			fmt.Printf("  %-32s  %5.1fh/%-5.1fh\n", truncate(o.Title, 32), svc.ObjectiveProgress(o.ID), o.TotalHours)
		}
	}
	fmt.Println()
	return nil
}

func trendSuffix(current, previous float64) string {
	trend, ok := stats.TrendDelta(current, previous)
	if !ok {
		return ""
	}
	arrow := "↑"
	if trend.Direction == "down" {
		arrow = "↓"
	}
	return fmt.Sprintf("  (%s%d%% vs last week)", arrow, trend.Percent)
}

func flame(streak int) string {
	if streak >= 7 {
		return " 🔥"
	}
	return ""
}
