package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/planward/planward/internal/config"
	"github.com/planward/planward/internal/model"
	"github.com/planward/planward/internal/planner"
	"github.com/planward/planward/internal/service"
	"github.com/planward/planward/internal/temporal"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a task plan with the planning service",
	Long: `Walk through a few questions, request a generated plan from the configured
planning service, preview it, and on acceptance expand it into scheduled
tasks. Nothing is saved until you accept the preview.`,
	RunE: runPlan,
}

var planYes bool

func init() {
	planCmd.Flags().BoolVarP(&planYes, "yes", "y", false, "Accept the generated preview without asking")
}

var dayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	st, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()
	svc := service.New(st)

	in := bufio.NewScanner(os.Stdin)
	req, err := askPlanQuestions(in)
	if err != nil {
		return err
	}

	// Existing tasks inside the availability window make the service
	// spread new sessions across days.
	req = planner.PrepareRequest(req, svc.Tasks())
	if req.DistributeTasksAcrossDays {
		fmt.Println("  (some of your tasks overlap this window; asking the service to distribute across days)")
	}

	fmt.Println("\nGenerating plan...")
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	preview, err := planner.NewClient(cfg.PlanServiceURL, cfg.UserID).GeneratePlan(ctx, req)
	if err != nil {
		return fmt.Errorf("plan generation failed: %w", err)
	}

	printPreview(preview)

	if !planYes {
		if !askYesNo(in, "Accept this plan?") {
			fmt.Println("Plan discarded. Nothing was saved.")
			return nil
		}
	}

	objective, tasks, err := svc.AcceptPlan(*preview)
	if err != nil {
		return fmt.Errorf("failed to accept plan: %w", err)
	}
	fmt.Printf("✓ Created objective %q with %d scheduled tasks (through %s)\n",
		objective.Title, len(tasks), temporal.DateKey(objective.EndDate))
	return nil
}

func askPlanQuestions(in *bufio.Scanner) (model.PlanRequest, error) {
	var req model.PlanRequest

	req.HasExistingPlan = askYesNo(in, "Do you already have a plan or routine you follow?")
	if req.HasExistingPlan {
		req.ExistingPlan = ask(in, "Describe your current plan")
	} else {
		req.Area = ask(in, "Which area is this for? (study, health, work, fitness, personal)")
		req.Objective = ask(in, "What do you want to achieve?")
		if req.Objective == "" {
			return req, fmt.Errorf("an objective is required")
		}

		value, unit := askPeriod(in)
		req.Period = &model.Period{Value: value, Unit: unit}
	}

	days, err := askDays(in)
	if err != nil {
		return req, err
	}
	start := ask(in, "Earliest time you can start? (HH:MM)")
	end := ask(in, "Latest time you can finish? (HH:MM)")
	if !validClock(start) || !validClock(end) {
		return req, fmt.Errorf("times must be HH:MM")
	}
	if start >= end {
		return req, fmt.Errorf("start time %s must be before end time %s", start, end)
	}

	req.Availability = model.Availability{Days: days, TimeRange: model.TimeRange{Start: start, End: end}}
	return req, nil
}

func askDays(in *bufio.Scanner) ([]int, error) {
	answer := ask(in, "Which days are you available? (0=Sun..6=Sat, comma separated)")
	var days []int
	for _, part := range strings.Split(answer, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil || d < 0 || d > 6 {
			return nil, fmt.Errorf("invalid day %q", part)
		}
		days = append(days, d)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("pick at least one day")
	}
	return days, nil
}

func askPeriod(in *bufio.Scanner) (int, string) {
	answer := ask(in, "How long should the plan run? (e.g. \"4 weeks\", \"2 months\")")
	fields := strings.Fields(answer)
	value, unit := 4, "weeks"
	if len(fields) >= 1 {
		if v, err := strconv.Atoi(fields[0]); err == nil && v > 0 {
			value = v
		}
	}
	if len(fields) >= 2 && strings.HasPrefix(fields[1], "month") {
		unit = "months"
	}
	return value, unit
}

func ask(in *bufio.Scanner, question string) string {
	fmt.Printf("%s\n> ", question)
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}

func askYesNo(in *bufio.Scanner, question string) bool {
	answer := strings.ToLower(ask(in, question+" (y/n)"))
	return answer == "y" || answer == "yes"
}

func validClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil && len(s) == 5
}

func printPreview(p *model.PlanPreview) {
	fmt.Printf("\n◎ %s\n", p.Objective.Title)
	if p.Objective.Description != "" {
		fmt.Printf("  %s\n", p.Objective.Description)
	}
	fmt.Println(strings.Repeat("─", 64))
	for _, t := range p.Tasks {
		names := make([]string, 0, len(t.Schedule.Rule.DaysOfWeek))
		for _, d := range t.Schedule.Rule.DaysOfWeek {
			if d >= 0 && d <= 6 {
				names = append(names, dayNames[d])
			}
		}
		fmt.Printf("  %s at %s  %s  (%s per session)\n",
			strings.Join(names, ", "), t.Schedule.Time, truncate(t.Title, 36),
			temporal.FormatDuration(t.Planning.SessionPlannedMinutes))
	}
	fmt.Println()
}
