package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/planward/planward/internal/model"
	"github.com/planward/planward/internal/service"
	"github.com/planward/planward/internal/temporal"
)

var objectiveCmd = &cobra.Command{
	Use:     "objective",
	Aliases: []string{"obj"},
	Short:   "Manage objectives",
}

var objectiveAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Create an objective",
	Long: `Create an objective with a target number of hours over a date range.

Examples:
  planward objective add "Conversational Spanish" --hours 40 --category study
  planward objective add "Half marathon" --hours 60 --category training --end 2026-12-01`,
	Args: cobra.MinimumNArgs(1),
	RunE: runObjectiveAdd,
}

var objectiveListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List objectives with derived progress",
	RunE:    runObjectiveList,
}

var objectiveDeleteCmd = &cobra.Command{
	Use:   "delete [objective-id]",
	Short: "Delete an objective and all of its tasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runObjectiveDelete,
}

var (
	objectiveHours       float64
	objectiveCategory    string
	objectiveDescription string
	objectiveStart       string
	objectiveEnd         string
)

func init() {
	objectiveAddCmd.Flags().Float64Var(&objectiveHours, "hours", 0, "Target hours")
	objectiveAddCmd.Flags().StringVarP(&objectiveCategory, "category", "c", "study", "Category (study, training, health, work)")
	objectiveAddCmd.Flags().StringVarP(&objectiveDescription, "description", "d", "", "Description")
	objectiveAddCmd.Flags().StringVar(&objectiveStart, "start", "", "Start date (YYYY-MM-DD, default today)")
	objectiveAddCmd.Flags().StringVar(&objectiveEnd, "end", "", "End date (YYYY-MM-DD)")

	objectiveCmd.AddCommand(objectiveAddCmd)
	objectiveCmd.AddCommand(objectiveListCmd)
	objectiveCmd.AddCommand(objectiveDeleteCmd)
}

func runObjectiveAdd(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	start, err := parseDay(objectiveStart)
	if err != nil {
		return err
	}
	end := start.AddDate(0, 1, 0)
	if objectiveEnd != "" {
		if end, err = parseDay(objectiveEnd); err != nil {
			return err
		}
	}

	o := model.NewObjective("", strings.Join(args, " "), objectiveDescription, model.ParseCategory(objectiveCategory))
	o.TotalHours = objectiveHours
	o.StartDate = temporal.DateOnly(start)
	o.EndDate = temporal.DateOnly(end)

	created, err := service.New(st).CreateObjective(o)
	if err != nil {
		return fmt.Errorf("failed to create objective: %w", err)
	}

	fmt.Printf("◎ Created objective [%s] %q (%s, %.0fh until %s)\n",
		shortID(created.ID), created.Title, created.Category, created.TotalHours, temporal.DateKey(created.EndDate))
	return nil
}

func runObjectiveList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	svc := service.New(st)
	objectives := svc.Objectives()
	if len(objectives) == 0 {
		fmt.Println("No objectives yet. Create one with: planward objective add \"Your goal\" --hours 20")
		return nil
	}

	fmt.Printf("\n◎ Objectives (%d)\n", len(objectives))
	fmt.Println(strings.Repeat("─", 72))
	for _, o := range objectives {
		done := svc.ObjectiveProgress(o.ID)
		pct := 0.0
		if o.TotalHours > 0 {
			pct = 100 * done / o.TotalHours
		}
		fmt.Printf("  %-10s  %-32s  %5.1fh/%-5.1fh  %5.1f%%  %s\n",
			shortID(o.ID), truncate(o.Title, 32), done, o.TotalHours, pct, o.Status)
	}
	fmt.Println()
	return nil
}

func runObjectiveDelete(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	svc := service.New(st)
	id := resolveObjectiveID(svc, args[0])
	before := len(svc.Tasks())
	if err := svc.DeleteObjective(id); err != nil {
		return err
	}
	fmt.Printf("✗ Deleted objective %s and %d tasks\n", shortID(id), before-len(svc.Tasks()))
	return nil
}

// resolveObjectiveID accepts a full ID or a unique prefix
func resolveObjectiveID(svc *service.Service, idOrPrefix string) string {
	for _, o := range svc.Objectives() {
		if o.ID == idOrPrefix || (len(idOrPrefix) >= 4 && strings.HasPrefix(o.ID, idOrPrefix)) {
			return o.ID
		}
	}
	return idOrPrefix
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
