package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/playground/spacesim/internal/persist"
)

var flagLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		store, err := persist.Open(ctx, cfg.Storage, zap.NewNop())
		if err != nil {
			return fmt.Errorf("storage: %w", err)
		}
		defer store.Close()

		runs, err := store.RecentRuns(ctx, flagLimit)
		if err != nil {
			return fmt.Errorf("list runs: %w", err)
		}
		if len(runs) == 0 {
			fmt.Println("  no runs recorded")
			return nil
		}
		for _, r := range runs {
			fmt.Println(formatRun(r))
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to list")
}

var (
	runIDStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	runModeStyle = lipgloss.NewStyle().Width(8)
	runDimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// formatRun renders one run as a single summary line.
func formatRun(r persist.Run) string {
	var pools string
	for _, p := range r.Pools {
		pools += fmt.Sprintf(" %s=%d/%d", p.Kind, p.Reused, p.Constructed)
	}
	return fmt.Sprintf("  %s %s ticks=%s%s effects=%d destroyed=%d %s",
		runIDStyle.Render(fmt.Sprintf("#%d", r.ID)),
		runModeStyle.Render(r.Mode),
		numbers.Sprintf("%d", r.Ticks),
		pools,
		r.EffectsSpawned,
		r.EnemiesDestroyed,
		runDimStyle.Render(fmt.Sprintf("seed=%d %s", r.Seed, r.StartedAt.Local().Format(time.DateTime))),
	)
}
