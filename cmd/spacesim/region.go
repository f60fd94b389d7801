package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/playground/spacesim/internal/region"
	"github.com/playground/spacesim/internal/rng"
)

var flagBlocks int

var regionCmd = &cobra.Command{
	Use:   "region",
	Short: "Preview a generated asteroid blueprint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if flagBlocks <= 0 {
			return fmt.Errorf("--blocks must be positive, got %d", flagBlocks)
		}
		seed := resolveSeed(0, func() int64 { return time.Now().UnixNano() })
		bp := region.Generate(flagBlocks, rng.New(seed))
		fmt.Println(renderBlueprint(bp))
		fmt.Printf("  %d cells, connected: %v, seed: %d\n", bp.Len(), bp.Connected(), seed)
		return nil
	},
}

func init() {
	regionCmd.Flags().IntVar(&flagBlocks, "blocks", 60, "Number of cells to grow")
}

var (
	blueprintBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 1)
	originStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	cellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// renderBlueprint draws the blueprint's bounding box, top row = highest Y:
// "@" marks the origin, "#" a cell and "·" an empty slot.
func renderBlueprint(bp region.Blueprint) string {
	lo, hi := bp.Bounds()
	origin := bp.Origin()
	var b strings.Builder
	for y := hi.Y; y >= lo.Y; y-- {
		for x := lo.X; x <= hi.X; x++ {
			c := region.Cell{X: x, Y: y}
			switch {
			case c == origin:
				b.WriteString(originStyle.Render("@"))
			case bp.Contains(c):
				b.WriteString(cellStyle.Render("#"))
			default:
				b.WriteString(emptyStyle.Render("·"))
			}
		}
		if y > lo.Y {
			b.WriteByte('\n')
		}
	}
	return blueprintBox.Render(b.String())
}
