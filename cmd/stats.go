package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/storeresize-cli/internal/manifest"
	"github.com/AnyUserName/storeresize-cli/internal/tui"
)

var statsCmd = &cobra.Command{
	Use:   "stats <batch_folder_or_manifest>",
	Short: "Display statistics for an exported batch",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	m, _, err := manifest.Read(args[0])
	if err != nil {
		return err
	}
	printStats(m)
	return nil
}

func printStats(m *manifest.Manifest) {
	s := m.Stats
	target := fmt.Sprintf("%dx%d %s", m.Target.Width, m.Target.Height, m.Target.Format)
	if m.Target.Quality > 0 {
		target += fmt.Sprintf(" q=%.2f", m.Target.Quality)
	}
	rows := []tui.SummaryRow{
		{Label: "Batch", Value: m.BatchID},
		{Label: "Folder", Value: m.Folder},
		{Label: "Generated", Value: m.GeneratedAt},
		{Label: "Target", Value: target},
		{Label: "Filter", Value: m.Target.Filter},
		{Label: "Files", Value: fmt.Sprintf("%d", s.TotalFiles)},
		{Label: "Skipped", Value: fmt.Sprintf("%d", s.TotalFailures)},
		{Label: "Input size", Value: tui.FormatBytes(s.TotalInputBytes)},
		{Label: "Output size", Value: tui.FormatBytes(s.TotalOutputBytes)},
	}
	if s.TotalInputBytes > 0 {
		ratio := float64(s.TotalOutputBytes) / float64(s.TotalInputBytes) * 100
		rows = append(rows, tui.SummaryRow{Label: "Ratio", Value: fmt.Sprintf("%.1f%% of original", ratio)})
	}
	fmt.Println()
	fmt.Println(tui.RenderSummary(rows))
	fmt.Println()

	// Largest outputs first.
	files := append([]manifest.File(nil), m.Files...)
	sort.SliceStable(files, func(i, j int) bool { return files[i].Size > files[j].Size })
	if len(files) > 5 {
		files = files[:5]
	}
	if len(files) > 0 {
		fmt.Println("  Largest files:")
		for _, f := range files {
			fmt.Printf("    %-32s  %s\n", f.Name, tui.FormatBytes(f.Size))
		}
		fmt.Println()
	}

	if len(m.Failures) > 0 {
		fmt.Printf("  Skipped (%d):\n", len(m.Failures))
		for _, f := range m.Failures {
			fmt.Printf("    ⚠ %s: %s\n", f.Source, f.Error)
		}
		fmt.Println()
	}
}
