package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/storeresize-cli/internal/preset"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List named target sizes",
	Args:  cobra.NoArgs,
	RunE:  runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(c *cobra.Command, _ []string) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	set, err := cfg.PresetSet()
	if err != nil {
		return err
	}

	return printPresets(os.Stdout, set, cfg.Preset)
}

// printPresets lists every preset and stars the one def resolves to.
func printPresets(w io.Writer, set *preset.Set, def string) error {
	var defName string
	if p, err := set.Get(def); err == nil {
		defName = p.Name
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  NAME\tSIZE\tDESCRIPTION")
	for _, p := range set.All() {
		mark := " "
		if p.Name == defName {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s %s\t%dx%d\t%s\n", mark, p.Name, p.Width, p.Height, p.Description)
	}
	return tw.Flush()
}
