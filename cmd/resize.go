package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/AnyUserName/storeresize-cli/internal/pipeline"
	"github.com/AnyUserName/storeresize-cli/internal/source"
	"github.com/AnyUserName/storeresize-cli/internal/tui"
)

var (
	single bool
	plain  bool
)

var resizeCmd = &cobra.Command{
	Use:   "resize <paths...>",
	Short: "Resize images (files or directories) to one target size",
	Long: `Resize every image to exactly WIDTHxHEIGHT and re-encode it.

By default the batch is exported into <out>/Resized_Batch_<unix>/ as
{name}{suffix}_{index}.{ext}, plus resize.manifest.json. With --single each
image is written straight into <out> as {name}{suffix}.{ext}.

Images that cannot be decoded or processed are skipped and reported.`,
	Example: `  storeresize resize shots/ --preset iphone-6.7
  storeresize resize a.png b.jpg -W 1242 -H 2208 -f jpeg -q 0.85
  storeresize resize hero.png -W 1024 --lock-aspect --single`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResize,
}

func init() {
	addTargetFlags(resizeCmd)
	resizeCmd.Flags().BoolVar(&single, "single", false, "write {name}{suffix}.{ext} directly into --out")
	resizeCmd.Flags().BoolVar(&plain, "plain", false, "print progress lines instead of the progress bar")
	rootCmd.AddCommand(resizeCmd)
}

func runResize(c *cobra.Command, args []string) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	images, loadErrs := source.LoadAll(args)
	for _, e := range loadErrs {
		logWarn("%v", e)
	}
	if len(images) == 0 {
		return fmt.Errorf("no readable images in %v", args)
	}
	logVerbose("loaded %d images", len(images))

	target, err := resolveTarget(c, cfg, images[0])
	if err != nil {
		return fmt.Errorf("nothing processed: %w", err)
	}

	session := pipeline.NewSession(pipeline.Config{Verbose: verbose, Log: sessionLog()})
	session.Drop(images...)

	start := time.Now()
	run, err := session.Start(target)
	if err != nil {
		return err
	}
	if err := showProgress(run); err != nil {
		return err
	}
	res := run.Wait()
	elapsed := time.Since(start)
	if !plain {
		reportFailures(os.Stderr, res)
	}

	if len(res.Images) == 0 {
		return errors.New("every image failed to process")
	}

	out := resolveOutDir(c, cfg)
	exp := &pipeline.Exporter{Manifest: writeManifest(cfg), Log: os.Stderr}

	var where string
	var written, failed int
	if single {
		if err := os.MkdirAll(out, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		for _, p := range res.Images {
			dst := filepath.Join(out, p.FileName)
			if _, err := os.Stat(dst); err == nil {
				logWarn("overwriting %s", dst)
			}
			if _, err := exp.WriteSingle(out, p); err != nil {
				logWarn("%v", err)
				failed++
				continue
			}
			written++
		}
		where = out
	} else {
		rep, err := exp.WriteBatch(out, res)
		if err != nil {
			return err
		}
		written, failed, where = len(rep.Written), rep.Failed, rep.Folder
	}

	fmt.Println(tui.RenderSummary(summaryRows(res, written, failed, where, elapsed)))
	return nil
}

// sessionLog keeps worker log lines off the terminal while the progress bar
// is drawing on it.
func sessionLog() io.Writer {
	if plain {
		return os.Stderr
	}
	return io.Discard
}

// reportFailures prints the images a run skipped.
func reportFailures(w io.Writer, res *pipeline.BatchResult) {
	for _, f := range res.Failures {
		fmt.Fprintf(w, "[storeresize] warning: skip %s: %v\n", f.Name, f.Err)
	}
}

// showProgress follows run in the foreground until its progress channel
// closes.
func showProgress(run *pipeline.Run) error {
	if plain {
		for p := range run.Progress() {
			if p.Err != nil {
				fmt.Fprintf(os.Stderr, "[storeresize] %s  %s  skipped\n", p, p.Name)
				continue
			}
			fmt.Fprintf(os.Stderr, "[storeresize] %s  %s\n", p, p.Name)
		}
		return nil
	}
	prog := tea.NewProgram(tui.NewModel(run.Progress(), run.Total()), tea.WithOutput(os.Stderr))
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("progress ui: %w", err)
	}
	return nil
}

func summaryRows(res *pipeline.BatchResult, written, failed int, where string, elapsed time.Duration) []tui.SummaryRow {
	var in, out int64
	unknown := false
	for _, p := range res.Images {
		out += int64(len(p.Data))
		if p.OriginalSize < 0 {
			unknown = true
			continue
		}
		in += p.OriginalSize
	}
	if unknown && in == 0 {
		in = -1
	}
	return []tui.SummaryRow{
		{Label: "Target", Value: res.Target.String()},
		{Label: "Processed", Value: fmt.Sprintf("%d", len(res.Images))},
		{Label: "Skipped", Value: fmt.Sprintf("%d", len(res.Failures))},
		{Label: "Written", Value: fmt.Sprintf("%d", written)},
		{Label: "Write errors", Value: fmt.Sprintf("%d", failed)},
		{Label: "Input size", Value: tui.FormatBytes(in)},
		{Label: "Output size", Value: tui.FormatBytes(out)},
		{Label: "Output", Value: where},
		{Label: "Time", Value: elapsed.Round(time.Millisecond).String()},
	}
}
