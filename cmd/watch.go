package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/storeresize-cli/internal/pipeline"
	"github.com/AnyUserName/storeresize-cli/internal/source"
	"github.com/AnyUserName/storeresize-cli/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <inbox>",
	Short: "Resize every batch of images dropped into a folder",
	Long: `Watch <inbox> for new image files. Files arriving close together are
collected into one batch, resized, and exported into a fresh
Resized_Batch_<unix> folder under --out. Batches run one at a time.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	addTargetFlags(watchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(c *cobra.Command, args []string) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	inbox := args[0]
	info, err := os.Stat(inbox)
	if err != nil {
		return fmt.Errorf("stat inbox: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", inbox)
	}

	out := resolveOutDir(c, cfg)
	session := pipeline.NewSession(pipeline.Config{Verbose: verbose, Log: os.Stderr})
	exp := &pipeline.Exporter{Manifest: writeManifest(cfg), Log: os.Stderr}

	handle := func(paths []string) {
		images, loadErrs := source.LoadAll(paths)
		for _, e := range loadErrs {
			logWarn("%v", e)
		}
		if len(images) == 0 {
			return
		}
		target, err := resolveTarget(c, cfg, images[0])
		if err != nil {
			logWarn("nothing processed: %v", err)
			return
		}
		session.Drop(images...)
		res, err := session.Process(target)
		if err != nil {
			logWarn("%v", err)
			return
		}
		rep, err := exp.WriteBatch(out, res)
		if err != nil {
			logWarn("%v", err)
			return
		}
		fmt.Printf("[storeresize] %d of %d images → %s\n", len(rep.Written), len(images), rep.Folder)
	}

	w := watch.New(watch.Config{
		Dir:      inbox,
		Debounce: time.Duration(cfg.Watch.DebounceMS) * time.Millisecond,
		Verbose:  verbose,
		Log:      os.Stderr,
	}, handle)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("[storeresize] watching %s (ctrl-c to stop)\n", inbox)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
