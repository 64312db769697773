package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/storeresize-cli/internal/config"
)

var (
	version    = "0.1.0"
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "storeresize",
	Short: "Batch-resize images to exact store asset sizes",
	Long: `storeresize resizes a batch of images to one exact pixel size
(or a device preset) and re-encodes them as PNG, JPEG or TIFF.

Every image is stretched to fill the target exactly; nothing is cropped.
Batches are exported into a fresh Resized_Batch_<unix> folder with
collision-free names.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		fmt.Sprintf("config file (default ./%s if present)", config.DefaultPath))
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"storeresize %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// loadConfig reads --config, or the default file when it exists.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadOptional(configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return nil, err
	}
	logVerbose("config: preset=%s format=%s filter=%s", cfg.Preset, cfg.Format, cfg.Filter)
	return cfg, nil
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[storeresize] "+format+"\n", args...)
	}
}

// logWarn always prints.
func logWarn(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "[storeresize] warning: "+format+"\n", args...)
}
