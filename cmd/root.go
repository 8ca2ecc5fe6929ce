package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "imgquant",
	Short: "Color quantization toolkit: divisive weighted-variance and Kohonen SOM palettes",
	Long: `imgquant reduces an image to a palette of at most K colors using either
a divisive weighted-variance clusterer (DIV) or a Kohonen self-organizing
map (NEU), with optional Floyd-Steinberg dithering, and writes a JSON
report alongside every quantized output.`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"imgquant %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[imgquant] "+format+"\n", args...)
	}
}
