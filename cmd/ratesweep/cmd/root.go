package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ratesweep",
	Short: "Marginal tax rate explorer for a joint household",
	Long: `ratesweep estimates marginal and effective tax rates for a married
couple filing jointly by forward-differencing an annual tax-liability
function, swept across a grid of income levels.

Adjustable knobs: deductible local tax, long-term capital gains, AMT basis
adjustment, and mortgage-interest deduction.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "sweep configuration file (YAML); defaults are built in")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}

// stderrLogger adapts the standard logger to the calculation Logger
// interface for --verbose runs.
type stderrLogger struct{}

func (stderrLogger) Debugf(format string, args ...any) { log.Printf("DEBUG "+format, args...) }
func (stderrLogger) Infof(format string, args ...any)  { log.Printf("INFO "+format, args...) }
func (stderrLogger) Warnf(format string, args ...any)  { log.Printf("WARN "+format, args...) }
func (stderrLogger) Errorf(format string, args ...any) { log.Printf("ERROR "+format, args...) }
