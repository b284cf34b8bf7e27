package cmd

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rpgo/marginal-rate-explorer/internal/calculation"
	"github.com/rpgo/marginal-rate-explorer/internal/config"
	"github.com/rpgo/marginal-rate-explorer/internal/domain"
	"github.com/rpgo/marginal-rate-explorer/internal/output"
	"github.com/rpgo/marginal-rate-explorer/internal/taxengine"
)

var (
	sweepFormat          string
	sweepOut             string
	flagLocalTax         float64
	flagCapitalGains     float64
	flagAMTBasisAdj      float64
	flagMortgageInterest float64
	flagSpouseRatio      float64
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run a rate sweep over the income grid and emit the curves",
	RunE:  runSweep,
}

func init() {
	sweepCmd.Flags().StringVar(&sweepFormat, "format", "console", "output format (csv, json, console)")
	sweepCmd.Flags().StringVar(&sweepOut, "out", "", "write output to a file instead of stdout")
	sweepCmd.Flags().Float64Var(&flagLocalTax, "local-tax", 0, "deductible local-tax amount")
	sweepCmd.Flags().Float64Var(&flagCapitalGains, "ltcg", 0, "long-term capital gains")
	sweepCmd.Flags().Float64Var(&flagAMTBasisAdj, "amt-basis-adj", 0, "AMT basis adjustment")
	sweepCmd.Flags().Float64Var(&flagMortgageInterest, "mortgage-interest", 0, "mortgage-interest deduction")
	sweepCmd.Flags().Float64Var(&flagSpouseRatio, "ratio", 0.5, "spouse wage split ratio")
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration()
	if err != nil {
		printError("loading configuration", err)
		return err
	}

	formatter := output.GetFormatterByName(sweepFormat)
	if formatter == nil {
		err := fmt.Errorf("unknown format %q (available: %v)", sweepFormat, output.FormatterNames())
		printError("selecting formatter", err)
		return err
	}

	var engine taxengine.Engine
	if cfg.TaxRules != nil {
		engine = taxengine.NewReferenceEngineWithConfig(*cfg.TaxRules)
	} else {
		engine = taxengine.NewReferenceEngine2016()
	}

	builder := calculation.NewProfileBuilder(cfg.Template, cfg.Constants)
	adapter := calculation.NewEngineAdapter(engine)
	runner := calculation.NewSweepRunner(calculation.NewFiniteDifferenceEngine(builder, adapter))

	grid := cfg.Grid.Points()
	collector := output.NewCurveCollector()
	controller := calculation.NewParameterController(runner, collector, grid, cfg.RateKinds, knobsFromFlags(cmd, cfg.Knobs))
	if verbose {
		logger := stderrLogger{}
		runner.Logger = logger
		controller.Logger = logger
	}
	// Start runs the initial sweep; a ratio override re-runs it through the
	// same knob-change path a control surface would use.
	if cmd.Flags().Changed("ratio") {
		err = controller.SetSpouseRatio(decimal.NewFromFloat(flagSpouseRatio))
	} else {
		err = controller.Start()
	}
	if err != nil {
		printError("running sweep", err)
		return err
	}

	data, err := formatter.Format(collector.Report(grid))
	if err != nil {
		printError("formatting output", err)
		return err
	}

	if sweepOut == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(sweepOut, data, 0644); err != nil {
		printError("writing output file", err)
		return err
	}
	fmt.Printf("Wrote %s report to %s\n", formatter.Name(), sweepOut)
	return nil
}

func loadConfiguration() (*domain.SweepConfiguration, error) {
	if cfgFile == "" {
		return config.DefaultConfiguration(), nil
	}
	return config.NewInputParser().LoadFromFile(cfgFile)
}

// knobsFromFlags starts from the configured knob ranges and overrides the
// defaults with any flags the user set, so the controller's initial sweep
// already reflects them.
func knobsFromFlags(cmd *cobra.Command, knobs domain.KnobRanges) domain.KnobRanges {
	if cmd.Flags().Changed("local-tax") {
		knobs.LocalTax.Default = decimal.NewFromFloat(flagLocalTax)
	}
	if cmd.Flags().Changed("ltcg") {
		knobs.CapitalGains.Default = decimal.NewFromFloat(flagCapitalGains)
	}
	if cmd.Flags().Changed("amt-basis-adj") {
		knobs.AMTBasisAdjustment.Default = decimal.NewFromFloat(flagAMTBasisAdj)
	}
	if cmd.Flags().Changed("mortgage-interest") {
		knobs.MortgageInterest.Default = decimal.NewFromFloat(flagMortgageInterest)
	}
	return knobs
}
