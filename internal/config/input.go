package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/rpgo/marginal-rate-explorer/internal/domain"
)

// InputParser handles parsing of sweep configuration files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// DefaultConfiguration returns the reference configuration: joint template,
// DELTA/Medicare/SS-cap/state-withholding constants, 10k..1M grid, the
// documented knob ranges, and every marginal kind plus effective subscribed.
func DefaultConfiguration() *domain.SweepConfiguration {
	return &domain.SweepConfiguration{
		Template:  domain.DefaultFilingTemplate(),
		Constants: domain.DefaultFilingConstants(),
		Grid:      domain.DefaultGridSpec(),
		Knobs:     domain.DefaultKnobRanges(),
		RateKinds: []domain.RateKind{
			domain.RateWageMarginal,
			domain.RateCapitalGainsMarginal,
			domain.RateLocalTaxDeductionMarginal,
			domain.RateMortgageInterestDeductionMarginal,
			domain.RateEffective,
		},
	}
}

// LoadFromFile loads a sweep configuration from a YAML file. Omitted
// sections fall back to the defaults; the merged result is validated.
func (ip *InputParser) LoadFromFile(filename string) (*domain.SweepConfiguration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	config := DefaultConfiguration()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.applyDefaults(config)

	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// applyDefaults fills zero-valued scalar fields a partial file left behind.
func (ip *InputParser) applyDefaults(config *domain.SweepConfiguration) {
	defaults := DefaultConfiguration()
	if config.Template.Status == "" {
		config.Template = defaults.Template
	}
	if config.Constants.Delta.IsZero() {
		config.Constants.Delta = defaults.Constants.Delta
	}
	if config.Constants.MedicareRate.IsZero() {
		config.Constants.MedicareRate = defaults.Constants.MedicareRate
	}
	if config.Constants.SocialSecurityMax.IsZero() {
		config.Constants.SocialSecurityMax = defaults.Constants.SocialSecurityMax
	}
	if config.Constants.StateWithholdingRate.IsZero() {
		config.Constants.StateWithholdingRate = defaults.Constants.StateWithholdingRate
	}
	if config.Grid.Step.IsZero() {
		config.Grid = defaults.Grid
	}
	if len(config.RateKinds) == 0 {
		config.RateKinds = defaults.RateKinds
	}
}

// ValidateConfiguration validates the loaded configuration.
func (ip *InputParser) ValidateConfiguration(config *domain.SweepConfiguration) error {
	if config.Template.Status != domain.FilingStatusJoint {
		return fmt.Errorf("unsupported filing status %q", config.Template.Status)
	}
	if config.Template.Exemptions < 0 {
		return fmt.Errorf("exemption count cannot be negative")
	}

	if err := ip.validateConstants(&config.Constants); err != nil {
		return fmt.Errorf("constants validation failed: %w", err)
	}
	if err := ip.validateGrid(&config.Grid); err != nil {
		return fmt.Errorf("grid validation failed: %w", err)
	}
	if err := ip.validateKnobs(&config.Knobs); err != nil {
		return fmt.Errorf("knob validation failed: %w", err)
	}

	for _, kind := range config.RateKinds {
		if _, err := domain.ParseRateKind(string(kind)); err != nil {
			return err
		}
	}

	return nil
}

func (ip *InputParser) validateConstants(constants *domain.FilingConstants) error {
	if constants.Delta.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("delta must be positive")
	}
	if constants.MedicareRate.IsNegative() || constants.MedicareRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("medicare rate must be between 0 and 1, got %s", constants.MedicareRate)
	}
	if constants.SocialSecurityMax.IsNegative() {
		return fmt.Errorf("social security maximum cannot be negative")
	}
	if constants.StateWithholdingRate.IsNegative() || constants.StateWithholdingRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("state withholding rate must be between 0 and 1, got %s", constants.StateWithholdingRate)
	}
	return nil
}

func (ip *InputParser) validateGrid(grid *domain.GridSpec) error {
	if grid.Step.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("step must be positive")
	}
	if grid.Max.LessThanOrEqual(grid.Min) {
		return fmt.Errorf("max (%s) must exceed min (%s)", grid.Max, grid.Min)
	}
	return nil
}

func (ip *InputParser) validateKnobs(knobs *domain.KnobRanges) error {
	for _, knob := range []struct {
		name string
		r    domain.KnobRange
	}{
		{"local_tax", knobs.LocalTax},
		{"capital_gains", knobs.CapitalGains},
		{"amt_basis_adjustment", knobs.AMTBasisAdjustment},
		{"mortgage_interest", knobs.MortgageInterest},
	} {
		if knob.r.Max.LessThan(knob.r.Min) {
			return fmt.Errorf("%s: max (%s) below min (%s)", knob.name, knob.r.Max, knob.r.Min)
		}
		if knob.r.Default.LessThan(knob.r.Min) || knob.r.Default.GreaterThan(knob.r.Max) {
			return fmt.Errorf("%s: default (%s) outside [%s, %s]", knob.name, knob.r.Default, knob.r.Min, knob.r.Max)
		}
	}
	return nil
}
