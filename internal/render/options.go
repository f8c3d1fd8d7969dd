package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ChartOptions configures the axis chart engine.
type ChartOptions struct {
	Axis    bool        `yaml:"axis"`
	Color   bool        `yaml:"color"`
	Palette PaletteName `yaml:"palette"`
	Height  int         `yaml:"height"`
	Width   int         `yaml:"width"`
}

// DefaultChartOptions returns an 80x25 colored chart on the reversed spectrum.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{
		Color:   true,
		Palette: PaletteSpectrumReversed,
		Height:  25,
		Width:   80,
	}
}

// Validate checks sizes and that the palette exists in palettes.
func (o ChartOptions) Validate(palettes *Palettes) error {
	if o.Width <= 0 {
		return fmt.Errorf("chart.width must be positive, got %d", o.Width)
	}
	if o.Height <= 0 {
		return fmt.Errorf("chart.height must be positive, got %d", o.Height)
	}
	if _, err := palettes.Lookup(o.Palette); err != nil {
		return fmt.Errorf("chart.palette: %w", err)
	}
	return nil
}

// DecodeChartOptions parses YAML over the defaults. Unknown keys are rejected.
func DecodeChartOptions(data []byte) (ChartOptions, error) {
	opts := DefaultChartOptions()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return ChartOptions{}, fmt.Errorf("decode chart options: %w", err)
	}
	if err := opts.Validate(DefaultPalettes()); err != nil {
		return ChartOptions{}, err
	}
	return opts, nil
}
