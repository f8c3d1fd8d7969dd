package render

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// PaletteName identifies a color ramp.
type PaletteName string

const (
	PaletteSpectrum         PaletteName = "spectrum"
	PaletteSpectrumReversed PaletteName = "spectrum-reversed"
	PaletteGrey             PaletteName = "grey"
)

// Palette is an ordered ramp of xterm-256 color indices. Bucket 0 is used
// for the lowest values of a chart and the last bucket for the highest.
type Palette struct {
	name   PaletteName
	colors []int
}

func (p Palette) Name() PaletteName { return p.name }

func (p Palette) Len() int { return len(p.colors) }

// Bucket quantizes norm, clamped to [0,1], into a ramp index.
func (p Palette) Bucket(norm float64) int {
	if len(p.colors) == 0 || math.IsNaN(norm) {
		return 0
	}
	norm = math.Max(0, math.Min(1, norm))
	return int(math.Round(norm * float64(len(p.colors)-1)))
}

// Color returns the lipgloss color string of bucket.
func (p Palette) Color(bucket int) string {
	if len(p.colors) == 0 {
		return colorWhite
	}
	bucket = max(0, min(bucket, len(p.colors)-1))
	return strconv.Itoa(p.colors[bucket])
}

func (p Palette) reversed(name PaletteName) Palette {
	out := make([]int, len(p.colors))
	for i, c := range p.colors {
		out[len(out)-1-i] = c
	}
	return Palette{name: name, colors: out}
}

// spectrumRamp runs cold to hot: blue, cyan, green, yellow, red.
var spectrumRamp = []int{
	21, 27, 33, 39, 45, 51, 50, 49, 48, 47, 46,
	82, 118, 154, 190, 226, 220, 214, 208, 202, 196,
}

// Palettes is a read-only registry of color ramps.
type Palettes struct {
	byName map[PaletteName]Palette
}

// NewPalettes builds the registry: the spectrum ramp, its reversal and a
// grey ramp.
func NewPalettes() *Palettes {
	spectrum := Palette{name: PaletteSpectrum, colors: append([]int(nil), spectrumRamp...)}
	grey := Palette{name: PaletteGrey}
	for c := 236; c <= 255; c++ {
		grey.colors = append(grey.colors, c)
	}
	return &Palettes{byName: map[PaletteName]Palette{
		PaletteSpectrum:         spectrum,
		PaletteSpectrumReversed: spectrum.reversed(PaletteSpectrumReversed),
		PaletteGrey:             grey,
	}}
}

var defaultPalettes = sync.OnceValue(NewPalettes)

// DefaultPalettes returns the process-wide registry, built on first use.
func DefaultPalettes() *Palettes {
	return defaultPalettes()
}

// Lookup returns the palette registered under name.
func (r *Palettes) Lookup(name PaletteName) (Palette, error) {
	p, ok := r.byName[name]
	if !ok {
		return Palette{}, fmt.Errorf("unknown palette %q (known: %s)", name, r.names())
	}
	return p, nil
}

func (r *Palettes) names() string {
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, string(n))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
