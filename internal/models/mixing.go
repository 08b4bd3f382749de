package models

import (
	"fmt"
	"strings"
)

// Component identifies one of the four views of a frequency-domain array
type Component int

const (
	Magnitude Component = iota
	Phase
	Real
	Imaginary
)

// Components lists every component in display order
var Components = []Component{Magnitude, Phase, Real, Imaginary}

func (c Component) String() string {
	switch c {
	case Magnitude:
		return "magnitude"
	case Phase:
		return "phase"
	case Real:
		return "real"
	case Imaginary:
		return "imaginary"
	}
	return fmt.Sprintf("component(%d)", int(c))
}

// Valid reports whether c names a known component
func (c Component) Valid() bool {
	return c >= Magnitude && c <= Imaginary
}

// ParseComponent converts a name such as "magnitude" or "imag" into a Component
func ParseComponent(s string) (Component, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "magnitude", "mag":
		return Magnitude, nil
	case "phase":
		return Phase, nil
	case "real", "re":
		return Real, nil
	case "imaginary", "imag", "im":
		return Imaginary, nil
	}
	return 0, fmt.Errorf("unknown component %q", s)
}

// Mode selects which pair of components can be mixed
type Mode int

const (
	// MagPhase mixes magnitudes and phases
	MagPhase Mode = iota

	// RealImag mixes real and imaginary parts
	RealImag
)

func (m Mode) String() string {
	switch m {
	case MagPhase:
		return "magphase"
	case RealImag:
		return "realimag"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Valid reports whether m names a known mode
func (m Mode) Valid() bool {
	return m == MagPhase || m == RealImag
}

// Components returns the two components the mode permits, the default first
func (m Mode) Components() [2]Component {
	if m == RealImag {
		return [2]Component{Real, Imaginary}
	}
	return [2]Component{Magnitude, Phase}
}

// Allows reports whether c may be selected while the mode is active
func (m Mode) Allows(c Component) bool {
	pair := m.Components()
	return m.Valid() && (c == pair[0] || c == pair[1])
}

// ParseMode converts "magphase" or "realimag" (or the "mag/phase" and
// "real/imag" spellings) into a Mode
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "magphase", "mag/phase", "mag-phase":
		return MagPhase, nil
	case "realimag", "real/imag", "real-imag":
		return RealImag, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

// RegionKind selects which part of the centered spectrum takes part in a mix
type RegionKind int

const (
	Whole RegionKind = iota
	Inner
	Outer
)

func (k RegionKind) String() string {
	switch k {
	case Whole:
		return "whole"
	case Inner:
		return "inner"
	case Outer:
		return "outer"
	}
	return fmt.Sprintf("region(%d)", int(k))
}

// Valid reports whether k names a known region kind
func (k RegionKind) Valid() bool {
	return k >= Whole && k <= Outer
}

// ParseRegionKind converts "whole", "inner" or "outer" into a RegionKind
func ParseRegionKind(s string) (RegionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "whole", "all", "":
		return Whole, nil
	case "inner", "low":
		return Inner, nil
	case "outer", "high":
		return Outer, nil
	}
	return 0, fmt.Errorf("unknown region %q", s)
}

// DefaultRegionPercent is the region size restored by a reset
const DefaultRegionPercent = 50

// Region is the frequency region applied uniformly to every image in a mix
type Region struct {
	Kind RegionKind

	// Percent is the size of the centered rectangle, 0-100
	Percent float64
}

// DefaultRegion returns the whole spectrum with a 50% rectangle size
func DefaultRegion() Region {
	return Region{Kind: Whole, Percent: DefaultRegionPercent}
}

func (r Region) String() string {
	if r.Kind == Whole {
		return r.Kind.String()
	}
	return fmt.Sprintf("%s/%g%%", r.Kind, r.Percent)
}

// Output names one of the two mix destinations
type Output int

const (
	Output1 Output = iota
	Output2
)

// NumOutputs is the number of mix destinations
const NumOutputs = 2

func (o Output) String() string {
	return fmt.Sprintf("output%d", int(o)+1)
}

// Valid reports whether o names a known output
func (o Output) Valid() bool {
	return o == Output1 || o == Output2
}

// ParseOutput converts "1", "2", "output1" or "output2" into an Output
func ParseOutput(s string) (Output, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "output1", "output 1":
		return Output1, nil
	case "2", "output2", "output 2":
		return Output2, nil
	}
	return 0, fmt.Errorf("unknown output %q", s)
}
