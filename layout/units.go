package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// Layout coordinates are CSS pixels (96 per inch).
const (
	PxToPt = 0.75
	PtToPx = 1.0 / PxToPt
	PxToMm = 25.4 / 96.0
	MmToPx = 1.0 / PxToMm
)

// Unit represents the unit suffix of a DSL length.
type Unit int

const (
	UnitPX Unit = iota // pixels, also used for unit-less numbers
	UnitPT             // points
	UnitMM             // millimeters
	UnitCM             // centimeters
	UnitIN             // inches
)

func (u Unit) String() string {
	switch u {
	case UnitPT:
		return "pt"
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	default:
		return "px"
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64
	Unit  Unit
}

// Px converts l to pixels.
func (l Length) Px() float64 {
	switch l.Unit {
	case UnitPT:
		return l.Value * PtToPx
	case UnitMM:
		return l.Value * MmToPx
	case UnitCM:
		return l.Value * 10 * MmToPx
	case UnitIN:
		return l.Value * 96
	default:
		return l.Value
	}
}

var unitSuffixes = []struct {
	s string
	u Unit
}{{"px", UnitPX}, {"pt", UnitPT}, {"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}}

// ParseRawLength parses a DSL length string preserving its unit.
func ParseRawLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, fmt.Errorf("empty length")
	}
	unit := UnitPX
	num := v
	for _, suf := range unitSuffixes {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, fmt.Errorf("invalid length %q: %w", value, err)
	}
	return Length{Value: f, Unit: unit}, nil
}

// ParseLength parses a DSL length and converts it to pixels.
func ParseLength(value string) (float64, error) {
	l, err := ParseRawLength(value)
	if err != nil {
		return 0, err
	}
	return l.Px(), nil
}
