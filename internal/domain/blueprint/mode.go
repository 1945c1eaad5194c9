package blueprint

import "strings"

// Mode selects how blueprint results are aggregated
type Mode string

const (
	// ModeQualitySum sums blueprint ID times best score over every blueprint
	ModeQualitySum Mode = "quality"
	// ModeTopProduct multiplies the best scores of the first N blueprints
	ModeTopProduct Mode = "product"
)

// ParseMode resolves a mode name. "a" and "b" are accepted as aliases.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "quality", "sum", "a":
		return ModeQualitySum, nil
	case "product", "top", "b":
		return ModeTopProduct, nil
	default:
		return "", &ErrUnknownMode{Name: name}
	}
}

func (m Mode) String() string {
	return string(m)
}

// IsValid reports whether m is a known mode
func (m Mode) IsValid() bool {
	return m == ModeQualitySum || m == ModeTopProduct
}
