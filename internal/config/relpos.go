package config

import (
	"fmt"
	"strings"
)

// Anchor is a named portal position relative to the window.
type Anchor uint8

const (
	AnchorCenter Anchor = iota
	AnchorTopRight
	AnchorTopLeft
	AnchorBottomRight
	AnchorBottomLeft
	AnchorCustom
)

var anchorNames = map[string]Anchor{
	"center":      AnchorCenter,
	"topright":    AnchorTopRight,
	"topleft":     AnchorTopLeft,
	"bottomright": AnchorBottomRight,
	"bottomleft":  AnchorBottomLeft,
}

// RelPos is either a named anchor or a custom point. In TOML it is written
// as a string (any case) or as an inline table {x = .., y = ..}.
type RelPos struct {
	Anchor Anchor
	X, Y   float64 // AnchorCustom only
}

// UnmarshalTOML implements toml.Unmarshaler.
func (p *RelPos) UnmarshalTOML(v any) error {
	switch val := v.(type) {
	case string:
		a, ok := anchorNames[strings.ToLower(val)]
		if !ok {
			return fmt.Errorf("invalid portal position %q", val)
		}
		*p = RelPos{Anchor: a}
		return nil
	case map[string]any:
		var x, y float64
		var hasX, hasY bool
		for k, raw := range val {
			n, err := toFloat(raw)
			if err != nil {
				return fmt.Errorf("portal position %s: %w", k, err)
			}
			switch strings.ToLower(k) {
			case "x":
				x, hasX = n, true
			case "y":
				y, hasY = n, true
			default:
				return fmt.Errorf("unknown portal position field %q, expected x or y", k)
			}
		}
		if !hasX {
			return fmt.Errorf("portal position: missing field x")
		}
		if !hasY {
			return fmt.Errorf("portal position: missing field y")
		}
		*p = RelPos{Anchor: AnchorCustom, X: x, Y: y}
		return nil
	default:
		return fmt.Errorf("portal position must be a string or a table, got %T", v)
	}
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}

// Resolve returns the point for the anchor in a width×height window centred
// on the origin. Corner anchors are pulled inward by edgeOffset on both axes.
func (p RelPos) Resolve(width, height, edgeOffset float64) (x, y float64) {
	hw, hh := width/2-edgeOffset, height/2-edgeOffset
	switch p.Anchor {
	case AnchorTopRight:
		return hw, hh
	case AnchorTopLeft:
		return -hw, hh
	case AnchorBottomRight:
		return hw, -hh
	case AnchorBottomLeft:
		return -hw, -hh
	case AnchorCustom:
		return p.X, p.Y
	default:
		return 0, 0
	}
}

func (p RelPos) String() string {
	if p.Anchor == AnchorCustom {
		return fmt.Sprintf("custom x: %g, y: %g", p.X, p.Y)
	}
	for name, a := range anchorNames {
		if a == p.Anchor {
			return name
		}
	}
	return "center"
}
