package data

import (
	"fmt"
	"os"
	"time"

	"github.com/playground/spacesim/internal/vfx"
	"gopkg.in/yaml.v3"
)

// VfxEntry is one particle burst preset.
type VfxEntry struct {
	Kind        string        `yaml:"kind"`
	Count       int           `yaml:"count"`
	SpeedMin    float64       `yaml:"speed_min"`
	SpeedMax    float64       `yaml:"speed_max"`
	SizeMin     float64       `yaml:"size_min"`
	SizeMax     float64       `yaml:"size_max"`
	DurationMin time.Duration `yaml:"duration_min"`
	DurationMax time.Duration `yaml:"duration_max"`
}

// Params converts the entry to engine parameters.
func (e *VfxEntry) Params() vfx.Params {
	return vfx.Params{
		Count:       e.Count,
		SpeedMin:    e.SpeedMin,
		SpeedMax:    e.SpeedMax,
		SizeMin:     e.SizeMin,
		SizeMax:     e.SizeMax,
		DurationMin: e.DurationMin,
		DurationMax: e.DurationMax,
	}
}

// VfxTable looks presets up by effect kind.
type VfxTable struct {
	entries map[string]*VfxEntry
	order   []string
}

// LoadVfxTable loads vfx_list.yaml.
func LoadVfxTable(path string) (*VfxTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vfx list: %w", err)
	}
	var entries []VfxEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse vfx list: %w", err)
	}
	t := &VfxTable{entries: make(map[string]*VfxEntry, len(entries))}
	for i := range entries {
		e := &entries[i]
		if err := e.validate(); err != nil {
			return nil, fmt.Errorf("vfx list entry %d: %w", i, err)
		}
		if _, dup := t.entries[e.Kind]; dup {
			return nil, fmt.Errorf("vfx list: duplicate kind %q", e.Kind)
		}
		t.entries[e.Kind] = e
		t.order = append(t.order, e.Kind)
	}
	return t, nil
}

func (e *VfxEntry) validate() error {
	switch {
	case e.Kind == "":
		return fmt.Errorf("missing kind")
	case e.Count < 0:
		return fmt.Errorf("%s: negative count", e.Kind)
	case e.SpeedMin > e.SpeedMax:
		return fmt.Errorf("%s: speed_min above speed_max", e.Kind)
	case e.SizeMin > e.SizeMax:
		return fmt.Errorf("%s: size_min above size_max", e.Kind)
	case e.DurationMin > e.DurationMax:
		return fmt.Errorf("%s: duration_min above duration_max", e.Kind)
	case e.DurationMax <= 0:
		return fmt.Errorf("%s: duration must be positive", e.Kind)
	}
	return nil
}

// Get returns the preset for kind, or nil if none.
func (t *VfxTable) Get(kind string) *VfxEntry {
	return t.entries[kind]
}

// Presets returns every preset keyed by kind, ready for vfx.NewEngine.
func (t *VfxTable) Presets() map[string]vfx.Params {
	out := make(map[string]vfx.Params, len(t.entries))
	for k, e := range t.entries {
		out[k] = e.Params()
	}
	return out
}

// Kinds returns the preset kinds in file order.
func (t *VfxTable) Kinds() []string { return t.order }

// Count returns the total number of presets loaded.
func (t *VfxTable) Count() int {
	return len(t.entries)
}
