package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Period classifies a slot for headcount purposes
type Period string

const (
	Day   Period = "day"
	Night Period = "night"
)

// Slot is one time-of-day interval in the catalog. Start and End are
// whole hours; End of 24 means midnight at the end of the day.
type Slot struct {
	Label  string `json:"label" yaml:"label"`
	Start  int    `json:"start" yaml:"start"`
	End    int    `json:"end" yaml:"end"`
	Period Period `json:"period" yaml:"period"`
}

// IsNight reports whether the slot counts against the night headcount setting
func (s Slot) IsNight() bool {
	return s.Period == Night
}

// Catalog is the fixed, ordered set of slots used every day of the week.
// A valid catalog partitions 00:00-24:00 with no gaps and no overlaps.
type Catalog []Slot

// Validate checks that the catalog covers a full day contiguously and that
// every slot carries an unambiguous day/night classification.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("catalog: no slots defined")
	}
	if c[0].Start != 0 {
		return fmt.Errorf("catalog: first slot starts at %02d:00, want 00:00", c[0].Start)
	}
	if c[len(c)-1].End != 24 {
		return fmt.Errorf("catalog: last slot ends at %02d:00, want 24:00", c[len(c)-1].End)
	}
	for i, s := range c {
		if s.Start < 0 || s.End > 24 || s.End <= s.Start {
			return fmt.Errorf("catalog: slot %q has invalid range %d-%d", s.Label, s.Start, s.End)
		}
		if s.Period != Day && s.Period != Night {
			return fmt.Errorf("catalog: slot %q has unknown period %q", s.Label, s.Period)
		}
		if i > 0 && s.Start != c[i-1].End {
			return fmt.Errorf("catalog: gap or overlap between %q and %q", c[i-1].Label, s.Label)
		}
	}
	return nil
}

// Default returns the standard four six-hour slots
func Default() Catalog {
	return Catalog{
		{Label: "00-06", Start: 0, End: 6, Period: Night},
		{Label: "06-12", Start: 6, End: 12, Period: Day},
		{Label: "12-18", Start: 12, End: 18, Period: Day},
		{Label: "18-24", Start: 18, End: 24, Period: Night},
	}
}

type catalogFile struct {
	Slots Catalog `yaml:"slots"`
}

// Load reads a catalog from a YAML file and validates it, so a malformed
// catalog is a startup error rather than a silent runtime default.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: decode %s: %w", path, err)
	}
	if err := f.Slots.Validate(); err != nil {
		return nil, err
	}
	return f.Slots, nil
}
