package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cat := Default()
	if err := cat.Validate(); err != nil {
		t.Fatalf("default catalog failed validation: %v", err)
	}
	if len(cat) != 4 {
		t.Errorf("expected 4 slots, got %d", len(cat))
	}
	nights := 0
	for _, s := range cat {
		if s.IsNight() {
			nights++
		}
	}
	if nights != 2 {
		t.Errorf("expected 2 night slots, got %d", nights)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cat     Catalog
		wantErr bool
	}{
		{"empty", Catalog{}, true},
		{"six four-hour slots", Catalog{
			{Label: "00-04", Start: 0, End: 4, Period: Night},
			{Label: "04-08", Start: 4, End: 8, Period: Night},
			{Label: "08-12", Start: 8, End: 12, Period: Day},
			{Label: "12-16", Start: 12, End: 16, Period: Day},
			{Label: "16-20", Start: 16, End: 20, Period: Day},
			{Label: "20-24", Start: 20, End: 24, Period: Night},
		}, false},
		{"late start", Catalog{
			{Label: "06-24", Start: 6, End: 24, Period: Day},
		}, true},
		{"short day", Catalog{
			{Label: "00-12", Start: 0, End: 12, Period: Day},
		}, true},
		{"gap", Catalog{
			{Label: "00-06", Start: 0, End: 6, Period: Night},
			{Label: "12-24", Start: 12, End: 24, Period: Day},
		}, true},
		{"overlap", Catalog{
			{Label: "00-14", Start: 0, End: 14, Period: Day},
			{Label: "12-24", Start: 12, End: 24, Period: Day},
		}, true},
		{"inverted range", Catalog{
			{Label: "bad", Start: 12, End: 6, Period: Day},
			{Label: "06-24", Start: 6, End: 24, Period: Day},
		}, true},
		{"unknown period", Catalog{
			{Label: "00-24", Start: 0, End: 24, Period: "twilight"},
		}, true},
	}
	for _, tc := range cases {
		err := tc.cat.Validate()
		if tc.wantErr && err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	content := `slots:
  - label: "00-06"
    start: 0
    end: 6
    period: night
  - label: "06-12"
    start: 6
    end: 12
    period: day
  - label: "12-18"
    start: 12
    end: 18
    period: day
  - label: "18-24"
    start: 18
    end: 24
    period: night
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(cat) != 4 {
		t.Errorf("expected 4 slots, got %d", len(cat))
	}
	if cat[1].Label != "06-12" || cat[1].Period != Day {
		t.Errorf("unexpected second slot: %+v", cat[1])
	}
}

func TestLoad_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	content := `slots:
  - label: "00-06"
    start: 0
    end: 6
    period: night
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected validation error for partial-day catalog")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
