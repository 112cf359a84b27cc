package database

import (
	"testing"

	"github.com/weekroster/weekroster-api-go/pkg/catalog"
	"github.com/weekroster/weekroster-api-go/pkg/models"
)

func TestPersonRoundTrip(t *testing.T) {
	cat := catalog.Default()
	p := models.Person{
		ID:   "p1",
		Name: "Ana",
		Availability: map[int][]int{
			0: {0, 2},
			5: {1, 3},
		},
	}

	record, err := FromPerson(p, cat)
	if err != nil {
		t.Fatalf("FromPerson returned error: %v", err)
	}
	if record.SlotCount != 4 {
		t.Errorf("expected slot count 4, got %d", record.SlotCount)
	}

	got, err := record.ToPerson(cat)
	if err != nil {
		t.Fatalf("ToPerson returned error: %v", err)
	}
	if got.Name != "Ana" || got.ID != "p1" {
		t.Errorf("identity did not round-trip: %+v", got)
	}
	if len(got.Availability[0]) != 2 || got.Availability[0][1] != 2 {
		t.Errorf("availability did not round-trip: %v", got.Availability)
	}
}

func TestFromPerson_NilAvailability(t *testing.T) {
	record, err := FromPerson(models.Person{ID: "p1", Name: "Ana"}, catalog.Default())
	if err != nil {
		t.Fatalf("FromPerson returned error: %v", err)
	}
	if record.Availability != "{}" {
		t.Errorf("expected empty JSON object, got %q", record.Availability)
	}
}

func TestRemapAvailability_SixToFour(t *testing.T) {
	// Old shape: six 4-hour slots. Slot 2 covered 08:00-12:00, which
	// overlaps only the new 06-12 slot (index 1).
	cat := catalog.Default()
	old := map[int][]int{2: {2}}

	got := RemapAvailability(old, 6, cat)
	if len(got[2]) != 1 || got[2][0] != 1 {
		t.Errorf("expected day 2 -> [1], got %v", got[2])
	}
}

func TestRemapAvailability_SpanningSlot(t *testing.T) {
	// Old slot 1 of six covered 04:00-08:00, straddling the new 00-06
	// and 06-12 slots; both should be kept.
	cat := catalog.Default()
	old := map[int][]int{3: {1}}

	got := RemapAvailability(old, 6, cat)
	if len(got[3]) != 2 || got[3][0] != 0 || got[3][1] != 1 {
		t.Errorf("expected day 3 -> [0 1], got %v", got[3])
	}
}

func TestToPerson_RemapsLegacyRows(t *testing.T) {
	cat := catalog.Default()
	record := PersonRecord{
		ID:           "p1",
		Name:         "Ana",
		Availability: `{"0":[0,1,2,3,4,5]}`,
		SlotCount:    6,
	}
	p, err := record.ToPerson(cat)
	if err != nil {
		t.Fatalf("ToPerson returned error: %v", err)
	}
	// Full old-day coverage maps to full new-day coverage.
	if len(p.Availability[0]) != 4 {
		t.Errorf("expected all 4 new slots on day 0, got %v", p.Availability[0])
	}
}

func TestToPerson_BadJSON(t *testing.T) {
	record := PersonRecord{ID: "p1", Name: "Ana", Availability: "not json"}
	if _, err := record.ToPerson(catalog.Default()); err == nil {
		t.Error("expected error for malformed availability")
	}
}
