package engine

import (
	"testing"

	"github.com/weekroster/weekroster-api-go/pkg/catalog"
	"github.com/weekroster/weekroster-api-go/pkg/models"
)

func fullWeek(cat catalog.Catalog) map[int][]int {
	avail := make(map[int][]int)
	for day := 0; day < 7; day++ {
		for slot := range cat {
			avail[day] = append(avail[day], slot)
		}
	}
	return avail
}

func periodWeek(cat catalog.Catalog, night bool) map[int][]int {
	avail := make(map[int][]int)
	for day := 0; day < 7; day++ {
		for slot, s := range cat {
			if s.IsNight() == night {
				avail[day] = append(avail[day], slot)
			}
		}
	}
	return avail
}

func mustRun(t *testing.T, roster []models.Person, settings models.Settings, opts ...Option) models.Schedule {
	t.Helper()
	e, err := New(roster, catalog.Default(), settings, opts...)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return e.Run()
}

func TestRun_SinglePersonFullWeek(t *testing.T) {
	cat := catalog.Default()
	roster := []models.Person{{ID: "p1", Name: "Alice", Availability: fullWeek(cat)}}
	sched := mustRun(t, roster, models.Settings{DayHeadcount: 1, NightHeadcount: 1, WeeklyCap: 30})

	if len(sched.Entries) != 28 {
		t.Fatalf("expected 28 entries, got %d", len(sched.Entries))
	}
	for _, entry := range sched.Entries {
		if len(entry.Members) != 1 || entry.Members[0] != "Alice" {
			t.Errorf("cell (%d,%d): expected [Alice], got %v", entry.Day, entry.Slot, entry.Members)
		}
		if entry.Deficit != 0 {
			t.Errorf("cell (%d,%d): expected no deficit, got %d", entry.Day, entry.Slot, entry.Deficit)
		}
	}
	totals := Totals(roster, sched)
	if totals[0].Total != 28 {
		t.Errorf("expected Alice total 28, got %d", totals[0].Total)
	}
}

func TestRun_DayNightSplit(t *testing.T) {
	cat := catalog.Default()
	roster := []models.Person{
		{ID: "p1", Name: "Dana", Availability: periodWeek(cat, false)},
		{ID: "p2", Name: "Noor", Availability: periodWeek(cat, true)},
	}
	sched := mustRun(t, roster, models.Settings{DayHeadcount: 1, NightHeadcount: 1, WeeklyCap: 20})

	for _, entry := range sched.Entries {
		want := "Dana"
		if cat[entry.Slot].IsNight() {
			want = "Noor"
		}
		if len(entry.Members) != 1 || entry.Members[0] != want {
			t.Errorf("cell (%d,%d): expected [%s], got %v", entry.Day, entry.Slot, want, entry.Members)
		}
	}
}

func TestRun_WeeklyCapLeavesCellsUnfilled(t *testing.T) {
	cat := catalog.Default()
	roster := []models.Person{{ID: "p1", Name: "Alice", Availability: fullWeek(cat)}}
	sched := mustRun(t, roster, models.Settings{DayHeadcount: 1, NightHeadcount: 1, WeeklyCap: 3})

	filled, unfilled := 0, 0
	for _, entry := range sched.Entries {
		switch len(entry.Members) {
		case 1:
			filled++
			if entry.Deficit != 0 {
				t.Errorf("filled cell (%d,%d) reports deficit %d", entry.Day, entry.Slot, entry.Deficit)
			}
		case 0:
			unfilled++
			if entry.Deficit != 1 {
				t.Errorf("unfilled cell (%d,%d) reports deficit %d, want 1", entry.Day, entry.Slot, entry.Deficit)
			}
		default:
			t.Errorf("cell (%d,%d) has %d members", entry.Day, entry.Slot, len(entry.Members))
		}
	}
	if filled != 3 || unfilled != 25 {
		t.Errorf("expected 3 filled / 25 unfilled, got %d / %d", filled, unfilled)
	}
	if UnfilledCells(sched) != 25 {
		t.Errorf("UnfilledCells = %d, want 25", UnfilledCells(sched))
	}
}

func TestRun_ThreePeopleConverge(t *testing.T) {
	cat := catalog.Default()
	roster := []models.Person{
		{ID: "p1", Name: "Ana", Availability: fullWeek(cat)},
		{ID: "p2", Name: "Ben", Availability: fullWeek(cat)},
		{ID: "p3", Name: "Cleo", Availability: fullWeek(cat)},
	}
	sched := mustRun(t, roster, models.Settings{DayHeadcount: 2, NightHeadcount: 2, WeeklyCap: 20})

	totals := Totals(roster, sched)
	minT, maxT := totals[0].Total, totals[0].Total
	sum := 0
	for _, tt := range totals {
		sum += tt.Total
		if tt.Total < minT {
			minT = tt.Total
		}
		if tt.Total > maxT {
			maxT = tt.Total
		}
	}
	if sum != 56 {
		t.Errorf("expected 56 total assignments (28 cells x 2), got %d", sum)
	}
	if maxT-minT > 1 {
		t.Errorf("load spread %d exceeds 1: %v", maxT-minT, totals)
	}
}

func TestRun_AvailabilityRespected(t *testing.T) {
	cat := catalog.Default()
	roster := []models.Person{
		{ID: "p1", Name: "Ana", Availability: map[int][]int{1: {0, 1}, 3: {2}}},
		{ID: "p2", Name: "Ben", Availability: map[int][]int{1: {1}, 5: {3}}},
		{ID: "p3", Name: "Cleo", Availability: fullWeek(cat)},
	}
	sched := mustRun(t, roster, models.Settings{DayHeadcount: 2, NightHeadcount: 1, WeeklyCap: 10})

	eligible := func(name string, day, slot int) bool {
		for _, p := range roster {
			if p.Name != name {
				continue
			}
			for _, s := range p.Availability[day] {
				if s == slot {
					return true
				}
			}
		}
		return false
	}

	for _, entry := range sched.Entries {
		seen := make(map[string]bool)
		want := 1
		if !cat[entry.Slot].IsNight() {
			want = 2
		}
		if len(entry.Members) > want {
			t.Errorf("cell (%d,%d) overfilled: %v", entry.Day, entry.Slot, entry.Members)
		}
		for _, name := range entry.Members {
			if seen[name] {
				t.Errorf("cell (%d,%d) assigns %s twice", entry.Day, entry.Slot, name)
			}
			seen[name] = true
			if !eligible(name, entry.Day, entry.Slot) {
				t.Errorf("cell (%d,%d) assigns %s outside their availability", entry.Day, entry.Slot, name)
			}
		}
	}
}

func TestRun_CapRespected(t *testing.T) {
	cat := catalog.Default()
	roster := []models.Person{
		{ID: "p1", Name: "Ana", Availability: fullWeek(cat)},
		{ID: "p2", Name: "Ben", Availability: periodWeek(cat, true)},
	}
	for _, cap := range []int{1, 3, 7, 28} {
		sched := mustRun(t, roster, models.Settings{DayHeadcount: 1, NightHeadcount: 2, WeeklyCap: cap})
		for _, total := range Totals(roster, sched) {
			if total.Total > cap {
				t.Errorf("cap %d: %s assigned %d cells", cap, total.Name, total.Total)
			}
		}
	}
}

func TestRun_CapTighteningIsMonotonic(t *testing.T) {
	cat := catalog.Default()
	roster := []models.Person{
		{ID: "p1", Name: "Ana", Availability: fullWeek(cat)},
		{ID: "p2", Name: "Ben", Availability: fullWeek(cat)},
	}
	loose := Totals(roster, mustRun(t, roster, models.Settings{DayHeadcount: 1, NightHeadcount: 1, WeeklyCap: 20}))
	tight := Totals(roster, mustRun(t, roster, models.Settings{DayHeadcount: 1, NightHeadcount: 1, WeeklyCap: 10}))

	for i := range roster {
		if tight[i].Total > loose[i].Total {
			t.Errorf("%s: tightening the cap raised total from %d to %d", roster[i].Name, loose[i].Total, tight[i].Total)
		}
	}
}

func TestRun_Deterministic(t *testing.T) {
	cat := catalog.Default()
	roster := []models.Person{
		{ID: "p1", Name: "Ana", Availability: fullWeek(cat)},
		{ID: "p2", Name: "Ben", Availability: fullWeek(cat)},
		{ID: "p3", Name: "Cleo", Availability: map[int][]int{0: {0, 1, 2, 3}, 6: {0, 1}}},
	}
	settings := models.Settings{DayHeadcount: 2, NightHeadcount: 1, WeeklyCap: 15}

	first := mustRun(t, roster, settings)
	second := mustRun(t, roster, settings)

	if len(first.Entries) != len(second.Entries) {
		t.Fatalf("entry counts differ: %d vs %d", len(first.Entries), len(second.Entries))
	}
	for i := range first.Entries {
		a, b := first.Entries[i], second.Entries[i]
		if a.Day != b.Day || a.Slot != b.Slot || len(a.Members) != len(b.Members) {
			t.Fatalf("entry %d differs: %+v vs %+v", i, a, b)
		}
		for j := range a.Members {
			if a.Members[j] != b.Members[j] {
				t.Errorf("entry %d member %d differs: %s vs %s", i, j, a.Members[j], b.Members[j])
			}
		}
	}
}

func TestRun_ShuffleKeepsInvariants(t *testing.T) {
	cat := catalog.Default()
	roster := []models.Person{
		{ID: "p1", Name: "Ana", Availability: fullWeek(cat)},
		{ID: "p2", Name: "Ben", Availability: fullWeek(cat)},
		{ID: "p3", Name: "Cleo", Availability: fullWeek(cat)},
	}
	settings := models.Settings{DayHeadcount: 2, NightHeadcount: 2, WeeklyCap: 20}
	sched := mustRun(t, roster, settings, WithShuffle(42))

	totals := Totals(roster, sched)
	minT, maxT := totals[0].Total, totals[0].Total
	for _, tt := range totals {
		if tt.Total > settings.WeeklyCap {
			t.Errorf("%s exceeds cap: %d", tt.Name, tt.Total)
		}
		if tt.Total < minT {
			minT = tt.Total
		}
		if tt.Total > maxT {
			maxT = tt.Total
		}
	}
	if maxT-minT > 2 {
		t.Errorf("shuffled run spread %d exceeds repair tolerance", maxT-minT)
	}
}

func TestRun_ZeroAvailabilityPerson(t *testing.T) {
	cat := catalog.Default()
	roster := []models.Person{
		{ID: "p1", Name: "Ana", Availability: fullWeek(cat)},
		{ID: "p2", Name: "Idle", Availability: nil},
	}
	sched := mustRun(t, roster, models.Settings{DayHeadcount: 1, NightHeadcount: 1, WeeklyCap: 30})

	totals := Totals(roster, sched)
	if totals[1].Total != 0 {
		t.Errorf("person with no availability got %d assignments", totals[1].Total)
	}
	if totals[0].Total != 28 {
		t.Errorf("expected Ana to cover all 28 cells, got %d", totals[0].Total)
	}
}

func TestRun_ScarceAvailabilityHeldInReserve(t *testing.T) {
	cat := catalog.Default()
	// Rare can only work Monday's first slot; Flex can work anything.
	// With equal loads the ranking prefers the person with more total
	// availability, so Monday 00-06 should still have Rare to draw on.
	roster := []models.Person{
		{ID: "p1", Name: "Rare", Availability: map[int][]int{1: {0}}},
		{ID: "p2", Name: "Flex", Availability: fullWeek(cat)},
	}
	sched := mustRun(t, roster, models.Settings{DayHeadcount: 1, NightHeadcount: 1, WeeklyCap: 30})

	for _, entry := range sched.Entries {
		if entry.Day == 1 && entry.Slot == 0 {
			if len(entry.Members) != 1 || entry.Members[0] != "Rare" {
				t.Errorf("scarce cell got %v, want [Rare]", entry.Members)
			}
		}
	}
}

func TestNew_ConfigurationErrors(t *testing.T) {
	cat := catalog.Default()
	roster := []models.Person{{ID: "p1", Name: "Ana", Availability: fullWeek(cat)}}

	cases := []struct {
		name     string
		cat      catalog.Catalog
		settings models.Settings
	}{
		{"zero day headcount", cat, models.Settings{DayHeadcount: 0, NightHeadcount: 1, WeeklyCap: 5}},
		{"zero night headcount", cat, models.Settings{DayHeadcount: 1, NightHeadcount: 0, WeeklyCap: 5}},
		{"zero cap", cat, models.Settings{DayHeadcount: 1, NightHeadcount: 1, WeeklyCap: 0}},
		{"gapped catalog", catalog.Catalog{
			{Label: "00-06", Start: 0, End: 6, Period: catalog.Night},
			{Label: "12-24", Start: 12, End: 24, Period: catalog.Day},
		}, models.Settings{DayHeadcount: 1, NightHeadcount: 1, WeeklyCap: 5}},
		{"unclassified slot", catalog.Catalog{
			{Label: "00-12", Start: 0, End: 12, Period: "dusk"},
			{Label: "12-24", Start: 12, End: 24, Period: catalog.Day},
		}, models.Settings{DayHeadcount: 1, NightHeadcount: 1, WeeklyCap: 5}},
	}
	for _, tc := range cases {
		if _, err := New(roster, tc.cat, tc.settings); err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
		}
	}
}

func TestFairnessScore(t *testing.T) {
	even := []models.PersonTotal{{Name: "a", Total: 5}, {Name: "b", Total: 5}}
	if score := FairnessScore(even); score != 100.0 {
		t.Errorf("even loads should score 100, got %f", score)
	}
	uneven := []models.PersonTotal{{Name: "a", Total: 10}, {Name: "b", Total: 0}}
	if score := FairnessScore(uneven); score >= 100.0 {
		t.Errorf("uneven loads should score below 100, got %f", score)
	}
	if score := FairnessScore(nil); score != 100.0 {
		t.Errorf("empty roster should score 100, got %f", score)
	}
}
