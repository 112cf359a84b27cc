package engine

import "sort"

// cell is one (day of week, slot index) unit of coverage
type cell struct {
	day  int
	slot int
}

// index holds the derived availability data one Run works from: per-cell
// eligible names in roster order, and each person's total weekly
// availability count. Built once per Run and only re-read afterwards.
type index struct {
	eligible    map[cell][]string
	weeklyAvail map[string]int
}

// buildIndex derives eligibility for all 7*len(catalog) cells. A person is
// eligible for (day, slot) iff slot appears in their availability set for
// that day.
func (e *Engine) buildIndex() *index {
	idx := &index{
		eligible:    make(map[cell][]string),
		weeklyAvail: make(map[string]int, len(e.Roster)),
	}
	for _, p := range e.Roster {
		idx.weeklyAvail[p.Name] = 0
		for day := 0; day < 7; day++ {
			seen := make(map[int]bool, len(p.Availability[day]))
			for _, slot := range p.Availability[day] {
				if slot < 0 || slot >= len(e.Catalog) || seen[slot] {
					continue
				}
				seen[slot] = true
				c := cell{day: day, slot: slot}
				idx.eligible[c] = append(idx.eligible[c], p.Name)
				idx.weeklyAvail[p.Name]++
			}
		}
	}
	return idx
}

// orderCells ranks candidate cells scarcest first: cells with the fewest
// eligible people get first pick of their limited pool before easier cells
// exhaust those same people. Day and slot position break ties. The order is
// computed once and re-walked unchanged by every repair pass.
func (e *Engine) orderCells(idx *index) []cell {
	cells := make([]cell, 0, len(idx.eligible))
	for c := range idx.eligible {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		ni, nj := len(idx.eligible[cells[i]]), len(idx.eligible[cells[j]])
		if ni != nj {
			return ni < nj
		}
		if cells[i].day != cells[j].day {
			return cells[i].day < cells[j].day
		}
		return cells[i].slot < cells[j].slot
	})
	return cells
}
