package engine

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/weekroster/weekroster-api-go/pkg/catalog"
	"github.com/weekroster/weekroster-api-go/pkg/models"
)

const (
	// maxPasses bounds the repair loop; beyond this the best-effort
	// result of the final pass is returned regardless of spread.
	maxPasses = 5

	// ratioEpsilon treats near-equal load ratios as tied
	ratioEpsilon = 1e-5
)

// Engine computes a weekly assignment of people to (day, slot) cells.
// It is a pure computation over its inputs: it never mutates the roster
// or settings, performs no I/O, and each Run is independent.
type Engine struct {
	Roster   []models.Person
	Catalog  catalog.Catalog
	Settings models.Settings

	rng *rand.Rand
}

// Option configures optional engine behavior
type Option func(*Engine)

// WithShuffle makes the engine shuffle each cell's candidate pool with the
// given seed before ranking, randomizing ties the three fairness keys leave
// unresolved. Without it ties resolve deterministically by roster order.
func WithShuffle(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// New validates the configuration and returns an engine. Invalid settings
// or a malformed slot catalog are configuration errors and are rejected
// here; infeasible staffing is not an error (see Run).
func New(roster []models.Person, cat catalog.Catalog, settings models.Settings, opts ...Option) (*Engine, error) {
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	if settings.DayHeadcount < 1 {
		return nil, fmt.Errorf("engine: day headcount must be at least 1, got %d", settings.DayHeadcount)
	}
	if settings.NightHeadcount < 1 {
		return nil, fmt.Errorf("engine: night headcount must be at least 1, got %d", settings.NightHeadcount)
	}
	if settings.WeeklyCap < 1 {
		return nil, fmt.Errorf("engine: weekly cap must be at least 1, got %d", settings.WeeklyCap)
	}
	e := &Engine{Roster: roster, Catalog: cat, Settings: settings}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Run produces the weekly schedule. Cells that cannot reach their required
// headcount are returned with the members they did get and a positive
// Deficit; under-fill is expected under tight constraints and never an error.
func (e *Engine) Run() models.Schedule {
	idx := e.buildIndex()
	order := e.orderCells(idx)

	var assigned map[cell][]string
	for pass := 1; pass <= maxPasses; pass++ {
		var loads map[string]int
		assigned, loads = e.assignPass(order, idx)

		if loadSpread(loads) <= 1 {
			break
		}
		if pass >= 2 && loadSpread(loads) <= 2 {
			break
		}
	}

	entries := make([]models.Entry, 0, len(order))
	for _, c := range order {
		members := assigned[c]
		entries = append(entries, models.Entry{
			Day:     c.day,
			Slot:    c.slot,
			Members: members,
			Deficit: e.required(c.slot) - len(members),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Day != entries[j].Day {
			return entries[i].Day < entries[j].Day
		}
		return entries[i].Slot < entries[j].Slot
	})
	return models.Schedule{Entries: entries}
}

// required returns the headcount setting that applies to a slot
func (e *Engine) required(slot int) int {
	if e.Catalog[slot].IsNight() {
		return e.Settings.NightHeadcount
	}
	return e.Settings.DayHeadcount
}

// assignPass walks every candidate cell in priority order once, picking up
// to the required headcount from the eligible, under-cap people ranked by
// the fairness keys. Loads start from zero on every pass.
func (e *Engine) assignPass(order []cell, idx *index) (map[cell][]string, map[string]int) {
	loads := make(map[string]int, len(e.Roster))
	assigned := make(map[cell][]string, len(order))

	for _, c := range order {
		eligible := idx.eligible[c]
		wanted := e.required(c.slot)
		if len(eligible) < wanted {
			wanted = len(eligible)
		}

		pool := make([]string, 0, len(eligible))
		for _, name := range eligible {
			if loads[name] < e.Settings.WeeklyCap {
				pool = append(pool, name)
			}
		}
		if len(pool) == 0 {
			continue
		}
		if e.rng != nil {
			e.rng.Shuffle(len(pool), func(i, j int) {
				pool[i], pool[j] = pool[j], pool[i]
			})
		}
		e.rankPool(pool, loads, idx.weeklyAvail)

		if wanted > len(pool) {
			wanted = len(pool)
		}
		for _, name := range pool[:wanted] {
			loads[name]++
		}
		assigned[c] = append([]string(nil), pool[:wanted]...)
	}
	return assigned, loads
}

// rankPool sorts candidates ascending by current load, then by load ratio
// relative to total weekly availability, then prefers people with more
// availability, so that scarce-availability people are held in reserve for
// the cells only they can fill. The sort is stable, so full ties keep
// roster order (or the shuffled order when randomization is enabled).
func (e *Engine) rankPool(pool []string, loads map[string]int, weeklyAvail map[string]int) {
	sort.SliceStable(pool, func(i, j int) bool {
		a, b := pool[i], pool[j]
		if loads[a] != loads[b] {
			return loads[a] < loads[b]
		}
		ra := float64(loads[a]) / float64(availFloor(weeklyAvail[a]))
		rb := float64(loads[b]) / float64(availFloor(weeklyAvail[b]))
		if math.Abs(ra-rb) > ratioEpsilon {
			return ra < rb
		}
		return weeklyAvail[a] > weeklyAvail[b]
	})
}

// availFloor guards the ratio divisor; a person with zero availability can
// never be assigned, but must not divide by zero either.
func availFloor(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// loadSpread returns max-min over people with nonzero load
func loadSpread(loads map[string]int) int {
	minLoad, maxLoad := -1, 0
	for _, l := range loads {
		if l == 0 {
			continue
		}
		if minLoad == -1 || l < minLoad {
			minLoad = l
		}
		if l > maxLoad {
			maxLoad = l
		}
	}
	if minLoad == -1 {
		return 0
	}
	return maxLoad - minLoad
}
