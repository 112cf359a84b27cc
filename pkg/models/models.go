package models

// Person represents a roster member available for weekly slots.
// Availability maps a day of week (0-6, Sunday=0) to the slot indexes
// the person can work that day; a missing day means unavailable all day.
// Name is the key used when matching assignments, so it must be unique
// within a roster.
type Person struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Availability map[int][]int `json:"availability"`
}

// Settings holds the staffing rules for one scheduling run
type Settings struct {
	DayHeadcount   int `json:"day_headcount"`
	NightHeadcount int `json:"night_headcount"`
	WeeklyCap      int `json:"weekly_cap"`
}

// Entry is one staffed cell of the weekly schedule: a (day, slot) pair
// with the people assigned to it. Deficit is how many required positions
// could not be filled (0 when the cell met its headcount).
type Entry struct {
	Day     int      `json:"day"`
	Slot    int      `json:"slot"`
	Members []string `json:"members"`
	Deficit int      `json:"deficit"`
}

// Schedule is the output of one assignment run
type Schedule struct {
	Entries []Entry `json:"entries"`
}

// PersonTotal reports how many cells one person was assigned across the week
type PersonTotal struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
}

// ScheduleInput is the data structure for the scheduling endpoint.
// Roster and Settings may be omitted to schedule from the persisted store.
// ShuffleSeed, when set, randomizes ties the fairness keys leave open;
// runs without it are fully deterministic.
type ScheduleInput struct {
	Roster      []Person `json:"roster"`
	Settings    Settings `json:"settings"`
	ShuffleSeed *int64   `json:"shuffle_seed,omitempty"`
}

// ScheduleResponse is the data structure for the scheduling result
type ScheduleResponse struct {
	Schedule      Schedule      `json:"schedule"`
	Totals        []PersonTotal `json:"totals"`
	UnfilledCells int           `json:"unfilled_cells"`
	FairnessScore float64       `json:"fairness_score"`
}

// ShareEnvelope is the portable form of a computed schedule together with
// the inputs that produced it, used by the export/import endpoints.
type ShareEnvelope struct {
	Version  int      `json:"version"`
	Roster   []Person `json:"roster"`
	Settings Settings `json:"settings"`
	Schedule Schedule `json:"schedule"`
}
