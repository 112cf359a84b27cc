package engine

import (
	"math"

	"github.com/weekroster/weekroster-api-go/pkg/models"
)

// Totals reports each roster member's total assigned cells for the week,
// zero if never assigned, in roster order.
func Totals(roster []models.Person, sched models.Schedule) []models.PersonTotal {
	counts := make(map[string]int, len(roster))
	for _, entry := range sched.Entries {
		for _, name := range entry.Members {
			counts[name]++
		}
	}
	totals := make([]models.PersonTotal, 0, len(roster))
	for _, p := range roster {
		totals = append(totals, models.PersonTotal{Name: p.Name, Total: counts[p.Name]})
	}
	return totals
}

// UnfilledCells counts schedule entries that missed their required headcount
func UnfilledCells(sched models.Schedule) int {
	n := 0
	for _, entry := range sched.Entries {
		if entry.Deficit > 0 {
			n++
		}
	}
	return n
}

// FairnessScore returns a percentage (0-100) representing how evenly
// assignments are distributed. 100% is perfectly fair (Standard Deviation = 0).
func FairnessScore(totals []models.PersonTotal) float64 {
	if len(totals) == 0 {
		return 100.0
	}

	var sum float64
	for _, t := range totals {
		sum += float64(t.Total)
	}
	if sum == 0 {
		return 100.0 // Everyone having 0 assignments is perfectly fair
	}

	mean := sum / float64(len(totals))

	var varianceSum float64
	for _, t := range totals {
		diff := float64(t.Total) - mean
		varianceSum += diff * diff
	}
	stdDev := math.Sqrt(varianceSum / float64(len(totals)))

	score := (1.0 - (stdDev / mean)) * 100.0
	if score < 0 {
		return 0.0
	}
	return score
}
