package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weekroster/weekroster-api-go/pkg/models"
)

// validateAvailability checks that an availability map references only real
// days and slot indexes of the active catalog.
func (h *Handler) validateAvailability(avail map[int][]int) error {
	for day, slots := range avail {
		if day < 0 || day > 6 {
			return fmt.Errorf("availability references day %d, want 0-6", day)
		}
		for _, slot := range slots {
			if slot < 0 || slot >= len(h.Catalog) {
				return fmt.Errorf("availability references slot %d, catalog has %d slots", slot, len(h.Catalog))
			}
		}
	}
	return nil
}

// ValidateInput handles the JSON-based validation request
func (h *Handler) ValidateInput(c *gin.Context) {
	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	// Basic validation of data structures
	if len(input.Roster) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "At least one person is required",
		})
		return
	}

	// Check for duplicate IDs and names; the schedule keys on names, so a
	// duplicate name would make assignment lookups ambiguous.
	ids := make(map[string]bool)
	names := make(map[string]bool)
	for _, p := range input.Roster {
		if p.ID != "" && ids[p.ID] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Duplicate person ID: " + p.ID})
			return
		}
		ids[p.ID] = true
		if names[p.Name] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Duplicate person name: " + p.Name})
			return
		}
		names[p.Name] = true

		if err := h.validateAvailability(p.Availability); err != nil {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": p.Name + ": " + err.Error()})
			return
		}
	}

	if s := input.Settings; s != (models.Settings{}) {
		if s.DayHeadcount < 1 || s.NightHeadcount < 1 || s.WeeklyCap < 1 {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "headcounts and weekly cap must be at least 1"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"people_count": len(input.Roster),
			"cell_count":   7 * len(h.Catalog),
		},
	})
}
