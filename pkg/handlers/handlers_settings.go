package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weekroster/weekroster-api-go/pkg/database"
	"github.com/weekroster/weekroster-api-go/pkg/models"
)

// loadSettings returns the persisted staffing settings, clamped to the
// engine's minimums so a stale or empty row never rejects a run.
func (h *Handler) loadSettings() models.Settings {
	var row database.ScheduleSettings
	h.DB.FirstOrCreate(&row, database.ScheduleSettings{ID: 1})
	return clampSettings(models.Settings{
		DayHeadcount:   row.DayHeadcount,
		NightHeadcount: row.NightHeadcount,
		WeeklyCap:      row.WeeklyCap,
	})
}

func clampSettings(s models.Settings) models.Settings {
	if s.DayHeadcount < 1 {
		s.DayHeadcount = 1
	}
	if s.NightHeadcount < 1 {
		s.NightHeadcount = 1
	}
	if s.WeeklyCap < 1 {
		s.WeeklyCap = 1
	}
	return s
}

// storeSettings writes the singleton settings row
func (h *Handler) storeSettings(s models.Settings) error {
	row := database.ScheduleSettings{ID: 1}
	h.DB.FirstOrCreate(&row, database.ScheduleSettings{ID: 1})
	row.DayHeadcount = s.DayHeadcount
	row.NightHeadcount = s.NightHeadcount
	row.WeeklyCap = s.WeeklyCap
	return h.DB.Save(&row).Error
}

// GetSettings returns the persisted staffing settings
func (h *Handler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"settings": h.loadSettings()})
}

// UpdateSettings replaces the staffing settings. Values below 1 are
// rejected here rather than clamped, so callers learn about bad input.
func (h *Handler) UpdateSettings(c *gin.Context) {
	var s models.Settings
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if s.DayHeadcount < 1 || s.NightHeadcount < 1 || s.WeeklyCap < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "headcounts and weekly cap must be at least 1"})
		return
	}

	if err := h.storeSettings(s); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": s})
}
