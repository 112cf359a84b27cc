package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weekroster/weekroster-api-go/pkg/models"
	"github.com/weekroster/weekroster-api-go/pkg/share"
)

// ExportShare computes a schedule for the supplied (or stored) roster and
// settings and returns the whole thing as a portable blob.
func (h *Handler) ExportShare(c *gin.Context) {
	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	roster := input.Roster
	if len(roster) == 0 {
		stored, err := h.loadRoster()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load stored roster"})
			return
		}
		roster = stored
	}
	settings := input.Settings
	if settings == (models.Settings{}) {
		settings = h.loadSettings()
	}

	resp, err := h.runSchedule(roster, settings, input.ShuffleSeed)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	blob, err := share.Encode(roster, settings, resp.Schedule)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not encode share blob"})
		return
	}

	h.RecordUsage(c, len(resp.Schedule.Entries), len(roster))
	c.JSON(http.StatusOK, gin.H{"blob": blob})
}

// ImportShare restores a shared blob. The decoded roster and settings
// replace the persisted store; the embedded schedule is returned as-is so
// the caller sees exactly what was shared, including any manual overrides.
func (h *Handler) ImportShare(c *gin.Context) {
	var req struct {
		Blob string `json:"blob"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Blob == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "blob is required"})
		return
	}

	env, err := share.Decode(req.Blob)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.replaceRoster(env.Roster); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not store imported roster"})
		return
	}

	settings := clampSettings(env.Settings)
	if err := h.storeSettings(settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not store imported settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"roster":   env.Roster,
		"settings": settings,
		"schedule": env.Schedule,
	})
}
