package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/weekroster/weekroster-api-go/pkg/models"
)

var dayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// parseAvailability decodes the compact CSV availability column:
// day entries separated by ";", each "day:slot,slot" (e.g. "0:0,1;3:2").
func parseAvailability(raw string) (map[int][]int, error) {
	avail := make(map[int][]int)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return avail, nil
	}
	for _, part := range strings.Split(raw, ";") {
		dayAndSlots := strings.SplitN(part, ":", 2)
		if len(dayAndSlots) != 2 {
			return nil, fmt.Errorf("bad availability entry %q", part)
		}
		day, err := strconv.Atoi(strings.TrimSpace(dayAndSlots[0]))
		if err != nil {
			return nil, fmt.Errorf("bad day in %q", part)
		}
		for _, s := range strings.Split(dayAndSlots[1], ",") {
			slot, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil {
				return nil, fmt.Errorf("bad slot in %q", part)
			}
			avail[day] = append(avail[day], slot)
		}
	}
	return avail, nil
}

// ScheduleCSV handles roster CSV uploads and returns the schedule as CSV
func (h *Handler) ScheduleCSV(c *gin.Context) {
	rosterFile, _ := c.FormFile("roster_file")
	if rosterFile == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "roster_file is required"})
		return
	}

	f, err := rosterFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open roster file"})
		return
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read roster header"})
		return
	}
	cols := make(map[string]int)
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	if _, ok := cols["name"]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "roster CSV needs a name column"})
		return
	}

	var roster []models.Person
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		id := ""
		if idx, ok := cols["id"]; ok {
			id = record[idx]
		}
		if id == "" {
			id = uuid.NewString()
		}

		availRaw := ""
		if idx, ok := cols["availability"]; ok {
			availRaw = record[idx]
		}
		avail, err := parseAvailability(availRaw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := h.validateAvailability(avail); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": record[cols["name"]] + ": " + err.Error()})
			return
		}

		roster = append(roster, models.Person{
			ID:           id,
			Name:         record[cols["name"]],
			Availability: avail,
		})
	}

	settings := h.loadSettings()
	if raw := c.PostForm("day_headcount"); raw != "" {
		settings.DayHeadcount, _ = strconv.Atoi(raw)
	}
	if raw := c.PostForm("night_headcount"); raw != "" {
		settings.NightHeadcount, _ = strconv.Atoi(raw)
	}
	if raw := c.PostForm("weekly_cap"); raw != "" {
		settings.WeeklyCap, _ = strconv.Atoi(raw)
	}

	resp, err := h.runSchedule(roster, settings, nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.RecordUsage(c, len(resp.Schedule.Entries), len(roster))

	// Export CSV
	var outCSV strings.Builder
	writer := csv.NewWriter(&outCSV)
	writer.Write([]string{"day", "slot", "members", "deficit"})

	for _, entry := range resp.Schedule.Entries {
		writer.Write([]string{
			dayNames[entry.Day],
			h.Catalog[entry.Slot].Label,
			strings.Join(entry.Members, "|"),
			strconv.Itoa(entry.Deficit),
		})
	}
	writer.Flush()

	c.JSON(http.StatusOK, gin.H{"csv": outCSV.String()})
}
