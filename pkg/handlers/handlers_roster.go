package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weekroster/weekroster-api-go/pkg/database"
	"github.com/weekroster/weekroster-api-go/pkg/models"
)

// loadRoster returns the persisted roster in insertion order, with
// availability remapped to the active catalog shape where needed.
func (h *Handler) loadRoster() ([]models.Person, error) {
	var records []database.PersonRecord
	if err := h.DB.Order("created_at asc").Find(&records).Error; err != nil {
		return nil, err
	}
	roster := make([]models.Person, 0, len(records))
	for i := range records {
		p, err := records[i].ToPerson(h.Catalog)
		if err != nil {
			return nil, err
		}
		roster = append(roster, p)
	}
	return roster, nil
}

// ListRoster returns all persisted roster members
func (h *Handler) ListRoster(c *gin.Context) {
	roster, err := h.loadRoster()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load roster"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"roster": roster})
}

// AddPerson creates a roster member. Names must be unique because the
// schedule references people by name.
func (h *Handler) AddPerson(c *gin.Context) {
	var p models.Person
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if p.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	if err := h.validateAvailability(p.Availability); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing database.PersonRecord
	if err := h.DB.Where("name = ?", p.Name).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A person with that name already exists"})
		return
	}

	record, err := database.FromPerson(p, h.Catalog)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not encode availability"})
		return
	}
	if err := h.DB.Create(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create person"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"person": p})
}

// UpdatePerson renames a member or replaces their availability
func (h *Handler) UpdatePerson(c *gin.Context) {
	id := c.Param("id")

	var record database.PersonRecord
	if err := h.DB.First(&record, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Person not found"})
		return
	}

	var p models.Person
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.validateAvailability(p.Availability); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if p.Name != "" && p.Name != record.Name {
		var clash database.PersonRecord
		if err := h.DB.Where("name = ? AND id <> ?", p.Name, id).First(&clash).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "A person with that name already exists"})
			return
		}
		record.Name = p.Name
	}

	if p.Availability != nil {
		updated, err := database.FromPerson(models.Person{ID: record.ID, Name: record.Name, Availability: p.Availability}, h.Catalog)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not encode availability"})
			return
		}
		record.Availability = updated.Availability
		record.SlotCount = updated.SlotCount
	}

	if err := h.DB.Save(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update person"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Person updated"})
}

// DeletePerson removes a roster member
func (h *Handler) DeletePerson(c *gin.Context) {
	id := c.Param("id")
	result := h.DB.Delete(&database.PersonRecord{}, "id = ?", id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete person"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Person not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Person removed"})
}

// replaceRoster swaps the whole stored roster in one transaction, used by
// the share import flow.
func (h *Handler) replaceRoster(roster []models.Person) error {
	return h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&database.PersonRecord{}).Error; err != nil {
			return err
		}
		for _, p := range roster {
			if p.ID == "" {
				p.ID = uuid.NewString()
			}
			record, err := database.FromPerson(p, h.Catalog)
			if err != nil {
				return err
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
