package database

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/weekroster/weekroster-api-go/pkg/catalog"
	"github.com/weekroster/weekroster-api-go/pkg/models"
)

// APIKey represents the api_keys table
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Key        string     `gorm:"unique;not null" json:"key"`
	Name       string     `gorm:"not null" json:"name"`
	KeyPreview string     `json:"key_preview"`
	RateLimit  int        `gorm:"default:10000" json:"rate_limit"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used"`
}

// APIUsage represents the api_usage table
type APIUsage struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	KeyID        uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date         string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount int    `gorm:"default:0" json:"request_count"`
	TotalCells   int    `gorm:"default:0" json:"total_cells"`
	TotalPeople  int    `gorm:"default:0" json:"total_people"`
}

// MasterUser represents the master_users table
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// PersonRecord represents the roster_people table. Availability is stored
// as JSON ({"day": [slot indexes]}) alongside the slot count of the catalog
// that was active when the row was written, so rows saved under an older
// catalog shape can be remapped on load.
type PersonRecord struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"unique;not null" json:"name"`
	Availability string    `gorm:"not null;default:'{}'" json:"availability"`
	SlotCount    int       `gorm:"not null" json:"slot_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName keeps the roster table name stable across gorm versions
func (PersonRecord) TableName() string {
	return "roster_people"
}

// ScheduleSettings represents the schedule_settings table (single row)
type ScheduleSettings struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	DayHeadcount   int  `gorm:"default:1" json:"day_headcount"`
	NightHeadcount int  `gorm:"default:1" json:"night_headcount"`
	WeeklyCap      int  `gorm:"default:5" json:"weekly_cap"`
}

// InitDB initializes the database connection and migrates the schema
func InitDB() *gorm.DB {
	var db *gorm.DB
	var err error

	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	} else {
		dbPath := os.Getenv("DATA_PATH")
		if dbPath == "" {
			dbPath = "weekroster.db"
		}
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	}

	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// Auto Migration
	db.AutoMigrate(&APIKey{}, &APIUsage{}, &MasterUser{}, &PersonRecord{}, &ScheduleSettings{})

	return db
}

// ToPerson decodes a stored roster row into the engine's input shape,
// remapping availability if the row predates the active catalog shape.
func (r *PersonRecord) ToPerson(cat catalog.Catalog) (models.Person, error) {
	var avail map[int][]int
	if err := json.Unmarshal([]byte(r.Availability), &avail); err != nil {
		return models.Person{}, err
	}
	if r.SlotCount != 0 && r.SlotCount != len(cat) {
		avail = RemapAvailability(avail, r.SlotCount, cat)
	}
	return models.Person{ID: r.ID, Name: r.Name, Availability: avail}, nil
}

// FromPerson encodes a person for storage against the active catalog shape
func FromPerson(p models.Person, cat catalog.Catalog) (PersonRecord, error) {
	avail := p.Availability
	if avail == nil {
		avail = map[int][]int{}
	}
	data, err := json.Marshal(avail)
	if err != nil {
		return PersonRecord{}, err
	}
	return PersonRecord{
		ID:           p.ID,
		Name:         p.Name,
		Availability: string(data),
		SlotCount:    len(cat),
	}, nil
}

// RemapAvailability translates slot indexes recorded under an older catalog
// shape onto the active catalog by hour overlap, assuming the old catalog
// divided the day evenly into oldCount slots. A new slot is kept when any
// of its hours were available under the old shape.
func RemapAvailability(avail map[int][]int, oldCount int, cat catalog.Catalog) map[int][]int {
	if oldCount <= 0 {
		return avail
	}
	oldSpan := 24 / oldCount
	if oldSpan == 0 {
		oldSpan = 1
	}

	out := make(map[int][]int, len(avail))
	for day, slots := range avail {
		covered := make(map[int]bool)
		for _, old := range slots {
			startHour := old * oldSpan
			endHour := startHour + oldSpan
			for idx, s := range cat {
				if s.Start < endHour && startHour < s.End {
					covered[idx] = true
				}
			}
		}
		for idx := range cat {
			if covered[idx] {
				out[day] = append(out[day], idx)
			}
		}
	}
	return out
}
