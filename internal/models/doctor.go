package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Availability maps a weekday name (e.g. "monday") to an open interval
// such as "09:00-17:00". Stored as a JSON column.
type Availability map[string]string

// Value implements driver.Valuer for JSON storage
func (a Availability) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	b, err := json.Marshal(a)
	return string(b), err
}

// Scan implements sql.Scanner for JSON storage
func (a *Availability) Scan(value interface{}) error {
	if value == nil {
		*a = Availability{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return errors.New("unsupported type for availability column")
	}
}

// Doctor represents a doctor attached to exactly one hospital
type Doctor struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	HospitalID      uint         `gorm:"not null;index" json:"hospital_id"`
	Name            string       `gorm:"size:200;not null" json:"name"`
	Title           string       `gorm:"size:50" json:"title,omitempty"`
	Specialty       string       `gorm:"size:100;not null" json:"specialty"`
	Bio             string       `gorm:"type:text" json:"bio,omitempty"`
	Education       string       `gorm:"size:300" json:"education,omitempty"`
	ExperienceYears int          `gorm:"default:0" json:"experience_years"`
	Availability    Availability `gorm:"type:json" json:"availability"`
	CreatedAt       time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time    `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`
	IsActive        bool         `gorm:"default:true" json:"is_active"`

	// Relationships
	Hospital Hospital `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
}

// TableName specifies the table name for Doctor model
func (Doctor) TableName() string {
	return "doctors"
}

// FullName returns the doctor's display name including any title
func (d *Doctor) FullName() string {
	if d.Title == "" {
		return d.Name
	}
	return d.Title + " " + d.Name
}
