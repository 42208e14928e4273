package models

import "time"

// Service represents a bookable service offered by a hospital.
// Name is unique per hospital.
type Service struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	HospitalID  uint      `gorm:"not null;index;uniqueIndex:idx_service_name_hospital" json:"hospital_id"`
	Name        string    `gorm:"size:150;not null;uniqueIndex:idx_service_name_hospital" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Duration    int       `gorm:"default:30;comment:Duration in minutes" json:"duration"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`

	// Relationships
	Hospital Hospital `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
}

// TableName specifies the table name for Service model
func (Service) TableName() string {
	return "services"
}
