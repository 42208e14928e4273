package models

import "time"

// Hospital represents a hospital/medical facility in the system
type Hospital struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200;not null;uniqueIndex" json:"name"`
	Address     string    `gorm:"size:300" json:"address,omitempty"`
	City        string    `gorm:"size:100" json:"city,omitempty"`
	Location    string    `gorm:"size:200" json:"location,omitempty"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	PhoneNumber string    `gorm:"size:20" json:"phone_number,omitempty"`
	Email       string    `gorm:"size:254" json:"email,omitempty"`
	Website     string    `gorm:"size:200" json:"website,omitempty"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`

	// Relationships
	Doctors  []Doctor  `gorm:"foreignKey:HospitalID;constraint:OnDelete:CASCADE" json:"doctors,omitempty"`
	Services []Service `gorm:"foreignKey:HospitalID;constraint:OnDelete:CASCADE" json:"services,omitempty"`
}

// TableName specifies the table name for Hospital model
func (Hospital) TableName() string {
	return "hospitals"
}

// HospitalSummary is the public catalog projection of a hospital
type HospitalSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}
