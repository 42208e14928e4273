package models

import "time"

// Management actions recorded in the audit tables
const (
	ActionAdded       = "added"
	ActionUpdated     = "updated"
	ActionRemoved     = "removed"
	ActionDeactivated = "deactivated"
)

// DoctorManagement is an append-only audit record of a doctor mutation.
// Rows are never updated or deleted.
type DoctorManagement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DoctorID  uint      `gorm:"not null;index" json:"doctor_id"`
	ManagerID *uint     `gorm:"index" json:"manager_id"`
	Action    string    `gorm:"size:50;not null" json:"action"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	Timestamp time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"timestamp"`

	// Relationships
	Doctor  Doctor `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Manager *User  `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
}

// TableName specifies the table name for DoctorManagement model
func (DoctorManagement) TableName() string {
	return "doctor_management"
}

// HospitalManagement is an append-only audit record of a hospital mutation
type HospitalManagement struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	HospitalID uint      `gorm:"not null;index" json:"hospital_id"`
	ManagerID  *uint     `gorm:"index" json:"manager_id"`
	Action     string    `gorm:"size:50;not null" json:"action"`
	Notes      string    `gorm:"type:text" json:"notes,omitempty"`
	Timestamp  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"timestamp"`

	// Relationships
	Hospital Hospital `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
	Manager  *User    `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
}

// TableName specifies the table name for HospitalManagement model
func (HospitalManagement) TableName() string {
	return "hospital_management"
}
