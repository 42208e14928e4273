package models

import "time"

// SlotInterval is the fixed granularity of schedulable time slots
const SlotInterval = 30 * time.Minute

// slotLayout is the "HH:MM" wall-clock format used for slot labels
const slotLayout = "15:04"

// BlockedTimeSlot is an admin-declared unavailable time window for a
// hospital, or for one doctor at that hospital when DoctorID is set.
// The window is half-open: start inclusive, end exclusive.
type BlockedTimeSlot struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	HospitalID uint      `gorm:"not null;index:idx_block_hospital_date" json:"hospital_id"`
	DoctorID   *uint     `gorm:"index:idx_block_doctor_date" json:"doctor_id,omitempty"`
	Date       time.Time `gorm:"type:date;not null;index:idx_block_hospital_date;index:idx_block_doctor_date" json:"date"`
	StartTime  string    `gorm:"size:5;not null" json:"start_time"`
	EndTime    string    `gorm:"size:5;not null" json:"end_time"`
	BlockType  string    `gorm:"type:enum('doctor','maintenance','emergency','holiday','training','other');default:'other'" json:"block_type"`
	Reason     string    `gorm:"type:text" json:"reason,omitempty"`
	CreatedBy  *uint     `json:"created_by,omitempty"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`

	// Relationships
	Hospital Hospital `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
	Doctor   *Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Creator  *User    `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

// TableName specifies the table name for BlockedTimeSlot model
func (BlockedTimeSlot) TableName() string {
	return "blocked_time_slots"
}

// TimeSlots expands the blocked window into the discrete 30-minute slots
// it removes from availability, formatted "HH:MM". An empty or inverted
// window yields no slots. Malformed times also yield no slots.
func (b *BlockedTimeSlot) TimeSlots() []string {
	start, err := time.Parse(slotLayout, b.StartTime)
	if err != nil {
		return nil
	}
	end, err := time.Parse(slotLayout, b.EndTime)
	if err != nil {
		return nil
	}

	var slots []string
	for cur := start; cur.Before(end); cur = cur.Add(SlotInterval) {
		slots = append(slots, cur.Format(slotLayout))
	}
	return slots
}

// Covers reports whether this block removes the given "HH:MM" slot for
// the given doctor. A block with no doctor applies to every doctor at
// the hospital.
func (b *BlockedTimeSlot) Covers(doctorID uint, slot string) bool {
	if b.DoctorID != nil && *b.DoctorID != doctorID {
		return false
	}
	for _, s := range b.TimeSlots() {
		if s == slot {
			return true
		}
	}
	return false
}
