package repository

import (
	"errors"
	"time"

	"hospital-appointment-api/internal/authz"
	"hospital-appointment-api/internal/models"

	"gorm.io/gorm"
)

type BlockedSlotRepository struct {
	db *gorm.DB
}

func NewBlockedSlotRepo(db *gorm.DB) *BlockedSlotRepository {
	return &BlockedSlotRepository{db: db}
}

// GetActiveBlocks retrieves active blocks for a hospital on a date.
// Blocks with no doctor apply to every doctor at that hospital.
func (r *BlockedSlotRepository) GetActiveBlocks(hospitalID uint, date time.Time) ([]models.BlockedTimeSlot, error) {
	var blocks []models.BlockedTimeSlot
	err := r.db.Where("hospital_id = ? AND date = ? AND is_active = ?",
		hospitalID, date.Format("2006-01-02"), true).
		Find(&blocks).Error
	return blocks, err
}

// ListBlocks returns blocks visible under the given scope, newest first
func (r *BlockedSlotRepository) ListBlocks(scope authz.Scope) ([]models.BlockedTimeSlot, error) {
	q := r.db.Preload("Doctor").Order("date DESC, start_time DESC")
	switch scope.Kind {
	case authz.ScopeAll:
	case authz.ScopeHospital:
		q = q.Where("hospital_id = ?", scope.HospitalID)
	default:
		return []models.BlockedTimeSlot{}, nil
	}

	var blocks []models.BlockedTimeSlot
	err := q.Find(&blocks).Error
	return blocks, err
}

// GetBlockByID retrieves a blocked slot by ID
func (r *BlockedSlotRepository) GetBlockByID(id uint) (*models.BlockedTimeSlot, error) {
	var block models.BlockedTimeSlot
	err := r.db.First(&block, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlockNotFound
		}
		return nil, err
	}
	return &block, nil
}

// CreateBlock creates a new blocked time slot
func (r *BlockedSlotRepository) CreateBlock(block *models.BlockedTimeSlot) error {
	return r.db.Create(block).Error
}

// DeactivateBlock lifts a block without deleting its record
func (r *BlockedSlotRepository) DeactivateBlock(id uint) error {
	return r.db.Model(&models.BlockedTimeSlot{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
