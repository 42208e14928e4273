package service

import (
	"strings"
	"time"

	"hospital-appointment-api/internal/authz"
	"hospital-appointment-api/internal/models"
	"hospital-appointment-api/internal/repository"
)

// defaultSlotGrid is the bookable day: a morning and an afternoon run
// of 30-minute slots.
var defaultSlotGrid = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
}

type ScheduleService struct {
	blockRepo       *repository.BlockedSlotRepository
	doctorRepo      *repository.DoctorRepository
	appointmentRepo *repository.AppointmentRepository
}

func NewScheduleService(
	blockRepo *repository.BlockedSlotRepository,
	doctorRepo *repository.DoctorRepository,
	appointmentRepo *repository.AppointmentRepository,
) *ScheduleService {
	return &ScheduleService{
		blockRepo:       blockRepo,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
	}
}

// AvailableSlots computes the bookable "HH:MM" slots for a doctor on a
// date: the default grid, narrowed to the doctor's weekday window,
// minus active blocks and already-held appointments.
func (s *ScheduleService) AvailableSlots(doctorID uint, date time.Time) ([]string, error) {
	doctor, err := s.doctorRepo.GetDoctorByID(doctorID)
	if err != nil {
		return nil, err
	}

	blocks, err := s.blockRepo.GetActiveBlocks(doctor.HospitalID, date)
	if err != nil {
		return nil, err
	}

	booked, err := s.appointmentRepo.BookedTimes(doctorID, date)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(booked))
	for _, t := range booked {
		taken[t] = true
	}

	weekday := strings.ToLower(date.Weekday().String())
	window, hasWindow := doctor.Availability[weekday]

	available := make([]string, 0, len(defaultSlotGrid))
	for _, slot := range defaultSlotGrid {
		if len(doctor.Availability) > 0 {
			if !hasWindow || !slotInWindow(slot, window) {
				continue
			}
		}
		if taken[slot] {
			continue
		}
		blocked := false
		for i := range blocks {
			if blocks[i].Covers(doctorID, slot) {
				blocked = true
				break
			}
		}
		if !blocked {
			available = append(available, slot)
		}
	}
	return available, nil
}

// slotInWindow reports whether an "HH:MM" slot falls inside a
// "HH:MM-HH:MM" availability window. Malformed windows admit nothing.
func slotInWindow(slot, window string) bool {
	parts := strings.SplitN(window, "-", 2)
	if len(parts) != 2 {
		return false
	}
	start, err := time.Parse("15:04", strings.TrimSpace(parts[0]))
	if err != nil {
		return false
	}
	end, err := time.Parse("15:04", strings.TrimSpace(parts[1]))
	if err != nil {
		return false
	}
	t, err := time.Parse("15:04", slot)
	if err != nil {
		return false
	}
	return !t.Before(start) && t.Before(end)
}

// CreateBlockInput is the validated block declaration
type CreateBlockInput struct {
	HospitalID uint
	DoctorID   *uint
	Date       time.Time
	StartTime  string
	EndTime    string
	BlockType  string
	Reason     string
}

// CreateBlock declares a blocked window for a hospital or one doctor.
// The actor must manage the hospital the block applies to.
func (s *ScheduleService) CreateBlock(actor authz.Actor, input CreateBlockInput) (*models.BlockedTimeSlot, error) {
	if !authz.CanManageHospital(actor, input.HospitalID) {
		return nil, authz.ErrPermissionDenied
	}

	if input.DoctorID != nil {
		doctor, err := s.doctorRepo.GetDoctorByID(*input.DoctorID)
		if err != nil {
			return nil, err
		}
		if doctor.HospitalID != input.HospitalID {
			return nil, ErrDoctorMismatch
		}
	}

	block := &models.BlockedTimeSlot{
		HospitalID: input.HospitalID,
		DoctorID:   input.DoctorID,
		Date:       input.Date,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		BlockType:  input.BlockType,
		Reason:     input.Reason,
		CreatedBy:  &actor.UserID,
		IsActive:   true,
	}
	if block.BlockType == "" {
		block.BlockType = "other"
	}
	if err := s.blockRepo.CreateBlock(block); err != nil {
		return nil, err
	}
	return block, nil
}

// ListBlocks returns the blocks the actor may see
func (s *ScheduleService) ListBlocks(actor authz.Actor) ([]models.BlockedTimeSlot, error) {
	scope, err := authz.ScopeFor(actor, authz.ResourceBlockedSlots)
	if err != nil {
		return nil, err
	}
	return s.blockRepo.ListBlocks(scope)
}

// RemoveBlock lifts a block. The record stays for history; only the
// active flag changes.
func (s *ScheduleService) RemoveBlock(actor authz.Actor, id uint) error {
	block, err := s.blockRepo.GetBlockByID(id)
	if err != nil {
		return err
	}
	if !authz.CanManageHospital(actor, block.HospitalID) {
		return authz.ErrPermissionDenied
	}
	return s.blockRepo.DeactivateBlock(id)
}
