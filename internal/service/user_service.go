package service

import (
	"hospital-appointment-api/internal/authz"
	"hospital-appointment-api/internal/models"
	"hospital-appointment-api/internal/repository"
)

type UserService struct {
	userRepo    *repository.UserRepository
	bookingRepo *repository.BookingRepository
}

func NewUserService(userRepo *repository.UserRepository, bookingRepo *repository.BookingRepository) *UserService {
	return &UserService{
		userRepo:    userRepo,
		bookingRepo: bookingRepo,
	}
}

// ListUsers returns the user accounts the actor may see. Admins see
// everyone but themselves; hospital admins see their own hospital's
// users plus unassigned staff and patients; everyone else is denied.
func (s *UserService) ListUsers(actor authz.Actor) ([]models.User, error) {
	scope, err := authz.ScopeFor(actor, authz.ResourceUsers)
	if err != nil {
		return nil, err
	}
	return s.userRepo.ListUsers(scope)
}

// MyBookings returns the caller's own bookings, newest first
func (s *UserService) MyBookings(userID uint) ([]models.Booking, error) {
	return s.bookingRepo.GetBookingsByUser(userID, 0)
}
