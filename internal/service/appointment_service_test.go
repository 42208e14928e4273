package service

import (
	"sync"
	"testing"
	"time"

	"hospital-appointment-api/internal/authz"
	"hospital-appointment-api/internal/booking"
	"hospital-appointment-api/internal/models"
	"hospital-appointment-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory store fakes. The appointment fake enforces the slot unique
// constraint the same way the database index does.

type fakeAppointmentStore struct {
	mu     sync.Mutex
	appts  []models.Appointment
	nextID uint
	clock  func() time.Time
}

func newFakeAppointmentStore(clock func() time.Time) *fakeAppointmentStore {
	return &fakeAppointmentStore{nextID: 1, clock: clock}
}

func (f *fakeAppointmentStore) CreateAppointment(appt *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	// Cancelled rows have released their slot hold and no longer
	// contend for the slot, mirroring the database unique index
	for _, existing := range f.appts {
		if existing.Status != models.StatusCancelled &&
			existing.DoctorID == appt.DoctorID &&
			existing.Date.Equal(appt.Date) &&
			existing.Time == appt.Time {
			return repository.ErrSlotTaken
		}
	}
	appt.ID = f.nextID
	f.nextID++
	appt.CreatedAt = f.clock()
	f.appts = append(f.appts, *appt)
	return nil
}

func (f *fakeAppointmentStore) FindByEmailOrPhone(email, phone string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appts {
		if a.Email == email || a.Phone == phone {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentStore) GetAppointmentByID(id uint) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.appts {
		if f.appts[i].ID == id {
			a := f.appts[i]
			return &a, nil
		}
	}
	return nil, repository.ErrAppointmentNotFound
}

func (f *fakeAppointmentStore) UpdateStatus(id uint, status models.AppointmentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.appts {
		if f.appts[i].ID == id {
			f.appts[i].Status = status
			return nil
		}
	}
	return repository.ErrAppointmentNotFound
}

func (f *fakeAppointmentStore) ListAppointments(scope authz.Scope, filter repository.AppointmentFilter) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appts {
		switch scope.Kind {
		case authz.ScopeAll:
		case authz.ScopeHospital:
			if a.HospitalID != scope.HospitalID {
				continue
			}
		default:
			return []models.Appointment{}, nil
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.Date != nil && !a.Date.Equal(*filter.Date) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAppointmentStore) BookedTimes(doctorID uint, date time.Time) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, a := range f.appts {
		if a.DoctorID == doctorID && a.Date.Equal(date) && a.Status != models.StatusCancelled {
			out = append(out, a.Time)
		}
	}
	return out, nil
}

type fakeHospitalStore struct {
	hospitals map[uint]*models.Hospital
}

func (f *fakeHospitalStore) GetHospitalByID(id uint) (*models.Hospital, error) {
	h, ok := f.hospitals[id]
	if !ok {
		return nil, repository.ErrHospitalNotFound
	}
	return h, nil
}

type fakeDoctorStore struct {
	doctors map[uint]*models.Doctor
}

func (f *fakeDoctorStore) GetDoctorByID(id uint) (*models.Doctor, error) {
	d, ok := f.doctors[id]
	if !ok {
		return nil, repository.ErrDoctorNotFound
	}
	return d, nil
}

type fakeServiceStore struct {
	services map[uint]*models.Service
}

func (f *fakeServiceStore) GetServiceByID(id uint) (*models.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, repository.ErrServiceNotFound
	}
	return s, nil
}

type fakeBlockStore struct {
	blocks []models.BlockedTimeSlot
}

func (f *fakeBlockStore) GetActiveBlocks(hospitalID uint, date time.Time) ([]models.BlockedTimeSlot, error) {
	var out []models.BlockedTimeSlot
	for _, b := range f.blocks {
		if b.HospitalID == hospitalID && b.Date.Equal(date) && b.IsActive {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeBookingStore struct {
	mu       sync.Mutex
	bookings []models.Booking
}

func (f *fakeBookingStore) CreateBooking(b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings = append(f.bookings, *b)
	return nil
}

type fakeNotifier struct {
	notified chan *models.Appointment
}

func (f *fakeNotifier) AppointmentCreated(appt *models.Appointment) {
	f.notified <- appt
}

type fixture struct {
	svc      *AppointmentService
	appts    *fakeAppointmentStore
	bookings *fakeBookingStore
	notifier *fakeNotifier
	clock    *time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	current := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	clock := &current
	tick := func() time.Time { return *clock }

	appts := newFakeAppointmentStore(tick)
	bookings := &fakeBookingStore{}
	notifier := &fakeNotifier{notified: make(chan *models.Appointment, 4)}

	hospitals := &fakeHospitalStore{hospitals: map[uint]*models.Hospital{
		1: {ID: 1, Name: "Korle Bu Teaching Hospital", IsActive: true},
	}}
	doctors := &fakeDoctorStore{doctors: map[uint]*models.Doctor{
		10: {ID: 10, HospitalID: 1, Name: "Ama Mensah", IsActive: true},
		11: {ID: 11, HospitalID: 1, Name: "Kofi Boateng", IsActive: false},
		20: {ID: 20, HospitalID: 2, Name: "Yaw Owusu", IsActive: true},
	}}
	services := &fakeServiceStore{services: map[uint]*models.Service{
		100: {ID: 100, HospitalID: 1, Name: "General Consultation"},
		200: {ID: 200, HospitalID: 2, Name: "Dental Cleaning"},
	}}
	blocks := &fakeBlockStore{blocks: []models.BlockedTimeSlot{
		{
			HospitalID: 1,
			Date:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			StartTime:  "14:00",
			EndTime:    "15:00",
			IsActive:   true,
		},
	}}

	svc := NewAppointmentService(appts, hospitals, doctors, services, blocks, bookings, notifier)
	svc.now = tick

	return &fixture{svc: svc, appts: appts, bookings: bookings, notifier: notifier, clock: clock}
}

func validInput() CreateAppointmentInput {
	return CreateAppointmentInput{
		FullName:   "Akosua Asante",
		Email:      "akosua@example.com",
		Phone:      "0241234567",
		HospitalID: 1,
		DoctorID:   10,
		Date:       time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		Time:       "09:00",
		Reason:     "Headaches",
	}
}

func (f *fixture) waitForNotification(t *testing.T) *models.Appointment {
	t.Helper()
	select {
	case appt := <-f.notifier.notified:
		return appt
	case <-time.After(2 * time.Second):
		t.Fatal("expected a notification")
		return nil
	}
}

func TestCreateAppointment(t *testing.T) {
	f := newFixture(t)

	appt, err := f.svc.Create(validInput(), nil)
	require.NoError(t, err)

	assert.NotZero(t, appt.ID)
	assert.NotEmpty(t, appt.Reference)
	assert.Equal(t, models.StatusPending, appt.Status)
	assert.Equal(t, "Korle Bu Teaching Hospital", appt.Hospital.Name)
	assert.Equal(t, "Ama Mensah", appt.Doctor.Name)

	notified := f.waitForNotification(t)
	assert.Equal(t, appt.Reference, notified.Reference)

	// Anonymous booking leaves no booking link
	assert.Empty(t, f.bookings.bookings)
}

func TestCreateAppointmentLinksBookingForSignedInUser(t *testing.T) {
	f := newFixture(t)

	userID := uint(55)
	appt, err := f.svc.Create(validInput(), &userID)
	require.NoError(t, err)
	f.waitForNotification(t)

	require.Len(t, f.bookings.bookings, 1)
	assert.Equal(t, userID, f.bookings.bookings[0].UserID)
	assert.Equal(t, appt.ID, f.bookings.bookings[0].AppointmentID)
}

func TestCreateAppointmentReferenceValidation(t *testing.T) {
	f := newFixture(t)

	missingHospital := validInput()
	missingHospital.HospitalID = 99
	_, err := f.svc.Create(missingHospital, nil)
	assert.ErrorIs(t, err, repository.ErrHospitalNotFound)

	inactiveDoctor := validInput()
	inactiveDoctor.DoctorID = 11
	_, err = f.svc.Create(inactiveDoctor, nil)
	assert.ErrorIs(t, err, ErrDoctorInactive)

	wrongHospitalDoctor := validInput()
	wrongHospitalDoctor.DoctorID = 20
	_, err = f.svc.Create(wrongHospitalDoctor, nil)
	assert.ErrorIs(t, err, ErrDoctorMismatch)

	foreignService := validInput()
	foreignService.ServiceID = uintPtr(200)
	_, err = f.svc.Create(foreignService, nil)
	assert.ErrorIs(t, err, ErrServiceMismatch)
}

func TestCreateAppointmentBlockedSlot(t *testing.T) {
	f := newFixture(t)

	input := validInput()
	input.Date = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	input.Time = "14:30"
	_, err := f.svc.Create(input, nil)
	assert.ErrorIs(t, err, ErrSlotBlocked)

	// Outside the blocked window the same date is fine
	input.Time = "15:00"
	_, err = f.svc.Create(input, nil)
	assert.NoError(t, err)
	f.waitForNotification(t)
}

func TestCreateAppointmentSlotTaken(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(validInput(), nil)
	require.NoError(t, err)
	f.waitForNotification(t)

	// The slot is held by a live appointment, so a second identity
	// hits the uniqueness guard
	second := validInput()
	second.Email = "other@example.com"
	second.Phone = "0551112222"
	_, err = f.svc.Create(second, nil)
	assert.ErrorIs(t, err, repository.ErrSlotTaken)
}

func TestCancelledSlotIsReleasedAndRebookable(t *testing.T) {
	f := newFixture(t)
	admin := authz.Actor{UserID: 1, Role: authz.RoleAdmin}

	appt, err := f.svc.Create(validInput(), nil)
	require.NoError(t, err)
	f.waitForNotification(t)

	booked, err := f.appts.BookedTimes(appt.DoctorID, appt.Date)
	require.NoError(t, err)
	assert.Contains(t, booked, appt.Time)

	_, err = f.svc.Transition(admin, appt.ID, models.StatusCancelled)
	require.NoError(t, err)

	// The availability feed frees the slot
	booked, err = f.appts.BookedTimes(appt.DoctorID, appt.Date)
	require.NoError(t, err)
	assert.NotContains(t, booked, appt.Time)

	// And the freed slot is actually bookable again
	second := validInput()
	second.Email = "other@example.com"
	second.Phone = "0551112222"
	rebooked, err := f.svc.Create(second, nil)
	require.NoError(t, err)
	assert.Equal(t, appt.Time, rebooked.Time)
	f.waitForNotification(t)
}

func TestBookingLifecycleScenario(t *testing.T) {
	f := newFixture(t)
	staff := authz.Actor{UserID: 8, Role: authz.RoleStaff, HospitalID: uintPtr(1)}

	// Book
	appt, err := f.svc.Create(validInput(), nil)
	require.NoError(t, err)
	f.waitForNotification(t)

	// A second booking is rejected while the first is pending, even with
	// a different phone number
	again := validInput()
	again.Phone = "0209998888"
	again.Time = "10:00"
	_, err = f.svc.Create(again, nil)
	assert.ErrorIs(t, err, booking.ErrPendingAppointment)

	// Staff confirm the appointment
	confirmed, err := f.svc.Transition(staff, appt.ID, models.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, confirmed.Status)

	// Ten days later the cooldown still blocks, matching on email alone
	*f.clock = f.clock.Add(10 * 24 * time.Hour)
	later := validInput()
	later.Phone = "0209998888"
	later.Date = time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	_, err = f.svc.Create(later, nil)
	assert.ErrorIs(t, err, booking.ErrCooldownActive)

	// Thirty-one days after the original booking the cooldown has lapsed
	*f.clock = f.clock.Add(21 * 24 * time.Hour)
	fresh := validInput()
	fresh.Date = time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC)
	_, err = f.svc.Create(fresh, nil)
	assert.NoError(t, err)
	f.waitForNotification(t)
}

func TestTransitionAuthority(t *testing.T) {
	f := newFixture(t)

	appt, err := f.svc.Create(validInput(), nil)
	require.NoError(t, err)
	f.waitForNotification(t)

	// Staff of another hospital may not touch it
	outsider := authz.Actor{UserID: 9, Role: authz.RoleStaff, HospitalID: uintPtr(2)}
	_, err = f.svc.Transition(outsider, appt.ID, models.StatusConfirmed)
	assert.ErrorIs(t, err, authz.ErrPermissionDenied)

	// Unassigned staff may not either
	unassigned := authz.Actor{UserID: 12, Role: authz.RoleStaff}
	_, err = f.svc.Transition(unassigned, appt.ID, models.StatusConfirmed)
	assert.ErrorIs(t, err, authz.ErrPermissionDenied)

	// A failed check mutates nothing
	stored, err := f.appts.GetAppointmentByID(appt.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)

	// Admins manage any hospital
	admin := authz.Actor{UserID: 1, Role: authz.RoleAdmin}
	confirmed, err := f.svc.Transition(admin, appt.ID, models.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, confirmed.Status)
}

func TestTransitionLifecycleRules(t *testing.T) {
	f := newFixture(t)
	admin := authz.Actor{UserID: 1, Role: authz.RoleAdmin}

	appt, err := f.svc.Create(validInput(), nil)
	require.NoError(t, err)
	f.waitForNotification(t)

	// pending -> completed skips confirmation
	_, err = f.svc.Transition(admin, appt.ID, models.StatusCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.svc.Transition(admin, appt.ID, models.AppointmentStatus("archived"))
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = f.svc.Transition(admin, appt.ID, models.StatusConfirmed)
	require.NoError(t, err)

	_, err = f.svc.Transition(admin, appt.ID, models.StatusCompleted)
	require.NoError(t, err)

	// Completed is terminal
	_, err = f.svc.Transition(admin, appt.ID, models.StatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.svc.Transition(admin, 999, models.StatusConfirmed)
	assert.ErrorIs(t, err, repository.ErrAppointmentNotFound)
}

func TestListAppointmentsScoping(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(validInput(), nil)
	require.NoError(t, err)
	f.waitForNotification(t)

	admin := authz.Actor{UserID: 1, Role: authz.RoleAdmin}
	appts, err := f.svc.List(admin, repository.AppointmentFilter{})
	require.NoError(t, err)
	assert.Len(t, appts, 1)

	otherStaff := authz.Actor{UserID: 9, Role: authz.RoleStaff, HospitalID: uintPtr(2)}
	appts, err = f.svc.List(otherStaff, repository.AppointmentFilter{})
	require.NoError(t, err)
	assert.Empty(t, appts)

	patient := authz.Actor{UserID: 4, Role: authz.RolePatient}
	_, err = f.svc.List(patient, repository.AppointmentFilter{})
	assert.ErrorIs(t, err, authz.ErrPermissionDenied)
}

func uintPtr(v uint) *uint { return &v }
