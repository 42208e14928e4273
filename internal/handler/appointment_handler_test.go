package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"hospital-appointment-api/internal/authz"
	"hospital-appointment-api/internal/middleware"
	"hospital-appointment-api/internal/models"
	"hospital-appointment-api/internal/repository"
	"hospital-appointment-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory stores backing the real appointment service during handler
// tests.

type memAppointments struct {
	appts  map[uint]*models.Appointment
	nextID uint
}

func newMemAppointments() *memAppointments {
	return &memAppointments{appts: map[uint]*models.Appointment{}, nextID: 1}
}

func (m *memAppointments) CreateAppointment(appt *models.Appointment) error {
	for _, a := range m.appts {
		if a.Status != models.StatusCancelled &&
			a.DoctorID == appt.DoctorID && a.Date.Equal(appt.Date) && a.Time == appt.Time {
			return repository.ErrSlotTaken
		}
	}
	appt.ID = m.nextID
	m.nextID++
	appt.CreatedAt = time.Now()
	stored := *appt
	m.appts[appt.ID] = &stored
	return nil
}

func (m *memAppointments) FindByEmailOrPhone(email, phone string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range m.appts {
		if a.Email == email || a.Phone == phone {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *memAppointments) GetAppointmentByID(id uint) (*models.Appointment, error) {
	a, ok := m.appts[id]
	if !ok {
		return nil, repository.ErrAppointmentNotFound
	}
	stored := *a
	return &stored, nil
}

func (m *memAppointments) UpdateStatus(id uint, status models.AppointmentStatus) error {
	a, ok := m.appts[id]
	if !ok {
		return repository.ErrAppointmentNotFound
	}
	a.Status = status
	return nil
}

func (m *memAppointments) ListAppointments(scope authz.Scope, filter repository.AppointmentFilter) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range m.appts {
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
		out = append(out, *a)
	}
	return out, nil
}

func (m *memAppointments) BookedTimes(doctorID uint, date time.Time) ([]string, error) {
	var out []string
	for _, a := range m.appts {
		if a.DoctorID == doctorID && a.Date.Equal(date) && a.Status != models.StatusCancelled {
			out = append(out, a.Time)
		}
	}
	return out, nil
}

type memHospitals struct{ hospitals map[uint]*models.Hospital }

func (m *memHospitals) GetHospitalByID(id uint) (*models.Hospital, error) {
	h, ok := m.hospitals[id]
	if !ok {
		return nil, repository.ErrHospitalNotFound
	}
	return h, nil
}

type memDoctors struct{ doctors map[uint]*models.Doctor }

func (m *memDoctors) GetDoctorByID(id uint) (*models.Doctor, error) {
	d, ok := m.doctors[id]
	if !ok {
		return nil, repository.ErrDoctorNotFound
	}
	return d, nil
}

type memServices struct{ services map[uint]*models.Service }

func (m *memServices) GetServiceByID(id uint) (*models.Service, error) {
	s, ok := m.services[id]
	if !ok {
		return nil, repository.ErrServiceNotFound
	}
	return s, nil
}

type memBlocks struct{}

func (memBlocks) GetActiveBlocks(hospitalID uint, date time.Time) ([]models.BlockedTimeSlot, error) {
	return nil, nil
}

type memBookings struct{ bookings []models.Booking }

func (m *memBookings) CreateBooking(b *models.Booking) error {
	m.bookings = append(m.bookings, *b)
	return nil
}

// actorMiddleware injects an authenticated actor the way the JWT
// middleware would
func actorMiddleware(actor authz.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, actor.UserID)
		c.Set(middleware.ContextRole, string(actor.Role))
		if actor.HospitalID != nil {
			c.Set(middleware.ContextHospitalID, *actor.HospitalID)
		}
		c.Next()
	}
}

type testEnv struct {
	router *gin.Engine
	appts  *memAppointments
}

func newTestEnv(staffActor authz.Actor) *testEnv {
	gin.SetMode(gin.TestMode)

	appts := newMemAppointments()
	svc := service.NewAppointmentService(
		appts,
		&memHospitals{hospitals: map[uint]*models.Hospital{
			1: {ID: 1, Name: "Korle Bu Teaching Hospital", IsActive: true},
		}},
		&memDoctors{doctors: map[uint]*models.Doctor{
			10: {ID: 10, HospitalID: 1, Name: "Ama Mensah", IsActive: true},
		}},
		&memServices{services: map[uint]*models.Service{}},
		memBlocks{},
		&memBookings{},
		nil,
	)
	h := NewAppointmentHandler(svc)

	r := gin.New()
	r.POST("/api/appointments", h.Create)
	dashboard := r.Group("/dashboard", actorMiddleware(staffActor))
	dashboard.GET("/appointments", h.List)
	dashboard.GET("/appointments/:id", h.Get)
	dashboard.PATCH("/appointments/:id/status", h.UpdateStatus)

	return &testEnv{router: r, appts: appts}
}

func hospitalID(v uint) *uint { return &v }

func validBookingPayload() map[string]interface{} {
	return map[string]interface{}{
		"full_name":   "Akosua Asante",
		"email":       "akosua@example.com",
		"phone":       "0241234567",
		"hospital_id": 1,
		"doctor_id":   10,
		"date":        "2026-03-09",
		"time":        "09:00",
		"reason":      "Headaches",
	}
}

func sendJSON(t *testing.T, r *gin.Engine, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return sendJSON(t, r, http.MethodPost, path, payload)
}

func patchJSON(t *testing.T, r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return sendJSON(t, r, http.MethodPatch, path, payload)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreateAppointmentJSON(t *testing.T) {
	env := newTestEnv(authz.Actor{UserID: 8, Role: authz.RoleStaff, HospitalID: hospitalID(1)})

	w := postJSON(t, env.router, "/api/appointments", validBookingPayload())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "pending", data["status"])
	assert.NotEmpty(t, data["reference"])
	assert.NotZero(t, data["appointment_id"])
}

func TestCreateAppointmentForm(t *testing.T) {
	env := newTestEnv(authz.Actor{UserID: 8, Role: authz.RoleStaff, HospitalID: hospitalID(1)})

	form := url.Values{}
	form.Set("full_name", "Akosua Asante")
	form.Set("email", "akosua@example.com")
	form.Set("phone", "0241234567")
	form.Set("hospital_id", "1")
	form.Set("doctor_id", "10")
	form.Set("date", "2026-03-09")
	form.Set("time", "09:00")

	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestCreateAppointmentValidation(t *testing.T) {
	env := newTestEnv(authz.Actor{UserID: 8, Role: authz.RoleStaff, HospitalID: hospitalID(1)})

	payload := validBookingPayload()
	delete(payload, "email")
	payload["phone"] = "123"

	w := postJSON(t, env.router, "/api/appointments", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	fields := body["fields"].(map[string]interface{})
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "phone")
}

func TestCreateAppointmentBadDate(t *testing.T) {
	env := newTestEnv(authz.Actor{UserID: 8, Role: authz.RoleStaff, HospitalID: hospitalID(1)})

	payload := validBookingPayload()
	payload["date"] = "09/03/2026"
	w := postJSON(t, env.router, "/api/appointments", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	payload = validBookingPayload()
	payload["time"] = "9am"
	w = postJSON(t, env.router, "/api/appointments", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAppointmentEligibilityConflict(t *testing.T) {
	env := newTestEnv(authz.Actor{UserID: 8, Role: authz.RoleStaff, HospitalID: hospitalID(1)})

	w := postJSON(t, env.router, "/api/appointments", validBookingPayload())
	require.Equal(t, http.StatusOK, w.Code)

	// The first booking is still pending
	payload := validBookingPayload()
	payload["time"] = "10:00"
	w = postJSON(t, env.router, "/api/appointments", payload)
	require.Equal(t, http.StatusConflict, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "pending")
}

func TestCreateAppointmentUnknownHospital(t *testing.T) {
	env := newTestEnv(authz.Actor{UserID: 8, Role: authz.RoleStaff, HospitalID: hospitalID(1)})

	payload := validBookingPayload()
	payload["hospital_id"] = 99
	w := postJSON(t, env.router, "/api/appointments", payload)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStatusByStaff(t *testing.T) {
	env := newTestEnv(authz.Actor{UserID: 8, Role: authz.RoleStaff, HospitalID: hospitalID(1)})

	w := postJSON(t, env.router, "/api/appointments", validBookingPayload())
	require.Equal(t, http.StatusOK, w.Code)

	w = patchJSON(t, env.router, "/dashboard/appointments/1/status", map[string]string{"status": "confirmed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	stored, err := env.appts.GetAppointmentByID(1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, stored.Status)
}

func TestUpdateStatusDeniedForOtherHospital(t *testing.T) {
	env := newTestEnv(authz.Actor{UserID: 9, Role: authz.RoleStaff, HospitalID: hospitalID(2)})

	w := postJSON(t, env.router, "/api/appointments", validBookingPayload())
	require.Equal(t, http.StatusOK, w.Code)

	w = patchJSON(t, env.router, "/dashboard/appointments/1/status", map[string]string{"status": "confirmed"})
	require.Equal(t, http.StatusForbidden, w.Code)

	stored, err := env.appts.GetAppointmentByID(1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestUpdateStatusInvalidTransition(t *testing.T) {
	env := newTestEnv(authz.Actor{UserID: 8, Role: authz.RoleStaff, HospitalID: hospitalID(1)})

	w := postJSON(t, env.router, "/api/appointments", validBookingPayload())
	require.Equal(t, http.StatusOK, w.Code)

	// pending -> completed skips confirmation
	w = patchJSON(t, env.router, "/dashboard/appointments/1/status", map[string]string{"status": "completed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown status fails binding
	w = patchJSON(t, env.router, "/dashboard/appointments/1/status", map[string]string{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAppointmentScoped(t *testing.T) {
	env := newTestEnv(authz.Actor{UserID: 8, Role: authz.RoleStaff, HospitalID: hospitalID(1)})

	w := postJSON(t, env.router, "/api/appointments", validBookingPayload())
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/appointments/1", nil)
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/dashboard/appointments/99", nil)
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAppointmentsFilters(t *testing.T) {
	env := newTestEnv(authz.Actor{UserID: 8, Role: authz.RoleStaff, HospitalID: hospitalID(1)})

	w := postJSON(t, env.router, "/api/appointments", validBookingPayload())
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/appointments?status=pending", nil)
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["count"])

	req = httptest.NewRequest(http.MethodGet, "/dashboard/appointments?status=bogus", nil)
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
