// Package notify sends outbound SMS through the Arkesel gateway.
// Delivery is best-effort: callers fire it after a successful booking
// and failures are logged, never propagated.
package notify

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hospital-appointment-api/internal/models"
)

// Result carries the gateway's reply for logging
type Result struct {
	Status string `json:"status"`
	Raw    string `json:"raw"`
}

// Notifier is the messaging collaborator consumed by the booking flow
type Notifier interface {
	AppointmentCreated(appt *models.Appointment)
}

// SMSClient calls the Arkesel send-sms HTTP API
type SMSClient struct {
	BaseURL  string
	APIKey   string
	SenderID string
	HTTP     *http.Client
}

func NewSMSClient(baseURL, apiKey, senderID string) *SMSClient {
	return &SMSClient{
		BaseURL:  baseURL,
		APIKey:   apiKey,
		SenderID: senderID,
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Send delivers one SMS. The returned Result mirrors whatever the
// gateway answered; a non-nil error means the request itself failed.
func (c *SMSClient) Send(to, message string) (*Result, error) {
	q := url.Values{}
	q.Set("action", "send-sms")
	q.Set("api_key", c.APIKey)
	q.Set("from", c.SenderID)
	q.Set("to", to)
	q.Set("sms", message)
	// Nigerian recipients require a declared use case
	if strings.HasPrefix(to, "+234") || strings.HasPrefix(to, "234") {
		q.Set("use_case", "transactional")
	}

	resp, err := c.HTTP.Get(c.BaseURL + "/sms/api?" + q.Encode())
	if err != nil {
		return nil, fmt.Errorf("sms request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read sms response: %w", err)
	}

	result := &Result{Raw: string(body)}
	var parsed struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		result.Status = parsed.Status
	}

	if resp.StatusCode != http.StatusOK {
		return result, fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return result, nil
}

// AppointmentCreated sends the booking confirmation SMS to the patient.
// A client with no API key configured is a no-op.
func (c *SMSClient) AppointmentCreated(appt *models.Appointment) {
	if c.APIKey == "" {
		return
	}

	message := fmt.Sprintf(
		"Hello %s, your appointment at %s with Dr. %s is confirmed for %s at %s. Please arrive 15 minutes early. Stay safe!",
		appt.FullName,
		appt.Hospital.Name,
		appt.Doctor.Name,
		appt.Date.Format("2006-01-02"),
		appt.Time,
	)

	to := NormalizePhone(appt.Phone)
	result, err := c.Send(to, message)
	if err != nil {
		log.Printf("SMS to %s failed: %v", to, err)
		return
	}
	log.Printf("SMS sent to %s: status=%s", to, result.Status)
}

// NormalizePhone ensures the number carries a country code. Bare local
// numbers are assumed Ghanaian.
func NormalizePhone(phone string) string {
	if strings.HasPrefix(phone, "+") {
		return phone
	}
	if strings.HasPrefix(phone, "0") {
		return "+233" + phone[1:]
	}
	return "+233" + phone
}
