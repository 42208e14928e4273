package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotInWindow(t *testing.T) {
	tests := []struct {
		name   string
		slot   string
		window string
		want   bool
	}{
		{"start is inclusive", "09:00", "09:00-12:00", true},
		{"inside window", "10:30", "09:00-12:00", true},
		{"end is exclusive", "12:00", "09:00-12:00", false},
		{"before window", "08:30", "09:00-12:00", false},
		{"after window", "14:00", "09:00-12:00", false},
		{"window with spaces", "10:00", "09:00 - 12:00", true},
		{"malformed window", "10:00", "morning", false},
		{"missing end", "10:00", "09:00-", false},
		{"malformed slot", "noon", "09:00-12:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slotInWindow(tt.slot, tt.window))
		})
	}
}
