package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLookbackDuration(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"go duration", "720h", 720 * time.Hour, false},
		{"go duration minutes", "90m", 90 * time.Minute, false},
		{"singular month", "1 month", 30 * 24 * time.Hour, false},
		{"plural months", "6 months", 180 * 24 * time.Hour, false},
		{"years approximate", "2 years", 2 * 365 * 24 * time.Hour, false},
		{"weeks", "3 weeks", 3 * 7 * 24 * time.Hour, false},
		{"days", "90 days", 90 * 24 * time.Hour, false},
		{"hours", "12 hours", 12 * time.Hour, false},
		{"mixed case", "2 Weeks", 2 * 7 * 24 * time.Hour, false},
		{"negative go duration", "-5h", 0, true},
		{"zero", "0h", 0, true},
		{"gibberish", "soonish", 0, true},
		{"missing unit", "42", 0, true},
		{"unsupported unit", "3 fortnights", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLookbackDuration(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
