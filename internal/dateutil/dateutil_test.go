package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseISO(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "valid date",
			input: "2024-03-09",
			want:  time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  2024-03-09  ",
			want:  time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "wrong separator",
			input:   "2024/03/09",
			wantErr: true,
		},
		{
			name:    "month out of range",
			input:   "2024-13-01",
			wantErr: true,
		},
		{
			name:    "time suffix rejected",
			input:   "2024-03-09T10:00:00Z",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseISO(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseISO(%q) succeeded, want error", tt.input)
				}
				if !errors.Is(err, ErrInvalidDate) {
					t.Errorf("error = %v, want ErrInvalidDate", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseISO(%q) error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseISO(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatISO(t *testing.T) {
	t.Parallel()

	got := FormatISO(time.Date(2024, 3, 9, 23, 30, 0, 0, time.UTC))
	if got != "2024-03-09" {
		t.Errorf("FormatISO = %q, want %q", got, "2024-03-09")
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	t.Parallel()

	const input = "1999-12-31"
	parsed, err := ParseISO(input)
	if err != nil {
		t.Fatalf("ParseISO error: %v", err)
	}
	if got := FormatISO(parsed); got != input {
		t.Errorf("round trip = %q, want %q", got, input)
	}
}
