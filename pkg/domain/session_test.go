package domain

import "testing"

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  string
	}{
		{"whole hours", "14", "16", "2.00 hrs"},
		{"midnight wrap", "23", "1", "2.00 hrs"},
		{"half hour", "9:30", "10:00", "0.50 hrs"},
		{"dot separator", "9.30", "10.00", "0.50 hrs"},
		{"mixed separators", "9.15", "10:45", "1.50 hrs"},
		{"zero length", "12:00", "12:00", "0.00 hrs"},
		{"missing start", "", "10", NoDuration},
		{"missing end", "10", "", NoDuration},
		{"both missing", "", "", NoDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.start, tt.end); got != tt.want {
				t.Errorf("FormatDuration(%q, %q) = %q, want %q", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestFormatDurationMalformedNeverFails(t *testing.T) {
	// Garbage components parse as zero; the render path must always get a
	// string back.
	tests := []struct {
		start string
		end   string
		want  string
	}{
		{"abc", "2", "2.00 hrs"},
		{"9:xx", "10:xx", "1.00 hrs"},
		{":", ":", "0.00 hrs"},
		{"9:30:15", "10:30", "1.00 hrs"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.start, tt.end); got != tt.want {
			t.Errorf("FormatDuration(%q, %q) = %q, want %q", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestSessionDuration(t *testing.T) {
	s := Session{StartTime: "14", EndTime: "16"}
	if got := s.Duration(); got != "2.00 hrs" {
		t.Errorf("Duration() = %q, want %q", got, "2.00 hrs")
	}

	s = Session{StartTime: "14"}
	if got := s.Duration(); got != NoDuration {
		t.Errorf("Duration() with no end time = %q, want %q", got, NoDuration)
	}
}

func TestPlatformName(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"cp", "PC"},
		{"pc", "PC"},
		{"mb", "Mobile"},
		{"vr", "Virtual Reality"},
		{"xx", "xx"},
	}
	for _, tt := range tests {
		if got := PlatformName(tt.tag); got != tt.want {
			t.Errorf("PlatformName(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}
