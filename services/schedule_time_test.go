package services

import (
	"testing"
	"time"

	"classjournal_go/models"
)

func TestParseHourMinute(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		expHour    int
		expMinutes int
	}{
		{
			name:       "simple time",
			input:      "08:30",
			expHour:    8,
			expMinutes: 30,
		},
		{
			name:       "iso datetime",
			input:      "2007-11-30T00:00:00+07:00",
			expHour:    0,
			expMinutes: 0,
		},
		{
			name:       "mysql datetime",
			input:      "2007-11-30 13:45:00",
			expHour:    13,
			expMinutes: 45,
		},
		{
			name:       "time with trailing zone",
			input:      "09:15:00Z",
			expHour:    9,
			expMinutes: 15,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			h, m, err := parseHourMinute(tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if h != tc.expHour || m != tc.expMinutes {
				t.Fatalf("expected %02d:%02d, got %02d:%02d", tc.expHour, tc.expMinutes, h, m)
			}
		})
	}
}

func TestParseHourMinuteInvalid(t *testing.T) {
	if _, _, err := parseHourMinute("invalid"); err == nil {
		t.Fatalf("expected error for invalid input")
	}
}

func TestCheckConductable(t *testing.T) {
	// Fixed clock: 2026-03-10 12:00 local
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	ss := &ScheduleService{now: func() time.Time { return now }}

	day := func(y int, m time.Month, d int) *time.Time {
		t := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
		return &t
	}

	tests := []struct {
		name     string
		schedule models.Schedule
		wantErr  bool
	}{
		{
			name:     "past date is always eligible",
			schedule: models.Schedule{ScheduleDate: day(2026, 3, 9), EndTime: "18:00"},
		},
		{
			name:     "today after the lesson ended",
			schedule: models.Schedule{ScheduleDate: day(2026, 3, 10), EndTime: "11:30"},
		},
		{
			name:     "today before the lesson ends",
			schedule: models.Schedule{ScheduleDate: day(2026, 3, 10), EndTime: "13:00"},
			wantErr:  true,
		},
		{
			name:     "future date is rejected",
			schedule: models.Schedule{ScheduleDate: day(2026, 3, 11), EndTime: "09:00"},
			wantErr:  true,
		},
		{
			name:     "missing end time gates on date only",
			schedule: models.Schedule{ScheduleDate: day(2026, 3, 11)},
			wantErr:  true,
		},
		{
			name:     "missing end time on a past date passes",
			schedule: models.Schedule{ScheduleDate: day(2026, 3, 9)},
		},
		{
			name:     "no date at all passes",
			schedule: models.Schedule{EndTime: "13:00"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := ss.checkConductable(&tc.schedule)
			if tc.wantErr && err == nil {
				t.Fatalf("expected rejection, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
