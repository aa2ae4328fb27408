package timeofday

import (
	"errors"
	"testing"
	"time"
)

func mustNew(t *testing.T, hour, minute int) TimeOfDay {
	t.Helper()
	tod, err := New(hour, minute)
	if err != nil {
		t.Fatalf("New(%d, %d): %v", hour, minute, err)
	}
	return tod
}

func TestNew_Valid(t *testing.T) {
	tod := mustNew(t, 12, 30)
	if tod.Minutes() != 12*60+30 {
		t.Errorf("expected %d minutes, got %d", 12*60+30, tod.Minutes())
	}
}

func TestNew_RoundTripsThroughMinutes(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		for minute := 0; minute < 60; minute++ {
			tod := mustNew(t, hour, minute)
			back, err := FromMinutes(tod.Minutes())
			if err != nil {
				t.Fatalf("FromMinutes(%d): %v", tod.Minutes(), err)
			}
			if back != tod {
				t.Fatalf("round trip mismatch at %02d:%02d", hour, minute)
			}
		}
	}
}

func TestNew_OutOfRange(t *testing.T) {
	cases := []struct{ hour, minute int }{
		{24, 0},
		{-1, 0},
		{0, -1},
		{23, 60},
		{111, 0},
	}
	for _, c := range cases {
		if _, err := New(c.hour, c.minute); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("New(%d, %d): expected ErrOutOfRange, got %v", c.hour, c.minute, err)
		}
	}
}

func TestFromMinutes_Bounds(t *testing.T) {
	if _, err := FromMinutes(24 * 60); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for 1440, got %v", err)
	}
	if _, err := FromMinutes(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange for -1, got %v", err)
	}
	tod, err := FromMinutes(138)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tod.Minutes() != 138 {
		t.Errorf("expected 138 minutes, got %d", tod.Minutes())
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		in      string
		minutes int
		ok      bool
	}{
		{"1:00", 60, true},
		{"2:00", 120, true},
		{"2:30", 150, true},
		{"23:59", 23*60 + 59, true},
		{"24:00", 0, false},
		{"111:00", 0, false},
		{"abcd", 0, false},
		{"", 0, false},
		{"12:30:00", 0, false},
	}
	for _, c := range cases {
		tod, err := Parse(c.in)
		if c.ok {
			if err != nil {
				t.Errorf("Parse(%q): unexpected error: %v", c.in, err)
				continue
			}
			if tod.Minutes() != c.minutes {
				t.Errorf("Parse(%q): expected %d minutes, got %d", c.in, c.minutes, tod.Minutes())
			}
		} else if err == nil {
			t.Errorf("Parse(%q): expected error, got %v", c.in, tod)
		}
	}
}

func TestParse_EqualsNew(t *testing.T) {
	parsed, err := Parse("2:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed != mustNew(t, 2, 30) {
		t.Error("Parse(\"2:30\") != New(2, 30)")
	}
}

func TestFromTime_DiscardsDateAndSeconds(t *testing.T) {
	instant := time.Date(2017, time.April, 14, 21, 30, 3, 8, time.Local)
	if got := FromTime(instant); got != mustNew(t, 21, 30) {
		t.Errorf("expected 21:30, got %v", got)
	}
}

func TestHourMinute(t *testing.T) {
	hour, minute := mustNew(t, 2, 15).HourMinute()
	if hour != 2 || minute != 15 {
		t.Errorf("expected 2, 15, got %d, %d", hour, minute)
	}
}

func TestBefore(t *testing.T) {
	a := mustNew(t, 4, 0)
	b := mustNew(t, 9, 30)
	if !a.Before(b) {
		t.Error("04:00 should be before 09:30")
	}
	if b.Before(a) {
		t.Error("09:30 should not be before 04:00")
	}
	if a.Before(a) {
		t.Error("a value should not be before itself")
	}
}

func TestAt_CombinesWithDate(t *testing.T) {
	day := time.Date(2017, time.April, 14, 21, 30, 3, 8, time.Local)
	got := mustNew(t, 2, 15).At(day)
	want := time.Date(2017, time.April, 14, 2, 15, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestString(t *testing.T) {
	if s := mustNew(t, 4, 5).String(); s != "04:05" {
		t.Errorf("expected 04:05, got %q", s)
	}
}

func TestDayAt(t *testing.T) {
	now := time.Date(2024, time.March, 10, 13, 37, 42, 99, time.Local)
	got := DayAt(now, 2, 0)
	want := time.Date(2024, time.March, 10, 2, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestDayAt_NormalizesAcrossDays(t *testing.T) {
	now := time.Date(2024, time.March, 10, 13, 0, 0, 0, time.Local)

	tomorrow := DayAt(now, 24, 0)
	if !tomorrow.Equal(time.Date(2024, time.March, 11, 0, 0, 0, 0, time.Local)) {
		t.Errorf("DayAt(24:00) should be tomorrow midnight, got %v", tomorrow)
	}

	yesterday := DayAt(now, -24, 0)
	if !yesterday.Equal(time.Date(2024, time.March, 9, 0, 0, 0, 0, time.Local)) {
		t.Errorf("DayAt(-24:00) should be yesterday midnight, got %v", yesterday)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "0 minutes"},
		{1, "1 minute"},
		{45, "45 minutes"},
		{60, "1 hour"},
		{61, "1 hour 1 minute"},
		{150, "2 hours 30 minutes"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.minutes); got != c.want {
			t.Errorf("FormatDuration(%d): expected %q, got %q", c.minutes, c.want, got)
		}
	}
}
