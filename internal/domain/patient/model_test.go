package patient

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAgeAt(t *testing.T) {
	tests := []struct {
		name string
		dob  time.Time
		now  time.Time
		want int
	}{
		{"birthday already passed", date(1990, 1, 1), date(2024, 6, 15), 34},
		{"birthday is today", date(1990, 1, 1), date(2024, 1, 1), 34},
		{"birthday not yet reached", date(1990, 1, 1), date(2023, 12, 31), 33},
		{"day before birthday", date(1990, 6, 15), date(2024, 6, 14), 33},
		{"day of birthday", date(1990, 6, 15), date(2024, 6, 15), 34},
		{"born this year", date(2024, 3, 1), date(2024, 6, 1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AgeAt(tt.dob, tt.now); got != tt.want {
				t.Errorf("AgeAt(%s, %s) = %d, want %d",
					tt.dob.Format(DateLayout), tt.now.Format(DateLayout), got, tt.want)
			}
		})
	}
}

func TestParseDOB(t *testing.T) {
	in := Input{DateOfBirth: "1990-05-11"}
	got, err := in.ParseDOB()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(date(1990, 5, 11)) {
		t.Errorf("got %v, want 1990-05-11", got)
	}

	in = Input{DateOfBirth: "1990-05-11T08:30:00Z"}
	got, err = in.ParseDOB()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(date(1990, 5, 11)) {
		t.Errorf("got %v, want time portion discarded", got)
	}

	in = Input{DateOfBirth: "11/05/1990"}
	if _, err := in.ParseDOB(); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestToResponse(t *testing.T) {
	p := &Patient{
		ID:          7,
		Name:        "Salvador Dali",
		DateOfBirth: date(1904, 5, 11),
		Email:       "melting.clocks@surreal.com",
	}
	resp := p.ToResponse(date(2024, 5, 10))
	if resp.Age != 119 {
		t.Errorf("age = %d, want 119 the day before the birthday", resp.Age)
	}
	if resp.DateOfBirth != "1904-05-11" {
		t.Errorf("dateOfBirth = %q, want formatted date", resp.DateOfBirth)
	}
}
