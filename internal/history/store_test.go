package history

import (
	"testing"
	"time"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordAndList(t *testing.T) {
	s := openTemp(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	rows := []Conversion{
		{TaskID: "t1", Source: "USD", Target: "EUR", Amount: 100, Rate: 0.85, Converted: 85, CreatedAt: base},
		{TaskID: "t2", Source: "EUR", Target: "GBP", Amount: 50, Rate: 0.9, Converted: 45, CreatedAt: base.Add(time.Hour)},
	}
	for _, c := range rows {
		if err := s.Record(c); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.List(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("rows: got %d, want 2", len(got))
	}
	// newest first
	if got[0].TaskID != "t2" || got[1].TaskID != "t1" {
		t.Errorf("order: got %s, %s", got[0].TaskID, got[1].TaskID)
	}
	if got[1].Rate != 0.85 || got[1].Converted != 85 {
		t.Errorf("round-trip: got %+v", got[1])
	}
}

func TestListLimit(t *testing.T) {
	s := openTemp(t)

	for i := 0; i < 5; i++ {
		c := Conversion{
			TaskID: "t", Source: "USD", Target: "EUR",
			Amount: 1, Rate: 1.5, Converted: 1.5,
			CreatedAt: time.Now().Add(time.Duration(i) * time.Minute),
		}
		if err := s.Record(c); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.List(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Errorf("rows: got %d, want 3", len(got))
	}
}

func TestListEmpty(t *testing.T) {
	s := openTemp(t)

	got, err := s.List(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("rows: got %d, want 0", len(got))
	}
}

func TestRecordDefaultsCreatedAt(t *testing.T) {
	s := openTemp(t)

	if err := s.Record(Conversion{TaskID: "t", Source: "USD", Target: "EUR", Amount: 1, Rate: 1, Converted: 1}); err != nil {
		t.Fatal(err)
	}
	got, err := s.List(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].CreatedAt.IsZero() {
		t.Errorf("created_time not defaulted: %+v", got)
	}
}
