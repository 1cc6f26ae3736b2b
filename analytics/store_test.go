package analytics

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "analytics.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaltPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analytics.db")
	s, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	id := s.VisitorID("203.0.113.7", "Mozilla/5.0")
	if len(id) != 16 {
		t.Errorf("VisitorID length = %d, want 16", len(id))
	}
	if id == s.VisitorID("203.0.113.8", "Mozilla/5.0") {
		t.Error("different IPs should hash differently")
	}
	s.Close()

	s, err = NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if got := s.VisitorID("203.0.113.7", "Mozilla/5.0"); got != id {
		t.Errorf("VisitorID changed after reopen: %s != %s", got, id)
	}
}

func TestSaltDiffersPerInstallation(t *testing.T) {
	a, b := setupTestStore(t), setupTestStore(t)
	if a.VisitorID("ip", "ua") == b.VisitorID("ip", "ua") {
		t.Error("two installations share a salt")
	}
}

func TestSummary(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	now := time.Now()

	events := []Event{
		{Kind: KindView, VisitorID: "v1", Referrer: "Google", Device: "Mobile", Time: now},
		{Kind: KindView, VisitorID: "v1", Referrer: "Google", Device: "Mobile", Time: now},
		{Kind: KindView, VisitorID: "v2", Referrer: "Direct", Device: "Desktop", Time: now},
		{Kind: KindFAQOpen, Detail: "2", VisitorID: "v1", Time: now},
		{Kind: KindFAQOpen, Detail: "2", VisitorID: "v2", Time: now},
		{Kind: KindFAQOpen, Detail: "0", VisitorID: "v2", Time: now},
		{Kind: KindSignup, VisitorID: "v2", Time: now},
		// Outside the window.
		{Kind: KindView, VisitorID: "old", Referrer: "Bing", Device: "Desktop", Time: now.AddDate(0, 0, -40)},
	}
	for _, e := range events {
		if err := s.Record(ctx, e); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	sum, err := s.Summary(ctx, now.AddDate(0, 0, -30), now.Add(time.Minute))
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if sum.Views != 3 || sum.Visitors != 2 || sum.Signups != 1 {
		t.Errorf("totals = %d views, %d visitors, %d signups", sum.Views, sum.Visitors, sum.Signups)
	}
	if len(sum.FAQOpens) != 2 || sum.FAQOpens[0] != (Count{Key: "2", N: 2}) || sum.FAQOpens[1] != (Count{Key: "0", N: 1}) {
		t.Errorf("FAQOpens = %+v", sum.FAQOpens)
	}
	if len(sum.Referrers) != 2 || sum.Referrers[0] != (Count{Key: "Google", N: 2}) {
		t.Errorf("Referrers = %+v", sum.Referrers)
	}
	if len(sum.Devices) != 2 || sum.Devices[0].N != 1 {
		t.Errorf("Devices = %+v", sum.Devices)
	}
}

func TestSummaryEmpty(t *testing.T) {
	s := setupTestStore(t)
	now := time.Now()
	sum, err := s.Summary(context.Background(), now.Add(-time.Hour), now)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if sum.Views != 0 || sum.Visitors != 0 || len(sum.FAQOpens) != 0 {
		t.Errorf("empty summary = %+v", sum)
	}
}

func TestCleanup(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	now := time.Now()

	s.Record(ctx, Event{Kind: KindView, VisitorID: "old", Time: now.AddDate(0, 0, -100)})
	s.Record(ctx, Event{Kind: KindView, VisitorID: "new"})

	n, err := s.Cleanup(ctx, 90*24*time.Hour)
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}
	sum, _ := s.Summary(ctx, now.AddDate(-1, 0, 0), now.Add(time.Minute))
	if sum.Views != 1 {
		t.Errorf("views after cleanup = %d, want 1", sum.Views)
	}
}
