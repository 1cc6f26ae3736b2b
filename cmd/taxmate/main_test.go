package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dtrue/taxmate"
	"github.com/dtrue/taxmate/analytics"
)

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadEnvDefaults(t *testing.T) {
	e, err := loadEnv(missingEnvFile(t))
	if err != nil {
		t.Fatalf("loadEnv failed: %v", err)
	}
	if e.Addr != ":3000" || e.WaitlistCapacity != 100 || e.StatsCacheTTL != time.Minute {
		t.Errorf("defaults = %+v", e)
	}
	if e.StaticDir != "public" || e.DatabasePath != "data/taxmate.db" {
		t.Errorf("paths = %q, %q", e.StaticDir, e.DatabasePath)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SITE_URL", "https://taxmate.dtrue.online")
	t.Setenv("WAITLIST_CAPACITY", "25")
	t.Setenv("STATS_CACHE_TTL", "30s")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("ADMIN_SESSION_SECRET", "shh")

	e, err := loadEnv(missingEnvFile(t))
	if err != nil {
		t.Fatalf("loadEnv failed: %v", err)
	}
	cfg := e.siteConfig()
	if cfg.URL != "https://taxmate.dtrue.online" || cfg.WaitlistCapacity != 25 ||
		cfg.StatsCacheTTL != 30*time.Second || !cfg.CookieSecure || cfg.SessionSecret != "shh" {
		t.Errorf("siteConfig = %+v", cfg)
	}
}

func TestLoadEnvFile(t *testing.T) {
	// Register restore before unsetting so the file's value is cleaned up.
	t.Setenv("CONTACT_EMAIL", "")
	os.Unsetenv("CONTACT_EMAIL")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("CONTACT_EMAIL=support@dtrue.online\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	e, err := loadEnv(path)
	if err != nil {
		t.Fatalf("loadEnv failed: %v", err)
	}
	if e.ContactEmail != "support@dtrue.online" {
		t.Errorf("ContactEmail = %q", e.ContactEmail)
	}
}

func TestLoadEnvRejectsBadValues(t *testing.T) {
	t.Setenv("WAITLIST_CAPACITY", "many")
	if _, err := loadEnv(missingEnvFile(t)); err == nil {
		t.Fatal("expected parse error")
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := execute(append([]string{"--env-file", missingEnvFile(t), "--log-level", "error"}, args...), &out)
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if out != "taxmate dev\n" {
		t.Errorf("version = %q", out)
	}
}

func TestHashPasswordCommand(t *testing.T) {
	out, err := run(t, "hash-password", "hunter2")
	if err != nil {
		t.Fatal(err)
	}
	hash := strings.TrimSpace(out)
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("hunter2")); err != nil {
		t.Errorf("hash does not match: %v", err)
	}
}

func TestWaitlistCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "waitlist.db")
	t.Setenv("DATABASE_PATH", db)
	t.Setenv("WAITLIST_CAPACITY", "2")

	s, err := taxmate.NewStore(db)
	if err != nil {
		t.Fatal(err)
	}
	first, err := s.AddSignup("first@example.com", "First")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddSignup("second@example.com", ""); err != nil {
		t.Fatal(err)
	}
	s.Close()

	out, err := run(t, "waitlist", "count")
	if err != nil {
		t.Fatal(err)
	}
	if out != "joined: 2\nspots left: 0 of 2\n" {
		t.Errorf("count = %q", out)
	}

	out, err = run(t, "waitlist", "export")
	if err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("export is not CSV: %v", err)
	}
	if len(rows) != 3 || rows[1][1] != "first@example.com" || rows[2][1] != "second@example.com" {
		t.Errorf("export rows = %v", rows)
	}

	file := filepath.Join(t.TempDir(), "out.csv")
	if _, err := run(t, "waitlist", "export", "-o", file); err != nil {
		t.Fatal(err)
	}
	if data, err := os.ReadFile(file); err != nil || !strings.Contains(string(data), "first@example.com") {
		t.Errorf("export file = %q, %v", data, err)
	}

	if _, err := run(t, "waitlist", "remove", first.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "waitlist", "remove", first.ID); err == nil {
		t.Error("removing a missing signup should fail")
	}
	out, _ = run(t, "waitlist", "count")
	if out != "joined: 1\nspots left: 1 of 2\n" {
		t.Errorf("count after remove = %q", out)
	}
}

func TestExportFileReportsFailures(t *testing.T) {
	signups := []taxmate.Signup{{ID: "1", Email: "a@example.com"}}

	if err := exportFile(filepath.Join(t.TempDir(), "missing", "out.csv"), signups); err == nil {
		t.Error("expected error for a missing directory")
	}
	if _, err := os.Stat("/dev/full"); err == nil {
		if err := exportFile("/dev/full", signups); err == nil {
			t.Error("expected error when the device is full")
		}
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := exportFile(path, signups); err != nil {
		t.Fatalf("exportFile failed: %v", err)
	}
	if data, err := os.ReadFile(path); err != nil || !strings.Contains(string(data), "a@example.com") {
		t.Errorf("file = %q, %v", data, err)
	}
}

func TestServeRequiresSessionSecret(t *testing.T) {
	t.Setenv("ADMIN_SESSION_SECRET", "")
	if _, err := run(t, "serve"); err == nil || !strings.Contains(err.Error(), "ADMIN_SESSION_SECRET") {
		t.Errorf("serve error = %v", err)
	}
}

func TestInsightsCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATABASE_PATH", filepath.Join(dir, "taxmate.db"))

	s, err := analytics.NewStore(filepath.Join(dir, "analytics.db"))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, e := range []analytics.Event{
		{Kind: analytics.KindView, VisitorID: "a", Referrer: "Google", Device: "Mobile"},
		{Kind: analytics.KindView, VisitorID: "b", Referrer: "Direct", Device: "Desktop"},
		{Kind: analytics.KindFAQOpen, Detail: "3", VisitorID: "a"},
		{Kind: analytics.KindSignup, VisitorID: "a"},
	} {
		if err := s.Record(ctx, e); err != nil {
			t.Fatal(err)
		}
	}
	s.Close()

	out, err := run(t, "insights", "--days", "7")
	if err != nil {
		t.Fatal(err)
	}
	for _, w := range []string{
		"last 7 days\n",
		"views: 2\nvisitors: 2\nsignups: 1\n",
		"conversion: 50.0%\n",
		"faq opens:\n      1  Why is this better than Excel?\n",
		"referrers:\n",
	} {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}

	if _, err := run(t, "insights", "--days", "0"); err == nil {
		t.Error("expected error for --days 0")
	}
}
