package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.json")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	def := DefaultConfig()
	if cfg.Job.ScheduledHour != def.Job.ScheduledHour {
		t.Errorf("expected default scheduled hour %d, got %d", def.Job.ScheduledHour, cfg.Job.ScheduledHour)
	}
	if cfg.Alarm.PreAlarmMinutes != 45 {
		t.Errorf("expected default preAlarmMinutes 45, got %d", cfg.Alarm.PreAlarmMinutes)
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, map[string]any{
		"job": map[string]any{
			"enabled":       true,
			"scheduledHour": 3,
		},
		"alarm": map[string]any{
			"preAlarmMinutes": 30,
		},
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Job.Enabled {
		t.Error("expected enabled=true")
	}
	if cfg.Job.ScheduledHour != 3 {
		t.Errorf("expected scheduledHour 3, got %d", cfg.Job.ScheduledHour)
	}
	if cfg.Alarm.PreAlarmMinutes != 30 {
		t.Errorf("expected preAlarmMinutes 30, got %d", cfg.Alarm.PreAlarmMinutes)
	}
	// Untouched sections keep their defaults.
	if cfg.Alarm.EarliestEventStartMinutes != 4*60 {
		t.Errorf("expected default earliest window bound, got %d", cfg.Alarm.EarliestEventStartMinutes)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("{not valid json"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error for invalid JSON (falls back to default), got: %v", err)
	}
	def := DefaultConfig()
	if cfg.Job.ScheduledHour != def.Job.ScheduledHour {
		t.Errorf("expected default scheduled hour %d, got %d", def.Job.ScheduledHour, cfg.Job.ScheduledHour)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := DefaultConfig()
	cfg.Job.Enabled = true
	cfg.Notify.Channel = "telegram"
	cfg.Notify.Telegram.ChatID = 42

	if err := Save(&cfg, path); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !loaded.Job.Enabled {
		t.Error("expected enabled=true after round trip")
	}
	if loaded.Notify.Channel != "telegram" || loaded.Notify.Telegram.ChatID != 42 {
		t.Errorf("unexpected notify settings: %+v", loaded.Notify)
	}
}

func TestWindow(t *testing.T) {
	cfg := DefaultConfig()
	w, err := cfg.Window()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.String() != "04:00-09:30" {
		t.Errorf("expected default window 04:00-09:30, got %s", w.String())
	}

	cfg.Alarm.LatestEventStartMinutes = 24 * 60
	if _, err := cfg.Window(); err == nil {
		t.Error("expected error for out-of-range window bound")
	}
}

func TestJobConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Job.Enabled = true
	jc := cfg.JobConfig()
	if err := jc.Validate(); err != nil {
		t.Fatalf("default job config should validate: %v", err)
	}
	if !*jc.Enabled || *jc.ScheduledHour != 2 || *jc.ScheduledMinute != 0 {
		t.Errorf("unexpected job config: %+v", jc)
	}
}
