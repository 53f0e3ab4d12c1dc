package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.log")
	opts := DefaultOptions(path)
	opts.Debug = true

	log, err := Init(opts)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	log.Debugw("peer accepted", "peer", 1)
	Sync(log)

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(b)
	if !strings.Contains(line, "DEBUG") || !strings.Contains(line, "peer accepted") {
		t.Fatalf("unexpected log line %q", line)
	}
}

func TestInfoLevelDropsDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.log")
	log, err := Init(DefaultOptions(path))
	if err != nil {
		t.Fatal(err)
	}
	log.Debug("hidden")
	log.Info("shown")
	Sync(log)

	b, _ := os.ReadFile(path)
	if strings.Contains(string(b), "hidden") {
		t.Fatal("debug line written at info level")
	}
	if !strings.Contains(string(b), "shown") {
		t.Fatal("info line missing")
	}
}
