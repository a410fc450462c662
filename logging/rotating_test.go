package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/giygas/medrisk-api/config"
)

func TestRotatingLoggerWritesWeekFile(t *testing.T) {
	dir := t.TempDir()
	rl, err := NewRotatingLogger(dir, 1, 0)
	if err != nil {
		t.Fatalf("NewRotatingLogger() error = %v", err)
	}
	defer rl.Close()

	if _, err := rl.Write([]byte("hello\n")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	name := filePrefix + weekKey(time.Now()) + ".log"
	content, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("expected %s: %v", name, err)
	}
	if string(content) != "hello\n" {
		t.Errorf("content = %q", content)
	}
}

func TestRotatingLoggerSizeRotation(t *testing.T) {
	dir := t.TempDir()
	rl, err := NewRotatingLogger(dir, 1, 10)
	if err != nil {
		t.Fatalf("NewRotatingLogger() error = %v", err)
	}
	defer rl.Close()

	for i := 0; i < 3; i++ {
		if _, err := rl.Write([]byte("12345678\n")); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}

	matches, _ := filepath.Glob(filepath.Join(dir, filePrefix+"*.log"))
	if len(matches) != 3 {
		t.Fatalf("expected 3 files after size rotation, got %v", matches)
	}
	week := weekKey(time.Now())
	for _, want := range []string{week + ".log", week + "_01.log", week + "_02.log"} {
		if _, err := os.Stat(filepath.Join(dir, filePrefix+want)); err != nil {
			t.Errorf("missing %s", want)
		}
	}
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	rl, err := NewRotatingLogger(dir, 1, 0)
	if err != nil {
		t.Fatalf("NewRotatingLogger() error = %v", err)
	}
	defer rl.Close()

	old := filepath.Join(dir, filePrefix+"2020-W01.log")
	other := filepath.Join(dir, "unrelated.log")
	for _, p := range []string{old, other} {
		if err := os.WriteFile(p, []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
		past := time.Now().Add(-30 * 24 * time.Hour)
		if err := os.Chtimes(p, past, past); err != nil {
			t.Fatal(err)
		}
	}

	deleted, err := rl.cleanupOldLogs(time.Now())
	if err != nil {
		t.Fatalf("cleanupOldLogs() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}
	if _, err := os.Stat(other); err != nil {
		t.Errorf("unrelated file should be kept")
	}
}

func TestInitLoggerWithOptionsWritesJSONFile(t *testing.T) {
	saved := DefaultLoggingService
	defer func() {
		_ = Close()
		DefaultLoggingService = saved
	}()

	dir := t.TempDir()
	InitLoggerWithOptions(Options{Dir: dir, Env: config.EnvTest, RetentionWeeks: 1})
	Debug("snapshot loaded", "medicines", 3)

	if err := Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, filePrefix+weekKey(time.Now())+".log"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), `"msg":"snapshot loaded"`) || !strings.Contains(string(content), `"medicines":3`) {
		t.Errorf("unexpected file content: %s", content)
	}
}
