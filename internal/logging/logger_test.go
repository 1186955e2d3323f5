package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestGetLogFilePath(t *testing.T) {
	appName := "rowboat"
	logPath, err := getLogFilePath(appName)
	if err != nil {
		t.Fatalf("getLogFilePath failed: %v", err)
	}

	if logPath == "" {
		t.Error("getLogFilePath returned empty path")
	}

	if !filepath.IsAbs(logPath) {
		t.Errorf("getLogFilePath returned relative path: %s", logPath)
	}

	homeDir, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		expected := filepath.Join(homeDir, "Library", "Logs", appName, appName+".log")
		if logPath != expected {
			t.Errorf("macOS path mismatch: got %s, want %s", logPath, expected)
		}
	case "linux":
		expected := filepath.Join(homeDir, ".local", "state", appName, appName+".log")
		if logPath != expected {
			t.Errorf("Linux path mismatch: got %s, want %s", logPath, expected)
		}
	case "windows":
		if !filepath.IsAbs(logPath) {
			t.Errorf("Windows path is not absolute: %s", logPath)
		}
	}
}

func TestInitLoggerAt(t *testing.T) {
	tests := []struct {
		name  string
		debug bool
	}{
		{"info level", false},
		{"debug level", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logPath := filepath.Join(t.TempDir(), "logs", "rowboat-test.log")

			logger, err := InitLoggerAt(logPath, tt.debug)
			if err != nil {
				t.Fatalf("InitLoggerAt failed: %v", err)
			}
			if logger == nil {
				t.Fatal("InitLoggerAt returned nil logger")
			}

			logger.Info("test message", slog.String("key", "value"))
			logger.Debug("debug message")

			info, err := os.Stat(logPath)
			if err != nil {
				t.Fatalf("log file was not created at %s: %v", logPath, err)
			}
			if info.Size() == 0 {
				t.Error("log file is empty after writing message")
			}
		})
	}
}

func TestRotateIfNeeded(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "rowboat-test.log")

	// Under the size limit: nothing happens
	if err := os.WriteFile(logPath, []byte("small"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := rotateIfNeeded(logPath); err != nil {
		t.Fatalf("rotateIfNeeded failed: %v", err)
	}
	if _, err := os.Stat(logPath + ".1"); !os.IsNotExist(err) {
		t.Error("small log file should not have been rotated")
	}

	// Over the size limit: current shifts to .1
	big := make([]byte, maxLogSize)
	if err := os.WriteFile(logPath, big, 0644); err != nil {
		t.Fatal(err)
	}
	if err := rotateIfNeeded(logPath); err != nil {
		t.Fatalf("rotateIfNeeded failed: %v", err)
	}
	if _, err := os.Stat(logPath + ".1"); err != nil {
		t.Errorf("rotated backup missing: %v", err)
	}
	if _, err := os.Stat(logPath); !os.IsNotExist(err) {
		t.Error("current log should have been renamed away")
	}
}

func TestNewNopLogger(t *testing.T) {
	logger := NewNopLogger()
	if logger == nil {
		t.Fatal("NewNopLogger returned nil")
	}

	logger.Info("test info")
	logger.Debug("test debug")
	logger.Error("test error")
	logger.Warn("test warn")
}
