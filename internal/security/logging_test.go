// Package security provides tests for the structured JSON logger.
package security

import (
	"bytes"
	"encoding/json"
	"log"
	"strings"
	"testing"
)

// TestLogger_JSONFormat tests that logs are output in valid JSON format.
func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.output = log.New(&buf, "", 0)

	logger.Info("Test message")

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Errorf("Log output is not valid JSON: %v", err)
	}

	if entry.Message != "Test message" {
		t.Errorf("Expected message 'Test message', got %q", entry.Message)
	}

	if entry.Level != LogLevelInfo {
		t.Errorf("Expected level INFO, got %q", entry.Level)
	}

	if entry.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
}

// TestLogger_Levels tests each log level maps to the right entry level.
func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name     string
		logFunc  func(*Logger, string)
		expected LogLevel
	}{
		{"Info", func(l *Logger, m string) { l.Info(m) }, LogLevelInfo},
		{"Warn", func(l *Logger, m string) { l.Warn(m) }, LogLevelWarning},
		{"Error", func(l *Logger, m string) { l.Error(m, nil) }, LogLevelError},
		{"Critical", func(l *Logger, m string) { l.Critical(m, nil) }, LogLevelCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger()
			logger.output = log.New(&buf, "", 0)

			tt.logFunc(logger, "test message")

			var entry LogEntry
			json.Unmarshal(buf.Bytes(), &entry)

			if entry.Level != tt.expected {
				t.Errorf("Expected level %q, got %q", tt.expected, entry.Level)
			}
		})
	}
}

// TestLogger_SecurityEvent tests security event logging with actor context.
func TestLogger_SecurityEvent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.output = log.New(&buf, "", 0)

	actorID := 7
	logger.SecurityEvent(
		EventLoginSuccess,
		&actorID,
		"admin@lab.example",
		"192.168.1.100",
		"Mozilla/5.0",
		map[string]interface{}{"success": true},
	)

	var entry LogEntry
	json.Unmarshal(buf.Bytes(), &entry)

	if entry.Level != LogLevelSecurity {
		t.Errorf("Expected SECURITY level, got %q", entry.Level)
	}

	if entry.EventType != EventLoginSuccess {
		t.Errorf("Expected event type %q, got %q", EventLoginSuccess, entry.EventType)
	}

	if entry.ActorID == nil || *entry.ActorID != 7 {
		t.Errorf("Expected actor_id 7, got %v", entry.ActorID)
	}

	if entry.ActorEmail != "admin@lab.example" {
		t.Errorf("Expected actor_email admin@lab.example, got %q", entry.ActorEmail)
	}

	if entry.IPAddress != "192.168.1.100" {
		t.Errorf("Expected ip_address 192.168.1.100, got %q", entry.IPAddress)
	}
}

// TestLogger_ErrorIncludesCause verifies underlying errors are carried in the
// error field.
func TestLogger_ErrorIncludesCause(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.output = log.New(&buf, "", 0)

	logger.Error("connection failed", errBoom{})

	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("Expected error field in output, got %q", buf.String())
	}
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// TestLogger_HTTPRequest verifies request log fields.
func TestLogger_HTTPRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger()
	logger.output = log.New(&buf, "", 0)

	logger.HTTPRequest("POST", "/admin/rooms/create", 302, 15, "10.0.0.2", "curl/8")

	var entry LogEntry
	json.Unmarshal(buf.Bytes(), &entry)

	if entry.Method != "POST" || entry.Path != "/admin/rooms/create" {
		t.Errorf("Unexpected method/path: %s %s", entry.Method, entry.Path)
	}

	if entry.Status != 302 {
		t.Errorf("Expected status 302, got %d", entry.Status)
	}

	if entry.LatencyMS != 15 {
		t.Errorf("Expected latency 15, got %d", entry.LatencyMS)
	}
}
