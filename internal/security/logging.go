// Package security provides structured security logging.
// All log output is single-line JSON so it can be shipped to log collectors
// without extra parsing.
package security

import (
	"encoding/json"
	"log"
	"os"
	"time"
)

// LogLevel classifies a log entry.
type LogLevel string

const (
	LogLevelInfo     LogLevel = "INFO"
	LogLevelWarning  LogLevel = "WARNING"
	LogLevelError    LogLevel = "ERROR"
	LogLevelCritical LogLevel = "CRITICAL"
	LogLevelSecurity LogLevel = "SECURITY"
)

// SecurityEventType identifies the kind of security-relevant event.
type SecurityEventType string

const (
	EventLoginSuccess       SecurityEventType = "login_success"
	EventLoginFailure       SecurityEventType = "login_failure"
	EventLogout             SecurityEventType = "logout"
	EventAccountLocked      SecurityEventType = "account_locked"
	EventUnauthorizedAccess SecurityEventType = "unauthorized_access"
	EventRateLimitExceeded  SecurityEventType = "rate_limit_exceeded"
	EventCSRFViolation      SecurityEventType = "csrf_violation"
	EventInjectionAttempt   SecurityEventType = "injection_attempt"
	EventBorrowProcessed    SecurityEventType = "borrow_processed"
	EventAssignmentRejected SecurityEventType = "assignment_rejected"
)

// LogEntry is the JSON shape of one log line.
type LogEntry struct {
	Timestamp  time.Time              `json:"timestamp"`
	Level      LogLevel               `json:"level"`
	Message    string                 `json:"message,omitempty"`
	EventType  SecurityEventType      `json:"event_type,omitempty"`
	ActorID    *int                   `json:"actor_id,omitempty"`
	ActorEmail string                 `json:"actor_email,omitempty"`
	IPAddress  string                 `json:"ip_address,omitempty"`
	UserAgent  string                 `json:"user_agent,omitempty"`
	Method     string                 `json:"method,omitempty"`
	Path       string                 `json:"path,omitempty"`
	Status     int                    `json:"status,omitempty"`
	LatencyMS  int64                  `json:"latency_ms,omitempty"`
	Error      string                 `json:"error,omitempty"`
	Extra      map[string]interface{} `json:"extra,omitempty"`
}

// Logger emits structured JSON log entries.
type Logger struct {
	output *log.Logger
}

// NewLogger creates a logger writing JSON lines to stdout.
func NewLogger() *Logger {
	return &Logger{
		output: log.New(os.Stdout, "", 0),
	}
}

func (l *Logger) emit(entry LogEntry) {
	entry.Timestamp = time.Now().UTC()
	data, err := json.Marshal(entry)
	if err != nil {
		// Marshaling a LogEntry should never fail; fall back to plain text
		// rather than dropping the event.
		l.output.Printf(`{"level":"ERROR","message":"log marshal failed: %v"}`, err)
		return
	}
	l.output.Println(string(data))
}

// Info logs an informational message.
func (l *Logger) Info(message string) {
	l.emit(LogEntry{Level: LogLevelInfo, Message: message})
}

// Warn logs a warning message.
func (l *Logger) Warn(message string) {
	l.emit(LogEntry{Level: LogLevelWarning, Message: message})
}

// Error logs an error with optional underlying cause.
func (l *Logger) Error(message string, err error) {
	entry := LogEntry{Level: LogLevelError, Message: message}
	if err != nil {
		entry.Error = err.Error()
	}
	l.emit(entry)
}

// Critical logs a fatal-severity condition. The caller decides whether to
// terminate; the logger only records.
func (l *Logger) Critical(message string, err error) {
	entry := LogEntry{Level: LogLevelCritical, Message: message}
	if err != nil {
		entry.Error = err.Error()
	}
	l.emit(entry)
}

// SecurityEvent logs a security-relevant event with actor context.
// actorID may be nil for unauthenticated events (e.g. failed logins).
func (l *Logger) SecurityEvent(
	eventType SecurityEventType,
	actorID *int,
	actorEmail string,
	ipAddress string,
	userAgent string,
	extra map[string]interface{},
) {
	l.emit(LogEntry{
		Level:      LogLevelSecurity,
		EventType:  eventType,
		ActorID:    actorID,
		ActorEmail: actorEmail,
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Extra:      extra,
	})
}

// HTTPRequest logs a completed HTTP request.
func (l *Logger) HTTPRequest(method, path string, status int, latencyMS int64, ip, userAgent string) {
	l.emit(LogEntry{
		Level:     LogLevelInfo,
		Message:   "http_request",
		Method:    method,
		Path:      path,
		Status:    status,
		LatencyMS: latencyMS,
		IPAddress: ip,
		UserAgent: userAgent,
	})
}
