package domain

import "time"

// AuditSeverity ranks audit entries.
type AuditSeverity string

const (
	SeverityInfo     AuditSeverity = "INFO"
	SeverityWarning  AuditSeverity = "WARNING"
	SeverityCritical AuditSeverity = "CRITICAL"
)

// AuditEntry is an immutable record of a significant user or system action.
// Entries live for the process lifetime only; they are never persisted.
type AuditEntry struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	UserID    string        `json:"userId"`
	UserName  string        `json:"userName"`
	Action    string        `json:"action"`
	Module    string        `json:"module"`
	Details   string        `json:"details"`
	IPAddress string        `json:"ipAddress"`
	Severity  AuditSeverity `json:"severity"`
}
