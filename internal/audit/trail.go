package audit

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtechsoftwares/ecclesiapro/internal/domain"
)

// Trail is the process-lifetime audit sink. Entries are kept newest-first
// and are never persisted; a restart starts a fresh trail.
type Trail struct {
	mu      sync.RWMutex
	entries []domain.AuditEntry
}

// NewTrail returns an empty trail.
func NewTrail() *Trail {
	return &Trail{}
}

// Record appends an entry, filling in id and timestamp, and returns it.
func (t *Trail) Record(actor *domain.Identity, action, module, details, ip string, severity domain.AuditSeverity) domain.AuditEntry {
	entry := domain.AuditEntry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		UserID:    "system",
		UserName:  "System",
		Action:    action,
		Module:    module,
		Details:   details,
		IPAddress: ip,
		Severity:  severity,
	}
	if actor != nil {
		entry.UserID = actor.ID
		entry.UserName = actor.Name
	}

	t.mu.Lock()
	t.entries = append([]domain.AuditEntry{entry}, t.entries...)
	t.mu.Unlock()
	return entry
}

// Entries returns a copy of the trail, newest first.
func (t *Trail) Entries() []domain.AuditEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]domain.AuditEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len reports the number of recorded entries.
func (t *Trail) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Clear drops all entries. Exposed for the settings screen; in a real
// deployment this would archive rather than delete.
func (t *Trail) Clear() {
	t.mu.Lock()
	t.entries = nil
	t.mu.Unlock()
}
