package domain

import "time"

// AuditLogEntry records a non-core administrative action, such as deleting a
// suggestion. The core only needs fire-and-forget writes here.
type AuditLogEntry struct {
	EntryID    string    `json:"entryID"` // Primary Key (UUID)
	Action     string    `json:"action"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityID"`
	ActorID    string    `json:"actorID"`
	RecordedAt time.Time `json:"recordedAt"`
}
