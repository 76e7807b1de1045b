package domain

import "time"

// AuditAction names a catalog mutation.
type AuditAction string

const (
	AuditCreated      AuditAction = "created"
	AuditUpdated      AuditAction = "updated"
	AuditDeleted      AuditAction = "deleted"
	AuditImageUpdated AuditAction = "image_updated"
)

// AuditEntry records one committed catalog mutation.
type AuditEntry struct {
	Entity   string
	EntityID uint
	Action   AuditAction
	Label    string
	At       time.Time
}
