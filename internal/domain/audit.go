package domain

import "time"

type AuditAction string

const (
	AuditActionDeliverySent     AuditAction = "delivery_sent"
	AuditActionApproved         AuditAction = "approved"
	AuditActionRejected         AuditAction = "rejected"
	AuditActionEvidenceAttached AuditAction = "evidence_attached"
)

// AuditEntry is one immutable record of a persisted verdict transition.
type AuditEntry struct {
	ID           string
	DocumentID   DocumentID
	Stage        Stage
	Action       AuditAction
	ActorName    string
	At           time.Time
	Flags        []string
	Observations string
	EvidenceRefs []EvidenceRef
}
