package domain

import "time"

// VoidAudit is the immutable record of a void: who voided what, why, and the
// pre-void amount for recovery tracking. The only permitted update is
// attaching a recovery outcome, once.
type VoidAudit struct {
	ID                string
	JournalEntryID    string
	OriginalAmount    int64
	Reason            string
	VoidedBy          string
	VoidedAt          time.Time
	ApprovalRequestID *string

	RecoveredAmount *int64
	RecoveryNotes   *string
	RecoveredBy     *string
	RecoveredAt     *time.Time
}

// HasRecovery reports whether a recovery outcome was already attached.
func (v *VoidAudit) HasRecovery() bool {
	return v.RecoveredAt != nil
}
