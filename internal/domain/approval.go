package domain

import "time"

// Role is an approver role. Roles are ordered by restrictiveness; when two
// rules match the same transaction with different roles, the highest rank wins.
type Role string

const (
	RoleBursar      Role = "BURSAR"
	RoleHeadteacher Role = "HEADTEACHER"
	RoleDirector    Role = "DIRECTOR"
)

var roleRank = map[Role]int{
	RoleBursar:      1,
	RoleHeadteacher: 2,
	RoleDirector:    3,
}

// RoleRank returns the restrictiveness rank of a role, 0 if unknown.
func RoleRank(r Role) int {
	return roleRank[r]
}

// MoreRestrictive returns the higher-ranked of two roles.
func MoreRestrictive(a, b Role) Role {
	if roleRank[b] > roleRank[a] {
		return b
	}

	return a
}

// ApprovalRule is stateless reference data: it describes when a transaction
// of a given type needs governance approval and from which role.
type ApprovalRule struct {
	ID                   string
	Name                 string
	TransactionType      EntryType
	MinAmount            *int64
	MaxAmount            *int64
	DaysSinceTransaction *int
	RequiredApproverRole Role
	IsActive             bool
	CreatedAt            time.Time
}

// Matches reports whether the rule applies to a transaction of the given
// type, amount (minor units) and age.
func (r *ApprovalRule) Matches(txType EntryType, amount int64, ageInDays int) bool {
	if !r.IsActive || r.TransactionType != txType {
		return false
	}

	if r.MinAmount != nil && amount < *r.MinAmount {
		return false
	}

	if r.MaxAmount != nil && amount > *r.MaxAmount {
		return false
	}

	if r.DaysSinceTransaction != nil && ageInDays < *r.DaysSinceTransaction {
		return false
	}

	return true
}

// RequestStatus is the approval workflow state. All non-pending states are
// terminal; a request is never reopened.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusApproved  RequestStatus = "APPROVED"
	RequestStatusRejected  RequestStatus = "REJECTED"
	RequestStatusCancelled RequestStatus = "CANCELLED"
)

// RequestAction describes what executing an approval will do.
type RequestAction string

const (
	RequestActionPostEntry    RequestAction = "POST_ENTRY"
	RequestActionVoidEntry    RequestAction = "VOID_ENTRY"
	RequestActionBudgetChange RequestAction = "BUDGET_CHANGE"
)

// ApprovalRequest is the stateful side of the workflow: one gated mutation
// waiting for review. Entry actions reference the gated entry through
// JournalEntryID; budget changes carry the deferred allocation in Payload.
type ApprovalRequest struct {
	ID             string
	Action         RequestAction
	JournalEntryID string
	RequiredRole   Role
	Status         RequestStatus
	Reason         string
	Payload        []byte

	RequestedBy string
	RequestedAt time.Time
	ReviewedBy  *string
	ReviewNotes *string
	ReviewedAt  *time.Time
}

// IsTerminal reports whether the request has left the PENDING state.
func (r *ApprovalRequest) IsTerminal() bool {
	return r.Status != RequestStatusPending
}
