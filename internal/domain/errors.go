package domain

import "errors"

var (
	// Journal entry errors
	ErrUnbalancedEntry    = errors.New("journal entry debits do not equal credits")
	ErrLineNotExclusive   = errors.New("journal line must be debit or credit, not both")
	ErrInsufficientLines  = errors.New("journal entry requires at least two lines")
	ErrInvalidAmount      = errors.New("amount must be a positive integer in minor units")
	ErrEntryNotFound      = errors.New("journal entry not found")
	ErrEntryAlreadyVoided = errors.New("journal entry is already voided")
	ErrEntryNotPending    = errors.New("journal entry is not pending approval")
	ErrDuplicateRef       = errors.New("journal entry reference already exists")
	ErrUnknownEntryType   = errors.New("unknown journal entry type")

	// Chart of accounts errors
	ErrAccountNotFound      = errors.New("gl account not found")
	ErrAccountInactive      = errors.New("gl account is inactive")
	ErrDuplicateAccountCode = errors.New("gl account code already exists")
	ErrInvalidAccountType   = errors.New("invalid gl account type")

	// Approval errors
	ErrRequestNotFound     = errors.New("approval request not found")
	ErrRequestNotPending   = errors.New("approval request is not pending")
	ErrReviewNotesRequired = errors.New("review notes are required for rejection")
	ErrNotRequester        = errors.New("only the requester may cancel a request")
	ErrUnknownRole         = errors.New("unknown approver role")
	ErrInsufficientRole    = errors.New("reviewer role does not satisfy the request's required role")
	ErrSelfReview          = errors.New("requester may not review their own request")

	// Budget errors
	ErrExceedsBudget      = errors.New("transaction exceeds budget allocation")
	ErrAllocationNotFound = errors.New("budget allocation not found")

	// Reconciliation errors
	ErrStatementNotFound   = errors.New("bank statement not found")
	ErrLineNotFound        = errors.New("bank statement line not found")
	ErrLineAlreadyMatched  = errors.New("bank statement line is already matched")
	ErrLineNotMatched      = errors.New("bank statement line is not matched")
	ErrEntryAlreadyMatched = errors.New("journal entry is already matched to another statement line")

	// Backfill errors
	ErrDuplicateSource   = errors.New("legacy transaction already has a journal entry")
	ErrUnmappedCategory  = errors.New("legacy category has no gl mapping")
	ErrUnknownLegacyType = errors.New("unknown legacy transaction type")

	// Void audit errors
	ErrRecoveryAttached = errors.New("recovery outcome already recorded for this void")

	// Actor errors
	ErrMissingActor = errors.New("operation requires an actor identity")

	// Auth errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
