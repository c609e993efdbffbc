package usecase

import (
	"context"
	"time"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/domain"
)

// GLAccountRepository defines data access for the chart of accounts.
// Accounts are addressed by code everywhere; row IDs stay inside the adapter.
type GLAccountRepository interface {
	Create(ctx context.Context, account *domain.GLAccount) error
	// CreateIfAbsent inserts the account unless its code already exists.
	// Returns true when a row was inserted. Used by idempotent chart seeding.
	CreateIfAbsent(ctx context.Context, tx Transaction, account *domain.GLAccount) (bool, error)
	GetByCode(ctx context.Context, code string) (*domain.GLAccount, error)
	// GetByCodes resolves several accounts inside a transaction so journal
	// validation and persistence see the same chart state.
	GetByCodes(ctx context.Context, tx Transaction, codes []string) ([]*domain.GLAccount, error)
	// Update writes the mutable fields (name, parent) explicitly.
	Update(ctx context.Context, account *domain.GLAccount) error
	// SetActive activates or deactivates an account. Accounts are never deleted.
	SetActive(ctx context.Context, code string, active bool, updatedAt time.Time) error
	List(ctx context.Context, includeInactive bool) ([]*domain.GLAccount, error)
}

// JournalRepository defines data access for journal entries and their lines.
type JournalRepository interface {
	// Create persists the entry and all its lines in one transaction.
	Create(ctx context.Context, tx Transaction, entry *domain.JournalEntry) error
	GetByID(ctx context.Context, id string) (*domain.JournalEntry, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.JournalEntry, error)
	// SetApproval flips approval status and posting flag together.
	SetApproval(ctx context.Context, tx Transaction, id string, status domain.ApprovalStatus, posted bool) error
	// SetVoided writes the void metadata fields only; lines are untouched.
	SetVoided(ctx context.Context, tx Transaction, entry *domain.JournalEntry) error
	ListVoided(ctx context.Context, limit, offset int) ([]*domain.JournalEntry, error)

	// Aggregations over posted, non-voided entries.
	TrialBalanceRows(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)
	AccountTotalsBefore(ctx context.Context, code string, before time.Time) (debits, credits int64, err error)
	ListLinesByAccount(ctx context.Context, code string, from, to time.Time) ([]domain.GeneralLedgerLine, error)
}

// ApprovalRuleRepository defines data access for approval rules.
type ApprovalRuleRepository interface {
	Create(ctx context.Context, rule *domain.ApprovalRule) error
	ListActiveByType(ctx context.Context, txType domain.EntryType) ([]*domain.ApprovalRule, error)
	List(ctx context.Context) ([]*domain.ApprovalRule, error)
}

// ApprovalRequestRepository defines data access for approval requests.
type ApprovalRequestRepository interface {
	Create(ctx context.Context, tx Transaction, request *domain.ApprovalRequest) error
	GetByID(ctx context.Context, id string) (*domain.ApprovalRequest, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.ApprovalRequest, error)
	SetReviewed(ctx context.Context, tx Transaction, id string, status domain.RequestStatus, reviewedBy string, notes string, reviewedAt time.Time) error
	ListPending(ctx context.Context, role domain.Role, limit, offset int) ([]*domain.ApprovalRequest, error)
}

// OpeningBalanceRepository defines data access for opening balances.
type OpeningBalanceRepository interface {
	Create(ctx context.Context, tx Transaction, balance *domain.OpeningBalance) error
	SumByYear(ctx context.Context, yearID string) (debits, credits int64, err error)
	MarkVerified(ctx context.Context, yearID string) error
	ListByYear(ctx context.Context, yearID string) ([]*domain.OpeningBalance, error)
}

// ReconciliationRepository defines data access for bank statements, lines,
// matches, adjustments and reports.
type ReconciliationRepository interface {
	CreateStatement(ctx context.Context, tx Transaction, statement *domain.BankStatement, lines []domain.BankStatementLine) error
	GetStatement(ctx context.Context, id string) (*domain.BankStatement, error)
	GetLine(ctx context.Context, id string) (*domain.BankStatementLine, error)
	GetLineForUpdate(ctx context.Context, tx Transaction, id string) (*domain.BankStatementLine, error)
	SetLineMatch(ctx context.Context, tx Transaction, lineID string, matchedTransactionID *string) error
	// MatchedTotals sums debits and credits over matched lines of a statement
	// and counts matched and unmatched lines.
	MatchedTotals(ctx context.Context, statementID string) (debits, credits int64, matched, unmatched int, err error)
	ListUnmatchedLines(ctx context.Context, from, to time.Time) ([]*domain.BankStatementLine, error)
	// ListUnmatchedEntries lists posted, non-voided journal entries in the
	// range that no statement line is matched to.
	ListUnmatchedEntries(ctx context.Context, from, to time.Time) ([]*domain.JournalEntry, error)
	CreateAdjustment(ctx context.Context, tx Transaction, adjustment *domain.ReconciliationAdjustment) error
	SaveReport(ctx context.Context, tx Transaction, report *domain.ReconciliationReport) error
}

// BudgetRepository defines data access for budget allocations.
type BudgetRepository interface {
	// Upsert inserts or replaces the allocation for its unique key.
	// tx may be nil for a direct, non-workflow write.
	Upsert(ctx context.Context, tx Transaction, allocation *domain.BudgetAllocation) error
	Get(ctx context.Context, code, fiscalYear, department string) (*domain.BudgetAllocation, error)
	// ActualSpend sums posted, non-voided debit lines against the key.
	ActualSpend(ctx context.Context, code, fiscalYear, department string) (int64, error)
}

// LegacyRepository reads the flat single-entry log. The log is an import
// format only; nothing ever writes back to it.
type LegacyRepository interface {
	// ListUnprocessed returns legacy rows with no journal entry referencing
	// them, ordered by ID, starting after afterID.
	ListUnprocessed(ctx context.Context, afterID int64, limit int) ([]*domain.LegacyTransaction, error)
	CountUnprocessed(ctx context.Context) (int64, error)
}

// VoidAuditRepository defines data access for void audit records.
type VoidAuditRepository interface {
	Create(ctx context.Context, tx Transaction, audit *domain.VoidAudit) error
	GetByEntry(ctx context.Context, entryID string) (*domain.VoidAudit, error)
	// AttachRecovery records the recovery outcome once; subsequent calls fail.
	AttachRecovery(ctx context.Context, auditID string, amount int64, notes, recordedBy string, at time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.VoidAudit, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient store failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations for report snapshots.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage at the HTTP boundary.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
