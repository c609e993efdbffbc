package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/domain"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/usecase"
)

// MockTransaction is a no-op transaction that records commit/rollback calls.
type MockTransaction struct {
	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager hands out MockTransactions.
type MockTransactionManager struct {
	mu           sync.Mutex
	Transactions []*MockTransaction

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tx := &MockTransaction{}
	m.Transactions = append(m.Transactions, tx)

	return tx, nil
}

// MockIDGenerator returns sequential IDs.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (g *MockIDGenerator) Generate() string {
	if g.GenerateFunc != nil {
		return g.GenerateFunc()
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.next++

	return fmt.Sprintf("id-%d", g.next)
}

// MockGLAccountRepository is an in-memory GLAccountRepository.
type MockGLAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.GLAccount

	CreateFunc     func(ctx context.Context, account *domain.GLAccount) error
	GetByCodeFunc  func(ctx context.Context, code string) (*domain.GLAccount, error)
	GetByCodesFunc func(ctx context.Context, tx usecase.Transaction, codes []string) ([]*domain.GLAccount, error)
}

func NewMockGLAccountRepository() *MockGLAccountRepository {
	return &MockGLAccountRepository{accounts: make(map[string]*domain.GLAccount)}
}

// Seed installs an active account of the given type.
func (m *MockGLAccountRepository) Seed(code string, accountType domain.AccountType) {
	account, _ := domain.NewGLAccount(code, "Account "+code, accountType, time.Now().UTC())

	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[code] = account
}

// SeedDefaultChart installs the full default chart.
func (m *MockGLAccountRepository) SeedDefaultChart() {
	for _, s := range domain.DefaultChart() {
		m.Seed(s.Code, s.Type)
	}
}

func (m *MockGLAccountRepository) Create(ctx context.Context, account *domain.GLAccount) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[account.Code]; ok {
		return domain.ErrDuplicateAccountCode
	}

	m.accounts[account.Code] = account

	return nil
}

func (m *MockGLAccountRepository) CreateIfAbsent(ctx context.Context, tx usecase.Transaction, account *domain.GLAccount) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[account.Code]; ok {
		return false, nil
	}

	m.accounts[account.Code] = account

	return true, nil
}

func (m *MockGLAccountRepository) GetByCode(ctx context.Context, code string) (*domain.GLAccount, error) {
	if m.GetByCodeFunc != nil {
		return m.GetByCodeFunc(ctx, code)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	account, ok := m.accounts[code]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	return account, nil
}

func (m *MockGLAccountRepository) GetByCodes(ctx context.Context, tx usecase.Transaction, codes []string) ([]*domain.GLAccount, error) {
	if m.GetByCodesFunc != nil {
		return m.GetByCodesFunc(ctx, tx, codes)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var accounts []*domain.GLAccount
	for _, code := range codes {
		if account, ok := m.accounts[code]; ok {
			accounts = append(accounts, account)
		}
	}

	return accounts, nil
}

func (m *MockGLAccountRepository) Update(ctx context.Context, account *domain.GLAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.accounts[account.Code]; !ok {
		return domain.ErrAccountNotFound
	}

	m.accounts[account.Code] = account

	return nil
}

func (m *MockGLAccountRepository) SetActive(ctx context.Context, code string, active bool, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[code]
	if !ok {
		return domain.ErrAccountNotFound
	}

	account.IsActive = active
	account.UpdatedAt = updatedAt

	return nil
}

func (m *MockGLAccountRepository) List(ctx context.Context, includeInactive bool) ([]*domain.GLAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var accounts []*domain.GLAccount
	for _, account := range m.accounts {
		if includeInactive || account.IsActive {
			accounts = append(accounts, account)
		}
	}

	return accounts, nil
}

// MockJournalRepository is an in-memory JournalRepository.
type MockJournalRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.JournalEntry
	sources map[int64]string

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error
	TrialBalanceRowsFunc func(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)
}

func NewMockJournalRepository() *MockJournalRepository {
	return &MockJournalRepository{
		entries: make(map[string]*domain.JournalEntry),
		sources: make(map[int64]string),
	}
}

// Entries returns a snapshot of all stored entries.
func (m *MockJournalRepository) Entries() []*domain.JournalEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*domain.JournalEntry
	for _, e := range m.entries {
		out = append(out, e)
	}

	return out
}

func (m *MockJournalRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if entry.SourceLegacyTransactionID != nil {
		if _, ok := m.sources[*entry.SourceLegacyTransactionID]; ok {
			return domain.ErrDuplicateSource
		}
	}

	for _, existing := range m.entries {
		if existing.Ref == entry.Ref {
			return domain.ErrDuplicateRef
		}
	}

	if entry.SourceLegacyTransactionID != nil {
		m.sources[*entry.SourceLegacyTransactionID] = entry.ID
	}

	m.entries[entry.ID] = entry

	return nil
}

func (m *MockJournalRepository) GetByID(ctx context.Context, id string) (*domain.JournalEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[id]
	if !ok {
		return nil, domain.ErrEntryNotFound
	}

	return entry, nil
}

func (m *MockJournalRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.JournalEntry, error) {
	return m.GetByID(ctx, id)
}

func (m *MockJournalRepository) SetApproval(ctx context.Context, tx usecase.Transaction, id string, status domain.ApprovalStatus, posted bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[id]
	if !ok {
		return domain.ErrEntryNotFound
	}

	entry.ApprovalStatus = status
	entry.IsPosted = posted

	return nil
}

func (m *MockJournalRepository) SetVoided(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.entries[entry.ID]
	if !ok {
		return domain.ErrEntryNotFound
	}

	stored.IsVoided = entry.IsVoided
	stored.VoidedBy = entry.VoidedBy
	stored.VoidReason = entry.VoidReason
	stored.VoidedAt = entry.VoidedAt

	return nil
}

func (m *MockJournalRepository) ListVoided(ctx context.Context, limit, offset int) ([]*domain.JournalEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*domain.JournalEntry
	for _, e := range m.entries {
		if e.IsVoided {
			out = append(out, e)
		}
	}

	return out, nil
}

func (m *MockJournalRepository) TrialBalanceRows(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	if m.TrialBalanceRowsFunc != nil {
		return m.TrialBalanceRowsFunc(ctx, asOf)
	}

	return nil, nil
}

func (m *MockJournalRepository) AccountTotalsBefore(ctx context.Context, code string, before time.Time) (int64, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var debits, credits int64
	for _, e := range m.entries {
		if !e.IsPosted || e.IsVoided || !e.Date.Before(before) {
			continue
		}

		for i := range e.Lines {
			if e.Lines[i].GLAccountCode == code {
				debits += e.Lines[i].DebitAmount
				credits += e.Lines[i].CreditAmount
			}
		}
	}

	return debits, credits, nil
}

func (m *MockJournalRepository) ListLinesByAccount(ctx context.Context, code string, from, to time.Time) ([]domain.GeneralLedgerLine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []domain.GeneralLedgerLine
	for _, e := range m.entries {
		if !e.IsPosted || e.IsVoided || e.Date.Before(from) || e.Date.After(to) {
			continue
		}

		for i := range e.Lines {
			if e.Lines[i].GLAccountCode == code {
				out = append(out, domain.GeneralLedgerLine{
					EntryID:      e.ID,
					EntryRef:     e.Ref,
					Date:         e.Date,
					EntryType:    e.Type,
					Description:  e.Description,
					DebitAmount:  e.Lines[i].DebitAmount,
					CreditAmount: e.Lines[i].CreditAmount,
				})
			}
		}
	}

	return out, nil
}

// MockApprovalRuleRepository is an in-memory ApprovalRuleRepository.
type MockApprovalRuleRepository struct {
	mu    sync.RWMutex
	rules []*domain.ApprovalRule

	ListActiveByTypeFunc func(ctx context.Context, txType domain.EntryType) ([]*domain.ApprovalRule, error)
}

func NewMockApprovalRuleRepository() *MockApprovalRuleRepository {
	return &MockApprovalRuleRepository{}
}

func (m *MockApprovalRuleRepository) Create(ctx context.Context, rule *domain.ApprovalRule) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rules = append(m.rules, rule)

	return nil
}

func (m *MockApprovalRuleRepository) ListActiveByType(ctx context.Context, txType domain.EntryType) ([]*domain.ApprovalRule, error) {
	if m.ListActiveByTypeFunc != nil {
		return m.ListActiveByTypeFunc(ctx, txType)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*domain.ApprovalRule
	for _, r := range m.rules {
		if r.IsActive && r.TransactionType == txType {
			out = append(out, r)
		}
	}

	return out, nil
}

func (m *MockApprovalRuleRepository) List(ctx context.Context) ([]*domain.ApprovalRule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]*domain.ApprovalRule(nil), m.rules...), nil
}

// MockApprovalRequestRepository is an in-memory ApprovalRequestRepository.
type MockApprovalRequestRepository struct {
	mu       sync.RWMutex
	requests map[string]*domain.ApprovalRequest

	CreateFunc func(ctx context.Context, tx usecase.Transaction, request *domain.ApprovalRequest) error
}

func NewMockApprovalRequestRepository() *MockApprovalRequestRepository {
	return &MockApprovalRequestRepository{requests: make(map[string]*domain.ApprovalRequest)}
}

func (m *MockApprovalRequestRepository) Create(ctx context.Context, tx usecase.Transaction, request *domain.ApprovalRequest) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, request)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests[request.ID] = request

	return nil
}

func (m *MockApprovalRequestRepository) GetByID(ctx context.Context, id string) (*domain.ApprovalRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	request, ok := m.requests[id]
	if !ok {
		return nil, domain.ErrRequestNotFound
	}

	return request, nil
}

func (m *MockApprovalRequestRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.ApprovalRequest, error) {
	return m.GetByID(ctx, id)
}

func (m *MockApprovalRequestRepository) SetReviewed(ctx context.Context, tx usecase.Transaction, id string, status domain.RequestStatus, reviewedBy, notes string, reviewedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	request, ok := m.requests[id]
	if !ok {
		return domain.ErrRequestNotFound
	}

	request.Status = status
	request.ReviewedBy = &reviewedBy
	request.ReviewNotes = &notes
	request.ReviewedAt = &reviewedAt

	return nil
}

func (m *MockApprovalRequestRepository) ListPending(ctx context.Context, role domain.Role, limit, offset int) ([]*domain.ApprovalRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*domain.ApprovalRequest
	for _, r := range m.requests {
		if r.Status == domain.RequestStatusPending && r.RequiredRole == role {
			out = append(out, r)
		}
	}

	return out, nil
}

// MockVoidAuditRepository is an in-memory VoidAuditRepository.
type MockVoidAuditRepository struct {
	mu     sync.RWMutex
	audits map[string]*domain.VoidAudit
}

func NewMockVoidAuditRepository() *MockVoidAuditRepository {
	return &MockVoidAuditRepository{audits: make(map[string]*domain.VoidAudit)}
}

func (m *MockVoidAuditRepository) Create(ctx context.Context, tx usecase.Transaction, audit *domain.VoidAudit) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.audits[audit.ID] = audit

	return nil
}

func (m *MockVoidAuditRepository) GetByEntry(ctx context.Context, entryID string) (*domain.VoidAudit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, a := range m.audits {
		if a.JournalEntryID == entryID {
			return a, nil
		}
	}

	return nil, domain.ErrEntryNotFound
}

func (m *MockVoidAuditRepository) AttachRecovery(ctx context.Context, auditID string, amount int64, notes, recordedBy string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	audit, ok := m.audits[auditID]
	if !ok {
		return domain.ErrEntryNotFound
	}

	if audit.RecoveredAt != nil {
		return domain.ErrEntryNotFound
	}

	audit.RecoveredAmount = &amount
	audit.RecoveryNotes = &notes
	audit.RecoveredBy = &recordedBy
	audit.RecoveredAt = &at

	return nil
}

func (m *MockVoidAuditRepository) List(ctx context.Context, limit, offset int) ([]*domain.VoidAudit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*domain.VoidAudit
	for _, a := range m.audits {
		out = append(out, a)
	}

	return out, nil
}

// MockOpeningBalanceRepository is an in-memory OpeningBalanceRepository.
type MockOpeningBalanceRepository struct {
	mu       sync.RWMutex
	balances []*domain.OpeningBalance
	verified map[string]bool
}

func NewMockOpeningBalanceRepository() *MockOpeningBalanceRepository {
	return &MockOpeningBalanceRepository{verified: make(map[string]bool)}
}

func (m *MockOpeningBalanceRepository) Create(ctx context.Context, tx usecase.Transaction, balance *domain.OpeningBalance) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.balances = append(m.balances, balance)

	return nil
}

func (m *MockOpeningBalanceRepository) SumByYear(ctx context.Context, yearID string) (int64, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var debits, credits int64
	for _, b := range m.balances {
		if b.AcademicYearID == yearID {
			debits += b.DebitAmount
			credits += b.CreditAmount
		}
	}

	return debits, credits, nil
}

func (m *MockOpeningBalanceRepository) MarkVerified(ctx context.Context, yearID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.verified[yearID] = true

	return nil
}

// Verified reports whether a year was marked verified.
func (m *MockOpeningBalanceRepository) Verified(yearID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.verified[yearID]
}

func (m *MockOpeningBalanceRepository) ListByYear(ctx context.Context, yearID string) ([]*domain.OpeningBalance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*domain.OpeningBalance
	for _, b := range m.balances {
		if b.AcademicYearID == yearID {
			out = append(out, b)
		}
	}

	return out, nil
}

// MockBudgetRepository is an in-memory BudgetRepository.
type MockBudgetRepository struct {
	mu          sync.RWMutex
	allocations map[string]*domain.BudgetAllocation
	spend       map[string]int64
}

func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		allocations: make(map[string]*domain.BudgetAllocation),
		spend:       make(map[string]int64),
	}
}

func budgetKey(code, fy, dept string) string {
	return code + "|" + fy + "|" + dept
}

// SetActualSpend installs derived spend for a key.
func (m *MockBudgetRepository) SetActualSpend(code, fy, dept string, amount int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.spend[budgetKey(code, fy, dept)] = amount
}

func (m *MockBudgetRepository) Upsert(ctx context.Context, tx usecase.Transaction, allocation *domain.BudgetAllocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.allocations[budgetKey(allocation.GLAccountCode, allocation.FiscalYear, allocation.Department)] = allocation

	return nil
}

func (m *MockBudgetRepository) Get(ctx context.Context, code, fiscalYear, department string) (*domain.BudgetAllocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	allocation, ok := m.allocations[budgetKey(code, fiscalYear, department)]
	if !ok {
		return nil, domain.ErrAllocationNotFound
	}

	return allocation, nil
}

func (m *MockBudgetRepository) ActualSpend(ctx context.Context, code, fiscalYear, department string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.spend[budgetKey(code, fiscalYear, department)], nil
}

// MockLegacyRepository is an in-memory LegacyRepository. Processed state is
// tracked by the caller marking IDs via MarkProcessed, mirroring how the
// real repository anti-joins against journal entries.
type MockLegacyRepository struct {
	mu        sync.RWMutex
	rows      []*domain.LegacyTransaction
	processed map[int64]bool
}

func NewMockLegacyRepository(rows ...*domain.LegacyTransaction) *MockLegacyRepository {
	return &MockLegacyRepository{rows: rows, processed: make(map[int64]bool)}
}

// MarkProcessed flags legacy IDs as having journal entries.
func (m *MockLegacyRepository) MarkProcessed(ids ...int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range ids {
		m.processed[id] = true
	}
}

func (m *MockLegacyRepository) ListUnprocessed(ctx context.Context, afterID int64, limit int) ([]*domain.LegacyTransaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*domain.LegacyTransaction
	for _, row := range m.rows {
		if row.ID <= afterID || m.processed[row.ID] {
			continue
		}

		out = append(out, row)
		if len(out) >= limit {
			break
		}
	}

	return out, nil
}

func (m *MockLegacyRepository) CountUnprocessed(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var count int64
	for _, row := range m.rows {
		if !m.processed[row.ID] {
			count++
		}
	}

	return count, nil
}

// MockReconciliationRepository is an in-memory ReconciliationRepository.
type MockReconciliationRepository struct {
	mu          sync.RWMutex
	statements  map[string]*domain.BankStatement
	lines       map[string]*domain.BankStatementLine
	adjustments []*domain.ReconciliationAdjustment
	reports     []*domain.ReconciliationReport
}

func NewMockReconciliationRepository() *MockReconciliationRepository {
	return &MockReconciliationRepository{
		statements: make(map[string]*domain.BankStatement),
		lines:      make(map[string]*domain.BankStatementLine),
	}
}

func (m *MockReconciliationRepository) CreateStatement(ctx context.Context, tx usecase.Transaction, statement *domain.BankStatement, lines []domain.BankStatementLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.statements[statement.ID] = statement
	for i := range lines {
		line := lines[i]
		m.lines[line.ID] = &line
	}

	return nil
}

func (m *MockReconciliationRepository) GetStatement(ctx context.Context, id string) (*domain.BankStatement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	statement, ok := m.statements[id]
	if !ok {
		return nil, domain.ErrStatementNotFound
	}

	return statement, nil
}

func (m *MockReconciliationRepository) GetLine(ctx context.Context, id string) (*domain.BankStatementLine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	line, ok := m.lines[id]
	if !ok {
		return nil, domain.ErrLineNotFound
	}

	return line, nil
}

func (m *MockReconciliationRepository) GetLineForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.BankStatementLine, error) {
	return m.GetLine(ctx, id)
}

func (m *MockReconciliationRepository) SetLineMatch(ctx context.Context, tx usecase.Transaction, lineID string, matchedTransactionID *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	line, ok := m.lines[lineID]
	if !ok {
		return domain.ErrLineNotFound
	}

	// Mirrors the partial unique index on matched_transaction_id.
	if matchedTransactionID != nil {
		for id, other := range m.lines {
			if id != lineID && other.MatchedTransactionID != nil && *other.MatchedTransactionID == *matchedTransactionID {
				return domain.ErrEntryAlreadyMatched
			}
		}
	}

	line.MatchedTransactionID = matchedTransactionID
	line.IsMatched = matchedTransactionID != nil

	return nil
}

func (m *MockReconciliationRepository) MatchedTotals(ctx context.Context, statementID string) (int64, int64, int, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var debits, credits int64
	var matched, unmatched int

	for _, line := range m.lines {
		if line.StatementID != statementID {
			continue
		}

		if line.IsMatched {
			matched++
			debits += line.DebitAmount
			credits += line.CreditAmount
		} else {
			unmatched++
		}
	}

	return debits, credits, matched, unmatched, nil
}

func (m *MockReconciliationRepository) ListUnmatchedLines(ctx context.Context, from, to time.Time) ([]*domain.BankStatementLine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*domain.BankStatementLine
	for _, line := range m.lines {
		if !line.IsMatched && !line.Date.Before(from) && !line.Date.After(to) {
			out = append(out, line)
		}
	}

	return out, nil
}

func (m *MockReconciliationRepository) ListUnmatchedEntries(ctx context.Context, from, to time.Time) ([]*domain.JournalEntry, error) {
	return nil, nil
}

func (m *MockReconciliationRepository) CreateAdjustment(ctx context.Context, tx usecase.Transaction, adjustment *domain.ReconciliationAdjustment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.adjustments = append(m.adjustments, adjustment)

	return nil
}

func (m *MockReconciliationRepository) SaveReport(ctx context.Context, tx usecase.Transaction, report *domain.ReconciliationReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reports = append(m.reports, report)

	return nil
}

// Reports returns the saved reconciliation reports.
func (m *MockReconciliationRepository) Reports() []*domain.ReconciliationReport {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]*domain.ReconciliationReport(nil), m.reports...)
}

// MockCache is an in-memory Cache.
type MockCache struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMockCache() *MockCache {
	return &MockCache{values: make(map[string]string)}
}

func (c *MockCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.values[key], nil
}

func (c *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.values[key] = value

	return nil
}

func (c *MockCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.values, key)

	return nil
}
