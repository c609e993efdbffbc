package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/domain"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/infrastructure/metrics"
)

// BudgetChecker validates a proposed spend against its allocation. The check
// is advisory; CreateJournalEntry decides whether to block on it.
type BudgetChecker interface {
	Validate(ctx context.Context, code string, amount int64, fiscalYear, department string) (*domain.BudgetCheck, error)
}

// JournalUseCase is the journal engine: it creates, posts and voids balanced
// journal entries and serves the read aggregations over them.
type JournalUseCase struct {
	txManager   TransactionManager
	accountRepo GLAccountRepository
	journalRepo JournalRepository
	requestRepo ApprovalRequestRepository
	auditRepo   VoidAuditRepository
	ruleEngine  *RuleEngine
	budget      BudgetChecker
	idGen       IDGenerator
	cache       Cache
	metrics     *metrics.Metrics
}

// NewJournalUseCase creates a new JournalUseCase. cache, budget and metrics
// may be nil.
func NewJournalUseCase(
	txManager TransactionManager,
	accountRepo GLAccountRepository,
	journalRepo JournalRepository,
	requestRepo ApprovalRequestRepository,
	auditRepo VoidAuditRepository,
	ruleEngine *RuleEngine,
	budget BudgetChecker,
	idGen IDGenerator,
	cache Cache,
	m *metrics.Metrics,
) *JournalUseCase {
	return &JournalUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		requestRepo: requestRepo,
		auditRepo:   auditRepo,
		ruleEngine:  ruleEngine,
		budget:      budget,
		idGen:       idGen,
		cache:       cache,
		metrics:     m,
	}
}

// JournalLineInput is one line of a requested entry.
type JournalLineInput struct {
	GLAccountCode string
	DebitAmount   int64
	CreditAmount  int64
	Description   string
}

// CreateJournalEntryInput is the request to record one business event.
type CreateJournalEntryInput struct {
	Type        domain.EntryType
	Date        time.Time
	Description string
	Ref         string
	StudentID   *string
	StaffID     *string
	TermID      *string
	Department  *string
	Lines       []JournalLineInput
	CreatedBy   string
	// EnforceBudget turns the advisory budget check into a hard failure.
	EnforceBudget bool
}

// CreateJournalEntryResult reports what happened to the requested entry.
type CreateJournalEntryResult struct {
	Entry            *domain.JournalEntry
	RequiresApproval bool
	RequestID        string
	BudgetWarning    *domain.BudgetCheck
}

// CreateJournalEntry validates and persists a balanced entry. When an
// approval rule matches, the entry is persisted PENDING with an open approval
// request and is not posted until approved.
func (uc *JournalUseCase) CreateJournalEntry(ctx context.Context, input CreateJournalEntryInput) (*CreateJournalEntryResult, error) {
	now := time.Now().UTC()

	date := input.Date
	if date.IsZero() {
		date = now
	}

	ref := input.Ref
	if ref == "" {
		ref = "JE-" + uc.idGen.Generate()
	}

	entry := &domain.JournalEntry{
		ID:          uc.idGen.Generate(),
		Ref:         ref,
		Date:        date,
		Type:        input.Type,
		Description: input.Description,
		StudentID:   input.StudentID,
		StaffID:     input.StaffID,
		TermID:      input.TermID,
		Department:  input.Department,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   now,
	}

	for i, line := range input.Lines {
		entry.Lines = append(entry.Lines, domain.JournalEntryLine{
			LineNumber:    i + 1,
			GLAccountCode: line.GLAccountCode,
			DebitAmount:   line.DebitAmount,
			CreditAmount:  line.CreditAmount,
			Description:   line.Description,
		})
	}

	// All validation happens before any write.
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	accounts, err := uc.resolveActiveAccounts(ctx, tx, entry)
	if err != nil {
		return nil, err
	}

	result := &CreateJournalEntryResult{Entry: entry}

	if warning, err := uc.checkBudget(ctx, entry, accounts, input.EnforceBudget); err != nil {
		return nil, err
	} else if warning != nil {
		result.BudgetWarning = warning
	}

	rule, err := uc.ruleEngine.Evaluate(ctx, entry.Type, entry.TotalDebits(), entry.AgeInDays(now))
	if err != nil {
		return nil, err
	}

	if rule == nil {
		entry.ApprovalStatus = domain.ApprovalStatusApproved
		entry.IsPosted = true
	} else {
		entry.ApprovalStatus = domain.ApprovalStatusPending
	}

	if err := uc.journalRepo.Create(ctx, tx, entry); err != nil {
		return nil, err
	}

	if rule != nil {
		request := &domain.ApprovalRequest{
			ID:             uc.idGen.Generate(),
			Action:         domain.RequestActionPostEntry,
			JournalEntryID: entry.ID,
			RequiredRole:   rule.RequiredApproverRole,
			Status:         domain.RequestStatusPending,
			Reason:         fmt.Sprintf("rule %q matched amount %d", rule.Name, entry.TotalDebits()),
			RequestedBy:    input.CreatedBy,
			RequestedAt:    now,
		}

		if err := uc.requestRepo.Create(ctx, tx, request); err != nil {
			return nil, err
		}

		result.RequiresApproval = true
		result.RequestID = request.ID
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if entry.IsPosted {
		uc.invalidateReportCache(ctx)
	}

	if uc.metrics != nil {
		if entry.IsPosted {
			uc.metrics.EntriesPosted.WithLabelValues(string(entry.Type)).Inc()
			uc.metrics.EntryAmount.Observe(float64(entry.TotalDebits()))
		}

		if rule != nil {
			uc.metrics.ApprovalsRequested.WithLabelValues(string(domain.RequestActionPostEntry), string(rule.RequiredApproverRole)).Inc()
		}

		uc.metrics.PostingDuration.Observe(time.Since(now).Seconds())
	}

	return result, nil
}

// resolveActiveAccounts loads every referenced account inside the transaction
// and rejects unknown or inactive codes.
func (uc *JournalUseCase) resolveActiveAccounts(ctx context.Context, tx Transaction, entry *domain.JournalEntry) (map[string]*domain.GLAccount, error) {
	seen := make(map[string]bool)

	var codes []string
	for i := range entry.Lines {
		code := entry.Lines[i].GLAccountCode
		if !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}

	sort.Strings(codes)

	accounts, err := uc.accountRepo.GetByCodes(ctx, tx, codes)
	if err != nil {
		return nil, err
	}

	byCode := make(map[string]*domain.GLAccount, len(accounts))
	for _, a := range accounts {
		byCode[a.Code] = a
	}

	for _, code := range codes {
		account, ok := byCode[code]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, code)
		}

		if !account.IsActive {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountInactive, code)
		}
	}

	return byCode, nil
}

// checkBudget runs the advisory budget check over the entry's expense debits.
func (uc *JournalUseCase) checkBudget(ctx context.Context, entry *domain.JournalEntry, accounts map[string]*domain.GLAccount, enforce bool) (*domain.BudgetCheck, error) {
	if uc.budget == nil {
		return nil, nil
	}

	fiscalYear := strconv.Itoa(entry.Date.Year())

	department := ""
	if entry.Department != nil {
		department = *entry.Department
	}

	for i := range entry.Lines {
		line := &entry.Lines[i]
		if line.DebitAmount == 0 {
			continue
		}

		account := accounts[line.GLAccountCode]
		if account == nil || account.Type != domain.AccountTypeExpense {
			continue
		}

		check, err := uc.budget.Validate(ctx, line.GLAccountCode, line.DebitAmount, fiscalYear, department)
		if err != nil {
			return nil, err
		}

		if !check.Allowed {
			if uc.metrics != nil {
				uc.metrics.BudgetChecks.WithLabelValues("exceeded").Inc()
			}

			if enforce {
				return nil, fmt.Errorf("%w: account %s allocated %d, would reach %d",
					domain.ErrExceedsBudget, check.GLAccountCode, check.Allocated, check.Actual+check.Proposed)
			}

			return check, nil
		}

		if uc.metrics != nil {
			uc.metrics.BudgetChecks.WithLabelValues("allowed").Inc()
		}
	}

	return nil, nil
}

// VoidResult reports the outcome of a void attempt.
type VoidResult struct {
	Voided           bool
	RequiresApproval bool
	RequestID        string
	AuditID          string
}

// VoidJournalEntry voids an entry, or opens an approval request when a void
// rule matches the entry's amount and age. The entry's lines are never
// modified either way.
func (uc *JournalUseCase) VoidJournalEntry(ctx context.Context, entryID, reason, userID string) (*VoidResult, error) {
	if userID == "" {
		return nil, domain.ErrMissingActor
	}

	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	entry, err := uc.journalRepo.GetByIDForUpdate(ctx, tx, entryID)
	if err != nil {
		return nil, err
	}

	if entry.IsVoided {
		return nil, domain.ErrEntryAlreadyVoided
	}

	rule, err := uc.ruleEngine.Evaluate(ctx, domain.EntryTypeVoid, entry.TotalDebits(), entry.AgeInDays(now))
	if err != nil {
		return nil, err
	}

	if rule != nil {
		request := &domain.ApprovalRequest{
			ID:             uc.idGen.Generate(),
			Action:         domain.RequestActionVoidEntry,
			JournalEntryID: entry.ID,
			RequiredRole:   rule.RequiredApproverRole,
			Status:         domain.RequestStatusPending,
			Reason:         reason,
			RequestedBy:    userID,
			RequestedAt:    now,
		}

		if err := uc.requestRepo.Create(ctx, tx, request); err != nil {
			return nil, err
		}

		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}

		if uc.metrics != nil {
			uc.metrics.ApprovalsRequested.WithLabelValues(string(domain.RequestActionVoidEntry), string(rule.RequiredApproverRole)).Inc()
		}

		return &VoidResult{RequiresApproval: true, RequestID: request.ID}, nil
	}

	auditID, err := uc.executeVoid(ctx, tx, entry, reason, userID, nil, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.invalidateReportCache(ctx)

	if uc.metrics != nil {
		uc.metrics.EntriesVoided.Inc()
	}

	return &VoidResult{Voided: true, AuditID: auditID}, nil
}

// executeVoid applies the void flags and writes the audit row inside tx.
func (uc *JournalUseCase) executeVoid(ctx context.Context, tx Transaction, entry *domain.JournalEntry, reason, userID string, requestID *string, now time.Time) (string, error) {
	if err := entry.Void(userID, reason, now); err != nil {
		return "", err
	}

	if err := uc.journalRepo.SetVoided(ctx, tx, entry); err != nil {
		return "", err
	}

	audit := &domain.VoidAudit{
		ID:                uc.idGen.Generate(),
		JournalEntryID:    entry.ID,
		OriginalAmount:    entry.TotalDebits(),
		Reason:            reason,
		VoidedBy:          userID,
		VoidedAt:          now,
		ApprovalRequestID: requestID,
	}

	if err := uc.auditRepo.Create(ctx, tx, audit); err != nil {
		return "", err
	}

	return audit.ID, nil
}

// ExecutePost posts a pending entry. Called by the approval workflow inside
// its own transaction so the posting commits atomically with the approval.
func (uc *JournalUseCase) ExecutePost(ctx context.Context, tx Transaction, entryID string) error {
	entry, err := uc.journalRepo.GetByIDForUpdate(ctx, tx, entryID)
	if err != nil {
		return err
	}

	if entry.ApprovalStatus != domain.ApprovalStatusPending {
		return domain.ErrEntryNotPending
	}

	return uc.journalRepo.SetApproval(ctx, tx, entryID, domain.ApprovalStatusApproved, true)
}

// ExecuteReject marks a pending entry rejected. It is never posted.
func (uc *JournalUseCase) ExecuteReject(ctx context.Context, tx Transaction, entryID string) error {
	entry, err := uc.journalRepo.GetByIDForUpdate(ctx, tx, entryID)
	if err != nil {
		return err
	}

	if entry.ApprovalStatus != domain.ApprovalStatusPending {
		return domain.ErrEntryNotPending
	}

	return uc.journalRepo.SetApproval(ctx, tx, entryID, domain.ApprovalStatusRejected, false)
}

// ExecuteVoid voids an entry on behalf of an approved request, inside the
// workflow's transaction.
func (uc *JournalUseCase) ExecuteVoid(ctx context.Context, tx Transaction, entryID, reason, reviewerID, requestID string) error {
	entry, err := uc.journalRepo.GetByIDForUpdate(ctx, tx, entryID)
	if err != nil {
		return err
	}

	_, err = uc.executeVoid(ctx, tx, entry, reason, reviewerID, &requestID, time.Now().UTC())

	return err
}

// GetJournalEntry retrieves an entry with its lines.
func (uc *JournalUseCase) GetJournalEntry(ctx context.Context, id string) (*domain.JournalEntry, error) {
	return uc.journalRepo.GetByID(ctx, id)
}

// GetVoidedTransactions lists voided entries.
func (uc *JournalUseCase) GetVoidedTransactions(ctx context.Context, limit, offset int) ([]*domain.JournalEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	if limit > 500 {
		limit = 500
	}

	return uc.journalRepo.ListVoided(ctx, limit, offset)
}

// GetVoidAudit retrieves the audit record for a voided entry.
func (uc *JournalUseCase) GetVoidAudit(ctx context.Context, entryID string) (*domain.VoidAudit, error) {
	return uc.auditRepo.GetByEntry(ctx, entryID)
}

// ListVoidAudits lists audit records, most recent void first.
func (uc *JournalUseCase) ListVoidAudits(ctx context.Context, limit, offset int) ([]*domain.VoidAudit, error) {
	if limit <= 0 {
		limit = 50
	}

	if limit > 500 {
		limit = 500
	}

	return uc.auditRepo.List(ctx, limit, offset)
}

// RecordVoidRecovery attaches the recovery outcome to a voided entry's audit
// record. A recovery can be recorded once; there is no amendment path.
func (uc *JournalUseCase) RecordVoidRecovery(ctx context.Context, entryID string, amount int64, notes, userID string) (*domain.VoidAudit, error) {
	if userID == "" {
		return nil, domain.ErrMissingActor
	}

	if amount < 0 {
		return nil, domain.ErrInvalidAmount
	}

	audit, err := uc.auditRepo.GetByEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if audit.HasRecovery() {
		return nil, domain.ErrRecoveryAttached
	}

	if err := uc.auditRepo.AttachRecovery(ctx, audit.ID, amount, notes, userID, time.Now().UTC()); err != nil {
		return nil, err
	}

	return uc.auditRepo.GetByEntry(ctx, entryID)
}

// GetTrialBalance aggregates posted, non-voided entries per account. The
// current snapshot (zero asOf) is cached and invalidated on post and void.
func (uc *JournalUseCase) GetTrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error) {
	useCache := asOf.IsZero() && uc.cache != nil

	if useCache {
		if raw, err := uc.cache.Get(ctx, trialBalanceCacheKey); err == nil && raw != "" {
			var tb domain.TrialBalance
			if err := json.Unmarshal([]byte(raw), &tb); err == nil {
				return &tb, nil
			}
		}
	}

	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	rows, err := uc.journalRepo.TrialBalanceRows(ctx, asOf)
	if err != nil {
		return nil, err
	}

	tb := &domain.TrialBalance{AsOf: asOf, Rows: rows}
	for _, row := range rows {
		tb.TotalDebits += row.TotalDebits
		tb.TotalCredits += row.TotalCredits
	}

	tb.IsBalanced = tb.TotalDebits == tb.TotalCredits

	if useCache {
		if raw, err := json.Marshal(tb); err == nil {
			_ = uc.cache.Set(ctx, trialBalanceCacheKey, string(raw), trialBalanceCacheTTL)
		}
	}

	return tb, nil
}

// GetBalanceSheet groups the trial balance by account type. Revenue less
// expense rolls into equity as current-period retained earnings.
func (uc *JournalUseCase) GetBalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error) {
	tb, err := uc.GetTrialBalance(ctx, asOf)
	if err != nil {
		return nil, err
	}

	bs := &domain.BalanceSheet{
		AsOf:        tb.AsOf,
		Assets:      domain.BalanceSheetSection{Type: domain.AccountTypeAsset},
		Liabilities: domain.BalanceSheetSection{Type: domain.AccountTypeLiability},
		Equity:      domain.BalanceSheetSection{Type: domain.AccountTypeEquity},
	}

	for _, row := range tb.Rows {
		switch row.AccountType {
		case domain.AccountTypeAsset:
			bs.Assets.Rows = append(bs.Assets.Rows, row)
			bs.Assets.Total += row.Balance
		case domain.AccountTypeLiability:
			bs.Liabilities.Rows = append(bs.Liabilities.Rows, row)
			bs.Liabilities.Total += row.Balance
		case domain.AccountTypeEquity:
			bs.Equity.Rows = append(bs.Equity.Rows, row)
			bs.Equity.Total += row.Balance
		case domain.AccountTypeRevenue:
			bs.RetainedEarnings += row.Balance
		case domain.AccountTypeExpense:
			bs.RetainedEarnings -= row.Balance
		}
	}

	bs.TotalAssets = bs.Assets.Total
	bs.TotalLiabEquity = bs.Liabilities.Total + bs.Equity.Total + bs.RetainedEarnings
	bs.IsBalanced = bs.TotalAssets == bs.TotalLiabEquity

	return bs, nil
}

// GetGeneralLedger returns one account's activity over a date range with a
// running balance. Pure read; never mutates state.
func (uc *JournalUseCase) GetGeneralLedger(ctx context.Context, code string, from, to time.Time) (*domain.GeneralLedger, error) {
	account, err := uc.accountRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	debits, credits, err := uc.journalRepo.AccountTotalsBefore(ctx, code, from)
	if err != nil {
		return nil, err
	}

	opening := account.Balance(debits, credits)

	lines, err := uc.journalRepo.ListLinesByAccount(ctx, code, from, to)
	if err != nil {
		return nil, err
	}

	running := opening
	for i := range lines {
		if account.NormalBalance == domain.NormalBalanceDebit {
			running += lines[i].DebitAmount - lines[i].CreditAmount
		} else {
			running += lines[i].CreditAmount - lines[i].DebitAmount
		}

		lines[i].RunningBalance = running
	}

	return &domain.GeneralLedger{
		AccountCode:    account.Code,
		AccountName:    account.Name,
		From:           from,
		To:             to,
		OpeningBalance: opening,
		ClosingBalance: running,
		Lines:          lines,
	}, nil
}

// InvalidateReports drops the cached report snapshot. The approval workflow
// calls it after committing an executed post or void so the next report read
// recomputes.
func (uc *JournalUseCase) InvalidateReports(ctx context.Context) {
	uc.invalidateReportCache(ctx)
}

func (uc *JournalUseCase) invalidateReportCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}

	_ = uc.cache.Delete(ctx, trialBalanceCacheKey)
}
