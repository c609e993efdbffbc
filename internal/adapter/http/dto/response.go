package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/domain"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/usecase"
)

func toMajorUnits(minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Shift(-2)
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// GLAccountResponse represents a chart account in API responses.
type GLAccountResponse struct {
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	NormalBalance string    `json:"normal_balance"`
	ParentCode    *string   `json:"parent_code,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// GLAccountFromDomain converts a domain account to a response.
func GLAccountFromDomain(a *domain.GLAccount) *GLAccountResponse {
	return &GLAccountResponse{
		Code:          a.Code,
		Name:          a.Name,
		Type:          string(a.Type),
		NormalBalance: string(a.NormalBalance),
		ParentCode:    a.ParentCode,
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// GLAccountsFromDomain converts domain accounts to responses.
func GLAccountsFromDomain(accounts []*domain.GLAccount) []*GLAccountResponse {
	result := make([]*GLAccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = GLAccountFromDomain(a)
	}
	return result
}

// ListGLAccountsResponse wraps an account listing.
type ListGLAccountsResponse struct {
	Accounts []*GLAccountResponse `json:"accounts"`
	Total    int64                `json:"total"`
}

// JournalLineResponse represents one entry line in API responses.
type JournalLineResponse struct {
	LineNumber    int             `json:"line_number"`
	GLAccountCode string          `json:"gl_account_code"`
	DebitAmount   decimal.Decimal `json:"debit_amount"`
	CreditAmount  decimal.Decimal `json:"credit_amount"`
	Description   string          `json:"description,omitempty"`
}

// JournalEntryResponse represents a journal entry in API responses.
type JournalEntryResponse struct {
	ID             string                `json:"id"`
	Ref            string                `json:"ref"`
	Date           time.Time             `json:"date"`
	Type           string                `json:"type"`
	Description    string                `json:"description"`
	StudentID      *string               `json:"student_id,omitempty"`
	StaffID        *string               `json:"staff_id,omitempty"`
	TermID         *string               `json:"term_id,omitempty"`
	Department     *string               `json:"department,omitempty"`
	IsPosted       bool                  `json:"is_posted"`
	IsVoided       bool                  `json:"is_voided"`
	VoidedBy       *string               `json:"voided_by,omitempty"`
	VoidReason     *string               `json:"void_reason,omitempty"`
	VoidedAt       *time.Time            `json:"voided_at,omitempty"`
	ApprovalStatus string                `json:"approval_status"`
	CreatedBy      string                `json:"created_by"`
	CreatedAt      time.Time             `json:"created_at"`
	Lines          []JournalLineResponse `json:"lines"`
}

// JournalEntryFromDomain converts a domain entry to a response.
func JournalEntryFromDomain(e *domain.JournalEntry) *JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{
			LineNumber:    l.LineNumber,
			GLAccountCode: l.GLAccountCode,
			DebitAmount:   toMajorUnits(l.DebitAmount),
			CreditAmount:  toMajorUnits(l.CreditAmount),
			Description:   l.Description,
		}
	}

	return &JournalEntryResponse{
		ID:             e.ID,
		Ref:            e.Ref,
		Date:           e.Date,
		Type:           string(e.Type),
		Description:    e.Description,
		StudentID:      e.StudentID,
		StaffID:        e.StaffID,
		TermID:         e.TermID,
		Department:     e.Department,
		IsPosted:       e.IsPosted,
		IsVoided:       e.IsVoided,
		VoidedBy:       e.VoidedBy,
		VoidReason:     e.VoidReason,
		VoidedAt:       e.VoidedAt,
		ApprovalStatus: string(e.ApprovalStatus),
		CreatedBy:      e.CreatedBy,
		CreatedAt:      e.CreatedAt,
		Lines:          lines,
	}
}

// JournalEntriesFromDomain converts domain entries to responses.
func JournalEntriesFromDomain(entries []*domain.JournalEntry) []*JournalEntryResponse {
	result := make([]*JournalEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = JournalEntryFromDomain(e)
	}
	return result
}

// BudgetCheckResponse represents the outcome of a budget validation.
type BudgetCheckResponse struct {
	GLAccountCode string          `json:"gl_account_code"`
	FiscalYear    string          `json:"fiscal_year"`
	Department    string          `json:"department"`
	Allocated     decimal.Decimal `json:"allocated"`
	Actual        decimal.Decimal `json:"actual"`
	Proposed      decimal.Decimal `json:"proposed"`
	Remaining     decimal.Decimal `json:"remaining"`
	Allowed       bool            `json:"allowed"`
}

// BudgetCheckFromDomain converts a domain budget check to a response.
func BudgetCheckFromDomain(c *domain.BudgetCheck) *BudgetCheckResponse {
	return &BudgetCheckResponse{
		GLAccountCode: c.GLAccountCode,
		FiscalYear:    c.FiscalYear,
		Department:    c.Department,
		Allocated:     toMajorUnits(c.Allocated),
		Actual:        toMajorUnits(c.Actual),
		Proposed:      toMajorUnits(c.Proposed),
		Remaining:     toMajorUnits(c.Remaining),
		Allowed:       c.Allowed,
	}
}

// CreateJournalEntryResponse reports what happened to a requested entry.
type CreateJournalEntryResponse struct {
	Entry            *JournalEntryResponse `json:"entry"`
	RequiresApproval bool                  `json:"requires_approval"`
	RequestID        string                `json:"request_id,omitempty"`
	BudgetWarning    *BudgetCheckResponse  `json:"budget_warning,omitempty"`
}

// CreateEntryResultFromUseCase converts a create result to a response.
func CreateEntryResultFromUseCase(res *usecase.CreateJournalEntryResult) *CreateJournalEntryResponse {
	out := &CreateJournalEntryResponse{
		Entry:            JournalEntryFromDomain(res.Entry),
		RequiresApproval: res.RequiresApproval,
		RequestID:        res.RequestID,
	}
	if res.BudgetWarning != nil {
		out.BudgetWarning = BudgetCheckFromDomain(res.BudgetWarning)
	}

	return out
}

// VoidJournalEntryResponse reports the outcome of a void attempt.
type VoidJournalEntryResponse struct {
	Voided           bool   `json:"voided"`
	RequiresApproval bool   `json:"requires_approval"`
	RequestID        string `json:"request_id,omitempty"`
	AuditID          string `json:"audit_id,omitempty"`
}

// TrialBalanceRowResponse is one account's aggregate.
type TrialBalanceRowResponse struct {
	AccountCode   string          `json:"account_code"`
	AccountName   string          `json:"account_name"`
	AccountType   string          `json:"account_type"`
	NormalBalance string          `json:"normal_balance"`
	TotalDebits   decimal.Decimal `json:"total_debits"`
	TotalCredits  decimal.Decimal `json:"total_credits"`
	Balance       decimal.Decimal `json:"balance"`
}

func trialBalanceRows(rows []domain.TrialBalanceRow) []TrialBalanceRowResponse {
	result := make([]TrialBalanceRowResponse, len(rows))
	for i, r := range rows {
		result[i] = TrialBalanceRowResponse{
			AccountCode:   r.AccountCode,
			AccountName:   r.AccountName,
			AccountType:   string(r.AccountType),
			NormalBalance: string(r.NormalBalance),
			TotalDebits:   toMajorUnits(r.TotalDebits),
			TotalCredits:  toMajorUnits(r.TotalCredits),
			Balance:       toMajorUnits(r.Balance),
		}
	}
	return result
}

// TrialBalanceResponse represents the trial balance report.
type TrialBalanceResponse struct {
	AsOf         time.Time                 `json:"as_of"`
	Rows         []TrialBalanceRowResponse `json:"rows"`
	TotalDebits  decimal.Decimal           `json:"total_debits"`
	TotalCredits decimal.Decimal           `json:"total_credits"`
	IsBalanced   bool                      `json:"is_balanced"`
}

// TrialBalanceFromDomain converts a domain trial balance to a response.
func TrialBalanceFromDomain(tb *domain.TrialBalance) *TrialBalanceResponse {
	return &TrialBalanceResponse{
		AsOf:         tb.AsOf,
		Rows:         trialBalanceRows(tb.Rows),
		TotalDebits:  toMajorUnits(tb.TotalDebits),
		TotalCredits: toMajorUnits(tb.TotalCredits),
		IsBalanced:   tb.IsBalanced,
	}
}

// BalanceSheetSectionResponse groups accounts of one type.
type BalanceSheetSectionResponse struct {
	Type  string                    `json:"type"`
	Rows  []TrialBalanceRowResponse `json:"rows"`
	Total decimal.Decimal           `json:"total"`
}

func balanceSheetSection(s domain.BalanceSheetSection) BalanceSheetSectionResponse {
	return BalanceSheetSectionResponse{
		Type:  string(s.Type),
		Rows:  trialBalanceRows(s.Rows),
		Total: toMajorUnits(s.Total),
	}
}

// BalanceSheetResponse represents the balance sheet report.
type BalanceSheetResponse struct {
	AsOf             time.Time                   `json:"as_of"`
	Assets           BalanceSheetSectionResponse `json:"assets"`
	Liabilities      BalanceSheetSectionResponse `json:"liabilities"`
	Equity           BalanceSheetSectionResponse `json:"equity"`
	RetainedEarnings decimal.Decimal             `json:"retained_earnings"`
	TotalAssets      decimal.Decimal             `json:"total_assets"`
	TotalLiabEquity  decimal.Decimal             `json:"total_liabilities_and_equity"`
	IsBalanced       bool                        `json:"is_balanced"`
}

// BalanceSheetFromDomain converts a domain balance sheet to a response.
func BalanceSheetFromDomain(bs *domain.BalanceSheet) *BalanceSheetResponse {
	return &BalanceSheetResponse{
		AsOf:             bs.AsOf,
		Assets:           balanceSheetSection(bs.Assets),
		Liabilities:      balanceSheetSection(bs.Liabilities),
		Equity:           balanceSheetSection(bs.Equity),
		RetainedEarnings: toMajorUnits(bs.RetainedEarnings),
		TotalAssets:      toMajorUnits(bs.TotalAssets),
		TotalLiabEquity:  toMajorUnits(bs.TotalLiabEquity),
		IsBalanced:       bs.IsBalanced,
	}
}

// GeneralLedgerLineResponse is one ledger line with its running balance.
type GeneralLedgerLineResponse struct {
	EntryID        string          `json:"entry_id"`
	EntryRef       string          `json:"entry_ref"`
	Date           time.Time       `json:"date"`
	EntryType      string          `json:"entry_type"`
	Description    string          `json:"description,omitempty"`
	DebitAmount    decimal.Decimal `json:"debit_amount"`
	CreditAmount   decimal.Decimal `json:"credit_amount"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}

// GeneralLedgerResponse is one account's activity over a date range.
type GeneralLedgerResponse struct {
	AccountCode    string                      `json:"account_code"`
	AccountName    string                      `json:"account_name"`
	From           time.Time                   `json:"from"`
	To             time.Time                   `json:"to"`
	OpeningBalance decimal.Decimal             `json:"opening_balance"`
	ClosingBalance decimal.Decimal             `json:"closing_balance"`
	Lines          []GeneralLedgerLineResponse `json:"lines"`
}

// GeneralLedgerFromDomain converts a domain general ledger to a response.
func GeneralLedgerFromDomain(gl *domain.GeneralLedger) *GeneralLedgerResponse {
	lines := make([]GeneralLedgerLineResponse, len(gl.Lines))
	for i, l := range gl.Lines {
		lines[i] = GeneralLedgerLineResponse{
			EntryID:        l.EntryID,
			EntryRef:       l.EntryRef,
			Date:           l.Date,
			EntryType:      string(l.EntryType),
			Description:    l.Description,
			DebitAmount:    toMajorUnits(l.DebitAmount),
			CreditAmount:   toMajorUnits(l.CreditAmount),
			RunningBalance: toMajorUnits(l.RunningBalance),
		}
	}

	return &GeneralLedgerResponse{
		AccountCode:    gl.AccountCode,
		AccountName:    gl.AccountName,
		From:           gl.From,
		To:             gl.To,
		OpeningBalance: toMajorUnits(gl.OpeningBalance),
		ClosingBalance: toMajorUnits(gl.ClosingBalance),
		Lines:          lines,
	}
}

// ApprovalRequestResponse represents an approval request in API responses.
type ApprovalRequestResponse struct {
	ID             string          `json:"id"`
	Action         string          `json:"action"`
	JournalEntryID string          `json:"journal_entry_id,omitempty"`
	RequiredRole   string          `json:"required_role"`
	Status         string          `json:"status"`
	Reason         string          `json:"reason,omitempty"`
	Payload        json.RawMessage `json:"payload,omitempty"`
	RequestedBy    string          `json:"requested_by"`
	RequestedAt    time.Time       `json:"requested_at"`
	ReviewedBy     *string         `json:"reviewed_by,omitempty"`
	ReviewNotes    *string         `json:"review_notes,omitempty"`
	ReviewedAt     *time.Time      `json:"reviewed_at,omitempty"`
}

// ApprovalRequestFromDomain converts a domain request to a response.
func ApprovalRequestFromDomain(r *domain.ApprovalRequest) *ApprovalRequestResponse {
	return &ApprovalRequestResponse{
		ID:             r.ID,
		Action:         string(r.Action),
		JournalEntryID: r.JournalEntryID,
		RequiredRole:   string(r.RequiredRole),
		Status:         string(r.Status),
		Reason:         r.Reason,
		Payload:        r.Payload,
		RequestedBy:    r.RequestedBy,
		RequestedAt:    r.RequestedAt,
		ReviewedBy:     r.ReviewedBy,
		ReviewNotes:    r.ReviewNotes,
		ReviewedAt:     r.ReviewedAt,
	}
}

// ApprovalRequestsFromDomain converts domain requests to responses.
func ApprovalRequestsFromDomain(requests []*domain.ApprovalRequest) []*ApprovalRequestResponse {
	result := make([]*ApprovalRequestResponse, len(requests))
	for i, r := range requests {
		result[i] = ApprovalRequestFromDomain(r)
	}
	return result
}

// BudgetAllocationResponse represents a budget allocation.
type BudgetAllocationResponse struct {
	ID            string          `json:"id"`
	GLAccountCode string          `json:"gl_account_code"`
	FiscalYear    string          `json:"fiscal_year"`
	Department    string          `json:"department"`
	Allocated     decimal.Decimal `json:"allocated"`
	SetBy         string          `json:"set_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BudgetAllocationFromDomain converts a domain allocation to a response.
func BudgetAllocationFromDomain(a *domain.BudgetAllocation) *BudgetAllocationResponse {
	return &BudgetAllocationResponse{
		ID:            a.ID,
		GLAccountCode: a.GLAccountCode,
		FiscalYear:    a.FiscalYear,
		Department:    a.Department,
		Allocated:     toMajorUnits(a.Allocated),
		SetBy:         a.SetBy,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// SetBudgetAllocationResponse reports what happened to a requested
// allocation change.
type SetBudgetAllocationResponse struct {
	Allocation       *BudgetAllocationResponse `json:"allocation,omitempty"`
	RequiresApproval bool                      `json:"requires_approval"`
	RequestID        string                    `json:"request_id,omitempty"`
}

// SetBudgetAllocationResultFromUseCase converts a set result to a response.
func SetBudgetAllocationResultFromUseCase(res *usecase.SetBudgetAllocationResult) *SetBudgetAllocationResponse {
	out := &SetBudgetAllocationResponse{
		RequiresApproval: res.RequiresApproval,
		RequestID:        res.RequestID,
	}
	if res.Allocation != nil {
		out.Allocation = BudgetAllocationFromDomain(res.Allocation)
	}

	return out
}

// ImportResultResponse summarizes one opening-balance import batch.
type ImportResultResponse struct {
	Imported     int             `json:"imported"`
	TotalDebits  decimal.Decimal `json:"total_debits"`
	TotalCredits decimal.Decimal `json:"total_credits"`
}

// ImportResultFromUseCase converts an import result to a response.
func ImportResultFromUseCase(r *usecase.ImportResult) *ImportResultResponse {
	return &ImportResultResponse{
		Imported:     r.Imported,
		TotalDebits:  toMajorUnits(r.TotalDebits),
		TotalCredits: toMajorUnits(r.TotalCredits),
	}
}

// OpeningBalanceSummaryResponse is the result of verifying a year's imports.
type OpeningBalanceSummaryResponse struct {
	AcademicYearID string          `json:"academic_year_id"`
	TotalDebits    decimal.Decimal `json:"total_debits"`
	TotalCredits   decimal.Decimal `json:"total_credits"`
	Variance       decimal.Decimal `json:"variance"`
	IsBalanced     bool            `json:"is_balanced"`
}

// OpeningBalanceSummaryFromDomain converts a domain summary to a response.
func OpeningBalanceSummaryFromDomain(s *domain.OpeningBalanceSummary) *OpeningBalanceSummaryResponse {
	return &OpeningBalanceSummaryResponse{
		AcademicYearID: s.AcademicYearID,
		TotalDebits:    toMajorUnits(s.TotalDebits),
		TotalCredits:   toMajorUnits(s.TotalCredits),
		Variance:       toMajorUnits(s.Variance),
		IsBalanced:     s.IsBalanced,
	}
}

// BankStatementResponse represents an imported bank statement.
type BankStatementResponse struct {
	ID              string          `json:"id"`
	BankAccountCode string          `json:"bank_account_code"`
	PeriodStart     time.Time       `json:"period_start"`
	PeriodEnd       time.Time       `json:"period_end"`
	OpeningBalance  decimal.Decimal `json:"opening_balance"`
	ClosingBalance  decimal.Decimal `json:"closing_balance"`
	ImportedBy      string          `json:"imported_by"`
	ImportedAt      time.Time       `json:"imported_at"`
}

// BankStatementFromDomain converts a domain statement to a response.
func BankStatementFromDomain(s *domain.BankStatement) *BankStatementResponse {
	return &BankStatementResponse{
		ID:              s.ID,
		BankAccountCode: s.BankAccountCode,
		PeriodStart:     s.PeriodStart,
		PeriodEnd:       s.PeriodEnd,
		OpeningBalance:  toMajorUnits(s.OpeningBalance),
		ClosingBalance:  toMajorUnits(s.ClosingBalance),
		ImportedBy:      s.ImportedBy,
		ImportedAt:      s.ImportedAt,
	}
}

// StatementLineResponse represents one statement row.
type StatementLineResponse struct {
	ID                   string          `json:"id"`
	StatementID          string          `json:"statement_id"`
	LineNumber           int             `json:"line_number"`
	Date                 time.Time       `json:"date"`
	Description          string          `json:"description,omitempty"`
	DebitAmount          decimal.Decimal `json:"debit_amount"`
	CreditAmount         decimal.Decimal `json:"credit_amount"`
	RunningBalance       decimal.Decimal `json:"running_balance"`
	IsMatched            bool            `json:"is_matched"`
	MatchedTransactionID *string         `json:"matched_transaction_id,omitempty"`
}

// StatementLineFromDomain converts a domain line to a response.
func StatementLineFromDomain(l *domain.BankStatementLine) *StatementLineResponse {
	return &StatementLineResponse{
		ID:                   l.ID,
		StatementID:          l.StatementID,
		LineNumber:           l.LineNumber,
		Date:                 l.Date,
		Description:          l.Description,
		DebitAmount:          toMajorUnits(l.DebitAmount),
		CreditAmount:         toMajorUnits(l.CreditAmount),
		RunningBalance:       toMajorUnits(l.RunningBalance),
		IsMatched:            l.IsMatched,
		MatchedTransactionID: l.MatchedTransactionID,
	}
}

// StatementLinesFromDomain converts domain lines to responses.
func StatementLinesFromDomain(lines []*domain.BankStatementLine) []*StatementLineResponse {
	result := make([]*StatementLineResponse, len(lines))
	for i, l := range lines {
		result[i] = StatementLineFromDomain(l)
	}
	return result
}

// ReconciliationReportResponse is the outcome of one reconciliation run.
type ReconciliationReportResponse struct {
	StatementID     string          `json:"statement_id"`
	BankAccountCode string          `json:"bank_account_code"`
	OpeningBalance  decimal.Decimal `json:"opening_balance"`
	TotalCredits    decimal.Decimal `json:"total_credits"`
	TotalDebits     decimal.Decimal `json:"total_debits"`
	ClosingBalance  decimal.Decimal `json:"closing_balance"`
	StatedClosing   decimal.Decimal `json:"stated_closing"`
	Variance        decimal.Decimal `json:"variance"`
	IsBalanced      bool            `json:"is_balanced"`
	MatchedLines    int             `json:"matched_lines"`
	UnmatchedLines  int             `json:"unmatched_lines"`
	RanBy           string          `json:"ran_by"`
	RanAt           time.Time       `json:"ran_at"`
}

// ReconciliationReportFromDomain converts a domain report to a response.
func ReconciliationReportFromDomain(r *domain.ReconciliationReport) *ReconciliationReportResponse {
	return &ReconciliationReportResponse{
		StatementID:     r.StatementID,
		BankAccountCode: r.BankAccountCode,
		OpeningBalance:  toMajorUnits(r.OpeningBalance),
		TotalCredits:    toMajorUnits(r.TotalCredits),
		TotalDebits:     toMajorUnits(r.TotalDebits),
		ClosingBalance:  toMajorUnits(r.ClosingBalance),
		StatedClosing:   toMajorUnits(r.StatedClosing),
		Variance:        toMajorUnits(r.Variance),
		IsBalanced:      r.IsBalanced,
		MatchedLines:    r.MatchedLines,
		UnmatchedLines:  r.UnmatchedLines,
		RanBy:           r.RanBy,
		RanAt:           r.RanAt,
	}
}

// AdjustmentResponse represents a recorded reconciliation adjustment.
type AdjustmentResponse struct {
	ID          string          `json:"id"`
	StatementID string          `json:"statement_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	RecordedBy  string          `json:"recorded_by"`
	RecordedAt  time.Time       `json:"recorded_at"`
}

// AdjustmentFromDomain converts a domain adjustment to a response.
func AdjustmentFromDomain(a *domain.ReconciliationAdjustment) *AdjustmentResponse {
	return &AdjustmentResponse{
		ID:          a.ID,
		StatementID: a.StatementID,
		Description: a.Description,
		Amount:      toMajorUnits(a.Amount),
		RecordedBy:  a.RecordedBy,
		RecordedAt:  a.RecordedAt,
	}
}

// UnmatchedReviewResponse lists unmatched lines and entries in a range.
type UnmatchedReviewResponse struct {
	StatementLines []*StatementLineResponse `json:"statement_lines"`
	JournalEntries []*JournalEntryResponse  `json:"journal_entries"`
}

// UnmatchedReviewFromUseCase converts an unmatched review to a response.
func UnmatchedReviewFromUseCase(r *usecase.UnmatchedReview) *UnmatchedReviewResponse {
	return &UnmatchedReviewResponse{
		StatementLines: StatementLinesFromDomain(r.StatementLines),
		JournalEntries: JournalEntriesFromDomain(r.JournalEntries),
	}
}

// BackfillResultResponse summarizes one backfill run.
type BackfillResultResponse struct {
	Processed int       `json:"processed"`
	Skipped   int       `json:"skipped"`
	Unmapped  []int64   `json:"unmapped,omitempty"`
	StartedAt time.Time `json:"started_at"`
	Duration  string    `json:"duration"`
}

// BackfillResultFromUseCase converts a backfill result to a response.
func BackfillResultFromUseCase(r *usecase.BackfillResult) *BackfillResultResponse {
	return &BackfillResultResponse{
		Processed: r.Processed,
		Skipped:   r.Skipped,
		Unmapped:  r.Unmapped,
		StartedAt: r.StartedAt,
		Duration:  r.Duration.String(),
	}
}

// VoidAuditResponse is the void audit representation.
type VoidAuditResponse struct {
	ID                string           `json:"id"`
	JournalEntryID    string           `json:"journal_entry_id"`
	OriginalAmount    decimal.Decimal  `json:"original_amount"`
	Reason            string           `json:"reason"`
	VoidedBy          string           `json:"voided_by"`
	VoidedAt          time.Time        `json:"voided_at"`
	ApprovalRequestID *string          `json:"approval_request_id,omitempty"`
	RecoveredAmount   *decimal.Decimal `json:"recovered_amount,omitempty"`
	RecoveryNotes     *string          `json:"recovery_notes,omitempty"`
	RecoveredBy       *string          `json:"recovered_by,omitempty"`
	RecoveredAt       *time.Time       `json:"recovered_at,omitempty"`
}

// VoidAuditFromDomain converts a domain void audit to a response.
func VoidAuditFromDomain(a *domain.VoidAudit) *VoidAuditResponse {
	resp := &VoidAuditResponse{
		ID:                a.ID,
		JournalEntryID:    a.JournalEntryID,
		OriginalAmount:    toMajorUnits(a.OriginalAmount),
		Reason:            a.Reason,
		VoidedBy:          a.VoidedBy,
		VoidedAt:          a.VoidedAt,
		ApprovalRequestID: a.ApprovalRequestID,
		RecoveryNotes:     a.RecoveryNotes,
		RecoveredBy:       a.RecoveredBy,
		RecoveredAt:       a.RecoveredAt,
	}

	if a.RecoveredAmount != nil {
		recovered := toMajorUnits(*a.RecoveredAmount)
		resp.RecoveredAmount = &recovered
	}

	return resp
}

// VoidAuditsFromDomain converts a slice of void audits.
func VoidAuditsFromDomain(audits []*domain.VoidAudit) []*VoidAuditResponse {
	out := make([]*VoidAuditResponse, 0, len(audits))
	for _, a := range audits {
		out = append(out, VoidAuditFromDomain(a))
	}

	return out
}
