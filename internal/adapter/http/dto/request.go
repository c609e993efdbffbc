package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/domain"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/usecase"
)

// Amounts cross the API boundary as decimal major units (e.g. 150.50) and are
// stored internally as int64 minor units. Shift(2) after rounding to two
// places makes the conversion exact.
func toMinorUnits(d decimal.Decimal) int64 {
	return d.Round(2).Shift(2).IntPart()
}

// JournalLineRequest is one debit-or-credit leg of a requested entry.
type JournalLineRequest struct {
	GLAccountCode string          `json:"gl_account_code"`
	DebitAmount   decimal.Decimal `json:"debit_amount"`
	CreditAmount  decimal.Decimal `json:"credit_amount"`
	Description   string          `json:"description,omitempty"`
}

// CreateJournalEntryRequest represents a request to record a journal entry.
type CreateJournalEntryRequest struct {
	Type        string               `json:"type"`
	Date        *time.Time           `json:"date,omitempty"`
	Description string               `json:"description"`
	Ref         string               `json:"ref,omitempty"`
	StudentID   *string              `json:"student_id,omitempty"`
	StaffID     *string              `json:"staff_id,omitempty"`
	TermID      *string              `json:"term_id,omitempty"`
	Department  *string              `json:"department,omitempty"`
	Lines       []JournalLineRequest `json:"lines"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateJournalEntryRequest) ToUseCaseInput(createdBy string, enforceBudget bool) usecase.CreateJournalEntryInput {
	lines := make([]usecase.JournalLineInput, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = usecase.JournalLineInput{
			GLAccountCode: l.GLAccountCode,
			DebitAmount:   toMinorUnits(l.DebitAmount),
			CreditAmount:  toMinorUnits(l.CreditAmount),
			Description:   l.Description,
		}
	}

	var date time.Time
	if r.Date != nil {
		date = *r.Date
	}

	return usecase.CreateJournalEntryInput{
		Type:          domain.EntryType(r.Type),
		Date:          date,
		Description:   r.Description,
		Ref:           r.Ref,
		StudentID:     r.StudentID,
		StaffID:       r.StaffID,
		TermID:        r.TermID,
		Department:    r.Department,
		Lines:         lines,
		CreatedBy:     createdBy,
		EnforceBudget: enforceBudget,
	}
}

// VoidJournalEntryRequest represents a request to void a posted entry.
type VoidJournalEntryRequest struct {
	Reason string `json:"reason"`
}

// CreateGLAccountRequest represents a request to add a chart account.
type CreateGLAccountRequest struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	ParentCode *string `json:"parent_code,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateGLAccountRequest) ToUseCaseInput(createdBy string) usecase.CreateGLAccountInput {
	return usecase.CreateGLAccountInput{
		Code:       r.Code,
		Name:       r.Name,
		Type:       domain.AccountType(r.Type),
		ParentCode: r.ParentCode,
		CreatedBy:  createdBy,
	}
}

// UpdateGLAccountRequest represents a partial account update.
type UpdateGLAccountRequest struct {
	Name       *string `json:"name,omitempty"`
	ParentCode *string `json:"parent_code,omitempty"`
}

// ReviewRequest carries the reviewer's notes for an approval decision.
type ReviewRequest struct {
	Notes string `json:"notes,omitempty"`
}

// StudentBalanceItem is one student's pre-system balance.
type StudentBalanceItem struct {
	StudentID string          `json:"student_id"`
	Amount    decimal.Decimal `json:"amount"`
	Side      string          `json:"side"`
}

// ImportStudentBalancesRequest imports a batch of student opening balances.
type ImportStudentBalancesRequest struct {
	AcademicYearID string               `json:"academic_year_id"`
	Source         string               `json:"source"`
	Balances       []StudentBalanceItem `json:"balances"`
}

// ToUseCaseInput converts to use case input.
func (r *ImportStudentBalancesRequest) ToUseCaseInput() []usecase.StudentOpeningBalance {
	balances := make([]usecase.StudentOpeningBalance, len(r.Balances))
	for i, b := range r.Balances {
		balances[i] = usecase.StudentOpeningBalance{
			StudentID: b.StudentID,
			Amount:    toMinorUnits(b.Amount),
			Side:      domain.BalanceSide(b.Side),
		}
	}

	return balances
}

// GLBalanceItem is one account's pre-system balance.
type GLBalanceItem struct {
	GLAccountCode string          `json:"gl_account_code"`
	Amount        decimal.Decimal `json:"amount"`
	Side          string          `json:"side"`
}

// ImportGLBalancesRequest imports a batch of account opening balances.
type ImportGLBalancesRequest struct {
	AcademicYearID string          `json:"academic_year_id"`
	Source         string          `json:"source"`
	Balances       []GLBalanceItem `json:"balances"`
}

// ToUseCaseInput converts to use case input.
func (r *ImportGLBalancesRequest) ToUseCaseInput() []usecase.GLOpeningBalance {
	balances := make([]usecase.GLOpeningBalance, len(r.Balances))
	for i, b := range r.Balances {
		balances[i] = usecase.GLOpeningBalance{
			GLAccountCode: b.GLAccountCode,
			Amount:        toMinorUnits(b.Amount),
			Side:          domain.BalanceSide(b.Side),
		}
	}

	return balances
}

// StatementLineItem is one imported bank statement row.
type StatementLineItem struct {
	Date           time.Time       `json:"date"`
	Description    string          `json:"description"`
	DebitAmount    decimal.Decimal `json:"debit_amount"`
	CreditAmount   decimal.Decimal `json:"credit_amount"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}

// ImportStatementRequest represents a request to import a bank statement.
type ImportStatementRequest struct {
	BankAccountCode string              `json:"bank_account_code"`
	PeriodStart     time.Time           `json:"period_start"`
	PeriodEnd       time.Time           `json:"period_end"`
	OpeningBalance  decimal.Decimal     `json:"opening_balance"`
	ClosingBalance  decimal.Decimal     `json:"closing_balance"`
	Lines           []StatementLineItem `json:"lines"`
}

// ToUseCaseInput converts to use case input.
func (r *ImportStatementRequest) ToUseCaseInput(importedBy string) usecase.ImportStatementInput {
	lines := make([]usecase.StatementLineInput, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = usecase.StatementLineInput{
			Date:           l.Date,
			Description:    l.Description,
			DebitAmount:    toMinorUnits(l.DebitAmount),
			CreditAmount:   toMinorUnits(l.CreditAmount),
			RunningBalance: toMinorUnits(l.RunningBalance),
		}
	}

	return usecase.ImportStatementInput{
		BankAccountCode: r.BankAccountCode,
		PeriodStart:     r.PeriodStart,
		PeriodEnd:       r.PeriodEnd,
		OpeningBalance:  toMinorUnits(r.OpeningBalance),
		ClosingBalance:  toMinorUnits(r.ClosingBalance),
		Lines:           lines,
		ImportedBy:      importedBy,
	}
}

// MatchTransactionRequest matches a statement line to a journal entry.
type MatchTransactionRequest struct {
	JournalEntryID string `json:"journal_entry_id"`
}

// RecordAdjustmentRequest records an out-of-band reconciliation correction.
type RecordAdjustmentRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordAdjustmentRequest) ToUseCaseInput(statementID, recordedBy string) usecase.AdjustmentInput {
	return usecase.AdjustmentInput{
		StatementID: statementID,
		Description: r.Description,
		Amount:      toMinorUnits(r.Amount),
		RecordedBy:  recordedBy,
	}
}

// SetBudgetAllocationRequest sets the allocation for one budget key.
type SetBudgetAllocationRequest struct {
	GLAccountCode string          `json:"gl_account_code"`
	FiscalYear    string          `json:"fiscal_year"`
	Department    string          `json:"department,omitempty"`
	Allocated     decimal.Decimal `json:"allocated"`
}

// ToUseCaseInput converts to use case input.
func (r *SetBudgetAllocationRequest) ToUseCaseInput(setBy string) usecase.SetBudgetAllocationInput {
	return usecase.SetBudgetAllocationInput{
		GLAccountCode: r.GLAccountCode,
		FiscalYear:    r.FiscalYear,
		Department:    r.Department,
		Allocated:     toMinorUnits(r.Allocated),
		SetBy:         setBy,
	}
}

// ValidateBudgetRequest asks whether a proposed spend fits the allocation.
type ValidateBudgetRequest struct {
	GLAccountCode string          `json:"gl_account_code"`
	FiscalYear    string          `json:"fiscal_year"`
	Department    string          `json:"department,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
}

// RecordRecoveryRequest attaches a recovery outcome to a void audit.
type RecordRecoveryRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Notes  string          `json:"notes,omitempty"`
}

// AmountMinor returns the recovered amount in minor units.
func (r *RecordRecoveryRequest) AmountMinor() int64 {
	return toMinorUnits(r.Amount)
}
