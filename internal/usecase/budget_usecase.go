package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/domain"
)

// BudgetUseCase tracks allocated versus actual spend per GL account, fiscal
// year and department, and validates proposed transactions against it.
// Allocation changes run through the same rule engine as journal entries;
// a matching BUDGET rule defers the write behind an approval request.
type BudgetUseCase struct {
	txManager   TransactionManager
	budgetRepo  BudgetRepository
	accountRepo GLAccountRepository
	requestRepo ApprovalRequestRepository
	ruleEngine  *RuleEngine
	idGen       IDGenerator
}

// NewBudgetUseCase creates a new BudgetUseCase.
func NewBudgetUseCase(
	txManager TransactionManager,
	budgetRepo BudgetRepository,
	accountRepo GLAccountRepository,
	requestRepo ApprovalRequestRepository,
	ruleEngine *RuleEngine,
	idGen IDGenerator,
) *BudgetUseCase {
	return &BudgetUseCase{
		txManager:   txManager,
		budgetRepo:  budgetRepo,
		accountRepo: accountRepo,
		requestRepo: requestRepo,
		ruleEngine:  ruleEngine,
		idGen:       idGen,
	}
}

// SetBudgetAllocationInput sets the allocation for one key. An empty
// department means the allocation covers all departments.
type SetBudgetAllocationInput struct {
	GLAccountCode string
	FiscalYear    string
	Department    string
	Allocated     int64
	SetBy         string
}

// SetBudgetAllocationResult reports what happened to the requested change.
type SetBudgetAllocationResult struct {
	Allocation       *domain.BudgetAllocation
	RequiresApproval bool
	RequestID        string
}

// SetBudgetAllocation upserts the allocation for its unique key. When a
// BUDGET approval rule matches the allocated amount, nothing is written;
// the change is parked on a pending request and applied on approval.
func (uc *BudgetUseCase) SetBudgetAllocation(ctx context.Context, input SetBudgetAllocationInput) (*SetBudgetAllocationResult, error) {
	if input.SetBy == "" {
		return nil, domain.ErrMissingActor
	}

	if input.Allocated < 0 {
		return nil, domain.ErrInvalidAmount
	}

	if _, err := uc.accountRepo.GetByCode(ctx, input.GLAccountCode); err != nil {
		return nil, err
	}

	input.Department = domain.NormalizeDepartment(input.Department)

	rule, err := uc.ruleEngine.Evaluate(ctx, domain.EntryTypeBudget, input.Allocated, 0)
	if err != nil {
		return nil, err
	}

	if rule != nil {
		return uc.deferBudgetChange(ctx, input, rule)
	}

	now := time.Now().UTC()

	allocation := &domain.BudgetAllocation{
		ID:            uc.idGen.Generate(),
		GLAccountCode: input.GLAccountCode,
		FiscalYear:    input.FiscalYear,
		Department:    input.Department,
		Allocated:     input.Allocated,
		SetBy:         input.SetBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.budgetRepo.Upsert(ctx, nil, allocation); err != nil {
		return nil, err
	}

	return &SetBudgetAllocationResult{Allocation: allocation}, nil
}

// deferBudgetChange parks the requested change on a pending approval
// request. The input round-trips through the request payload.
func (uc *BudgetUseCase) deferBudgetChange(ctx context.Context, input SetBudgetAllocationInput, rule *domain.ApprovalRule) (*SetBudgetAllocationResult, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}

	request := &domain.ApprovalRequest{
		ID:           uc.idGen.Generate(),
		Action:       domain.RequestActionBudgetChange,
		RequiredRole: rule.RequiredApproverRole,
		Status:       domain.RequestStatusPending,
		Reason: fmt.Sprintf("rule %q matched allocation %d for %s/%s/%s",
			rule.Name, input.Allocated, input.GLAccountCode, input.FiscalYear, input.Department),
		Payload:     payload,
		RequestedBy: input.SetBy,
		RequestedAt: time.Now().UTC(),
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.requestRepo.Create(ctx, tx, request); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &SetBudgetAllocationResult{RequiresApproval: true, RequestID: request.ID}, nil
}

// ExecuteBudgetChange applies an approved budget change inside the approval
// workflow's transaction. The payload is the deferred allocation input.
func (uc *BudgetUseCase) ExecuteBudgetChange(ctx context.Context, tx Transaction, payload []byte) error {
	var input SetBudgetAllocationInput
	if err := json.Unmarshal(payload, &input); err != nil {
		return fmt.Errorf("budget change payload: %w", err)
	}

	now := time.Now().UTC()

	return uc.budgetRepo.Upsert(ctx, tx, &domain.BudgetAllocation{
		ID:            uc.idGen.Generate(),
		GLAccountCode: input.GLAccountCode,
		FiscalYear:    input.FiscalYear,
		Department:    domain.NormalizeDepartment(input.Department),
		Allocated:     input.Allocated,
		SetBy:         input.SetBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
}

// Validate checks a proposed spend against the allocation for its key.
// Falls back to the all-departments allocation when no department-specific
// one exists; no allocation at all means the spend is unconstrained.
func (uc *BudgetUseCase) Validate(ctx context.Context, code string, amount int64, fiscalYear, department string) (*domain.BudgetCheck, error) {
	department = domain.NormalizeDepartment(department)

	allocation, err := uc.budgetRepo.Get(ctx, code, fiscalYear, department)
	if errors.Is(err, domain.ErrAllocationNotFound) && department != domain.AllDepartments {
		department = domain.AllDepartments
		allocation, err = uc.budgetRepo.Get(ctx, code, fiscalYear, department)
	}

	if errors.Is(err, domain.ErrAllocationNotFound) {
		return &domain.BudgetCheck{
			GLAccountCode: code,
			FiscalYear:    fiscalYear,
			Department:    department,
			Proposed:      amount,
			Allowed:       true,
		}, nil
	}

	if err != nil {
		return nil, err
	}

	actual, err := uc.budgetRepo.ActualSpend(ctx, code, fiscalYear, department)
	if err != nil {
		return nil, err
	}

	check := &domain.BudgetCheck{
		GLAccountCode: code,
		FiscalYear:    fiscalYear,
		Department:    department,
		Allocated:     allocation.Allocated,
		Actual:        actual,
		Proposed:      amount,
		Remaining:     allocation.Allocated - actual - amount,
		Allowed:       actual+amount <= allocation.Allocated,
	}

	return check, nil
}

// GetAllocation retrieves the allocation for a key.
func (uc *BudgetUseCase) GetAllocation(ctx context.Context, code, fiscalYear, department string) (*domain.BudgetAllocation, error) {
	return uc.budgetRepo.Get(ctx, code, fiscalYear, domain.NormalizeDepartment(department))
}
