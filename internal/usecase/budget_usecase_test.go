package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/domain"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/usecase"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/usecase/mocks"
)

func newBudgetFixture() (*usecase.BudgetUseCase, *mocks.MockBudgetRepository, *mocks.MockApprovalRuleRepository, *mocks.MockApprovalRequestRepository) {
	accountRepo := mocks.NewMockGLAccountRepository()
	accountRepo.SeedDefaultChart()

	budgetRepo := mocks.NewMockBudgetRepository()
	ruleRepo := mocks.NewMockApprovalRuleRepository()
	requestRepo := mocks.NewMockApprovalRequestRepository()

	uc := usecase.NewBudgetUseCase(
		mocks.NewMockTransactionManager(),
		budgetRepo,
		accountRepo,
		requestRepo,
		usecase.NewRuleEngine(ruleRepo),
		mocks.NewMockIDGenerator(),
	)

	return uc, budgetRepo, ruleRepo, requestRepo
}

func TestBudgetUseCase_SetBudgetAllocation(t *testing.T) {
	uc, _, _, _ := newBudgetFixture()

	result, err := uc.SetBudgetAllocation(context.Background(), usecase.SetBudgetAllocationInput{
		GLAccountCode: domain.AccountSuppliesExpense,
		FiscalYear:    "2026",
		Department:    "",
		Allocated:     5_000_00,
		SetBy:         "director-1",
	})
	require.NoError(t, err)
	require.False(t, result.RequiresApproval)

	// Empty department normalizes to the all-departments sentinel.
	assert.Equal(t, domain.AllDepartments, result.Allocation.Department)
	assert.Equal(t, int64(5_000_00), result.Allocation.Allocated)

	_, err = uc.SetBudgetAllocation(context.Background(), usecase.SetBudgetAllocationInput{
		GLAccountCode: domain.AccountSuppliesExpense,
		FiscalYear:    "2026",
		Allocated:     -1,
		SetBy:         "director-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = uc.SetBudgetAllocation(context.Background(), usecase.SetBudgetAllocationInput{
		GLAccountCode: "9999",
		FiscalYear:    "2026",
		Allocated:     100,
		SetBy:         "director-1",
	})
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = uc.SetBudgetAllocation(context.Background(), usecase.SetBudgetAllocationInput{
		GLAccountCode: domain.AccountSuppliesExpense,
		FiscalYear:    "2026",
		Allocated:     100,
	})
	assert.ErrorIs(t, err, domain.ErrMissingActor)
}

func TestBudgetUseCase_Validate(t *testing.T) {
	uc, budgetRepo, _, _ := newBudgetFixture()

	_, err := uc.SetBudgetAllocation(context.Background(), usecase.SetBudgetAllocationInput{
		GLAccountCode: domain.AccountUtilitiesExpense,
		FiscalYear:    "2026",
		Department:    "BOARDING",
		Allocated:     1_000_00,
		SetBy:         "director-1",
	})
	require.NoError(t, err)

	budgetRepo.SetActualSpend(domain.AccountUtilitiesExpense, "2026", "BOARDING", 700_00)

	// Within the allocation.
	check, err := uc.Validate(context.Background(), domain.AccountUtilitiesExpense, 300_00, "2026", "BOARDING")
	require.NoError(t, err)
	assert.True(t, check.Allowed)
	assert.Equal(t, int64(0), check.Remaining)

	// One cent over.
	check, err = uc.Validate(context.Background(), domain.AccountUtilitiesExpense, 300_01, "2026", "BOARDING")
	require.NoError(t, err)
	assert.False(t, check.Allowed)
	assert.Equal(t, int64(-1), check.Remaining)
}

func TestBudgetUseCase_Validate_DepartmentFallback(t *testing.T) {
	uc, budgetRepo, _, _ := newBudgetFixture()

	// Only an all-departments allocation exists.
	_, err := uc.SetBudgetAllocation(context.Background(), usecase.SetBudgetAllocationInput{
		GLAccountCode: domain.AccountTransportExpense,
		FiscalYear:    "2026",
		Allocated:     2_000_00,
		SetBy:         "director-1",
	})
	require.NoError(t, err)

	budgetRepo.SetActualSpend(domain.AccountTransportExpense, "2026", domain.AllDepartments, 1_900_00)

	// A department-scoped spend falls back to the all-departments key.
	check, err := uc.Validate(context.Background(), domain.AccountTransportExpense, 200_00, "2026", "SPORTS")
	require.NoError(t, err)
	assert.False(t, check.Allowed)
	assert.Equal(t, domain.AllDepartments, check.Department)
}

func TestBudgetUseCase_Validate_NoAllocation(t *testing.T) {
	uc, _, _, _ := newBudgetFixture()

	// No allocation means the spend is unconstrained.
	check, err := uc.Validate(context.Background(), domain.AccountGeneralExpense, 9_999_99, "2026", "")
	require.NoError(t, err)
	assert.True(t, check.Allowed)
	assert.Equal(t, int64(0), check.Allocated)
}

func TestBudgetUseCase_SetBudgetAllocation_ApprovalGate(t *testing.T) {
	uc, _, ruleRepo, requestRepo := newBudgetFixture()

	_ = ruleRepo.Create(context.Background(), &domain.ApprovalRule{
		ID:                   "rule-budget",
		Name:                 "all budget changes",
		TransactionType:      domain.EntryTypeBudget,
		RequiredApproverRole: domain.RoleDirector,
		IsActive:             true,
	})

	result, err := uc.SetBudgetAllocation(context.Background(), usecase.SetBudgetAllocationInput{
		GLAccountCode: domain.AccountSuppliesExpense,
		FiscalYear:    "2026",
		Department:    "BOARDING",
		Allocated:     50_000_00,
		SetBy:         "bursar-1",
	})
	require.NoError(t, err)
	require.True(t, result.RequiresApproval)
	require.NotEmpty(t, result.RequestID)
	assert.Nil(t, result.Allocation)

	// Nothing is written while the request is pending.
	_, err = uc.GetAllocation(context.Background(), domain.AccountSuppliesExpense, "2026", "BOARDING")
	assert.ErrorIs(t, err, domain.ErrAllocationNotFound)

	request, err := requestRepo.GetByID(context.Background(), result.RequestID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestActionBudgetChange, request.Action)
	assert.Equal(t, domain.RoleDirector, request.RequiredRole)
	assert.Empty(t, request.JournalEntryID)
	assert.NotEmpty(t, request.Payload)

	// Approval applies the deferred allocation.
	approvalUC := usecase.NewApprovalUseCase(mocks.NewMockTransactionManager(), requestRepo, &recordingExecutor{}, uc, nil)

	_, err = approvalUC.ApproveRequest(context.Background(), result.RequestID, "director-1", domain.RoleDirector, "within plan")
	require.NoError(t, err)

	allocation, err := uc.GetAllocation(context.Background(), domain.AccountSuppliesExpense, "2026", "BOARDING")
	require.NoError(t, err)
	assert.Equal(t, int64(50_000_00), allocation.Allocated)
	assert.Equal(t, "bursar-1", allocation.SetBy)
}
