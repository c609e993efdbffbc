package usecase_test

import (
	"context"
	"testing"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/domain"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/usecase"
	"github.com/Lameck1/mwingi-school-erp-sub010/internal/usecase/mocks"
)

func intPtr(v int) *int { return &v }

func TestRuleEngine_Evaluate(t *testing.T) {
	tests := []struct {
		name       string
		rules      []*domain.ApprovalRule
		txType     domain.EntryType
		amount     int64
		ageInDays  int
		expectRole domain.Role
		expectNone bool
	}{
		{
			name:       "no rules means no approval",
			txType:     domain.EntryTypeExpense,
			amount:     1_000_00,
			expectNone: true,
		},
		{
			name: "amount below minimum does not match",
			rules: []*domain.ApprovalRule{
				{ID: "r1", TransactionType: domain.EntryTypeExpense, MinAmount: int64Ptr(500_00), RequiredApproverRole: domain.RoleBursar, IsActive: true},
			},
			txType:     domain.EntryTypeExpense,
			amount:     499_99,
			expectNone: true,
		},
		{
			name: "minimum is inclusive",
			rules: []*domain.ApprovalRule{
				{ID: "r1", TransactionType: domain.EntryTypeExpense, MinAmount: int64Ptr(500_00), RequiredApproverRole: domain.RoleBursar, IsActive: true},
			},
			txType:     domain.EntryTypeExpense,
			amount:     500_00,
			expectRole: domain.RoleBursar,
		},
		{
			name: "inactive rule ignored",
			rules: []*domain.ApprovalRule{
				{ID: "r1", TransactionType: domain.EntryTypeExpense, MinAmount: int64Ptr(100_00), RequiredApproverRole: domain.RoleBursar, IsActive: false},
			},
			txType:     domain.EntryTypeExpense,
			amount:     1_000_00,
			expectNone: true,
		},
		{
			name: "age threshold gates old voids",
			rules: []*domain.ApprovalRule{
				{ID: "r1", TransactionType: domain.EntryTypeVoid, DaysSinceTransaction: intPtr(30), RequiredApproverRole: domain.RoleDirector, IsActive: true},
			},
			txType:     domain.EntryTypeVoid,
			amount:     100_00,
			ageInDays:  45,
			expectRole: domain.RoleDirector,
		},
		{
			name: "recent void passes the age rule",
			rules: []*domain.ApprovalRule{
				{ID: "r1", TransactionType: domain.EntryTypeVoid, DaysSinceTransaction: intPtr(30), RequiredApproverRole: domain.RoleDirector, IsActive: true},
			},
			txType:     domain.EntryTypeVoid,
			amount:     100_00,
			ageInDays:  5,
			expectNone: true,
		},
		{
			name: "most restrictive role wins on overlap",
			rules: []*domain.ApprovalRule{
				{ID: "r1", TransactionType: domain.EntryTypeExpense, MinAmount: int64Ptr(100_00), RequiredApproverRole: domain.RoleBursar, IsActive: true},
				{ID: "r2", TransactionType: domain.EntryTypeExpense, MinAmount: int64Ptr(500_00), RequiredApproverRole: domain.RoleDirector, IsActive: true},
				{ID: "r3", TransactionType: domain.EntryTypeExpense, MinAmount: int64Ptr(200_00), RequiredApproverRole: domain.RoleHeadteacher, IsActive: true},
			},
			txType:     domain.EntryTypeExpense,
			amount:     600_00,
			expectRole: domain.RoleDirector,
		},
		{
			name: "band with maximum excludes larger amounts",
			rules: []*domain.ApprovalRule{
				{ID: "r1", TransactionType: domain.EntryTypeExpense, MinAmount: int64Ptr(100_00), MaxAmount: int64Ptr(500_00), RequiredApproverRole: domain.RoleBursar, IsActive: true},
			},
			txType:     domain.EntryTypeExpense,
			amount:     600_00,
			expectNone: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ruleRepo := mocks.NewMockApprovalRuleRepository()
			for _, rule := range tt.rules {
				if err := ruleRepo.Create(context.Background(), rule); err != nil {
					t.Fatalf("seed rule: %v", err)
				}
			}

			engine := usecase.NewRuleEngine(ruleRepo)

			matched, err := engine.Evaluate(context.Background(), tt.txType, tt.amount, tt.ageInDays)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.expectNone {
				if matched != nil {
					t.Fatalf("expected no match, got rule %s", matched.ID)
				}

				return
			}

			if matched == nil {
				t.Fatal("expected a matched rule, got nil")
			}

			if matched.RequiredApproverRole != tt.expectRole {
				t.Errorf("expected role %s, got %s", tt.expectRole, matched.RequiredApproverRole)
			}
		})
	}
}
