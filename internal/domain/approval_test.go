package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/domain"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func TestApprovalRule_Matches(t *testing.T) {
	rule := domain.ApprovalRule{
		Name:                 "large void",
		TransactionType:      domain.EntryTypeVoid,
		MinAmount:            int64Ptr(50000),
		RequiredApproverRole: domain.RoleHeadteacher,
		IsActive:             true,
	}

	assert.True(t, rule.Matches(domain.EntryTypeVoid, 60000, 0))
	assert.True(t, rule.Matches(domain.EntryTypeVoid, 50000, 0), "min amount is inclusive")
	assert.False(t, rule.Matches(domain.EntryTypeVoid, 49999, 0))
	assert.False(t, rule.Matches(domain.EntryTypeExpense, 60000, 0), "type must match")

	inactive := rule
	inactive.IsActive = false
	assert.False(t, inactive.Matches(domain.EntryTypeVoid, 60000, 0))
}

func TestApprovalRule_Matches_Age(t *testing.T) {
	rule := domain.ApprovalRule{
		Name:                 "aged void",
		TransactionType:      domain.EntryTypeVoid,
		DaysSinceTransaction: intPtr(30),
		RequiredApproverRole: domain.RoleDirector,
		IsActive:             true,
	}

	assert.False(t, rule.Matches(domain.EntryTypeVoid, 100, 29))
	assert.True(t, rule.Matches(domain.EntryTypeVoid, 100, 30))
	assert.True(t, rule.Matches(domain.EntryTypeVoid, 100, 365))
}

func TestApprovalRule_Matches_MaxAmount(t *testing.T) {
	rule := domain.ApprovalRule{
		Name:                 "small payment review",
		TransactionType:      domain.EntryTypeTuitionPayment,
		MaxAmount:            int64Ptr(1000),
		RequiredApproverRole: domain.RoleBursar,
		IsActive:             true,
	}

	assert.True(t, rule.Matches(domain.EntryTypeTuitionPayment, 500, 0))
	assert.False(t, rule.Matches(domain.EntryTypeTuitionPayment, 1001, 0))
}

func TestMoreRestrictive(t *testing.T) {
	assert.Equal(t, domain.RoleDirector, domain.MoreRestrictive(domain.RoleBursar, domain.RoleDirector))
	assert.Equal(t, domain.RoleDirector, domain.MoreRestrictive(domain.RoleDirector, domain.RoleBursar))
	assert.Equal(t, domain.RoleHeadteacher, domain.MoreRestrictive(domain.RoleHeadteacher, domain.RoleBursar))
	assert.Equal(t, domain.RoleBursar, domain.MoreRestrictive(domain.RoleBursar, domain.RoleBursar))
}

func TestApprovalRequest_IsTerminal(t *testing.T) {
	req := domain.ApprovalRequest{Status: domain.RequestStatusPending}
	assert.False(t, req.IsTerminal())

	for _, s := range []domain.RequestStatus{
		domain.RequestStatusApproved,
		domain.RequestStatusRejected,
		domain.RequestStatusCancelled,
	} {
		req.Status = s
		assert.True(t, req.IsTerminal())
	}
}
