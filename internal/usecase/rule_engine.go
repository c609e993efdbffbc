package usecase

import (
	"context"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/domain"
)

// RuleEngine is the stateless approval-rule evaluator. Given a transaction's
// type, amount and age it decides whether governance approval is required and
// which role must grant it.
type RuleEngine struct {
	ruleRepo ApprovalRuleRepository
}

// NewRuleEngine creates a new RuleEngine.
func NewRuleEngine(ruleRepo ApprovalRuleRepository) *RuleEngine {
	return &RuleEngine{ruleRepo: ruleRepo}
}

// Evaluate returns the matched rule, or nil when no rule applies. When
// several rules match with different roles, the most restrictive role wins;
// the returned rule is the one carrying that role.
func (e *RuleEngine) Evaluate(ctx context.Context, txType domain.EntryType, amount int64, ageInDays int) (*domain.ApprovalRule, error) {
	rules, err := e.ruleRepo.ListActiveByType(ctx, txType)
	if err != nil {
		return nil, err
	}

	var matched *domain.ApprovalRule
	for _, rule := range rules {
		if !rule.Matches(txType, amount, ageInDays) {
			continue
		}

		if matched == nil {
			matched = rule
			continue
		}

		if domain.MoreRestrictive(matched.RequiredApproverRole, rule.RequiredApproverRole) != matched.RequiredApproverRole {
			matched = rule
		}
	}

	return matched, nil
}
