package domain

import "time"

// AllDepartments is the sentinel stored when an allocation is not scoped to a
// department. Normalizing to a sentinel keeps the uniqueness constraint on
// (code, fiscal year, department) simple.
const AllDepartments = "ALL_DEPARTMENTS"

// NormalizeDepartment maps an absent department to the sentinel.
func NormalizeDepartment(dept string) string {
	if dept == "" {
		return AllDepartments
	}

	return dept
}

// BudgetAllocation is the allocated spend for one (account, year, department)
// key. Actual spend is derived from posted journal lines, never stored here.
type BudgetAllocation struct {
	ID            string
	GLAccountCode string
	FiscalYear    string
	Department    string
	Allocated     int64
	SetBy         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BudgetCheck is the advisory result of validating a proposed transaction.
// The caller decides whether Allowed=false blocks the transaction.
type BudgetCheck struct {
	GLAccountCode string
	FiscalYear    string
	Department    string
	Allocated     int64
	Actual        int64
	Proposed      int64
	Remaining     int64
	Allowed       bool
}
