package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/domain"
)

// ChartUseCase manages the chart of accounts.
type ChartUseCase struct {
	txManager   TransactionManager
	accountRepo GLAccountRepository
	idGen       IDGenerator
}

// NewChartUseCase creates a new ChartUseCase.
func NewChartUseCase(txManager TransactionManager, accountRepo GLAccountRepository, idGen IDGenerator) *ChartUseCase {
	return &ChartUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		idGen:       idGen,
	}
}

// CreateGLAccountInput describes a new account.
type CreateGLAccountInput struct {
	Code       string
	Name       string
	Type       domain.AccountType
	ParentCode *string
	CreatedBy  string
}

// CreateGLAccount adds one account to the chart.
func (uc *ChartUseCase) CreateGLAccount(ctx context.Context, input CreateGLAccountInput) (*domain.GLAccount, error) {
	if input.CreatedBy == "" {
		return nil, domain.ErrMissingActor
	}

	account, err := domain.NewGLAccount(input.Code, input.Name, input.Type, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	account.ParentCode = input.ParentCode

	if input.ParentCode != nil {
		if _, err := uc.accountRepo.GetByCode(ctx, *input.ParentCode); err != nil {
			return nil, fmt.Errorf("parent account: %w", err)
		}
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// UpdateGLAccountInput carries explicit updatable fields. Type and normal
// balance are fixed at creation; changing polarity would corrupt history.
type UpdateGLAccountInput struct {
	Code       string
	Name       *string
	ParentCode *string
	UpdatedBy  string
}

// UpdateGLAccount updates an account's mutable fields one by one.
func (uc *ChartUseCase) UpdateGLAccount(ctx context.Context, input UpdateGLAccountInput) (*domain.GLAccount, error) {
	if input.UpdatedBy == "" {
		return nil, domain.ErrMissingActor
	}

	account, err := uc.accountRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		account.Name = *input.Name
	}

	if input.ParentCode != nil {
		if *input.ParentCode == "" {
			account.ParentCode = nil
		} else {
			if _, err := uc.accountRepo.GetByCode(ctx, *input.ParentCode); err != nil {
				return nil, fmt.Errorf("parent account: %w", err)
			}

			account.ParentCode = input.ParentCode
		}
	}

	account.UpdatedAt = time.Now().UTC()

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// DeactivateGLAccount soft-deletes an account. Accounts are never removed;
// history keeps referencing them.
func (uc *ChartUseCase) DeactivateGLAccount(ctx context.Context, code, userID string) error {
	if userID == "" {
		return domain.ErrMissingActor
	}

	if _, err := uc.accountRepo.GetByCode(ctx, code); err != nil {
		return err
	}

	return uc.accountRepo.SetActive(ctx, code, false, time.Now().UTC())
}

// ReactivateGLAccount makes a deactivated account usable again.
func (uc *ChartUseCase) ReactivateGLAccount(ctx context.Context, code, userID string) error {
	if userID == "" {
		return domain.ErrMissingActor
	}

	if _, err := uc.accountRepo.GetByCode(ctx, code); err != nil {
		return err
	}

	return uc.accountRepo.SetActive(ctx, code, true, time.Now().UTC())
}

// ResolveAccount looks up an account by code.
func (uc *ChartUseCase) ResolveAccount(ctx context.Context, code string) (*domain.GLAccount, error) {
	return uc.accountRepo.GetByCode(ctx, code)
}

// IsActive reports whether an account exists and is active.
func (uc *ChartUseCase) IsActive(ctx context.Context, code string) (bool, error) {
	account, err := uc.accountRepo.GetByCode(ctx, code)
	if err != nil {
		return false, err
	}

	return account.IsActive, nil
}

// ListAccounts lists the chart.
func (uc *ChartUseCase) ListAccounts(ctx context.Context, includeInactive bool) ([]*domain.GLAccount, error) {
	return uc.accountRepo.List(ctx, includeInactive)
}

// SeedChart inserts the default chart, skipping codes that already exist.
// Safe to run on every startup.
func (uc *ChartUseCase) SeedChart(ctx context.Context) (created int, err error) {
	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	for _, seed := range domain.DefaultChart() {
		account, err := domain.NewGLAccount(seed.Code, seed.Name, seed.Type, now)
		if err != nil {
			return 0, err
		}

		account.ParentCode = seed.ParentCode

		inserted, err := uc.accountRepo.CreateIfAbsent(ctx, tx, account)
		if err != nil {
			return 0, err
		}

		if inserted {
			created++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	return created, nil
}
