package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Lameck1/mwingi-school-erp-sub010/internal/domain"
)

// BackfillUseCase is the one-shot migration of the legacy flat transaction
// log into journal entries. It is idempotent solely through the uniqueness of
// the source reference: running it twice creates no duplicates, and it is
// safe to interrupt and re-run.
type BackfillUseCase struct {
	txManager   TransactionManager
	legacyRepo  LegacyRepository
	accountRepo GLAccountRepository
	journalRepo JournalRepository
	idGen       IDGenerator
	retrier     Retrier
	logger      *slog.Logger
}

// NewBackfillUseCase creates a new BackfillUseCase. retrier may be nil.
func NewBackfillUseCase(
	txManager TransactionManager,
	legacyRepo LegacyRepository,
	accountRepo GLAccountRepository,
	journalRepo JournalRepository,
	idGen IDGenerator,
	retrier Retrier,
	logger *slog.Logger,
) *BackfillUseCase {
	if logger == nil {
		logger = slog.Default()
	}

	return &BackfillUseCase{
		txManager:   txManager,
		legacyRepo:  legacyRepo,
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		idGen:       idGen,
		retrier:     retrier,
		logger:      logger,
	}
}

// BackfillResult summarizes one backfill run.
type BackfillResult struct {
	Processed int
	Skipped   int
	Unmapped  []int64
	StartedAt time.Time
	Duration  time.Duration
}

// Run walks the legacy log and creates one posted, approved journal entry per
// unprocessed row. Each row commits in its own transaction; duplicate source
// references are counted as skipped, unmappable categories are collected and
// reported without stopping the run.
func (uc *BackfillUseCase) Run(ctx context.Context, userID string) (*BackfillResult, error) {
	if userID == "" {
		return nil, domain.ErrMissingActor
	}

	started := time.Now().UTC()
	result := &BackfillResult{StartedAt: started}

	var afterID int64
	for {
		batch, err := uc.legacyRepo.ListUnprocessed(ctx, afterID, backfillBatchSize)
		if err != nil {
			return nil, err
		}

		if len(batch) == 0 {
			break
		}

		for _, legacy := range batch {
			afterID = legacy.ID

			err := uc.processRow(ctx, legacy, userID)
			switch {
			case err == nil:
				result.Processed++
			case errors.Is(err, domain.ErrDuplicateSource):
				result.Skipped++
			case errors.Is(err, domain.ErrUnmappedCategory), errors.Is(err, domain.ErrUnknownLegacyType):
				uc.logger.Warn("backfill: legacy row not mappable",
					"legacy_id", legacy.ID,
					"category", legacy.Category,
					"error", err,
				)

				result.Unmapped = append(result.Unmapped, legacy.ID)
			default:
				return nil, fmt.Errorf("backfill row %d: %w", legacy.ID, err)
			}
		}
	}

	result.Duration = time.Since(started)

	uc.logger.Info("backfill complete",
		"processed", result.Processed,
		"skipped", result.Skipped,
		"unmapped", len(result.Unmapped),
		"duration", result.Duration,
	)

	return result, nil
}

// processRow converts one legacy row inside its own transaction.
func (uc *BackfillUseCase) processRow(ctx context.Context, legacy *domain.LegacyTransaction, userID string) error {
	if legacy.Amount <= 0 {
		return fmt.Errorf("%w: legacy row %d", domain.ErrInvalidAmount, legacy.ID)
	}

	pair, err := domain.MapLegacyTransaction(legacy)
	if err != nil {
		return err
	}

	entryType, err := domain.EntryTypeForLegacy(legacy.Type)
	if err != nil {
		return err
	}

	sourceID := legacy.ID

	ref := legacy.Reference
	if ref == "" {
		ref = fmt.Sprintf("BF-%d", legacy.ID)
	}

	entry := &domain.JournalEntry{
		ID:          uc.idGen.Generate(),
		Ref:         ref,
		Date:        legacy.Date,
		Type:        entryType,
		Description: backfillDescription(legacy),
		StudentID:   legacy.StudentID,
		StaffID:     legacy.StaffID,
		// Backfilled entries skip the approval gate: they record history
		// that already happened.
		IsPosted:                  true,
		ApprovalStatus:            domain.ApprovalStatusApproved,
		CreatedBy:                 userID,
		CreatedAt:                 time.Now().UTC(),
		SourceLegacyTransactionID: &sourceID,
		Lines: []domain.JournalEntryLine{
			{LineNumber: 1, GLAccountCode: pair.DebitCode, DebitAmount: legacy.Amount},
			{LineNumber: 2, GLAccountCode: pair.CreditCode, CreditAmount: legacy.Amount},
		},
	}

	if err := entry.Validate(); err != nil {
		return err
	}

	write := func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		accounts, err := uc.accountRepo.GetByCodes(ctx, tx, []string{pair.DebitCode, pair.CreditCode})
		if err != nil {
			return err
		}

		if len(accounts) != 2 {
			return fmt.Errorf("%w: %s or %s", domain.ErrAccountNotFound, pair.DebitCode, pair.CreditCode)
		}

		for _, account := range accounts {
			if !account.IsActive {
				return fmt.Errorf("%w: %s", domain.ErrAccountInactive, account.Code)
			}
		}

		if err := uc.journalRepo.Create(ctx, tx, entry); err != nil {
			return err
		}

		return tx.Commit(ctx)
	}

	if uc.retrier != nil {
		return uc.retrier.Retry(ctx, write)
	}

	return write()
}

// CountRemaining reports how many legacy rows still lack a journal entry.
func (uc *BackfillUseCase) CountRemaining(ctx context.Context) (int64, error) {
	return uc.legacyRepo.CountUnprocessed(ctx)
}

func backfillDescription(legacy *domain.LegacyTransaction) string {
	if legacy.Notes != "" {
		return legacy.Notes
	}

	return fmt.Sprintf("Backfilled legacy %s %s", legacy.Type, legacy.Category)
}
