package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"sessionreport/internal/domain"
	"sessionreport/internal/logger"
	"sessionreport/internal/session"
	"sessionreport/internal/stats"
)

// Options bundles the thresholds of one analysis run.
type Options struct {
	Session                 session.Options
	Stats                   stats.Options
	DefaultMerchantKeywords []string
}

// AnalysisUseCase orchestrates the session report.
type AnalysisUseCase struct {
	repo TransactionRepository
	opts Options
}

// NewAnalysisUseCase creates a new instance of the usecase.
func NewAnalysisUseCase(repo TransactionRepository, opts Options) *AnalysisUseCase {
	return &AnalysisUseCase{repo: repo, opts: opts}
}

// ListMerchants returns every merchant in the file and the ones selected by default.
func (uc *AnalysisUseCase) ListMerchants(ctx context.Context, path string) (*domain.MerchantListing, error) {
	transactions, err := uc.repo.GetTransactions(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("could not get transactions: %w", err)
	}

	merchants := DistinctMerchants(transactions)
	return &domain.MerchantListing{
		Merchants: merchants,
		Defaults:  DefaultMerchants(merchants, uc.opts.DefaultMerchantKeywords),
	}, nil
}

// Analyze runs the full pipeline for the given merchants. A nil merchants slice
// selects the default merchants.
func (uc *AnalysisUseCase) Analyze(ctx context.Context, path string, merchants []string) (*domain.Report, error) {
	runID := newRunID()
	log := logger.FromContext(ctx).With().Str("run_id", runID).Logger()
	ctx = logger.WithContext(ctx, log)

	// Step 1: Data Ingestion
	transactions, err := uc.repo.GetTransactions(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("could not get transactions: %w", err)
	}

	// Step 2: Merchant Selection
	selected := resolveMerchants(merchants, DistinctMerchants(transactions), uc.opts.DefaultMerchantKeywords)
	if len(selected) == 0 {
		return nil, domain.ErrNoMerchantSelected
	}

	// Step 3: Normalization
	filtered := filterTransactions(transactions, selected, uc.opts.Stats.ActiveHourFloor)
	if len(filtered) == 0 {
		return nil, fmt.Errorf("merchants %s: %w", strings.Join(selected, ", "), domain.ErrInputEmpty)
	}

	// Step 4: Per-Merchant Session Merging
	var sessions []domain.Session
	for _, group := range groupByMerchant(filtered) {
		sessions = append(sessions, session.Merge(ctx, group, uc.opts.Session)...)
	}
	if len(sessions) == 0 {
		return nil, fmt.Errorf("%d transactions: %w", len(filtered), domain.ErrNoSessionsAfterMerge)
	}

	// Step 5: Aggregation
	result, err := stats.Aggregate(session.EnrichAll(sessions), uc.opts.Stats)
	if err != nil {
		return nil, fmt.Errorf("could not aggregate sessions: %w", err)
	}

	log.Info().
		Strs("merchants", selected).
		Int("transactions", len(filtered)).
		Int("sessions", result.Summary.SessionCount).
		Msg("Analysis completed")

	return &domain.Report{
		RunID:     runID,
		Merchants: selected,
		Result:    *result,
	}, nil
}

func newRunID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
