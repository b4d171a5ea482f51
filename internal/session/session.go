// Package session drives one parse-and-apply cycle through its phases:
// collecting text, parsed, dry-run computed, applying, done. All derived
// state (parsed categories, catalog snapshot, diff) is owned by the session
// and discarded on reset; nothing is shared across sessions.
package session

import (
	"context"

	"presyohan/pricelist/internal/catalog"
	"presyohan/pricelist/internal/classifier"
	"presyohan/pricelist/internal/diff"
	"presyohan/pricelist/internal/executor"
	"presyohan/pricelist/internal/importerror"
	"presyohan/pricelist/internal/logging"
	"presyohan/pricelist/internal/models"
	"presyohan/pricelist/internal/normalizer"
	"presyohan/pricelist/internal/tokenizer"
)

// Phase names a position in the session lifecycle.
type Phase string

const (
	PhaseCollecting Phase = "COLLECTING_TEXT"
	PhaseParsed     Phase = "PARSED"
	PhaseDryRun     Phase = "DRY_RUN_COMPUTED"
	PhaseApplying   Phase = "APPLYING"
	PhaseDone       Phase = "DONE"
)

// Session owns one import cycle for one store. It is not safe for
// concurrent use; callers drive it from a single goroutine.
type Session struct {
	storeID  string
	provider catalog.Provider
	logger   logging.Logger

	phase      Phase
	categories []models.ParsedCategory
	snapshot   []models.CatalogProduct
	known      []models.Category
	preview    diff.Result
	result     models.ImportResult
}

// New creates a session in the COLLECTING_TEXT phase.
func New(storeID string, provider catalog.Provider, logger logging.Logger) *Session {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Session{
		storeID:  storeID,
		provider: provider,
		logger:   logger.WithField(logging.FieldStore, storeID),
		phase:    PhaseCollecting,
	}
}

// Phase returns the session's current lifecycle position.
func (s *Session) Phase() Phase {
	return s.phase
}

// Categories returns the classified parse result. Valid from PARSED onward.
func (s *Session) Categories() []models.ParsedCategory {
	return s.categories
}

// Preview returns the computed diff. Valid from DRY_RUN_COMPUTED onward.
func (s *Session) Preview() diff.Result {
	return s.preview
}

// Result returns the import result. Valid once the session is DONE.
func (s *Session) Result() models.ImportResult {
	return s.result
}

// Reset discards all derived state and returns to COLLECTING_TEXT. There is
// no partial-apply resume; a failed batch is re-submitted in full.
func (s *Session) Reset() {
	s.phase = PhaseCollecting
	s.categories = nil
	s.snapshot = nil
	s.known = nil
	s.preview = diff.Result{}
	s.result = models.ImportResult{}
}

// Parse ingests the raw pasted text: it fetches the catalog snapshot (the
// same snapshot is reused by the later dry-run and apply so preview and
// outcome stay consistent), then normalizes, tokenizes and classifies.
// A missing store id or an unreachable catalog fails the whole step —
// classifying against an accidentally empty catalog would mark every item
// as a create.
func (s *Session) Parse(ctx context.Context, raw string) ([]models.ParsedCategory, error) {
	if s.storeID == "" {
		return nil, &importerror.MissingStoreError{Operation: "parse"}
	}

	snapshot, err := s.provider.FetchCatalog(ctx, s.storeID)
	if err != nil {
		return nil, &importerror.SnapshotError{StoreID: s.storeID, Err: err}
	}
	known, err := s.provider.FetchCategories(ctx, s.storeID)
	if err != nil {
		return nil, &importerror.SnapshotError{StoreID: s.storeID, Err: err}
	}

	names := make([]string, 0, len(snapshot))
	for _, p := range snapshot {
		names = append(names, p.Name)
	}

	lines := normalizer.CleanLines(raw)
	categories := tokenizer.New(s.logger).Tokenize(lines)
	classifier.Classify(categories, classifier.NewExistingNames(names))

	s.snapshot = snapshot
	s.known = known
	s.categories = categories
	s.phase = PhaseParsed

	s.logger.WithFields(
		logging.Field{Key: logging.FieldLines, Value: len(lines)},
		logging.Field{Key: "categories", Value: len(categories)},
	).Info("Parsed pasted text")
	return categories, nil
}

// DryRun computes the create/update preview against the snapshot taken at
// parse time. It is pure over session state and may be called repeatedly;
// the result is identical every time.
func (s *Session) DryRun(ctx context.Context) (diff.Result, error) {
	if s.phase != PhaseParsed && s.phase != PhaseDryRun {
		return diff.Result{}, &importerror.SessionStateError{Operation: "compute dry-run", State: string(s.phase)}
	}

	s.preview = diff.Compute(s.categories, s.snapshot)
	s.phase = PhaseDryRun

	s.logger.WithFields(
		logging.Field{Key: logging.FieldCreates, Value: len(s.preview.Creates)},
		logging.Field{Key: logging.FieldUpdates, Value: len(s.preview.Updates)},
	).Info("Computed dry-run")
	return s.preview, nil
}

// Apply executes the previewed creates and updates. Item failures are
// collected in the result, never raised; cancellation leaves already
// applied writes in place and reports what was done.
func (s *Session) Apply(ctx context.Context) (models.ImportResult, error) {
	if s.phase != PhaseDryRun {
		return models.ImportResult{}, &importerror.SessionStateError{Operation: "apply", State: string(s.phase)}
	}

	s.phase = PhaseApplying
	exec := executor.New(s.provider, s.logger)
	s.result = exec.Apply(ctx, s.storeID, s.preview, s.known, models.EligibleCategoryCount(s.categories))
	s.phase = PhaseDone
	return s.result, nil
}
