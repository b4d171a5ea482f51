// Package executor applies a computed diff to the store catalog through the
// mutation provider. Failures are isolated per item and aggregated into the
// import result; one bad row never aborts the batch.
package executor

import (
	"context"
	"strings"

	"presyohan/pricelist/internal/catalog"
	"presyohan/pricelist/internal/diff"
	"presyohan/pricelist/internal/logging"
	"presyohan/pricelist/internal/models"
)

// Executor performs the sequential apply phase of one import session.
type Executor struct {
	mutations catalog.MutationProvider
	logger    logging.Logger
}

// New creates an Executor around the given mutation provider.
func New(mutations catalog.MutationProvider, logger logging.Logger) *Executor {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Executor{
		mutations: mutations,
		logger:    logger.WithField("component", "executor"),
	}
}

// categoryCache maps normalized category names to ids. One cache instance
// is owned by exactly one Apply call, never shared across sessions.
type categoryCache map[string]string

func cacheKey(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Apply walks the previewed creates and updates in the order the diff
// computed them. For each referenced category the id is resolved from the
// session cache or via the idempotent ensure-category call; the result is
// cached under the server-returned normalized name to tolerate server-side
// renaming. A failed ensure fails every item under that category; a failed
// product write fails only that item. Cancellation stops further remote
// calls without rolling back what has been applied — partial application is
// a reported outcome, not an error.
//
// eligibleCategories is the number of parsed categories holding at least
// one eligible item (models.EligibleCategoryCount over the classified
// batch). It is reported as the result's CategoryCount: a category whose
// eligible items all diffed to no-ops still counts.
func (e *Executor) Apply(ctx context.Context, storeID string, d diff.Result, known []models.Category, eligibleCategories int) models.ImportResult {
	cache := make(categoryCache, len(known))
	for _, c := range known {
		cache[cacheKey(c.Name)] = c.ID
	}

	var result models.ImportResult
	result.CategoryCount = eligibleCategories
	ensureFailed := make(map[string]string)

	resolve := func(name string) (string, string, bool) {
		key := cacheKey(name)
		if reason, failed := ensureFailed[key]; failed {
			return "", reason, false
		}
		if id, ok := cache[key]; ok {
			return id, "", true
		}
		ensured, err := e.mutations.EnsureCategory(ctx, storeID, name)
		if err != nil {
			e.logger.WithError(err).WithField(logging.FieldCategory, name).Warn("Failed to ensure category")
			ensureFailed[key] = "ensure_category_failed: " + err.Error()
			return "", ensureFailed[key], false
		}
		cache[cacheKey(ensured.NormalizedName)] = ensured.ID
		if cacheKey(ensured.NormalizedName) != key {
			// Server normalized the name differently; remember the input
			// spelling too so later items in this batch hit the cache.
			cache[key] = ensured.ID
		}
		return ensured.ID, "", true
	}

	for _, c := range d.Creates {
		if ctx.Err() != nil {
			e.logger.Warn("Apply cancelled, stopping further writes")
			return e.finish(result)
		}
		item := createItem(c)
		categoryID, reason, ok := resolve(c.Category)
		if !ok {
			result.Failures = append(result.Failures, models.ImportFailure{Item: item, Reason: reason})
			continue
		}
		if err := e.mutations.CreateProduct(ctx, storeID, categoryID, c); err != nil {
			e.logger.WithError(err).WithField(logging.FieldItem, c.Name).Warn("Failed to create product")
			result.Failures = append(result.Failures, models.ImportFailure{Item: item, Reason: "save_failed: " + err.Error()})
			continue
		}
		result.SavedCount++
	}

	for _, u := range d.Updates {
		if ctx.Err() != nil {
			e.logger.Warn("Apply cancelled, stopping further writes")
			return e.finish(result)
		}
		item := updateItem(u)
		categoryID, reason, ok := resolve(u.NextCategory)
		if !ok {
			result.Failures = append(result.Failures, models.ImportFailure{Item: item, Reason: reason})
			continue
		}
		if err := e.mutations.UpdateProduct(ctx, storeID, categoryID, u); err != nil {
			e.logger.WithError(err).WithField(logging.FieldItem, u.Name).Warn("Failed to update product")
			result.Failures = append(result.Failures, models.ImportFailure{Item: item, Reason: "save_failed: " + err.Error()})
			continue
		}
		result.SavedCount++
	}

	return e.finish(result)
}

func (e *Executor) finish(result models.ImportResult) models.ImportResult {
	result.AttemptedCount = result.SavedCount + len(result.Failures)
	e.logger.WithFields(
		logging.Field{Key: "saved", Value: result.SavedCount},
		logging.Field{Key: "attempted", Value: result.AttemptedCount},
		logging.Field{Key: "failed", Value: len(result.Failures)},
	).Info("Apply finished")
	return result
}

// createItem rebuilds the parsed-item view of a create preview for the
// failure report.
func createItem(c models.CreatePreview) models.ParsedItem {
	price := c.Price
	return models.ParsedItem{
		Name:        c.Name,
		Description: c.Description,
		Unit:        c.Unit,
		Price:       &price,
		Status:      models.StatusNew,
	}
}

func updateItem(u models.UpdatePreview) models.ParsedItem {
	price := u.NextPrice
	return models.ParsedItem{
		Name:        u.Name,
		Description: u.NextDescription,
		Unit:        u.NextUnit,
		Price:       &price,
		Status:      models.StatusUpdate,
	}
}
