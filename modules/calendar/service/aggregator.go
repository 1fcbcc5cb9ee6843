package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"academy-api/core/logger"
	"academy-api/modules/calendar/adapter"
	"academy-api/modules/calendar/entity"

	"github.com/google/uuid"
)

// Display colors by source type; attached as a metadata hint for the UI.
var sourceColors = map[string]string{
	adapter.SourceLiveSession:    "#6366F1",
	adapter.SourceCourseDeadline: "#F59E0B",
	adapter.SourceTutoring:       "#10B981",
	adapter.SourceGoogleCalendar: "#64748B",
}

const defaultSourceColor = "#94A3B8"

// Aggregator fans a resolved window out to every registered source adapter
// and merges the results into one ordered, de-duplicated event list.
//
// The response is always best-effort: a failed or timed-out adapter
// contributes nothing and is recorded as a SourceFailure instead of
// aborting the query.
type Aggregator struct {
	registry       *adapter.Registry
	adapterTimeout time.Duration
}

func NewAggregator(registry *adapter.Registry, adapterTimeout time.Duration) *Aggregator {
	if adapterTimeout <= 0 {
		adapterTimeout = 5 * time.Second
	}
	return &Aggregator{registry: registry, adapterTimeout: adapterTimeout}
}

func (a *Aggregator) Aggregate(ctx context.Context, userID, tenantID uuid.UUID, window entity.CalendarWindow) ([]entity.CalendarEvent, []entity.SourceFailure) {
	adapters := a.registry.All()

	// Concurrent fan-out, one goroutine per adapter, joined below. Total
	// latency is bounded by the slowest adapter, not their sum. Results
	// land in per-adapter slots so the merge stays in registry order.
	results := make([][]entity.CalendarEvent, len(adapters))
	errs := make([]error, len(adapters))

	var wg sync.WaitGroup
	for i, src := range adapters {
		wg.Add(1)
		go func(i int, src adapter.SourceAdapter) {
			defer wg.Done()
			fetchCtx, cancel := context.WithTimeout(ctx, a.adapterTimeout)
			defer cancel()
			results[i], errs[i] = src.Fetch(fetchCtx, userID, tenantID, window)
		}(i, src)
	}
	wg.Wait()

	var failures []entity.SourceFailure
	merged := make([]entity.CalendarEvent, 0, 32)
	seen := make(map[string]bool)

	for i, src := range adapters {
		if errs[i] != nil {
			logger.Error("Aggregator:AdapterFailed",
				"source_type", src.SourceType(),
				"user_id", userID,
				"error", errs[i],
			)
			failures = append(failures, entity.SourceFailure{
				SourceType: src.SourceType(),
				Message:    errs[i].Error(),
			})
			continue
		}

		for _, event := range results[i] {
			// An adapter leaking rows outside the requested scope is a
			// programming defect. Log it and drop the event; it must never
			// reach the caller.
			if event.TenantID != tenantID || event.OwnerUserID != userID {
				logger.Error("Aggregator:TenantScopeViolation",
					"source_type", src.SourceType(),
					"event_id", event.ID,
					"event_tenant", event.TenantID,
					"requested_tenant", tenantID,
				)
				continue
			}

			// First occurrence wins; adapters are disjoint, so a duplicate
			// key is itself suspicious but harmless to skip.
			if seen[event.Key()] {
				continue
			}
			seen[event.Key()] = true

			if event.Metadata == nil {
				event.Metadata = make(map[string]string, 1)
			}
			if _, ok := event.Metadata["color"]; !ok {
				color := sourceColors[event.SourceType]
				if color == "" {
					color = defaultSourceColor
				}
				event.Metadata["color"] = color
			}

			merged = append(merged, event)
		}
	}

	// Deterministic order: start instant, then source type, then id.
	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].StartAt.Equal(merged[j].StartAt) {
			return merged[i].StartAt.Before(merged[j].StartAt)
		}
		if merged[i].SourceType != merged[j].SourceType {
			return merged[i].SourceType < merged[j].SourceType
		}
		return merged[i].ID < merged[j].ID
	})

	return merged, failures
}
