package worker

import (
	"context"
	"strings"
	"time"

	"academy-api/core/cache"
	"academy-api/core/config"
	"academy-api/core/logger"
	"academy-api/modules/calendar/service"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const TypeCalendarWarmup = "calendar:warmup"

// activeWindow bounds which users the warm-up considers recently active.
const activeWindow = 24 * time.Hour

// WarmupWorker pre-aggregates the current week for recently active users so
// their first calendar render of the day is a cache hit. Read-only: it runs
// the same aggregation pipeline the HTTP path runs.
type WarmupWorker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	cache     cache.Cache
	calendar  service.CalendarService
}

func NewWarmupWorker(redisCfg config.RedisConfig, c cache.Cache, calendar service.CalendarService) *WarmupWorker {
	redisOpt := asynq.RedisClientOpt{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
	})
	scheduler := asynq.NewScheduler(redisOpt, nil)

	return &WarmupWorker{
		server:    server,
		scheduler: scheduler,
		cache:     c,
		calendar:  calendar,
	}
}

// Start registers the periodic warm-up task and runs the worker loops. Non
// blocking; errors from the loops are logged, not fatal to the host.
func (w *WarmupWorker) Start() error {
	if _, err := w.scheduler.Register("@every 30m", asynq.NewTask(TypeCalendarWarmup, nil)); err != nil {
		return err
	}

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCalendarWarmup, w.handleWarmup)

	go func() {
		if err := w.server.Run(mux); err != nil {
			logger.Error("WarmupWorker:ServerStopped", "error", err)
		}
	}()
	go func() {
		if err := w.scheduler.Run(); err != nil {
			logger.Error("WarmupWorker:SchedulerStopped", "error", err)
		}
	}()

	logger.Info("Calendar warm-up worker started")
	return nil
}

func (w *WarmupWorker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
}

func (w *WarmupWorker) handleWarmup(ctx context.Context, _ *asynq.Task) error {
	members, err := w.cache.ActiveUsers(ctx, activeWindow)
	if err != nil {
		logger.Error("WarmupWorker:ActiveUsers", "error", err)
		return err
	}

	warmed := 0
	for _, member := range members {
		tenantID, userID, ok := parseMember(member)
		if !ok {
			logger.Warn("WarmupWorker:SkippingMalformedMember", "member", member)
			continue
		}

		userCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		err := w.calendar.WarmWeekWindow(userCtx, userID, tenantID)
		cancel()
		if err != nil {
			logger.Error("WarmupWorker:WarmWeekWindow", "user_id", userID, "error", err)
			continue
		}
		warmed++
	}

	logger.Info("WarmupWorker:Done", "candidates", len(members), "warmed", warmed)
	return nil
}

// parseMember splits the "tenantID:userID" members stored by the auth
// middleware.
func parseMember(member string) (uuid.UUID, uuid.UUID, bool) {
	parts := strings.SplitN(member, ":", 2)
	if len(parts) != 2 {
		return uuid.Nil, uuid.Nil, false
	}
	tenantID, err1 := uuid.Parse(parts[0])
	userID, err2 := uuid.Parse(parts[1])
	if err1 != nil || err2 != nil {
		return uuid.Nil, uuid.Nil, false
	}
	return tenantID, userID, true
}
