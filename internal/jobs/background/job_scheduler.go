package background

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"dinetap/internal/analytics"
	"dinetap/internal/caching"
	"dinetap/internal/repositories"
	"dinetap/internal/services"
)

const tenantPageSize = 200

// JobScheduler runs periodic maintenance work: rebuilding rating aggregates
// and warming dashboard caches for every tenant.
type JobScheduler struct {
	scheduler    gocron.Scheduler
	analyticsSvc *analytics.Service
	cacheSvc     caching.CacheService
	ratingRepo   repositories.RatingRepository
	tenantSvc    services.TenantService
	jobs         map[string]gocron.Job
	mu           sync.RWMutex
}

func NewJobScheduler(analyticsSvc *analytics.Service, cacheSvc caching.CacheService,
	ratingRepo repositories.RatingRepository, tenantSvc services.TenantService) *JobScheduler {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:    scheduler,
		analyticsSvc: analyticsSvc,
		cacheSvc:     cacheSvc,
		ratingRepo:   ratingRepo,
		tenantSvc:    tenantSvc,
		jobs:         make(map[string]gocron.Job),
	}

	js.registerJobs()

	return js
}

func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	// Nightly rebuild of menu item rating aggregates. The transactional
	// recompute on submit keeps them correct; this job repairs drift after
	// manual data fixes.
	reconcileJob, err := js.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0))),
		gocron.NewTask(js.reconcileRatingAggregates, context.Background()),
		gocron.WithName("rating-aggregate-reconcile"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create rating reconcile job: %v", err)
	} else {
		js.trackJob("rating-reconcile", reconcileJob)
	}

	// Keep the weekly dashboard warm so the first staff request of the
	// morning does not pay the compute cost.
	warmJob, err := js.scheduler.NewJob(
		gocron.DurationJob(15*time.Minute),
		gocron.NewTask(js.warmDashboards, context.Background()),
		gocron.WithName("dashboard-cache-warm"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create dashboard warm job: %v", err)
	} else {
		js.trackJob("dashboard-warm", warmJob)
	}
}

func (js *JobScheduler) trackJob(name string, job gocron.Job) {
	js.mu.Lock()
	defer js.mu.Unlock()
	js.jobs[name] = job
}

func (js *JobScheduler) reconcileRatingAggregates(ctx context.Context) {
	log.Printf("Starting rating aggregate reconciliation")
	processed := 0
	js.forEachTenant(ctx, func(tenantID int64) {
		if err := js.ratingRepo.ReconcileAggregates(ctx, tenantID); err != nil {
			log.Printf("Failed to reconcile ratings for tenant %d: %v", tenantID, err)
			return
		}
		if err := js.cacheSvc.DeleteMenu(ctx, tenantID); err != nil {
			log.Printf("Failed to invalidate menu cache for tenant %d: %v", tenantID, err)
		}
		processed++
	})
	log.Printf("Completed rating aggregate reconciliation for %d tenants", processed)
}

func (js *JobScheduler) warmDashboards(ctx context.Context) {
	js.forEachTenant(ctx, func(tenantID int64) {
		if _, err := js.analyticsSvc.ComputeDashboard(ctx, tenantID, analytics.RangeWeek); err != nil {
			log.Printf("Failed to warm dashboard for tenant %d: %v", tenantID, err)
		}
	})
}

func (js *JobScheduler) forEachTenant(ctx context.Context, fn func(tenantID int64)) {
	offset := 0
	for {
		tenants, err := js.tenantSvc.List(ctx, tenantPageSize, offset)
		if err != nil {
			log.Printf("Failed to list tenants for background job: %v", err)
			return
		}
		for _, t := range tenants {
			fn(t.ID)
		}
		if len(tenants) < tenantPageSize {
			return
		}
		offset += tenantPageSize
	}
}
