package usecase

import (
	"context"
	"sync"
	"time"

	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"
	"flightwatch-service/pkg/metrics"

	"github.com/google/uuid"
)

// Poller drives the recurring status check cycle: on each tick it loads the
// currently-active subscription groups, fetches each flight once and fans
// the outcome out to the group's recipients. A cycle is never reentrant: a
// tick arriving while the previous cycle is still running is skipped, never
// queued, so a slow upstream cannot pile up overlapping cycles.
type Poller struct {
	subscriptionRepo repository.SubscriptionRepository
	fetcher          StatusFetcher
	notifier         *Notifier
	interval         time.Duration
	initialDelay     time.Duration
	metrics          *metrics.Metrics
	logger           logger.Logger

	mu      sync.Mutex
	running bool
}

// NewPoller creates a new poller. The interval defaults to one hour when
// unset.
func NewPoller(
	subscriptionRepo repository.SubscriptionRepository,
	fetcher StatusFetcher,
	notifier *Notifier,
	interval time.Duration,
	initialDelay time.Duration,
	m *metrics.Metrics,
	logger logger.Logger,
) *Poller {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Poller{
		subscriptionRepo: subscriptionRepo,
		fetcher:          fetcher,
		notifier:         notifier,
		interval:         interval,
		initialDelay:     initialDelay,
		metrics:          m,
		logger:           logger,
	}
}

// Run drives poll cycles until the context is cancelled. The first cycle
// fires after the initial delay, later cycles on the fixed interval.
func (p *Poller) Run(ctx context.Context) {
	timer := time.NewTimer(p.initialDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		p.logger.Info("Poller stopped before first cycle")
		return
	case <-timer.C:
		p.tick(ctx)
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Poller stopped")
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

// tick runs one cycle unless one is already in progress.
func (p *Poller) tick(ctx context.Context) {
	if !p.tryBegin() {
		p.logger.Warn("Previous poll cycle still running, skipping tick")
		p.metrics.PollCyclesSkipped.Inc()
		return
	}
	defer p.end()
	p.runCycle(ctx)
}

func (p *Poller) tryBegin() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return false
	}
	p.running = true
	return true
}

func (p *Poller) end() {
	p.mu.Lock()
	p.running = false
	p.mu.Unlock()
}

// runCycle processes every currently-active group: one upstream fetch per
// group, one fan-out delivery per group. One group's failure never aborts
// the groups after it.
func (p *Poller) runCycle(ctx context.Context) {
	cycleID := uuid.NewString()
	log := p.logger.With("cycle", cycleID)
	start := time.Now()
	p.metrics.PollCycles.Inc()

	groups, err := p.subscriptionRepo.GroupedActive(ctx, start)
	if err != nil {
		log.Error("Failed to load active subscription groups", "error", err)
		return
	}
	log.Info("Poll cycle started", "groups", len(groups))

	for _, group := range groups {
		if ctx.Err() != nil {
			log.Warn("Poll cycle cancelled", "error", ctx.Err())
			return
		}

		fetchStart := time.Now()
		outcome := p.fetcher.Fetch(ctx, group.Key)
		p.metrics.ChecksPerformed.Inc()
		p.metrics.CheckDuration.Observe(time.Since(fetchStart).Seconds())

		report := p.notifier.Deliver(ctx, group.Recipients, outcome)
		if len(report.Failed) > 0 {
			log.Warn("Status delivered with failures",
				"flight", group.Key.String(),
				"delivered", len(report.Delivered),
				"failed", len(report.Failed))
		}
	}

	log.Info("Poll cycle finished",
		"groups", len(groups),
		"duration", time.Since(start).String())
}
