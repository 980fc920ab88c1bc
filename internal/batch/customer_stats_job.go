package batch

import (
	"context"
	"customer-service/internal/domain/customer"
	"customer-service/internal/infrastructure/monitoring"
	"fmt"
	"log/slog"
	"time"
)

// CustomerStatsJob refreshes the customers-by-state gauges from the gateway.
type CustomerStatsJob struct {
	repo    customer.CustomerRepository
	timeout time.Duration
	logger  *slog.Logger
}

func NewCustomerStatsJob(repo customer.CustomerRepository, timeout time.Duration, logger *slog.Logger) *CustomerStatsJob {
	if repo == nil || logger == nil {
		panic("CustomerStatsJob dependencies cannot be nil")
	}
	return &CustomerStatsJob{
		repo:    repo,
		timeout: timeout,
		logger:  logger.With("job", "CustomerStats"),
	}
}

func (j *CustomerStatsJob) Run(ctx context.Context) error {
	startTime := time.Now()
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	j.logger.InfoContext(ctx, "Starting customer stats job.")
	customers, err := j.repo.FindAll(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to list customers, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to list customers: %w", err)
	}

	active, suspended := 0, 0
	for _, c := range customers {
		if c.IsActive() {
			active++
		} else {
			suspended++
		}
	}
	monitoring.SetCustomerCounts(active, suspended)

	j.logger.InfoContext(ctx, "Customer stats job finished.",
		slog.Duration("duration", time.Since(startTime)),
		slog.Int("active", active),
		slog.Int("suspended", suspended),
	)
	return nil
}

// Cron adapts Run to a cron.FuncJob, using a fresh background context per tick.
func (j *CustomerStatsJob) Cron() func() {
	return func() {
		if err := j.Run(context.Background()); err != nil {
			j.logger.Error("Scheduled customer stats run failed", slog.Any("error", err))
		}
	}
}
