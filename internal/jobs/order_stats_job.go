package jobs

import (
	"context"
	"log/slog"

	"orderservice/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// OrderStatsJob periodically logs order counts per lifecycle status.
// The log line doubles as a cheap liveness signal for the store connection.
type OrderStatsJob struct {
	handler queries.GetOrderStatsQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderStatsJob creates a job that reports order statistics every minute.
func NewOrderStatsJob(handler queries.GetOrderStatsQueryHandler, logger *slog.Logger) *OrderStatsJob {
	return &OrderStatsJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "order_stats_job"),
	}
}

// Start begins the stats job on its minutely schedule.
func (j *OrderStatsJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		query := queries.NewGetOrderStatsQuery()

		stats, statsErr := j.handler.Handle(ctx, query)
		if statsErr != nil {
			j.logger.ErrorContext(ctx, "Order stats job failed", "error", statsErr)
			return
		}

		j.logger.InfoContext(ctx, "Order stats",
			"accepted", stats.Accepted,
			"rejected", stats.Rejected,
			"dispatched", stats.Dispatched,
			"total", stats.Total,
		)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order stats job started (running every minute)")
	return nil
}

// Stop stops the stats job.
func (j *OrderStatsJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order stats job stopped")
}
