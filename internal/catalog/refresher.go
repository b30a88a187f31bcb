package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Refresher reloads the catalog on a schedule, but only between sales so an
// open cart never sees prices move underneath it.
type Refresher struct {
	catalog *Catalog
	idle    func() bool
	timeout time.Duration
	log     Log
	sched   *cron.Cron
}

func NewRefresher(c *Catalog, idle func() bool, timeout time.Duration, log Log) *Refresher {
	return &Refresher{
		catalog: c,
		idle:    idle,
		timeout: timeout,
		log:     log,
	}
}

// Start schedules Run with a cron spec such as "@every 5m".
func (r *Refresher) Start(spec string) error {
	r.sched = cron.New(cron.WithParser(cronParser))
	if _, err := r.sched.AddFunc(spec, func() { r.Run() }); err != nil {
		return fmt.Errorf("invalid catalog refresh schedule %q: %w", spec, err)
	}
	r.sched.Start()
	return nil
}

func (r *Refresher) Stop() {
	if r.sched != nil {
		<-r.sched.Stop().Done()
	}
}

// Run refreshes once. It reports whether a refresh was attempted.
func (r *Refresher) Run() bool {
	defer func() {
		if err := recover(); err != nil {
			r.log.Error("catalog refresh panicked", zap.Any("panic", err))
		}
	}()

	if r.idle != nil && !r.idle() {
		r.log.Info("catalog refresh skipped, sale in progress")
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	_ = r.catalog.Refresh(ctx)
	return true
}
