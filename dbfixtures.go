package dbfixtures

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/kbukum/dbfixtures/logger"
)

// DbFixtures fans fixture loading and shutdown out to a fixed set of drivers.
type DbFixtures struct {
	drivers []Driver
	log     *logger.Logger
}

// Option configures DbFixtures.
type Option func(*DbFixtures)

// WithLogger sets the logger used for per-driver progress and failures.
func WithLogger(log *logger.Logger) Option {
	return func(f *DbFixtures) { f.log = log.WithComponent("dbfixtures") }
}

// New creates a coordinator over drivers. The order of drivers only affects
// logging and the order of joined errors.
func New(drivers []Driver, opts ...Option) *DbFixtures {
	f := &DbFixtures{
		drivers: append([]Driver(nil), drivers...),
		log:     logger.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Drivers returns the registered drivers in registration order.
func (f *DbFixtures) Drivers() []Driver {
	return append([]Driver(nil), f.drivers...)
}

// InsertFixtures truncates names on every driver and then inserts
// fixtures[name] for each name in order. Drivers run concurrently; within a
// driver the truncate finishes before the first insert and the first failure
// stops that driver only. It returns once every driver has finished, joining
// the failures of all drivers that failed.
func (f *DbFixtures) InsertFixtures(ctx context.Context, names []string, fixtures map[string][]any) error {
	return f.fanOut(func(i int, d Driver) error {
		return f.load(ctx, i, d, names, fixtures)
	})
}

// CloseDrivers closes every driver concurrently and waits for all of them.
func (f *DbFixtures) CloseDrivers() error {
	return f.fanOut(func(i int, d Driver) error {
		if err := d.Close(); err != nil {
			return fmt.Errorf("close driver %d (%T): %w", i, d, err)
		}
		f.log.Debug("Driver closed", logger.Fields(logger.FieldDriver, driverName(i, d)))
		return nil
	})
}

func (f *DbFixtures) load(ctx context.Context, i int, d Driver, names []string, fixtures map[string][]any) error {
	name := driverName(i, d)
	start := time.Now()

	if err := d.Truncate(ctx, names); err != nil {
		return fmt.Errorf("truncate on driver %s: %w", name, err)
	}
	f.log.Debug("Targets truncated", logger.Fields(logger.FieldDriver, name, logger.FieldTargets, names))

	for _, target := range names {
		items := fixtures[target]
		if err := d.InsertFixtures(ctx, target, items); err != nil {
			return fmt.Errorf("insert %q on driver %s: %w", target, name, err)
		}
		f.log.Debug("Fixtures inserted", logger.Fields(
			logger.FieldDriver, name,
			logger.FieldTarget, target,
			logger.FieldCount, len(items),
		))
	}

	f.log.Info("Fixtures loaded",
		logger.DurationFields("load", time.Since(start)),
		logger.Fields(logger.FieldDriver, name, logger.FieldCount, len(names)),
	)
	return nil
}

// fanOut runs fn once per driver and waits for all of them. Failures are
// joined in driver order.
func (f *DbFixtures) fanOut(fn func(i int, d Driver) error) error {
	errs := make([]error, len(f.drivers))
	var wg sync.WaitGroup
	for i, d := range f.drivers {
		wg.Go(func() {
			if err := fn(i, d); err != nil {
				f.log.Error("Driver failed", logger.Fields(
					logger.FieldDriver, driverName(i, d),
					logger.FieldError, err.Error(),
				))
				errs[i] = err
			}
		})
	}
	wg.Wait()
	return stderrors.Join(errs...)
}

func driverName(i int, d Driver) string {
	if n, ok := d.(interface{ Name() string }); ok {
		return fmt.Sprintf("%d:%s", i, n.Name())
	}
	return fmt.Sprintf("%d:%T", i, d)
}
