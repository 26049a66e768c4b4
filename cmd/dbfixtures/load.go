package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/calumari/jwalk"

	"github.com/kbukum/dbfixtures"
	"github.com/kbukum/dbfixtures/fixture"
	"github.com/kbukum/dbfixtures/logger"
	"github.com/kbukum/dbfixtures/resilience"
)

// loadAll loads every section of root into its backend. Backends run
// concurrently, each with its own coordinator; a failing backend does not
// stop the others.
func loadAll(ctx context.Context, root jwalk.Document, all []backend, targets []string, log *logger.Logger) error {
	var (
		wg   sync.WaitGroup
		errs = make([]error, len(all))
	)
	for i, b := range all {
		set, ok, err := fixture.Section(root, b.name)
		if err != nil {
			errs[i] = err
			continue
		}
		set = set.Select(targets)
		if !ok || set.Empty() {
			continue
		}
		if !b.enabled {
			log.Warn("Fixtures skipped, backend disabled", logger.Fields(
				logger.FieldDriver, b.name,
				logger.FieldTargets, set.Names,
			))
			continue
		}
		wg.Go(func() {
			if err := loadBackend(ctx, b, set, log); err != nil {
				errs[i] = fmt.Errorf("%s: %w", b.name, err)
			}
		})
	}
	wg.Wait()
	return stderrors.Join(errs...)
}

func loadBackend(ctx context.Context, b backend, set fixture.Set, log *logger.Logger) (err error) {
	fixtures, err := set.Convert(b.convert)
	if err != nil {
		return err
	}

	retry := b.retry
	retry.OnRetry = func(attempt int, err error, backoff time.Duration) {
		log.Warn("Connection failed, retrying", logger.Fields(
			logger.FieldDriver, b.name,
			"attempt", attempt,
			"backoff", backoff.String(),
			logger.FieldError, err.Error(),
		))
	}
	driver, err := resilience.Retry(ctx, retry, func() (dbfixtures.Driver, error) {
		return b.open(ctx)
	})
	if err != nil {
		return err
	}
	fx := dbfixtures.New([]dbfixtures.Driver{driver}, dbfixtures.WithLogger(log))
	defer func() {
		err = stderrors.Join(err, fx.CloseDrivers())
	}()

	start := time.Now()
	if err := fx.InsertFixtures(ctx, set.Names, fixtures); err != nil {
		return err
	}
	log.Info("Backend loaded", logger.Fields(
		logger.FieldDriver, b.name,
		logger.FieldTargets, set.Names,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return nil
}
