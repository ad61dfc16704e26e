// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

// Package catalogd schedules periodic re-fetching of the CPU catalog
// from a remote Catalog.URL, swapping the freshly-parsed catalog into
// internal/managers' shared registry. This is ambient caching at the
// serve-mode layer only - it never changes pkg/x86's per-call
// semantics, matching spec.md §9's note that an implementation "may
// add caching but must not change observable behavior."
package catalogd

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/stratastor/logger"
	"github.com/stratastor/vcpu/internal/managers"
	"github.com/stratastor/vcpu/pkg/catalogxml"
	"github.com/stratastor/vcpu/pkg/errors"
)

// Refresher periodically re-fetches the catalog at URL and installs it
// into internal/managers whenever the fetch succeeds. A failed refresh
// leaves the previously-installed catalog in place.
type Refresher struct {
	url       string
	interval  time.Duration
	scheduler gocron.Scheduler
	logger    logger.Logger
}

// NewRefresher creates a scheduler that will, once Start is called,
// refresh the catalog from url every interval.
func NewRefresher(url string, interval time.Duration, l logger.Logger) (*Refresher, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, errors.Wrap(err, errors.CatalogRefreshScheduleFailed)
	}

	return &Refresher{
		url:       url,
		interval:  interval,
		scheduler: scheduler,
		logger:    l,
	}, nil
}

// Start performs one synchronous fetch so the catalog is populated
// before serving requests, registers the recurring job, then starts
// the underlying scheduler.
func (r *Refresher) Start(ctx context.Context) error {
	if err := r.refresh(ctx); err != nil {
		return err
	}

	job := func() {
		if err := r.refresh(ctx); err != nil {
			r.logger.Error("catalog refresh failed", "url", r.url, "err", err)
		}
	}

	_, err := r.scheduler.NewJob(
		gocron.DurationJob(r.interval),
		gocron.NewTask(job),
		gocron.WithName("catalog-refresh"),
	)
	if err != nil {
		return errors.Wrap(err, errors.CatalogRefreshScheduleFailed)
	}

	r.scheduler.Start()
	r.logger.Info("catalog refresh scheduled", "url", r.url, "interval", r.interval.String())

	return nil
}

// Shutdown stops the scheduler.
func (r *Refresher) Shutdown() error {
	return r.scheduler.Shutdown()
}

func (r *Refresher) refresh(ctx context.Context) error {
	m, err := catalogxml.LoadURL(ctx, r.url)
	if err != nil {
		return err
	}
	managers.SetCatalog(m, r.url)
	r.logger.Info("catalog refreshed", "url", r.url,
		"vendors", len(m.Vendors), "features", len(m.Features), "models", len(m.Models))
	return nil
}
