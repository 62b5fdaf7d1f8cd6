package audit

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/shanmugaprathap/qa-enterprise-suite/internal/config"
	"github.com/shanmugaprathap/qa-enterprise-suite/internal/healing"
)

// Session is the slice of a browsing session the runner needs. Implemented
// by browser.Session; tests substitute fakes.
type Session interface {
	healing.Querier
	Navigate(ctx context.Context, target string) error
	Close() error
}

// SessionFactory creates one session per page worker. Every worker gets its
// own session and resolver so no state is shared between concurrent pages.
type SessionFactory func() (Session, error)

// Runner executes a locator audit suite.
type Runner struct {
	log        logrus.FieldLogger
	cfg        *config.Config
	newSession SessionFactory
}

// NewRunner creates a suite runner.
func NewRunner(log logrus.FieldLogger, cfg *config.Config, factory SessionFactory) *Runner {
	return &Runner{
		log:        log.WithField("component", "audit_runner"),
		cfg:        cfg,
		newSession: factory,
	}
}

// Run audits every page of the suite. Pages run concurrently up to the
// configured parallelism; a page whose session cannot be established fails
// its element checks but never aborts the other pages.
func (r *Runner) Run(ctx context.Context, suite *Suite) (*Report, error) {
	report := &Report{
		Suite:     suite.Name,
		StartedAt: time.Now(),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.AuditParallelism)

	for _, page := range suite.Pages {
		g.Go(func() error {
			results := r.auditPage(gctx, suite, page)
			mu.Lock()
			report.Results = append(report.Results, results...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.FinishedAt = time.Now()
	return report, nil
}

// auditPage resolves every element of one page in its own session.
func (r *Runner) auditPage(ctx context.Context, suite *Suite, page *Page) []ElementResult {
	log := r.log.WithField("page", page.Name)

	session, err := r.newSession()
	if err != nil {
		log.WithError(err).Error("failed to create session")
		return failAll(page, err)
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			log.WithError(closeErr).Warn("failed to close session")
		}
	}()

	if err := session.Navigate(ctx, r.pageURL(suite, page)); err != nil {
		log.WithError(err).Error("failed to navigate")
		return failAll(page, err)
	}

	resolver := healing.NewResolver(log, session, r.cfg.SelfHealingEnabled)

	results := make([]ElementResult, 0, len(page.Elements))
	for _, check := range page.Elements {
		results = append(results, r.checkElement(ctx, resolver, page, check))
	}

	resolver.ClearCache()
	return results
}

func (r *Runner) checkElement(ctx context.Context, resolver *healing.Resolver, page *Page, check *ElementCheck) ElementResult {
	result := ElementResult{
		Page:    page.Name,
		Element: check.Name,
		Locator: check.Locator,
	}

	start := time.Now()
	defer func() { result.Duration = time.Since(start) }()

	if check.All {
		matches, err := resolver.ResolveAll(ctx, check.Locator, check.Name)
		if err != nil || len(matches) == 0 {
			result.Status = StatusFailed
			result.Error = "no elements matched"
			return result
		}
		result.Status = StatusPassed
		result.ResolvedLocator = check.Locator
		return result
	}

	if _, err := resolver.Resolve(ctx, check.Locator, check.Name); err != nil {
		var notFound *healing.ElementNotFoundError
		if !errors.As(err, &notFound) {
			// The resolver only fails with ElementNotFound; anything else
			// would be a collaborator bug, still reported per element.
			r.log.WithError(err).Warn("unexpected resolution error")
		}
		result.Status = StatusFailed
		result.Error = err.Error()
		return result
	}

	result.Status = StatusPassed
	result.ResolvedLocator = check.Locator
	if snap, ok := resolver.Snapshot(check.Name); ok && snap.LastKnownLocator != check.Locator {
		result.Status = StatusHealed
		result.ResolvedLocator = snap.LastKnownLocator
	}
	return result
}

// pageURL composes the navigation target: absolute page paths win, then the
// suite's base URL override, then the configured environment base URL.
func (r *Runner) pageURL(suite *Suite, page *Page) string {
	if strings.HasPrefix(page.Path, "http://") || strings.HasPrefix(page.Path, "https://") {
		return page.Path
	}
	base := r.cfg.BaseURL
	if suite.BaseURL != "" {
		base = suite.BaseURL
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(page.Path, "/")
}

func failAll(page *Page, err error) []ElementResult {
	results := make([]ElementResult, 0, len(page.Elements))
	for _, check := range page.Elements {
		results = append(results, ElementResult{
			Page:    page.Name,
			Element: check.Name,
			Locator: check.Locator,
			Status:  StatusFailed,
			Error:   err.Error(),
		})
	}
	return results
}
