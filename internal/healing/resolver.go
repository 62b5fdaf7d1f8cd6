package healing

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ElementNotFoundError is returned when neither the primary locator nor any
// generated candidate yields an interactable element. It is fatal to the
// calling operation; the resolver never retries internally.
type ElementNotFoundError struct {
	Name    string
	Locator string
}

func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("element %q not found (locator %s)", e.Name, e.Locator)
}

// Resolver resolves logical element references against a live tree with
// optional self-healing. Each session owns exactly one Resolver and its
// snapshot store; a Resolver must not be shared across concurrent sessions.
type Resolver struct {
	querier Querier
	store   *SnapshotStore
	healing bool
	log     logrus.FieldLogger
}

// NewResolver creates a resolver over a live element query collaborator.
// selfHealing is read once at construction: when false, a primary-locator
// miss fails fast instead of masking a genuinely broken test.
func NewResolver(log logrus.FieldLogger, q Querier, selfHealing bool) *Resolver {
	return &Resolver{
		querier: q,
		store:   NewSnapshotStore(),
		healing: selfHealing,
		log:     log.WithField("component", "resolver"),
	}
}

// Resolve finds a single interactable element for the given locator. On a
// primary-locator miss with healing enabled it generates candidate locators
// from the cached snapshot and the locator literal, scores every
// interactable match and returns the best one, refreshing the snapshot
// cache. Failure is reported as *ElementNotFoundError.
func (r *Resolver) Resolve(ctx context.Context, locator, logicalName string) (Element, error) {
	if el := r.tryPrimary(ctx, locator); el != nil {
		r.store.Put(logicalName, Capture(el, locator))
		r.log.WithField("element", logicalName).Debug("resolved with primary locator")
		return el, nil
	}

	if !r.healing {
		return nil, &ElementNotFoundError{Name: logicalName, Locator: locator}
	}

	return r.heal(ctx, locator, logicalName)
}

// ResolveAll finds every element matched by the first locator, primary or
// generated, that yields at least one match. It does not rank or merge
// across candidates and returns an empty slice on total failure, matching
// bulk-query semantics.
func (r *Resolver) ResolveAll(ctx context.Context, locator, logicalName string) ([]Element, error) {
	matches, err := r.querier.Query(ctx, locator)
	if err == nil && len(matches) > 0 {
		return matches, nil
	}
	if err != nil {
		r.log.WithError(err).WithField("element", logicalName).Debug("primary locator query failed")
	}

	if !r.healing {
		return []Element{}, nil
	}

	var snap *Snapshot
	if cached, ok := r.store.Get(logicalName); ok {
		snap = &cached
	}

	for _, candidate := range GenerateCandidates(locator, snap) {
		matches, err := r.querier.Query(ctx, candidate)
		if err != nil {
			r.log.WithError(err).WithField("locator", candidate).Trace("candidate locator failed")
			continue
		}
		if len(matches) > 0 {
			r.log.WithFields(logrus.Fields{
				"element": logicalName,
				"locator": candidate,
				"count":   len(matches),
			}).Info("healed bulk locator")
			return matches, nil
		}
	}

	return []Element{}, nil
}

// Snapshot returns the cached snapshot for a logical name. Callers use it
// to report the locator that last resolved an element; the healing scan
// itself is never exposed.
func (r *Resolver) Snapshot(logicalName string) (Snapshot, bool) {
	return r.store.Get(logicalName)
}

// ClearCache empties the snapshot store, typically at session teardown.
func (r *Resolver) ClearCache() {
	r.store.Clear()
}

// CacheSize returns the number of cached snapshots.
func (r *Resolver) CacheSize() int {
	return r.store.Size()
}

// tryPrimary evaluates the primary locator and returns its first match if
// that match is interactable. Query errors are treated as a miss: healing
// decides what happens next.
func (r *Resolver) tryPrimary(ctx context.Context, locator string) Element {
	matches, err := r.querier.Query(ctx, locator)
	if err != nil {
		r.log.WithError(err).WithField("locator", locator).Debug("primary locator query failed")
		return nil
	}
	if len(matches) == 0 || !interactable(matches[0]) {
		return nil
	}
	return matches[0]
}

// heal runs the candidate scan: every interactable match of every generated
// locator is scored against the cached snapshot, and the best match wins.
// Ties keep the earlier-generated candidate, i.e. the more specific one —
// a strict greater-than comparison in generation order guarantees that.
func (r *Resolver) heal(ctx context.Context, locator, logicalName string) (Element, error) {
	log := r.log.WithField("element", logicalName)
	log.Info("attempting self-healing")

	var snap *Snapshot
	if cached, ok := r.store.Get(logicalName); ok {
		snap = &cached
	}

	candidates := GenerateCandidates(locator, snap)
	if len(candidates) == 0 {
		log.Warn("no candidate locators could be generated")
		return nil, &ElementNotFoundError{Name: logicalName, Locator: locator}
	}

	var (
		best        Element
		bestScore   = -1.0
		bestLocator string
	)

	for _, candidate := range candidates {
		matches, err := r.querier.Query(ctx, candidate)
		if err != nil {
			// Stale handles and mid-navigation races count as zero matches;
			// the scan continues with the remaining candidates.
			log.WithError(err).WithField("locator", candidate).Trace("candidate locator failed")
			continue
		}
		for _, el := range matches {
			if !interactable(el) {
				continue
			}
			if score := ScoreElement(el, snap); score > bestScore {
				best, bestScore, bestLocator = el, score, candidate
			}
		}
	}

	if best == nil {
		log.Error("self-healing failed: no interactable candidate matches")
		return nil, &ElementNotFoundError{Name: logicalName, Locator: locator}
	}

	r.store.Put(logicalName, Capture(best, bestLocator))
	log.WithFields(logrus.Fields{
		"locator": bestLocator,
		"score":   fmt.Sprintf("%.3f", bestScore),
	}).Info("healed element")

	return best, nil
}

// interactable reports whether an element is attached to the live tree and
// visible, the precondition for returning it to callers.
func interactable(el Element) bool {
	return el.Attached() && el.Visible()
}
