// Package healing implements self-healing element resolution: when a locator
// stops matching after a markup change, the resolver generates alternative
// locators from a cached snapshot of the element, scores every live match
// against that snapshot and recovers the most similar element.
package healing

import "context"

// Rect describes an element's bounding box in viewport pixels.
// A zero-valued Rect means the geometry could not be measured.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// IsZero reports whether no geometry was captured.
func (r Rect) IsZero() bool {
	return r.X == 0 && r.Y == 0 && r.Width == 0 && r.Height == 0
}

// Element is a handle to a live element exposed by a query collaborator.
// Implementations must be best-effort: an attribute that cannot be read is
// reported as empty rather than failing the call.
type Element interface {
	// TagName returns the lowercase tag name.
	TagName() string

	// Attribute returns the value of the named attribute, or "" if the
	// attribute is absent or unreadable.
	Attribute(name string) string

	// Text returns the trimmed visible text of the element.
	Text() string

	// Rect returns the bounding box and whether it could be measured.
	Rect() (Rect, bool)

	// Visible reports whether the element is rendered and visible.
	Visible() bool

	// Enabled reports whether the element accepts input.
	Enabled() bool

	// Attached reports whether the element is still part of the live tree.
	Attached() bool
}

// Querier evaluates a locator expression against the live tree and returns
// every match in document order. Zero matches is a normal, non-error result.
// Errors indicate transient collaborator failures (stale handles,
// mid-navigation races) and are treated by the resolver as zero matches.
type Querier interface {
	Query(ctx context.Context, locator string) ([]Element, error)
}
