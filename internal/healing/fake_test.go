package healing

import (
	"context"
	"errors"
)

// fakeElement implements Element for tests.
type fakeElement struct {
	tag      string
	text     string
	attrs    map[string]string
	rect     Rect
	hasRect  bool
	visible  bool
	enabled  bool
	detached bool
}

func (f *fakeElement) TagName() string { return f.tag }

func (f *fakeElement) Attribute(name string) string { return f.attrs[name] }

func (f *fakeElement) Text() string { return f.text }

func (f *fakeElement) Rect() (Rect, bool) { return f.rect, f.hasRect }

func (f *fakeElement) Visible() bool { return f.visible }

func (f *fakeElement) Enabled() bool { return f.enabled }

func (f *fakeElement) Attached() bool { return !f.detached }

// fakeQuerier implements Querier over a locator → matches map, recording
// every query so tests can assert which locators were evaluated.
type fakeQuerier struct {
	matches map[string][]Element
	errs    map[string]error
	calls   []string
}

var errStaleHandle = errors.New("stale element handle")

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{
		matches: make(map[string][]Element),
		errs:    make(map[string]error),
	}
}

func (q *fakeQuerier) Query(_ context.Context, locator string) ([]Element, error) {
	q.calls = append(q.calls, locator)
	if err, ok := q.errs[locator]; ok {
		return nil, err
	}
	return q.matches[locator], nil
}
