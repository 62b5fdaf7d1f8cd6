package healing

import (
	"strings"
	"time"
	"unicode/utf8"
)

// maxSnapshotText caps captured text to bound memory and scoring cost.
const maxSnapshotText = 500

// testAttributes are the test-identification attributes captured into a
// snapshot and preferred when generating replacement locators.
var testAttributes = []string{
	"data-testid", "data-test-id", "data-cy", "data-qa",
	"data-automation", "data-automation-id", "data-id",
	"data-name", "data-value", "data-type", "data-action",
}

// Snapshot records an element's observable attributes at the moment it was
// last successfully resolved. A Snapshot is a value and is never mutated
// after capture; geometry fields stay zero when unmeasurable, which the
// scorer treats as "no signal" rather than "element at origin".
type Snapshot struct {
	TagName          string
	ID               string
	Name             string
	Type             string
	Placeholder      string
	AriaLabel        string
	Href             string
	Text             string
	ClassNames       []string
	CustomAttributes map[string]string
	Geometry         Rect
	LastKnownLocator string
	CapturedAt       int64
}

// Capture builds a best-effort snapshot of a live element. Attributes that
// cannot be read are left empty; a resolution never fails because its
// snapshot is partial.
func Capture(el Element, locator string) Snapshot {
	snap := Snapshot{
		TagName:          el.TagName(),
		ID:               el.Attribute("id"),
		Name:             el.Attribute("name"),
		Type:             el.Attribute("type"),
		Placeholder:      el.Attribute("placeholder"),
		AriaLabel:        el.Attribute("aria-label"),
		Href:             el.Attribute("href"),
		Text:             truncate(el.Text(), maxSnapshotText),
		ClassNames:       splitClasses(el.Attribute("class")),
		LastKnownLocator: locator,
		CapturedAt:       time.Now().UnixMilli(),
	}

	if rect, ok := el.Rect(); ok {
		snap.Geometry = rect
	}

	custom := make(map[string]string)
	for _, attr := range testAttributes {
		if v := el.Attribute(attr); v != "" {
			custom[attr] = v
		}
	}
	snap.CustomAttributes = custom

	return snap
}

// Label returns a short human-readable description of the element, used in
// healing diagnostics. Priority: aria-label > placeholder > text > id > name.
func (s Snapshot) Label() string {
	switch {
	case s.AriaLabel != "":
		return s.AriaLabel
	case s.Placeholder != "":
		return s.Placeholder
	case s.Text != "" && len(s.Text) <= 50:
		return s.Text
	case s.ID != "":
		return s.ID
	case s.Name != "":
		return s.Name
	case s.TagName != "":
		return s.TagName
	}
	return "unknown"
}

// truncate caps s at maxLen characters, cutting at a rune boundary so the
// result stays valid UTF-8.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen])
}

// splitClasses splits a class attribute value into individual class names.
func splitClasses(class string) []string {
	if class == "" {
		return nil
	}
	return strings.Fields(class)
}
