package healing

import (
	"fmt"
	"regexp"
	"strings"
)

// genericClasses are layout/state classes too common to identify an element.
// They are never emitted as class-only locators.
var genericClasses = map[string]struct{}{
	"container": {},
	"wrapper":   {},
	"content":   {},
	"row":       {},
	"col":       {},
	"btn":       {},
	"active":    {},
	"disabled":  {},
	"hidden":    {},
	"visible":   {},
	"clearfix":  {},
}

// maxTextLocatorLen bounds text-based locators; longer text is too likely to
// be unstable or localized and too expensive to match literally.
const maxTextLocatorLen = 50

var (
	idAttrPattern    = regexp.MustCompile(`\[\s*@?id\s*[*$^|~]?=\s*['"]?([^'"\]]+?)['"]?\s*\]`)
	classAttrPattern = regexp.MustCompile(`\[\s*@?class\s*[*$^|~]?=\s*['"]?([^'"\]]+?)['"]?\s*\]`)
)

// GenerateCandidates produces an ordered, deduplicated list of alternative
// locator expressions for a failed locator. Snapshot-derived candidates come
// first since they are the most specific; fragments recovered from the
// original locator literal come last. The function is pure: it never touches
// the live tree. With no snapshot and no extractable fragment it returns an
// empty list, which callers must treat as an unrecoverable failure.
func GenerateCandidates(originalLocator string, snap *Snapshot) []string {
	var out []string
	seen := make(map[string]struct{})

	add := func(locator string) {
		if _, dup := seen[locator]; dup {
			return
		}
		seen[locator] = struct{}{}
		out = append(out, locator)
	}

	if snap != nil {
		// Id fragments tend to survive framework re-renders even when the
		// full id changes, so contains/suffix variants follow the exact match.
		if snap.ID != "" {
			add(attrEquals("id", snap.ID))
			add(attrContains("id", snap.ID))
			add(attrEndsWith("id", snap.ID))
		}

		for _, attr := range testAttributes {
			if v, ok := snap.CustomAttributes[attr]; ok {
				add(attrEquals(attr, v))
			}
		}

		if snap.Name != "" {
			add(attrEquals("name", snap.Name))
		}
		if snap.AriaLabel != "" {
			add(attrEquals("aria-label", snap.AriaLabel))
		}
		if snap.Placeholder != "" {
			add(attrEquals("placeholder", snap.Placeholder))
		}

		if text := strings.TrimSpace(snap.Text); text != "" && len(text) <= maxTextLocatorLen {
			add(fmt.Sprintf("text=%q", text))
			add("text=" + text)
		}

		for _, class := range snap.ClassNames {
			if _, generic := genericClasses[strings.ToLower(class)]; generic {
				continue
			}
			add("." + class)
		}
	}

	// Recover fragments from the original locator literal. This handles the
	// common case of an id or class that gained or lost a generated suffix.
	id, class := locatorHints(originalLocator)
	if id != "" {
		add(attrContains("id", id))
		add(attrEndsWith("id", id))
	}
	if class != "" {
		add(attrContains("class", class))
	}

	return out
}

// locatorHints extracts an id or class fragment from the literal text of a
// locator expression. Understood shapes: "#id", ".class", "tag.class",
// "[id='x']" and "[class*='x']" attribute selectors (CSS or XPath-style with
// a leading @).
func locatorHints(locator string) (id, class string) {
	locator = strings.TrimSpace(locator)

	switch {
	case strings.HasPrefix(locator, "#"):
		id = selectorToken(locator[1:])
	case strings.HasPrefix(locator, "."):
		class = selectorToken(locator[1:])
	default:
		if m := idAttrPattern.FindStringSubmatch(locator); m != nil {
			id = m[1]
		}
		if m := classAttrPattern.FindStringSubmatch(locator); m != nil {
			class = m[1]
		}
		// Compound selectors like "button.submit" carry a usable class.
		if id == "" && class == "" && !strings.ContainsAny(locator, "[/") {
			if i := strings.IndexByte(locator, '.'); i > 0 {
				class = selectorToken(locator[i+1:])
			}
		}
	}

	return id, class
}

// selectorToken cuts a selector fragment at the first CSS combinator or
// qualifier so "#login-button > span" yields "login-button".
func selectorToken(s string) string {
	if i := strings.IndexAny(s, " .#[:>+~,"); i >= 0 {
		return s[:i]
	}
	return s
}

func attrEquals(name, value string) string {
	return fmt.Sprintf("[%s='%s']", name, escapeQuotes(value))
}

func attrContains(name, value string) string {
	return fmt.Sprintf("[%s*='%s']", name, escapeQuotes(value))
}

func attrEndsWith(name, value string) string {
	return fmt.Sprintf("[%s$='%s']", name, escapeQuotes(value))
}

func escapeQuotes(v string) string {
	return strings.ReplaceAll(v, "'", `\'`)
}
