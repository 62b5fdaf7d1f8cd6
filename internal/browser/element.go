package browser

import (
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/shanmugaprathap/qa-enterprise-suite/internal/healing"
)

// Per-attribute read timeout. Reads back a resolved locator, so they are
// cheap; a short timeout keeps healing scans from stalling on elements that
// detach mid-scan.
const readTimeoutMs = 2000.0

// element adapts a Playwright locator to healing.Element. Every method is
// best-effort: a read that fails reports "no value" so snapshot capture and
// scoring degrade instead of aborting a resolution.
type element struct {
	loc playwright.Locator
}

func (e *element) TagName() string {
	v, err := e.loc.Evaluate("el => el.tagName.toLowerCase()", nil, playwright.LocatorEvaluateOptions{
		Timeout: playwright.Float(readTimeoutMs),
	})
	if err != nil {
		return ""
	}
	tag, _ := v.(string)
	return tag
}

func (e *element) Attribute(name string) string {
	v, err := e.loc.GetAttribute(name, playwright.LocatorGetAttributeOptions{
		Timeout: playwright.Float(readTimeoutMs),
	})
	if err != nil {
		return ""
	}
	return v
}

func (e *element) Text() string {
	v, err := e.loc.InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(readTimeoutMs),
	})
	if err != nil {
		return ""
	}
	return strings.TrimSpace(v)
}

func (e *element) Rect() (healing.Rect, bool) {
	box, err := e.loc.BoundingBox()
	if err != nil || box == nil {
		return healing.Rect{}, false
	}
	return healing.Rect{
		X:      box.X,
		Y:      box.Y,
		Width:  box.Width,
		Height: box.Height,
	}, true
}

func (e *element) Visible() bool {
	v, err := e.loc.IsVisible()
	if err != nil {
		return false
	}
	return v
}

func (e *element) Enabled() bool {
	v, err := e.loc.IsEnabled(playwright.LocatorIsEnabledOptions{
		Timeout: playwright.Float(readTimeoutMs),
	})
	if err != nil {
		return false
	}
	return v
}

func (e *element) Attached() bool {
	v, err := e.loc.Evaluate("el => el.isConnected", nil, playwright.LocatorEvaluateOptions{
		Timeout: playwright.Float(readTimeoutMs),
	})
	if err != nil {
		return false
	}
	attached, _ := v.(bool)
	return attached
}
