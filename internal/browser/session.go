// Package browser provides the live element query collaborator: a
// Playwright-backed browsing session that the resolution engine queries for
// element handles. One session owns one browser context and one page; it is
// never shared across concurrent audit workers.
package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"

	"github.com/shanmugaprathap/qa-enterprise-suite/internal/config"
	"github.com/shanmugaprathap/qa-enterprise-suite/internal/healing"
)

// Session drives a single browser page.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	baseURL string
	log     logrus.FieldLogger
}

// NewSession starts Playwright and launches a browser per configuration.
func NewSession(log logrus.FieldLogger, cfg *config.Config) (*Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browserType, err := pickBrowserType(pw, cfg.Browser)
	if err != nil {
		_ = pw.Stop()
		return nil, err
	}

	browser, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", cfg.Browser, err)
	}

	browserCtx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1280, Height: 720},
	})
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		_ = browserCtx.Close()
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	return &Session{
		pw:      pw,
		browser: browser,
		context: browserCtx,
		page:    page,
		baseURL: cfg.BaseURL,
		log:     log.WithField("component", "browser_session"),
	}, nil
}

func pickBrowserType(pw *playwright.Playwright, name string) (playwright.BrowserType, error) {
	switch strings.ToLower(name) {
	case "chromium", "chrome", "":
		return pw.Chromium, nil
	case "firefox":
		return pw.Firefox, nil
	case "webkit", "safari":
		return pw.WebKit, nil
	}
	return nil, fmt.Errorf("unsupported browser %q", name)
}

// Navigate opens a path or absolute URL and waits for the load event.
func (s *Session) Navigate(_ context.Context, target string) error {
	url := target
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		url = strings.TrimSuffix(s.baseURL, "/") + "/" + strings.TrimPrefix(target, "/")
	}

	s.log.WithField("url", url).Debug("navigating")
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(30000),
	})
	if err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// Query evaluates a locator expression against the current page and returns
// every match in document order. Zero matches is a normal result; errors
// (invalid selector, mid-navigation race) are reported for the caller to
// treat as zero usable matches.
func (s *Session) Query(_ context.Context, locator string) ([]healing.Element, error) {
	matches, err := s.page.Locator(locator).All()
	if err != nil {
		return nil, fmt.Errorf("locator query failed: %w", err)
	}

	elements := make([]healing.Element, 0, len(matches))
	for _, m := range matches {
		elements = append(elements, &element{loc: m})
	}
	return elements, nil
}

// URL returns the current page URL.
func (s *Session) URL() string {
	return s.page.URL()
}

// Close shuts the session down, tolerating targets that already closed.
func (s *Session) Close() error {
	var closeErr error

	if s.context != nil {
		if err := s.context.Close(); err != nil && !closedAlready(err) {
			closeErr = fmt.Errorf("failed to close context: %w", err)
		}
		s.context = nil
	}

	if s.browser != nil {
		if err := s.browser.Close(); err != nil && !closedAlready(err) {
			if closeErr != nil {
				closeErr = fmt.Errorf("%v; failed to close browser: %w", closeErr, err)
			} else {
				closeErr = fmt.Errorf("failed to close browser: %w", err)
			}
		}
		s.browser = nil
	}

	if s.pw != nil {
		if err := s.pw.Stop(); err != nil && closeErr == nil {
			closeErr = fmt.Errorf("failed to stop playwright: %w", err)
		}
		s.pw = nil
	}

	return closeErr
}

func closedAlready(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "closed") || strings.Contains(msg, "target closed")
}
