package audit

import (
	"context"
	"errors"
	"io"
	"sort"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/shanmugaprathap/qa-enterprise-suite/internal/config"
	"github.com/shanmugaprathap/qa-enterprise-suite/internal/healing"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:        config.EnvQA,
		BaseURL:            "https://qa.example.com",
		SelfHealingEnabled: true,
		AuditParallelism:   2,
	}
}

// fakeElement implements healing.Element.
type fakeElement struct {
	tag   string
	text  string
	attrs map[string]string
}

func (f *fakeElement) TagName() string              { return f.tag }
func (f *fakeElement) Attribute(name string) string { return f.attrs[name] }
func (f *fakeElement) Text() string                 { return f.text }
func (f *fakeElement) Rect() (healing.Rect, bool)   { return healing.Rect{}, false }
func (f *fakeElement) Visible() bool                { return true }
func (f *fakeElement) Enabled() bool                { return true }
func (f *fakeElement) Attached() bool               { return true }

// fakeSession implements Session over a static locator → matches map.
type fakeSession struct {
	matches   map[string][]healing.Element
	navErr    error
	navigated []string
	closed    bool
}

func (s *fakeSession) Query(_ context.Context, locator string) ([]healing.Element, error) {
	return s.matches[locator], nil
}

func (s *fakeSession) Navigate(_ context.Context, target string) error {
	s.navigated = append(s.navigated, target)
	return s.navErr
}

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

func sortedResults(report *Report) []ElementResult {
	results := append([]ElementResult(nil), report.Results...)
	sort.Slice(results, func(i, j int) bool {
		if results[i].Page != results[j].Page {
			return results[i].Page < results[j].Page
		}
		return results[i].Element < results[j].Element
	})
	return results
}

func TestRunner_PassedHealedFailed(t *testing.T) {
	t.Parallel()

	session := &fakeSession{
		matches: map[string][]healing.Element{
			// Primary hit.
			"#login": {&fakeElement{tag: "button", text: "Log in", attrs: map[string]string{"id": "login"}}},
			// "#search" misses; the fragment-derived candidate recovers it.
			"[id*='search']": {&fakeElement{tag: "input", attrs: map[string]string{"id": "search-v2"}}},
			// "#gone" misses everywhere.
		},
	}

	suite := &Suite{
		Name: "smoke",
		Pages: []*Page{{
			Name: "home",
			Path: "/",
			Elements: []*ElementCheck{
				{Name: "login-button", Locator: "#login"},
				{Name: "search-field", Locator: "#search"},
				{Name: "promo-banner", Locator: "#gone"},
			},
		}},
	}

	runner := NewRunner(testLogger(), testConfig(), func() (Session, error) {
		return session, nil
	})

	report, err := runner.Run(context.Background(), suite)
	require.NoError(t, err)
	require.Len(t, report.Results, 3)
	require.False(t, report.Passed())

	results := sortedResults(report)

	login := results[0]
	require.Equal(t, "login-button", login.Element)
	require.Equal(t, StatusPassed, login.Status)
	require.Equal(t, "#login", login.ResolvedLocator)

	promo := results[1]
	require.Equal(t, "promo-banner", promo.Element)
	require.Equal(t, StatusFailed, promo.Status)
	require.NotEmpty(t, promo.Error)

	search := results[2]
	require.Equal(t, "search-field", search.Element)
	require.Equal(t, StatusHealed, search.Status)
	require.Equal(t, "[id*='search']", search.ResolvedLocator)

	require.True(t, session.closed)
	require.Equal(t, []string{"https://qa.example.com/"}, session.navigated)
}

func TestRunner_BulkCheck(t *testing.T) {
	t.Parallel()

	session := &fakeSession{
		matches: map[string][]healing.Element{
			".cart-row": {&fakeElement{tag: "tr"}, &fakeElement{tag: "tr"}},
		},
	}

	suite := &Suite{
		Name: "cart",
		Pages: []*Page{{
			Name: "cart",
			Path: "/cart",
			Elements: []*ElementCheck{
				{Name: "line-items", Locator: ".cart-row", All: true},
				{Name: "empty-rows", Locator: ".zzz none", All: true},
			},
		}},
	}

	runner := NewRunner(testLogger(), testConfig(), func() (Session, error) {
		return session, nil
	})

	report, err := runner.Run(context.Background(), suite)
	require.NoError(t, err)

	results := sortedResults(report)
	require.Equal(t, StatusFailed, results[0].Status)
	require.Equal(t, StatusPassed, results[1].Status)
}

func TestRunner_SessionFailureFailsPageOnly(t *testing.T) {
	t.Parallel()

	good := &fakeSession{
		matches: map[string][]healing.Element{
			"#ok": {&fakeElement{tag: "div"}},
		},
	}

	calls := 0
	factory := func() (Session, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("browser did not start")
		}
		return good, nil
	}

	suite := &Suite{
		Name: "two-pages",
		Pages: []*Page{
			{Name: "a", Path: "/a", Elements: []*ElementCheck{{Name: "x", Locator: "#x"}}},
			{Name: "b", Path: "/b", Elements: []*ElementCheck{{Name: "y", Locator: "#ok"}}},
		},
	}

	cfg := testConfig()
	cfg.AuditParallelism = 1

	report, err := NewRunner(testLogger(), cfg, factory).Run(context.Background(), suite)
	require.NoError(t, err)

	results := sortedResults(report)
	require.Equal(t, StatusFailed, results[0].Status)
	require.Contains(t, results[0].Error, "browser did not start")
	require.Equal(t, StatusPassed, results[1].Status)
}

func TestRunner_NavigationFailureFailsPage(t *testing.T) {
	t.Parallel()

	session := &fakeSession{navErr: errors.New("dns lookup failed")}

	suite := &Suite{
		Name: "nav",
		Pages: []*Page{
			{Name: "a", Path: "/a", Elements: []*ElementCheck{{Name: "x", Locator: "#x"}}},
		},
	}

	report, err := NewRunner(testLogger(), testConfig(), func() (Session, error) {
		return session, nil
	}).Run(context.Background(), suite)
	require.NoError(t, err)
	require.Equal(t, StatusFailed, report.Results[0].Status)
	require.True(t, session.closed)
}

func TestRunner_PageURL(t *testing.T) {
	t.Parallel()

	runner := NewRunner(testLogger(), testConfig(), nil)

	suite := &Suite{Name: "s"}
	require.Equal(t, "https://qa.example.com/login",
		runner.pageURL(suite, &Page{Path: "/login"}))

	suite.BaseURL = "https://override.example.com/"
	require.Equal(t, "https://override.example.com/login",
		runner.pageURL(suite, &Page{Path: "login"}))

	require.Equal(t, "https://elsewhere.example.com/x",
		runner.pageURL(suite, &Page{Path: "https://elsewhere.example.com/x"}))
}

func TestRunner_HealingDisabledStillReportsFailures(t *testing.T) {
	t.Parallel()

	session := &fakeSession{
		matches: map[string][]healing.Element{
			"[id*='search']": {&fakeElement{tag: "input"}},
		},
	}

	cfg := testConfig()
	cfg.SelfHealingEnabled = false

	suite := &Suite{
		Name: "strict",
		Pages: []*Page{
			{Name: "home", Path: "/", Elements: []*ElementCheck{{Name: "search", Locator: "#search"}}},
		},
	}

	report, err := NewRunner(testLogger(), cfg, func() (Session, error) {
		return session, nil
	}).Run(context.Background(), suite)
	require.NoError(t, err)

	// With healing off the miss is terminal even though a candidate would
	// have matched.
	require.Equal(t, StatusFailed, report.Results[0].Status)
}
