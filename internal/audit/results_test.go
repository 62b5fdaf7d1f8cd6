package audit

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func sampleReport() *Report {
	started := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	return &Report{
		Suite:      "smoke",
		StartedAt:  started,
		FinishedAt: started.Add(4 * time.Second),
		Results: []ElementResult{
			{Page: "login", Element: "username", Locator: "#username", ResolvedLocator: "#username", Status: StatusPassed, Duration: 120 * time.Millisecond},
			{Page: "login", Element: "submit", Locator: "#submit", ResolvedLocator: "[data-testid='login-submit']", Status: StatusHealed, Duration: 800 * time.Millisecond},
			{Page: "dashboard", Element: "nav", Locator: "#nav", Status: StatusFailed, Error: "element 'nav' not found"},
		},
	}
}

func TestReport_Passed(t *testing.T) {
	t.Parallel()

	report := sampleReport()
	require.False(t, report.Passed())

	// Healed results alone do not fail a run.
	report.Results = report.Results[:2]
	require.True(t, report.Passed())
}

func TestReport_CountByStatus(t *testing.T) {
	t.Parallel()

	report := sampleReport()
	require.Equal(t, 1, report.CountByStatus(StatusPassed))
	require.Equal(t, 1, report.CountByStatus(StatusHealed))
	require.Equal(t, 1, report.CountByStatus(StatusFailed))
}

func TestFormatter_Print(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewFormatter(&buf).Print(sampleReport())

	out := buf.String()
	require.Contains(t, out, "Suite: smoke")
	require.Contains(t, out, "login/username")
	require.Contains(t, out, "#submit → [data-testid='login-submit']")
	require.Contains(t, out, "element 'nav' not found")
	require.Contains(t, out, "passed: 1")
	require.Contains(t, out, "healed: 1")
	require.Contains(t, out, "failed: 1")
	require.Contains(t, out, "Healed locators should be updated")
}
