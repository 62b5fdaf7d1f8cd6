package audit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeSuite(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSuite(t *testing.T) {
	t.Parallel()

	path := writeSuite(t, `
name: checkout-smoke
base_url: https://qa.shop.example.com
pages:
  - name: login
    path: /login
    elements:
      - name: login-button
        locator: "#login"
      - name: password-field
        locator: "input[type='password']"
  - name: cart
    path: /cart
    elements:
      - name: line-items
        locator: ".cart-row"
        all: true
`)

	suite, err := LoadSuite(path)
	require.NoError(t, err)

	require.Equal(t, "checkout-smoke", suite.Name)
	require.Equal(t, "https://qa.shop.example.com", suite.BaseURL)
	require.Len(t, suite.Pages, 2)
	require.Equal(t, "#login", suite.Pages[0].Elements[0].Locator)
	require.False(t, suite.Pages[0].Elements[0].All)
	require.True(t, suite.Pages[1].Elements[0].All)
}

func TestLoadSuite_Validation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "missing suite name",
			content: "pages:\n  - name: p\n    path: /\n    elements:\n      - name: e\n        locator: '#e'\n",
			wantErr: errSuiteNameRequired,
		},
		{
			name:    "no pages",
			content: "name: s\n",
			wantErr: errSuiteNeedsPages,
		},
		{
			name:    "missing page name",
			content: "name: s\npages:\n  - path: /\n    elements:\n      - name: e\n        locator: '#e'\n",
			wantErr: errPageNameRequired,
		},
		{
			name:    "missing page path",
			content: "name: s\npages:\n  - name: p\n    elements:\n      - name: e\n        locator: '#e'\n",
			wantErr: errPagePathRequired,
		},
		{
			name:    "no elements",
			content: "name: s\npages:\n  - name: p\n    path: /\n",
			wantErr: errPageNeedsElements,
		},
		{
			name:    "missing element name",
			content: "name: s\npages:\n  - name: p\n    path: /\n    elements:\n      - locator: '#e'\n",
			wantErr: errElementNameRequired,
		},
		{
			name:    "duplicate element name",
			content: "name: s\npages:\n  - name: p\n    path: /\n    elements:\n      - name: e\n        locator: '#e'\n      - name: e\n        locator: '#f'\n",
			wantErr: errElementNameNotUniq,
		},
		{
			name:    "missing locator",
			content: "name: s\npages:\n  - name: p\n    path: /\n    elements:\n      - name: e\n",
			wantErr: errLocatorRequired,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadSuite(writeSuite(t, tc.content))
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestLoadSuite_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadSuite(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadSuite_MalformedYAML(t *testing.T) {
	t.Parallel()

	_, err := LoadSuite(writeSuite(t, "name: [unclosed"))
	require.ErrorContains(t, err, "failed to parse suite file")
}
