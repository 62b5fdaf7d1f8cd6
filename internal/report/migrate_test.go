package report

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shanmugaprathap/qa-enterprise-suite/internal/config"
)

func TestBuildConnectionString(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		ClickhouseHost:       "clickhouse.qa.internal",
		ClickhouseNativePort: 9000,
		ClickhouseUsername:   "default",
		ClickhouseDatabase:   "qa_reports",
	}

	connStr := buildConnectionString(cfg)
	require.Equal(t,
		"clickhouse://clickhouse.qa.internal:9000?username=default&database=qa_reports&x-multi-statement=true&x-migrations-table-engine=MergeTree",
		connStr)
}

func TestBuildConnectionString_WithPassword(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		ClickhouseHost:       "localhost",
		ClickhouseNativePort: 19000,
		ClickhouseUsername:   "qa",
		ClickhousePassword:   "secret",
		ClickhouseDatabase:   "qa_reports",
	}

	require.Contains(t, buildConnectionString(cfg), "&password=secret")
}

func TestBuildConnectionString_EscapesPassword(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		ClickhouseHost:       "localhost",
		ClickhouseNativePort: 9000,
		ClickhouseUsername:   "qa",
		ClickhousePassword:   "p&ss%word#1",
		ClickhouseDatabase:   "qa_reports",
	}

	connStr := buildConnectionString(cfg)
	require.Contains(t, connStr, "&password=p%26ss%25word%231")
	require.NotContains(t, connStr, "p&ss%word#1")
}
