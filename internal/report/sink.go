// Package report persists audit outcomes to ClickHouse for trend analysis.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/sirupsen/logrus"

	"github.com/shanmugaprathap/qa-enterprise-suite/internal/audit"
	"github.com/shanmugaprathap/qa-enterprise-suite/internal/config"
)

// Sink writes audit reports into the healing_events table.
type Sink struct {
	conn driver.Conn
	log  logrus.FieldLogger
}

// NewSink establishes a connection to ClickHouse using native protocol.
func NewSink(log logrus.FieldLogger, cfg *config.Config) (*Sink, error) {
	conn, err := connect(cfg, cfg.ClickhouseDatabase)
	if err != nil {
		return nil, err
	}

	return &Sink{
		conn: conn,
		log:  log.WithField("component", "report_sink"),
	}, nil
}

// EnsureDatabase creates the reporting database if it doesn't exist. It
// connects through the default database since the target may not exist yet.
func EnsureDatabase(cfg *config.Config) error {
	conn, err := connect(cfg, "default")
	if err != nil {
		return err
	}
	defer func() {
		_ = conn.Close()
	}()

	query := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", cfg.ClickhouseDatabase)
	if err := conn.Exec(context.Background(), query); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	return nil
}

func connect(cfg *config.Config, database string) (driver.Conn, error) {
	options := &clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.ClickhouseHost, cfg.ClickhouseNativePort)},
		Auth: clickhouse.Auth{
			Database: database,
			Username: cfg.ClickhouseUsername,
			Password: cfg.ClickhousePassword,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout:     time.Second * 30,
		MaxOpenConns:    5,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Duration(10) * time.Minute,
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return conn, nil
}

// Write inserts one row per element result of the report.
func (s *Sink) Write(ctx context.Context, environment string, report *audit.Report) error {
	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO healing_events (
			suite, environment, page, element, locator, resolved_locator,
			status, duration_ms, error, recorded_at
		)`)
	if err != nil {
		return fmt.Errorf("failed to prepare batch: %w", err)
	}

	for _, result := range report.Results {
		if err := batch.Append(
			report.Suite,
			environment,
			result.Page,
			result.Element,
			result.Locator,
			result.ResolvedLocator,
			string(result.Status),
			result.Duration.Milliseconds(),
			result.Error,
			report.FinishedAt,
		); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send batch: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"suite": report.Suite,
		"rows":  len(report.Results),
	}).Info("report persisted")

	return nil
}

// Close releases the underlying connection.
func (s *Sink) Close() error {
	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}
	return nil
}
