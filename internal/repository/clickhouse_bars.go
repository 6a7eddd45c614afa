package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"TrendSight/internal/domain/models"
	domrepo "TrendSight/internal/domain/repository"
	pkgch "TrendSight/pkg/clickhouse"
	applogger "TrendSight/pkg/logger"
)

// CHBarStore implements BarStore backed by ClickHouse.
type CHBarStore struct {
	client *pkgch.Client
	db     *sql.DB
	l      *applogger.Logger
}

func NewCHBarStore(ch *pkgch.Client) *CHBarStore {
	return &CHBarStore{client: ch, db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHBarStore) SetLogger(l *applogger.Logger) { s.l = l }

// Schema returns idempotent DDL for the bar and signal tables.
func Schema() []string {
	return []string{
		`CREATE DATABASE IF NOT EXISTS trendsight`,
		`CREATE TABLE IF NOT EXISTS trendsight.daily_bars (
            symbol LowCardinality(String),
            date Date,
            open Float64,
            high Float64,
            low Float64,
            close Float64,
            volume Int64
        ) ENGINE = ReplacingMergeTree
        ORDER BY (symbol, date)`,
		`CREATE TABLE IF NOT EXISTS trendsight.signals (
            date Date,
            symbol LowCardinality(String),
            direction LowCardinality(String),
            target Float64,
            stop_loss Float64,
            generated_at DateTime,
            current_price Float64,
            strength Int32,
            daily_volatility Float64,
            weekly_volatility Float64,
            daily_stoch_k Float64,
            daily_stoch_d Float64,
            weekly_stoch_k Float64,
            weekly_stoch_d Float64,
            daily_vwap Float64,
            weekly_vwap Float64
        ) ENGINE = MergeTree
        ORDER BY (symbol, date, generated_at)`,
	}
}

// InitSchema creates the database and tables if they do not exist.
func (s *CHBarStore) InitSchema(ctx context.Context) error {
	return s.client.InitSchema(ctx, Schema())
}

func (s *CHBarStore) GetDailyBars(ctx context.Context, symbol string, from, to time.Time) ([]models.Bar, error) {
	start := time.Now()
	q := `
        SELECT date, open, high, low, close, volume
        FROM trendsight.daily_bars FINAL
        WHERE symbol = ?`
	args := []any{symbol}
	if !from.IsZero() {
		q += ` AND date >= ?`
		args = append(args, from)
	}
	if !to.IsZero() {
		q += ` AND date <= ?`
		args = append(args, to)
	}
	q += ` ORDER BY date ASC`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse get_daily_bars query error",
				applogger.String("symbol", symbol),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("get daily bars: %w", err)
	}
	defer rows.Close()

	out := make([]models.Bar, 0, 1024)
	for rows.Next() {
		var b models.Bar
		if err := rows.Scan(&b.Date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse get_daily_bars scan error",
					applogger.String("symbol", symbol),
					applogger.Error(err),
				)
			}
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse get_daily_bars rows error",
				applogger.String("symbol", symbol),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Debug("clickhouse get_daily_bars ok",
			applogger.String("symbol", symbol),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *CHBarStore) StoreDailyBars(ctx context.Context, symbol string, bars []models.Bar) error {
	if len(bars) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bar insert: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO trendsight.daily_bars
            (symbol, date, open, high, low, close, volume)
        VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare bar insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.ExecContext(ctx, symbol, b.Date, b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			_ = tx.Rollback()
			if s.l != nil {
				s.l.Error("clickhouse store_daily_bars exec error",
					applogger.String("symbol", symbol),
					applogger.Error(err),
				)
			}
			return fmt.Errorf("insert bar: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bar insert: %w", err)
	}
	if s.l != nil {
		s.l.Debug("clickhouse store_daily_bars ok",
			applogger.String("symbol", symbol),
			applogger.Int("rows", len(bars)),
		)
	}
	return nil
}

func (s *CHBarStore) InsertSignals(ctx context.Context, records []models.SignalRecord) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin signal insert: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO trendsight.signals
            (date, symbol, direction, target, stop_loss, generated_at,
             current_price, strength, daily_volatility, weekly_volatility,
             daily_stoch_k, daily_stoch_d, weekly_stoch_k, weekly_stoch_d,
             daily_vwap, weekly_vwap)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare signal insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		date, err := time.Parse("2006-01-02", r.Date)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("signal date %q: %w", r.Date, err)
		}
		generatedAt, err := time.Parse(time.RFC3339, r.Time)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("signal time %q: %w", r.Time, err)
		}
		if _, err := stmt.ExecContext(ctx,
			date, r.StockName, r.Direction, r.Target, r.StopLoss, generatedAt,
			r.CurrentPrice, int32(r.SignalStrength), r.DailyVolatility, r.WeeklyVolatility,
			r.DailyStochasticK, r.DailyStochasticD, r.WeeklyStochasticK, r.WeeklyStochasticD,
			r.DailyVWAP, r.WeeklyVWAP,
		); err != nil {
			_ = tx.Rollback()
			if s.l != nil {
				s.l.Error("clickhouse insert_signals exec error",
					applogger.String("symbol", r.StockName),
					applogger.Error(err),
				)
			}
			return fmt.Errorf("insert signal: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit signal insert: %w", err)
	}
	if s.l != nil {
		s.l.Debug("clickhouse insert_signals ok", applogger.Int("rows", len(records)))
	}
	return nil
}

func (s *CHBarStore) Health(ctx context.Context) error {
	return s.client.Health(ctx)
}

func (s *CHBarStore) Close() error {
	return s.client.Close()
}

var _ domrepo.BarStore = (*CHBarStore)(nil)
