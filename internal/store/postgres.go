package store

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iYassr/projectbudget/internal/dateutils"
	"github.com/iYassr/projectbudget/internal/logging"
	"github.com/iYassr/projectbudget/internal/models"
)

//go:embed schema.sql
var schemaSQL string

// Postgres stores expenses and learned merchant categories in PostgreSQL.
type Postgres struct {
	pool *pgxpool.Pool
	log  logging.Logger
}

// NewPostgres connects to the database, verifies the connection and applies
// the schema. The URL is a standard libpq/pgx connection string.
func NewPostgres(ctx context.Context, url string, maxConns int, logger logging.Logger) (*Postgres, error) {
	if url == "" {
		return nil, fmt.Errorf("database URL is empty (set DATABASE_URL)")
	}

	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}
	if maxConns > 0 {
		poolConfig.MaxConns = int32(maxConns)
	}
	poolConfig.MaxConnLifetime = 1 * time.Hour
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	p := &Postgres{pool: pool, log: logger}
	if err := p.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	logger.Info("Connected to PostgreSQL",
		logging.Field{Key: logging.FieldOperation, Value: "connect"})
	return p, nil
}

func (p *Postgres) migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, schemaSQL)
	return err
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// AddExpenses inserts a batch of expenses inside one transaction and returns
// the number actually inserted. An expense whose (date, merchant, amount)
// already exists is silently skipped, so re-processing the same export is
// safe.
func (p *Postgres) AddExpenses(ctx context.Context, expenses []models.Expense) (int, error) {
	if len(expenses) == 0 {
		return 0, nil
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, e := range expenses {
		id := e.ID
		if id == "" {
			id = uuid.NewString()
		}
		batch.Queue(`
			INSERT INTO expenses (id, date, amount, currency, merchant, kind, category, sender, raw_message, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (date, merchant, amount) DO NOTHING
		`,
			id,
			parseDate(e.Date),
			e.Amount.StringFixed(2),
			e.Currency,
			e.Merchant,
			e.Kind,
			e.Category,
			e.Sender,
			e.RawMessage,
			e.Notes,
		)
	}

	results := tx.SendBatch(ctx, batch)
	inserted := 0
	for i := range expenses {
		tag, err := results.Exec()
		if err != nil {
			results.Close()
			return 0, fmt.Errorf("inserting expense %d: %w", i, err)
		}
		inserted += int(tag.RowsAffected())
	}
	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("closing batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}

	p.log.Info("Stored expenses",
		logging.Field{Key: logging.FieldCount, Value: inserted},
		logging.Field{Key: "skipped", Value: len(expenses) - inserted})
	return inserted, nil
}

// ExpenseQuery narrows GetExpenses. Zero fields are inactive.
type ExpenseQuery struct {
	From     time.Time
	To       time.Time
	Category string
	Kind     string
}

// GetExpenses returns expenses matching the query, newest first.
func (p *Postgres) GetExpenses(ctx context.Context, q ExpenseQuery) ([]models.Expense, error) {
	sql := `SELECT id, date, amount::text, currency, merchant, kind,
	               COALESCE(category, ''), COALESCE(sender, ''), COALESCE(raw_message, ''), notes
	        FROM expenses WHERE 1=1`
	var args []any
	if !q.From.IsZero() {
		args = append(args, q.From)
		sql += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if !q.To.IsZero() {
		args = append(args, q.To)
		sql += fmt.Sprintf(" AND date < $%d", len(args))
	}
	if q.Category != "" {
		args = append(args, q.Category)
		sql += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if q.Kind != "" {
		args = append(args, q.Kind)
		sql += fmt.Sprintf(" AND kind = $%d", len(args))
	}
	sql += " ORDER BY date DESC"

	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("querying expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		var date time.Time
		var amount string
		if err := rows.Scan(&e.ID, &date, &amount, &e.Currency, &e.Merchant, &e.Kind,
			&e.Category, &e.Sender, &e.RawMessage, &e.Notes); err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}
		e.Date = dateutils.FormatTimestamp(date)
		e.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parsing stored amount %q: %w", amount, err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// UpdateCategoryByMerchant re-categorizes every expense of one merchant and
// returns the number of rows touched.
func (p *Postgres) UpdateCategoryByMerchant(ctx context.Context, merchant, category string) (int, error) {
	tag, err := p.pool.Exec(ctx,
		`UPDATE expenses SET category = $1, updated_at = NOW() WHERE merchant = $2`,
		category, merchant)
	if err != nil {
		return 0, fmt.Errorf("updating category: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// Statistics summarizes the stored expenses in a date window.
type Statistics struct {
	Count           int
	Total           decimal.Decimal
	UniqueMerchants int
}

// GetStatistics computes aggregate statistics over [from, to).
func (p *Postgres) GetStatistics(ctx context.Context, from, to time.Time) (Statistics, error) {
	sql := `SELECT COUNT(*), COALESCE(SUM(amount), 0)::text, COUNT(DISTINCT merchant)
	        FROM expenses WHERE 1=1`
	var args []any
	if !from.IsZero() {
		args = append(args, from)
		sql += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if !to.IsZero() {
		args = append(args, to)
		sql += fmt.Sprintf(" AND date < $%d", len(args))
	}

	var stats Statistics
	var total string
	if err := p.pool.QueryRow(ctx, sql, args...).Scan(&stats.Count, &total, &stats.UniqueMerchants); err != nil {
		return Statistics{}, fmt.Errorf("querying statistics: %w", err)
	}
	var err error
	stats.Total, err = decimal.NewFromString(total)
	if err != nil {
		return Statistics{}, fmt.Errorf("parsing total %q: %w", total, err)
	}
	return stats, nil
}

// GetMerchantCategory looks up the learned category for a merchant.
func (p *Postgres) GetMerchantCategory(ctx context.Context, merchant string) (string, bool, error) {
	var category string
	err := p.pool.QueryRow(ctx,
		`SELECT category FROM merchant_categories WHERE merchant = $1`,
		merchant).Scan(&category)
	if err == pgx.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying merchant category: %w", err)
	}
	return category, true, nil
}

// SaveMerchantCategory learns or refreshes a merchant→category mapping.
func (p *Postgres) SaveMerchantCategory(ctx context.Context, merchant, category string, confidence float64) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO merchant_categories (merchant, category, confidence, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (merchant) DO UPDATE SET
			category = EXCLUDED.category,
			confidence = EXCLUDED.confidence,
			updated_at = NOW()
	`, merchant, category, confidence)
	if err != nil {
		return fmt.Errorf("saving merchant category: %w", err)
	}
	return nil
}

// parseDate converts an expense timestamp into a database value. Unreadable
// timestamps fall back to the current time rather than failing the batch.
func parseDate(s string) time.Time {
	if ts, err := dateutils.ParseTimestamp(s); err == nil {
		return ts
	}
	return time.Now()
}
