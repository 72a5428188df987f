package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/guttosm/graindesk/internal/domain/models"
	pq "github.com/lib/pq"
)

// ErrNotFound is returned by GetByID when no buyer carries the id.
var ErrNotFound = errors.New("buyer not found")

// BuyersRepository defines contract for DB operations on the mirrored dataset.
type BuyersRepository interface {
	ReplaceAll(ctx context.Context, run models.SyncRun, records []models.BuyerRecord) error
	List(ctx context.Context, filter models.BuyerFilter) ([]models.BuyerRecord, error)
	Count(ctx context.Context, filter models.BuyerFilter) (int, error)
	GetByID(ctx context.Context, id string) (*models.BuyerRecord, error)
	CountByState(ctx context.Context) ([]models.StateCount, error)
	CountVerified(ctx context.Context) (int, error)
	LastSync(ctx context.Context) (*models.SyncRun, error)
}

type buyersRepository struct {
	db *sql.DB
}

func NewBuyersRepository(db *sql.DB) BuyersRepository {
	return &buyersRepository{db: db}
}

// buyerColumns is the column order shared by COPY and SELECT.
var buyerColumns = []string{
	"id", "position", "name", "type",
	"cash_price", "basis", "freight_cost", "net_price",
	"city", "state", "region", "lat", "lng",
	"rail_accessible", "near_transload",
	"contact_name", "contact_phone", "website",
	"last_updated", "confidence_score", "verified", "data_source",
}

// ReplaceAll swaps the mirrored dataset for records in a single transaction
// and records the sync run. Row order in records is kept in the position column.
func (r *buyersRepository) ReplaceAll(ctx context.Context, run models.SyncRun, records []models.BuyerRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM buyers`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("buyers", buyerColumns...))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for i, rec := range records {
		if _, err := stmt.ExecContext(ctx,
			rec.ID, i, rec.Name, string(rec.Type),
			rec.CashPrice, rec.Basis, rec.FreightCost, rec.NetPrice,
			rec.City, rec.State, rec.Region, rec.Lat, rec.Lng,
			rec.RailAccessible, rec.NearTransload,
			rec.ContactName, rec.ContactPhone, rec.Website,
			rec.LastUpdated, rec.ConfidenceScore, rec.Verified, rec.DataSource,
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return fmt.Errorf("copy buyer %s: %w", rec.ID, err)
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sync_runs (run_id, source, checksum, record_count) VALUES ($1, $2, $3, $4)`,
		run.RunID, run.Source, run.Checksum, len(records),
	); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// likeEscaper makes search input match literally inside an ILIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// where builds the WHERE clause for filter. Placeholders are numbered from 1.
func where(filter models.BuyerFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}
	add := func(cond string, v interface{}) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.State != "" {
		add("state = $%d", filter.State)
	}
	if filter.Type != "" {
		add("type = $%d", string(filter.Type))
	}
	if filter.Region != "" {
		add("region = $%d", filter.Region)
	}
	if filter.Verified != nil {
		add("verified = $%d", *filter.Verified)
	}
	if filter.Search != "" {
		add(`name ILIKE $%d ESCAPE '\'`, "%"+likeEscaper.Replace(filter.Search)+"%")
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns buyers matching filter in dataset order.
func (r *buyersRepository) List(ctx context.Context, filter models.BuyerFilter) ([]models.BuyerRecord, error) {
	clause, args := where(filter)
	query := "SELECT " + strings.Join(buyerColumns, ", ") + " FROM buyers" + clause + " ORDER BY position"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BuyerRecord{}
	for rows.Next() {
		rec, err := scanBuyer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// Count returns how many buyers match filter, ignoring pagination.
func (r *buyersRepository) Count(ctx context.Context, filter models.BuyerFilter) (int, error) {
	clause, args := where(filter)
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM buyers"+clause, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// GetByID returns the buyer with the given id, or ErrNotFound.
func (r *buyersRepository) GetByID(ctx context.Context, id string) (*models.BuyerRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+strings.Join(buyerColumns, ", ")+" FROM buyers WHERE id = $1", id)
	rec, err := scanBuyer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// CountByState returns buyer counts per state, largest first.
func (r *buyersRepository) CountByState(ctx context.Context) ([]models.StateCount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT state, COUNT(*) AS n FROM buyers GROUP BY state ORDER BY n DESC, state`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.StateCount{}
	for rows.Next() {
		var sc models.StateCount
		if err := rows.Scan(&sc.State, &sc.Count); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// CountVerified returns the number of verified buyers.
func (r *buyersRepository) CountVerified(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM buyers WHERE verified`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// LastSync returns the most recent sync run, or nil when none was recorded.
func (r *buyersRepository) LastSync(ctx context.Context) (*models.SyncRun, error) {
	var run models.SyncRun
	err := r.db.QueryRowContext(ctx,
		`SELECT run_id, source, checksum, record_count, synced_at FROM sync_runs ORDER BY synced_at DESC LIMIT 1`,
	).Scan(&run.RunID, &run.Source, &run.Checksum, &run.RecordCount, &run.SyncedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBuyer(s scanner) (*models.BuyerRecord, error) {
	var rec models.BuyerRecord
	var position int
	var typ string
	if err := s.Scan(
		&rec.ID, &position, &rec.Name, &typ,
		&rec.CashPrice, &rec.Basis, &rec.FreightCost, &rec.NetPrice,
		&rec.City, &rec.State, &rec.Region, &rec.Lat, &rec.Lng,
		&rec.RailAccessible, &rec.NearTransload,
		&rec.ContactName, &rec.ContactPhone, &rec.Website,
		&rec.LastUpdated, &rec.ConfidenceScore, &rec.Verified, &rec.DataSource,
	); err != nil {
		return nil, err
	}
	rec.Type = models.BuyerType(typ)
	return &rec, nil
}
