// Package ingestion mirrors the buyer dataset file into PostgreSQL.
package ingestion

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/guttosm/graindesk/internal/dataset"
	"github.com/guttosm/graindesk/internal/domain/models"
	"github.com/guttosm/graindesk/internal/logger"
	"github.com/guttosm/graindesk/internal/storage"
)

// repoCtor is an indirection for creating the repository; tests can override this.
var repoCtor = func(db *sql.DB) storage.BuyersRepository {
	return storage.NewBuyersRepository(db)
}

// newRunID is an indirection for sync run ids; tests can override this.
var newRunID = uuid.NewString

// Result describes one SyncFile call.
type Result struct {
	RunID    string
	Checksum string
	Records  int
	Skipped  bool
}

// SyncFile loads the dataset at path and replaces the mirrored buyers table with it.
//
// Parameters:
//   - path: dataset JSON file.
//   - db:   open *sql.DB (PostgreSQL) with migrations applied.
//   - force: re-mirror even if the same file contents were already synced.
//
// Behavior:
//   - Validates the whole file first; a malformed dataset never touches the database.
//   - Identifies the file contents by sha256; skips when the latest sync run mirrored the same
//     checksum, unless force. Older runs with that checksum do not count.
//   - Replaces all rows and records the sync run in one transaction.
//
// Returns:
//   - *Result: run id, checksum and row count (Skipped when nothing was written).
//   - error: first error encountered (if any).
func SyncFile(ctx context.Context, path string, db *sql.DB, force bool) (*Result, error) {
	repo := repoCtor(db)
	start := time.Now()
	base := filepath.Base(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	records, err := dataset.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}

	sum := sha256.Sum256(data)
	res := &Result{Checksum: hex.EncodeToString(sum[:]), Records: len(records)}
	logger.L().Info().Str("file", base).Int("records", res.Records).Str("checksum", res.Checksum[:12]).Msg("sync start")

	last, err := repo.LastSync(ctx)
	if err != nil {
		logger.L().Error().Str("file", base).Err(err).Msg("check sync log failed")
		return nil, fmt.Errorf("check sync log: %w", err)
	}
	if last != nil && last.Checksum == res.Checksum && !force {
		res.Skipped = true
		logger.L().Info().Str("file", base).Str("run_id", last.RunID).Bool("skipped", true).Msg("mirror already current")
		return res, nil
	}

	res.RunID = newRunID()
	run := models.SyncRun{RunID: res.RunID, Source: path, Checksum: res.Checksum}
	if err := repo.ReplaceAll(ctx, run, records); err != nil {
		logger.L().Error().Str("file", base).Dur("elapsed", time.Since(start)).Err(err).Msg("sync failed")
		return nil, fmt.Errorf("replace buyers: %w", err)
	}

	logger.L().Info().
		Str("file", base).
		Str("run_id", res.RunID).
		Int("records", res.Records).
		Bool("force", force).
		Dur("elapsed", time.Since(start)).
		Msg("sync done")
	return res, nil
}
