package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/guttosm/graindesk/config"
	"github.com/guttosm/graindesk/internal/dataset"
	"github.com/guttosm/graindesk/internal/generator"
	"github.com/guttosm/graindesk/internal/ingestion"
	"github.com/guttosm/graindesk/internal/logger"
	"github.com/guttosm/graindesk/internal/reconcile"
	"github.com/guttosm/graindesk/internal/reference"
	"github.com/guttosm/graindesk/internal/report"
	"github.com/guttosm/graindesk/internal/storage"
)

// Dataset modes handled by Runner.Run. The reconcile modes share their names
// with the reconcile pass constants.
const (
	ModeGenerate = "generate"
	ModeReport   = "report"
	ModeSync     = "sync"
)

// ErrReference marks failures loading or validating the reference tables.
var ErrReference = errors.New("reference tables")

// indirections for unit testing
var (
	migrate  = storage.Migrate
	syncFile = ingestion.SyncFile
)

// Runner executes the offline dataset modes: load, transform, save.
//
// Fields:
//   - Config: dataset path, reference override, seed and futures prices.
//   - Out: destination of the human-readable summaries (stdout in main).
//   - Now: clock stamped into lastUpdated (default: time.Now).
type Runner struct {
	Config config.Config
	Out    io.Writer
	Now    func() time.Time
}

// NewRunner returns a Runner writing its summaries to out.
func NewRunner(cfg config.Config, out io.Writer) *Runner {
	return &Runner{Config: cfg, Out: out, Now: time.Now}
}

// Run dispatches mode to its pipeline.
//
// Returns:
//   - error wrapping config.ErrInvalidConfig for an unknown mode.
//   - any error of the selected pipeline; nothing is written when it fails.
func (r *Runner) Run(ctx context.Context, mode string, force bool) error {
	log := logger.Component("pipeline").With().Str("mode", mode).Str("path", r.Config.Dataset.Path).Logger()
	start := time.Now()
	log.Info().Msg("mode started")

	var err error
	switch mode {
	case ModeGenerate:
		err = r.Generate()
	case reconcile.PassPhones, reconcile.PassContacts, reconcile.PassFull, reconcile.PassBasis:
		err = r.Reconcile(mode)
	case ModeReport:
		err = r.Report()
	case ModeSync:
		err = r.Sync(ctx, force)
	default:
		return fmt.Errorf("%w: unknown mode %q", config.ErrInvalidConfig, mode)
	}
	if err != nil {
		log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("mode failed")
		return err
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("mode completed")
	return nil
}

// Tables loads the embedded reference tables overlaid with Config.Dataset.ReferencePath.
func (r *Runner) Tables() (*reference.Tables, error) {
	t, err := reference.Load(r.Config.Dataset.ReferencePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReference, err)
	}
	return t, nil
}

func (r *Runner) rand() *rand.Rand {
	seed := r.Config.Dataset.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return generator.NewSeededRand(seed)
}

// Generate builds a fresh dataset from the taxonomy and saves it.
func (r *Runner) Generate() error {
	tables, err := r.Tables()
	if err != nil {
		return err
	}
	records := generator.New(tables, generator.Options{
		Futures: r.Config.Market.FuturesPrice,
		Rand:    r.rand(),
		Now:     r.Now,
	}).Generate()

	if err := dataset.Save(r.Config.Dataset.Path, records); err != nil {
		return err
	}
	_, err = fmt.Fprintf(r.Out, "Generated %d buyers -> %s\n", len(records), r.Config.Dataset.Path)
	return err
}

// Reconcile loads the dataset, runs the named pass and saves the result.
//
// Behavior:
//   - The dataset is written only after the whole pass succeeded.
//   - The pass summary is printed after the save.
func (r *Runner) Reconcile(mode string) error {
	tables, err := r.Tables()
	if err != nil {
		return err
	}
	pass, err := r.passFor(mode, tables)
	if err != nil {
		return err
	}

	records, err := dataset.Load(r.Config.Dataset.Path)
	if err != nil {
		return err
	}
	res, err := pass.Run(records)
	if err != nil {
		return err
	}
	if err := dataset.Save(r.Config.Dataset.Path, res.Records); err != nil {
		return err
	}
	return res.Summary.Print(r.Out)
}

func (r *Runner) passFor(mode string, tables *reference.Tables) (reconcile.Pass, error) {
	switch mode {
	case reconcile.PassPhones:
		return reconcile.PhonesPass(tables), nil
	case reconcile.PassContacts:
		return reconcile.ContactsPass(tables, r.rand()), nil
	case reconcile.PassFull:
		return reconcile.FullPass(tables, r.Now), nil
	case reconcile.PassBasis:
		return reconcile.BasisPass(tables, r.Config.Market.MarketFuturesPrice), nil
	}
	return reconcile.Pass{}, fmt.Errorf("%w: unknown reconcile pass %q", config.ErrInvalidConfig, mode)
}

// Report prints dataset health without modifying it.
func (r *Runner) Report() error {
	records, err := dataset.Load(r.Config.Dataset.Path)
	if err != nil {
		return err
	}
	return report.Build(records).Print(r.Out)
}

// Sync mirrors the dataset into Postgres, applying migrations first.
func (r *Runner) Sync(ctx context.Context, force bool) error {
	db, err := postgresOpener(r.Config)
	if err != nil {
		return fmt.Errorf("failed to initialize postgres: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := migrate(db); err != nil {
		return err
	}
	res, err := syncFile(ctx, r.Config.Dataset.Path, db, force)
	if err != nil {
		return err
	}
	if res.Skipped {
		_, err = fmt.Fprintf(r.Out, "Dataset unchanged (checksum %s), sync skipped\n", res.Checksum)
		return err
	}
	_, err = fmt.Fprintf(r.Out, "Synced %d buyers (run %s)\n", res.Records, res.RunID)
	return err
}
