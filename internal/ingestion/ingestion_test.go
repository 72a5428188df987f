package ingestion

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/guttosm/graindesk/internal/dataset"
	"github.com/guttosm/graindesk/internal/domain/models"
	"github.com/guttosm/graindesk/internal/storage"
)

// fakeRepo implements the parts of BuyersRepository SyncFile uses.
type fakeRepo struct {
	storage.BuyersRepository
	runs       []models.SyncRun
	lastErr    error
	replaceErr error
	replaced   []models.BuyerRecord
	run        models.SyncRun
}

func (f *fakeRepo) LastSync(_ context.Context) (*models.SyncRun, error) {
	if f.lastErr != nil || len(f.runs) == 0 {
		return nil, f.lastErr
	}
	last := f.runs[len(f.runs)-1]
	return &last, nil
}

func (f *fakeRepo) ReplaceAll(_ context.Context, run models.SyncRun, records []models.BuyerRecord) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.run = run
	f.replaced = records
	f.runs = append(f.runs, run)
	return nil
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "buyers.json")
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

const sample = `[
    {"id": "b001", "name": "Gevo", "type": "ethanol", "cashPrice": 4.28, "freightCost": -0.1, "netPrice": 4.18, "state": "MN"},
    {"id": "v1", "name": "Cal-Bean & Grain Cooperative", "type": "elevator", "state": "CA"}
]`

func useRepo(t *testing.T, f *fakeRepo) {
	t.Helper()
	oldRepo, oldID := repoCtor, newRunID
	repoCtor = func(_ *sql.DB) storage.BuyersRepository { return f }
	newRunID = func() string { return "run-1" }
	t.Cleanup(func() { repoCtor, newRunID = oldRepo, oldID })
}

func TestSyncFile_FirstRunThenSkip(t *testing.T) {
	path := writeFile(t, sample)
	fr := &fakeRepo{}
	useRepo(t, fr)

	res, err := SyncFile(context.Background(), path, nil, false)
	if err != nil {
		t.Fatalf("SyncFile: %v", err)
	}
	if res.Skipped || res.RunID != "run-1" || res.Records != 2 || len(fr.replaced) != 2 {
		t.Fatalf("unexpected result %+v (replaced %d)", res, len(fr.replaced))
	}
	if fr.run.Source != path || fr.run.Checksum != res.Checksum || len(res.Checksum) != 64 {
		t.Fatalf("unexpected sync run %+v", fr.run)
	}

	fr.replaced = nil
	again, err := SyncFile(context.Background(), path, nil, false)
	if err != nil {
		t.Fatalf("second SyncFile: %v", err)
	}
	if !again.Skipped || fr.replaced != nil {
		t.Fatalf("expected skip on identical contents, got %+v", again)
	}

	forced, err := SyncFile(context.Background(), path, nil, true)
	if err != nil || forced.Skipped || len(fr.replaced) != 2 {
		t.Fatalf("force should re-mirror: res=%+v err=%v", forced, err)
	}
}

func TestSyncFile_ResyncAfterOtherDataset(t *testing.T) {
	a := writeFile(t, sample)
	b := writeFile(t, `[{"id": "b001", "name": "Gevo", "type": "ethanol", "state": "MN"}]`)
	fr := &fakeRepo{}
	useRepo(t, fr)
	ctx := context.Background()

	for i, step := range []struct {
		path    string
		records int
	}{{a, 2}, {b, 1}, {a, 2}} {
		res, err := SyncFile(ctx, step.path, nil, false)
		if err != nil {
			t.Fatalf("sync %d: %v", i, err)
		}
		if res.Skipped {
			t.Fatalf("sync %d skipped although the mirror holds another dataset", i)
		}
		if len(fr.replaced) != step.records {
			t.Fatalf("sync %d: mirror holds %d records, want %d", i, len(fr.replaced), step.records)
		}
	}
	if len(fr.runs) != 3 {
		t.Fatalf("expected 3 sync runs, got %d", len(fr.runs))
	}
}

func TestSyncFile_Errors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		repo    *fakeRepo
		wantIs  error
	}{
		{name: "malformed dataset", content: `{"id": "b001"}`, repo: &fakeRepo{}, wantIs: dataset.ErrMalformedDataset},
		{name: "missing name", content: `[{"id": "b001"}]`, repo: &fakeRepo{}, wantIs: dataset.ErrMissingField},
		{name: "duplicate id", content: `[{"id": "b1", "name": "A"}, {"id": "b1", "name": "B"}]`, repo: &fakeRepo{}, wantIs: dataset.ErrDuplicateIdentifier},
		{name: "sync log error", content: sample, repo: &fakeRepo{lastErr: context.DeadlineExceeded}, wantIs: context.DeadlineExceeded},
		{name: "replace error", content: sample, repo: &fakeRepo{replaceErr: context.Canceled}, wantIs: context.Canceled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			useRepo(t, tc.repo)
			_, err := SyncFile(context.Background(), writeFile(t, tc.content), nil, false)
			if !errors.Is(err, tc.wantIs) {
				t.Fatalf("want %v, got %v", tc.wantIs, err)
			}
			if tc.repo.replaced != nil {
				t.Fatalf("nothing should be written on error")
			}
		})
	}
}

func TestSyncFile_MissingFile(t *testing.T) {
	useRepo(t, &fakeRepo{})
	_, err := SyncFile(context.Background(), filepath.Join(t.TempDir(), "nope.json"), nil, false)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want not-exist error, got %v", err)
	}
}
