package service

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/graindesk/internal/domain/models"
	"github.com/guttosm/graindesk/internal/storage"
)

const (
	DefaultLimit = 500
	MaxLimit     = 2000
)

// ErrNotFound is returned by Get when the buyer does not exist.
var ErrNotFound = errors.New("buyer not found")

// BuyerPage is one page of a filtered buyer listing.
type BuyerPage struct {
	Items  []models.BuyerRecord
	Total  int
	Limit  int
	Offset int
}

// BuyerService defines read-side business logic over the mirrored dataset.
type BuyerService interface {
	List(ctx context.Context, filter models.BuyerFilter) (*BuyerPage, error)
	Get(ctx context.Context, id string) (*models.BuyerRecord, error)
	Summary(ctx context.Context) (*models.DatasetSummary, error)
}

type buyerService struct {
	repo storage.BuyersRepository
}

func NewBuyerService(repo storage.BuyersRepository) BuyerService {
	return &buyerService{repo: repo}
}

// normalize clamps pagination: limit to 1..MaxLimit (0 means DefaultLimit), offset to >= 0.
func normalize(f models.BuyerFilter) models.BuyerFilter {
	switch {
	case f.Limit <= 0:
		f.Limit = DefaultLimit
	case f.Limit > MaxLimit:
		f.Limit = MaxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

func (s *buyerService) List(ctx context.Context, filter models.BuyerFilter) (*BuyerPage, error) {
	filter = normalize(filter)

	var page BuyerPage
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.repo.List(gctx, filter)
		page.Items = items
		return err
	})
	g.Go(func() error {
		n, err := s.repo.Count(gctx, filter)
		page.Total = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	page.Limit = filter.Limit
	page.Offset = filter.Offset
	return &page, nil
}

func (s *buyerService) Get(ctx context.Context, id string) (*models.BuyerRecord, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	return rec, err
}

// Summary runs the headline queries concurrently; the first failure cancels the rest.
func (s *buyerService) Summary(ctx context.Context) (*models.DatasetSummary, error) {
	var sum models.DatasetSummary
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.repo.Count(gctx, models.BuyerFilter{})
		sum.Total = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.CountVerified(gctx)
		sum.Verified = n
		return err
	})
	g.Go(func() error {
		states, err := s.repo.CountByState(gctx)
		sum.ByState = states
		return err
	})
	g.Go(func() error {
		run, err := s.repo.LastSync(gctx)
		sum.LastSync = run
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &sum, nil
}
