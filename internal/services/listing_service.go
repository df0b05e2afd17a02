package services

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Simatwa/house-rental-management-system/internal/config"
	"github.com/Simatwa/house-rental-management-system/internal/models"
	"github.com/Simatwa/house-rental-management-system/internal/search"
	"github.com/Simatwa/house-rental-management-system/internal/utils"
)

// ListingsAPI is the public listings slice of the rental API.
type ListingsAPI interface {
	Houses(ctx context.Context) ([]models.House, error)
	UnitGroups(ctx context.Context, houseID int) ([]models.UnitGroup, error)
}

// ListingService loads the public listings once and serves searches over
// them.
type ListingService struct {
	api         ListingsAPI
	engine      *search.Engine
	concurrency int

	// loadMu serialises refreshes so the first searches trigger one load.
	loadMu sync.Mutex
	loaded bool
}

func NewListingService(cfg *config.Config, api ListingsAPI) *ListingService {
	concurrency := cfg.FetchConcurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &ListingService{
		api:         api,
		engine:      search.NewEngine(),
		concurrency: concurrency,
	}
}

func (s *ListingService) Engine() *search.Engine {
	return s.engine
}

// Refresh fetches every house and then each house's unit groups, at most
// FetchConcurrency requests at a time. Any failed fetch fails the refresh
// and leaves the previously loaded listings in place.
func (s *ListingService) Refresh(ctx context.Context) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	return s.refreshLocked(ctx)
}

func (s *ListingService) refreshLocked(ctx context.Context) error {
	houses, err := s.api.Houses(ctx)
	if err != nil {
		return fmt.Errorf("fetch houses: %w", err)
	}

	var mu sync.Mutex
	index := make(models.HouseUnitGroupIndex, len(houses))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.concurrency)
	for _, h := range houses {
		houseID := h.ID
		eg.Go(func() error {
			groups, err := s.api.UnitGroups(egCtx, houseID)
			if err != nil {
				return fmt.Errorf("fetch unit groups of house %d: %w", houseID, err)
			}
			mu.Lock()
			index[houseID] = groups
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	s.engine.SetListings(houses, index)
	s.loaded = true

	utils.Logger.Debugf("Loaded %d houses with %d unit groups", len(houses), index.Count())
	return nil
}

// Search filters the listings by term, loading them first if needed.
func (s *ListingService) Search(ctx context.Context, term string) (*search.Result, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	res := s.engine.Lookup(term)
	return &res, nil
}

func (s *ListingService) ensureLoaded(ctx context.Context) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	if s.loaded {
		return nil
	}
	return s.refreshLocked(ctx)
}
