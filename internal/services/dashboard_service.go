package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Simatwa/house-rental-management-system/internal/currency"
	"github.com/Simatwa/house-rental-management-system/internal/dtos"
	"github.com/Simatwa/house-rental-management-system/internal/models"
	"github.com/Simatwa/house-rental-management-system/internal/utils"
)

const RecentTransactionsLimit = 5

// DashboardAPI is what the dashboard overview reads from the rental API.
type DashboardAPI interface {
	GetProfile(ctx context.Context) (*models.UserProfile, error)
	Unit(ctx context.Context) (*models.Unit, error)
	Messages(ctx context.Context, kind models.MessageKind, filter dtos.MessageFilter) ([]models.Message, error)
	Concerns(ctx context.Context, status models.ConcernStatus) ([]models.ShallowConcern, error)
	Feedback(ctx context.Context) (*models.TenantFeedback, error)
	Transactions(ctx context.Context, filter dtos.TransactionFilter) ([]models.Transaction, error)
}

type DashboardService struct {
	api      DashboardAPI
	currency *currency.Formatter
}

func NewDashboardService(api DashboardAPI, formatter *currency.Formatter) *DashboardService {
	return &DashboardService{api: api, currency: formatter}
}

// Summary gathers the dashboard overview in one concurrent pass. A tenant
// who has not left feedback yet (404) is not an error.
func (s *DashboardService) Summary(ctx context.Context) (*dtos.DashboardSummaryResponse, error) {
	var (
		profile      *models.UserProfile
		unit         *models.Unit
		messages     = make([][]models.Message, len(models.MessageKinds))
		concerns     []models.ShallowConcern
		feedback     *models.TenantFeedback
		transactions []models.Transaction
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		profile, err = s.api.GetProfile(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		unit, err = s.api.Unit(egCtx)
		return err
	})
	for i, kind := range models.MessageKinds {
		i, kind := i, kind
		eg.Go(func() error {
			msgs, err := s.api.Messages(egCtx, kind, dtos.MessageFilter{})
			if err != nil {
				return err
			}
			messages[i] = msgs
			return nil
		})
	}
	eg.Go(func() error {
		var err error
		concerns, err = s.api.Concerns(egCtx, "")
		return err
	})
	eg.Go(func() error {
		fb, err := s.api.Feedback(egCtx)
		if errors.Is(err, utils.ErrNotFound) {
			return nil
		}
		feedback = fb
		return err
	})
	eg.Go(func() error {
		var err error
		transactions, err = s.api.Transactions(egCtx, dtos.TransactionFilter{})
		return err
	})

	if err := eg.Wait(); err != nil {
		utils.Logger.WithError(err).Error("Error fetching dashboard data")
		return nil, fmt.Errorf("failed to fetch dashboard information: %w", err)
	}

	resp := &dtos.DashboardSummaryResponse{
		User:               profile,
		Unit:               unit,
		UnreadCounts:       make(map[models.MessageKind]int, len(models.MessageKinds)),
		Feedback:           feedback,
		RecentTransactions: transactions,
		Balance:            profile.AccountBalance,
		FormattedBalance:   s.currency.Format(profile.AccountBalance),
	}
	for i, kind := range models.MessageKinds {
		n := models.CountUnread(messages[i])
		resp.UnreadCounts[kind] = n
		resp.TotalUnread += n
	}
	if len(concerns) > 0 {
		resp.LatestConcern = &concerns[0]
	}
	if len(resp.RecentTransactions) > RecentTransactionsLimit {
		resp.RecentTransactions = resp.RecentTransactions[:RecentTransactionsLimit]
	}
	if resp.RecentTransactions == nil {
		resp.RecentTransactions = []models.Transaction{}
	}
	return resp, nil
}
