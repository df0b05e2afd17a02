package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simatwa/house-rental-management-system/internal/currency"
	"github.com/Simatwa/house-rental-management-system/internal/models"
	"github.com/Simatwa/house-rental-management-system/internal/utils"
)

func msg(id int, read bool) models.MessageBase {
	return models.MessageBase{ID: id, Subject: "s", IsRead: read}
}

func dashboardFixture() *fakeAPI {
	txs := make([]models.Transaction, 0, 7)
	for i := 0; i < 7; i++ {
		txs = append(txs, models.Transaction{Type: models.TypeRentPayment, Amount: float64(1000 + i), Reference: string(rune('A' + i))})
	}
	return &fakeAPI{
		profile: &models.UserProfile{Username: "bob", AccountBalance: 1500},
		unit:    &models.Unit{ID: 3, Name: "A-3"},
		messages: map[models.MessageKind][]models.Message{
			models.KindPersonal:  {models.PersonalMessage{MessageBase: msg(1, false)}, models.PersonalMessage{MessageBase: msg(2, true)}},
			models.KindGroup:     {models.GroupMessage{MessageBase: msg(3, false)}, models.GroupMessage{MessageBase: msg(4, false)}},
			models.KindCommunity: {models.CommunityMessage{MessageBase: msg(5, true)}},
		},
		concerns: []models.ShallowConcern{
			{ID: 9, About: "Leaking tap", Status: models.ConcernOpen},
			{ID: 8, About: "Broken door", Status: models.ConcernResolved},
		},
		feedback:     &models.TenantFeedback{Message: "Great", Rate: models.RateGood},
		transactions: txs,
	}
}

func TestDashboardSummary(t *testing.T) {
	svc := NewDashboardService(dashboardFixture(), currency.NewFormatter(""))

	sum, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "bob", sum.User.Username)
	assert.Equal(t, "A-3", sum.Unit.Name)
	assert.Equal(t, 1, sum.UnreadCounts[models.KindPersonal])
	assert.Equal(t, 2, sum.UnreadCounts[models.KindGroup])
	assert.Equal(t, 0, sum.UnreadCounts[models.KindCommunity])
	assert.Equal(t, 3, sum.TotalUnread)
	require.NotNil(t, sum.LatestConcern)
	assert.Equal(t, 9, sum.LatestConcern.ID)
	assert.Equal(t, models.RateGood, sum.Feedback.Rate)
	require.Len(t, sum.RecentTransactions, RecentTransactionsLimit)
	assert.Equal(t, "A", sum.RecentTransactions[0].Reference)
	assert.Equal(t, 1500.0, sum.Balance)
	assert.Equal(t, "Ksh 1,500", sum.FormattedBalance)
}

func TestDashboardMissingFeedbackIsFine(t *testing.T) {
	api := dashboardFixture()
	api.feedback = nil
	api.feedbackErr = utils.ErrNotFound
	api.concerns = nil
	api.transactions = nil

	sum, err := NewDashboardService(api, currency.NewFormatter("")).Summary(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sum.Feedback)
	assert.Nil(t, sum.LatestConcern)
	assert.NotNil(t, sum.RecentTransactions)
	assert.Empty(t, sum.RecentTransactions)
}

func TestDashboardFailsOnAnyOtherError(t *testing.T) {
	api := dashboardFixture()
	api.messagesErr = errors.New("timeout")

	_, err := NewDashboardService(api, currency.NewFormatter("")).Summary(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch dashboard information")
}
