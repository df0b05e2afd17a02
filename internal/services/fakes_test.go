package services

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/Simatwa/house-rental-management-system/internal/dtos"
	"github.com/Simatwa/house-rental-management-system/internal/models"
)

// fakeAPI implements every API slice the services consume.
type fakeAPI struct {
	houses        []models.House
	groups        models.HouseUnitGroupIndex
	housesErr     error
	unitGroupsErr map[int]error

	profile      *models.UserProfile
	unit         *models.Unit
	messages     map[models.MessageKind][]models.Message
	messagesErr  error
	concerns     []models.ShallowConcern
	feedback     *models.TenantFeedback
	feedbackErr  error
	transactions []models.Transaction

	mpesa     *models.PaymentAccountDetails
	other     []models.PaymentAccountDetails
	popupReqs []dtos.SendMpesaPopupRequest
	txFilters []dtos.TransactionFilter

	mu           sync.Mutex
	houseCalls   int32
	inFlight     int32
	peakInFlight int32
}

func (f *fakeAPI) Houses(ctx context.Context) ([]models.House, error) {
	atomic.AddInt32(&f.houseCalls, 1)
	return f.houses, f.housesErr
}

func (f *fakeAPI) UnitGroups(ctx context.Context, houseID int) ([]models.UnitGroup, error) {
	n := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	for {
		peak := atomic.LoadInt32(&f.peakInFlight)
		if n <= peak || atomic.CompareAndSwapInt32(&f.peakInFlight, peak, n) {
			break
		}
	}
	if err := f.unitGroupsErr[houseID]; err != nil {
		return nil, err
	}
	return f.groups[houseID], nil
}

func (f *fakeAPI) GetProfile(ctx context.Context) (*models.UserProfile, error) {
	return f.profile, nil
}

func (f *fakeAPI) Unit(ctx context.Context) (*models.Unit, error) {
	return f.unit, nil
}

func (f *fakeAPI) Messages(ctx context.Context, kind models.MessageKind, filter dtos.MessageFilter) ([]models.Message, error) {
	if f.messagesErr != nil {
		return nil, f.messagesErr
	}
	return f.messages[kind], nil
}

func (f *fakeAPI) Concerns(ctx context.Context, status models.ConcernStatus) ([]models.ShallowConcern, error) {
	return f.concerns, nil
}

func (f *fakeAPI) Feedback(ctx context.Context) (*models.TenantFeedback, error) {
	return f.feedback, f.feedbackErr
}

func (f *fakeAPI) Transactions(ctx context.Context, filter dtos.TransactionFilter) ([]models.Transaction, error) {
	f.mu.Lock()
	f.txFilters = append(f.txFilters, filter)
	f.mu.Unlock()
	return f.transactions, nil
}

func (f *fakeAPI) MpesaPaymentDetails(ctx context.Context) (*models.PaymentAccountDetails, error) {
	return f.mpesa, nil
}

func (f *fakeAPI) OtherPaymentDetails(ctx context.Context) ([]models.PaymentAccountDetails, error) {
	return f.other, nil
}

func (f *fakeAPI) SendMpesaPopup(ctx context.Context, req dtos.SendMpesaPopupRequest) (*dtos.ProcessFeedback, error) {
	f.mu.Lock()
	f.popupReqs = append(f.popupReqs, req)
	f.mu.Unlock()
	return &dtos.ProcessFeedback{Detail: "Payment prompt sent"}, nil
}
