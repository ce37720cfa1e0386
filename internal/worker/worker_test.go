package worker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brevistay/checkout-service/config"
	"github.com/brevistay/checkout-service/internal/domain"
	"github.com/brevistay/checkout-service/internal/dto"
	"github.com/brevistay/checkout-service/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRepo struct {
	repository.BookingRepository
	failures []domain.SideEffectFailure
}

func (r *recordingRepo) AddSideEffectFailure(ctx context.Context, data domain.SideEffectFailure) error {
	r.failures = append(r.failures, data)
	return nil
}

func marshalTask(t *testing.T, taskType string, data interface{}) []byte {
	t.Helper()
	payload, err := json.Marshal(dto.TaskMessage{TaskType: taskType, Data: data})
	require.NoError(t, err)
	return payload
}

func TestHandleTaskHotelSettlement(t *testing.T) {
	var gotPath string
	var gotBody dto.SettlementTask
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
	}))
	defer backend.Close()

	repo := &recordingRepo{}
	w := CreateSideEffectWorker(nil, repo, &config.Config{SettlementServiceHost: backend.URL})

	task := dto.SettlementTask{
		BookingID:  42,
		BookingRef: "ref-1",
		Payee:      domain.SettlementPayeeHotel,
		NetAmount:  decimal.NewFromInt(1050),
		Currency:   "INR",
		Status:     domain.SettlementStatusPending,
	}

	w.HandleTask(context.Background(), marshalTask(t, dto.TaskHotelSettlement, task))

	assert.Equal(t, "/api/v1/hotel-payments", gotPath)
	assert.Equal(t, int64(42), gotBody.BookingID)
	assert.True(t, gotBody.NetAmount.Equal(decimal.NewFromInt(1050)))
	assert.Empty(t, repo.failures)
}

func TestHandleTaskPlatformSettlementPath(t *testing.T) {
	var gotPath string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
	}))
	defer backend.Close()

	w := CreateSideEffectWorker(nil, &recordingRepo{}, &config.Config{SettlementServiceHost: backend.URL})

	w.HandleTask(context.Background(), marshalTask(t, dto.TaskPlatformSettlement, dto.SettlementTask{BookingID: 1}))

	assert.Equal(t, "/api/v1/my-payments", gotPath)
}

func TestHandleTaskNotification(t *testing.T) {
	var gotBody dto.NotificationTask
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/booking-confirmations", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
	}))
	defer backend.Close()

	repo := &recordingRepo{}
	w := CreateSideEffectWorker(nil, repo, &config.Config{NotificationServiceHost: backend.URL})

	w.HandleTask(context.Background(), marshalTask(t, dto.TaskGuestNotification, dto.NotificationTask{
		BookingID:  42,
		GuestPhone: "9876543210",
		Message:    "Booking confirmed",
	}))

	assert.Equal(t, int64(42), gotBody.BookingID)
	assert.Empty(t, repo.failures)
}

func TestHandleTaskRecordsDeliveryFailure(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer backend.Close()

	repo := &recordingRepo{}
	w := CreateSideEffectWorker(nil, repo, &config.Config{SettlementServiceHost: backend.URL})

	w.HandleTask(context.Background(), marshalTask(t, dto.TaskHotelSettlement, dto.SettlementTask{BookingID: 42}))

	require.Len(t, repo.failures, 1)
	assert.Equal(t, dto.TaskHotelSettlement, repo.failures[0].TaskType)
	assert.Contains(t, repo.failures[0].Reason, "non-OK status")
}

func TestHandleTaskRefundReview(t *testing.T) {
	repo := &recordingRepo{}
	w := CreateSideEffectWorker(nil, repo, &config.Config{})

	w.HandleTask(context.Background(), marshalTask(t, dto.TaskRefundReview, dto.RefundReviewTask{
		GatewayOrderID: "order_abc",
		PaymentID:      "pay_123",
		Reason:         "booking persistence failed after capture",
	}))

	require.Len(t, repo.failures, 1)
	assert.Equal(t, dto.TaskRefundReview, repo.failures[0].TaskType)
	assert.Equal(t, "order_abc", repo.failures[0].BookingRef)
}

func TestHandleTaskUnknownType(t *testing.T) {
	repo := &recordingRepo{}
	w := CreateSideEffectWorker(nil, repo, &config.Config{})

	w.HandleTask(context.Background(), []byte(`{"task_type":"mystery","data":{}}`))

	assert.Empty(t, repo.failures)
}
