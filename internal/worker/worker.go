package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/brevistay/checkout-service/config"
	"github.com/brevistay/checkout-service/internal/domain"
	"github.com/brevistay/checkout-service/internal/dto"
	"github.com/brevistay/checkout-service/internal/repository"
	"github.com/brevistay/checkout-service/pkg/httpclient"
	"github.com/segmentio/kafka-go"
)

// MessageReader is the slice of kafka.Reader the worker consumes from.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// taskEnvelope mirrors dto.TaskMessage on the consume side, keeping the
// payload raw until the task type is known.
type taskEnvelope struct {
	TaskType string          `json:"task_type"`
	Data     json.RawMessage `json:"data"`
}

// SideEffectWorker drains the best-effort task queue: settlement mirroring,
// guest notification, refund reviews. Every task is attempted once; a failed
// delivery is logged and recorded, never retried inline.
type SideEffectWorker struct {
	reader     MessageReader
	repository repository.BookingRepository
	config     *config.Config
}

func CreateSideEffectWorker(reader MessageReader, repository repository.BookingRepository, config *config.Config) *SideEffectWorker {
	return &SideEffectWorker{
		reader:     reader,
		repository: repository,
		config:     config,
	}
}

func (w *SideEffectWorker) Run(ctx context.Context) {
	log.Info().Str("component", "SideEffectWorker").Msg("worker starts")

	for {
		msg, err := w.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info().Str("component", "SideEffectWorker").Msg("worker stops")
				return
			}
			log.Error().Err(err).Str("component", "SideEffectWorker").Msg("")
			continue
		}

		w.HandleTask(ctx, msg.Value)
	}
}

// HandleTask dispatches a single task. Failures are swallowed here by design:
// they are logged and written to side_effect_failures for offline inspection.
func (w *SideEffectWorker) HandleTask(ctx context.Context, payload []byte) {
	var envelope taskEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		log.Error().Err(err).Str("component", "HandleTask").Msg("")
		return
	}

	var err error
	switch envelope.TaskType {
	case dto.TaskHotelSettlement:
		err = w.postSettlement(ctx, envelope.Data, "/api/v1/hotel-payments")
	case dto.TaskPlatformSettlement:
		err = w.postSettlement(ctx, envelope.Data, "/api/v1/my-payments")
	case dto.TaskGuestNotification:
		err = w.postNotification(ctx, envelope.Data)
	case dto.TaskRefundReview:
		err = w.recordRefundReview(ctx, envelope.Data)
	default:
		log.Error().Str("component", "HandleTask").Str("task_type", envelope.TaskType).Msg("unknown task type")
		return
	}

	if err != nil {
		log.Error().Err(err).Str("component", "HandleTask").Str("task_type", envelope.TaskType).Msg("")
		w.recordFailure(ctx, envelope, err)
	}
}

func (w *SideEffectWorker) postSettlement(ctx context.Context, data json.RawMessage, path string) error {
	statusCode, _, err := httpclient.SendRequest(ctx, httpclient.HttpRequest{
		URL:    fmt.Sprintf("%s%s", w.config.SettlementServiceHost, path),
		Method: "POST",
		Body:   data,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	})
	if err != nil {
		return fmt.Errorf("error calling settlement service: %v", err)
	}

	if statusCode != http.StatusOK && statusCode != http.StatusCreated {
		return fmt.Errorf("settlement service returned non-OK status: %d", statusCode)
	}

	return nil
}

func (w *SideEffectWorker) postNotification(ctx context.Context, data json.RawMessage) error {
	statusCode, _, err := httpclient.SendRequest(ctx, httpclient.HttpRequest{
		URL:    fmt.Sprintf("%s/api/v1/booking-confirmations", w.config.NotificationServiceHost),
		Method: "POST",
		Body:   data,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	})
	if err != nil {
		return fmt.Errorf("error calling notification service: %v", err)
	}

	if statusCode != http.StatusOK && statusCode != http.StatusCreated {
		return fmt.Errorf("notification service returned non-OK status: %d", statusCode)
	}

	return nil
}

// recordRefundReview has no outbound call: the point is a durable row someone
// can act on after a booking failed with the payment already captured.
func (w *SideEffectWorker) recordRefundReview(ctx context.Context, data json.RawMessage) error {
	var task dto.RefundReviewTask
	if err := json.Unmarshal(data, &task); err != nil {
		return fmt.Errorf("error unmarshalling refund review task: %v", err)
	}

	return w.repository.AddSideEffectFailure(ctx, domain.SideEffectFailure{
		TaskType:   dto.TaskRefundReview,
		BookingRef: task.GatewayOrderID,
		Payload:    string(data),
		Reason:     task.Reason,
		FailedAt:   time.Now().Unix(),
	})
}

func (w *SideEffectWorker) recordFailure(ctx context.Context, envelope taskEnvelope, cause error) {
	err := w.repository.AddSideEffectFailure(ctx, domain.SideEffectFailure{
		TaskType: envelope.TaskType,
		Payload:  string(envelope.Data),
		Reason:   cause.Error(),
		FailedAt: time.Now().Unix(),
	})
	if err != nil {
		log.Error().Err(err).Str("component", "recordFailure").Msg("")
	}
}
