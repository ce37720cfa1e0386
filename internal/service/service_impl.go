package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/brevistay/checkout-service/config"
	"github.com/brevistay/checkout-service/internal/domain"
	"github.com/brevistay/checkout-service/internal/dto"
	paymentgateway "github.com/brevistay/checkout-service/internal/infrastructure/payment-gateway"
	"github.com/brevistay/checkout-service/internal/infrastructure/sessionstore"
	"github.com/brevistay/checkout-service/internal/pricing"
	"github.com/brevistay/checkout-service/internal/repository"
	pkgdto "github.com/brevistay/checkout-service/pkg/dto"
	"github.com/brevistay/checkout-service/pkg/errs"
	"github.com/brevistay/checkout-service/pkg/httpclient"
	"github.com/brevistay/checkout-service/pkg/utils"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
)

const bookingCurrency = "INR"

var (
	phonePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// TaskPublisher is the slice of kafka.Conn the orchestrator needs to hand
// side-effect tasks to the worker.
type TaskPublisher interface {
	WriteMessages(msgs ...kafka.Message) (int, error)
}

type CheckoutServiceImpl struct {
	repository repository.BookingRepository
	gateway    paymentgateway.Gateway
	sessions   sessionstore.Store
	producer   TaskPublisher
	config     *config.Config
}

func CreateCheckoutService(repository repository.BookingRepository, gateway paymentgateway.Gateway, sessions sessionstore.Store, producer TaskPublisher, config *config.Config) CheckoutService {
	return &CheckoutServiceImpl{
		repository: repository,
		gateway:    gateway,
		sessions:   sessions,
		producer:   producer,
		config:     config,
	}
}

func (s *CheckoutServiceImpl) InitiateCheckout(ctx context.Context, req dto.CheckoutRequest) (resp dto.CheckoutResponse, err error) {
	if err = validateGuest(req); err != nil {
		return
	}

	checkIn, err := utils.ParseStayDateTime(req.CheckInDate, req.CheckInTime)
	if err != nil {
		return resp, errs.ErrInvalidStayTiming
	}

	checkOut, err := utils.ParseStayDateTime(req.CheckOutDate, req.CheckOutTime)
	if err != nil {
		return resp, errs.ErrInvalidStayTiming
	}

	if !checkOut.After(checkIn) {
		return resp, errs.ErrInvalidStayTiming
	}

	breakdown := pricing.CalculateFromFloat(req.BasePrice, req.CouponApplied)
	if breakdown.FinalPrice.Sign() <= 0 {
		// a zero breakdown is valid arithmetic but not a chargeable order
		return resp, errs.ErrClient
	}

	reference, err := uuid.NewV7()
	if err != nil {
		return resp, fmt.Errorf("error generating booking reference: %v", err)
	}

	amountDue := breakdown.FinalMinorUnits()

	order, err := s.gateway.CreateOrder(amountDue, bookingCurrency, reference.String(), map[string]interface{}{
		"hotel_id": req.HotelID,
		"room_id":  req.RoomID,
	})
	if err != nil {
		log.Error().Err(err).Str("component", "InitiateCheckout").Msg("")
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return resp, errs.ErrGatewayUnavailable
		}
		return resp, errs.ErrOrderCreation
	}

	now := time.Now()
	expiresAt := now.Add(time.Duration(s.config.CheckoutSessionTTL) * time.Minute)

	session := domain.CheckoutSession{
		ID:             uuid.New().String(),
		Reference:      reference.String(),
		Status:         domain.SessionStatusInitiated,
		GatewayOrderID: order.ID,
		AmountDue:      order.Amount,
		Currency:       order.Currency,
		Guest: domain.Guest{
			Name:  req.GuestName,
			Email: req.GuestEmail,
			Phone: req.GuestPhone,
		},
		Stay: domain.Stay{
			HotelID:     req.HotelID,
			RoomID:      req.RoomID,
			CheckIn:     checkIn.Unix(),
			CheckOut:    checkOut.Unix(),
			Adults:      req.Adults,
			Children:    req.Children,
			BookingType: req.BookingType,
		},
		Breakdown: breakdown,
		CreatedAt: now.Unix(),
		ExpiresAt: expiresAt.Unix(),
	}
	if req.GSTDetails != nil {
		session.GSTDetails = &domain.GSTDetails{
			Number:         req.GSTDetails.Number,
			CompanyName:    req.GSTDetails.CompanyName,
			CompanyAddress: req.GSTDetails.CompanyAddress,
		}
	}

	_, err = s.repository.AddCheckoutOrder(ctx, domain.CheckoutOrder{
		SessionID:      session.ID,
		Reference:      session.Reference,
		GatewayOrderID: order.ID,
		Amount:         order.Amount,
		Currency:       order.Currency,
		Status:         domain.OrderStatusInitiated,
		ExpiresAt:      session.ExpiresAt,
		CreatedAt:      now.Unix(),
		UpdatedAt:      now.Unix(),
	})
	if err != nil {
		return resp, errs.ErrInternalServer
	}

	err = s.sessions.Save(ctx, session, time.Duration(s.config.CheckoutSessionTTL)*time.Minute)
	if err != nil {
		log.Error().Err(err).Str("component", "InitiateCheckout").Msg("")
		return resp, errs.ErrInternalServer
	}

	return dto.CheckoutResponse{
		SessionID: session.ID,
		Key:       s.gateway.Key(),
		Amount:    order.Amount,
		Currency:  order.Currency,
		OrderID:   order.ID,
		Prefill: dto.GatewayPrefill{
			Name:    req.GuestName,
			Email:   req.GuestEmail,
			Contact: req.GuestPhone,
		},
		Breakdown: breakdown.Rounded(),
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *CheckoutServiceImpl) CompletePayment(ctx context.Context, sessionID string, proof dto.PaymentProof) (resp dto.PaymentConfirmation, err error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if err == errs.ErrSessionNotFound {
			// expired keys vanish from the store, so a miss and an expiry
			// look the same to the guest
			return resp, errs.ErrSessionExpired
		}
		return resp, errs.ErrInternalServer
	}

	switch session.Status {
	case domain.SessionStatusConfirmed:
		// the gateway UI can fire its callback twice; the first booking wins
		return s.confirmation(session), nil
	case domain.SessionStatusFailed:
		return resp, errs.ErrVerificationFailed
	case domain.SessionStatusExpired:
		return resp, errs.ErrSessionExpired
	}

	if time.Now().Unix() > session.ExpiresAt {
		s.markSession(ctx, session, domain.SessionStatusExpired, domain.OrderStatusExpired)
		return resp, errs.ErrSessionExpired
	}

	if proof.OrderID != session.GatewayOrderID || !s.gateway.VerifySignature(proof.OrderID, proof.PaymentID, proof.Signature) {
		s.markSession(ctx, session, domain.SessionStatusFailed, domain.OrderStatusFailed)
		return resp, errs.ErrVerificationFailed
	}

	booking := buildBooking(session, proof.PaymentID)
	entries := buildSettlementEntries(session)

	var bookingID int64
	err = s.repository.HandleTrx(ctx, func(ctx context.Context, repo repository.BookingRepository) error {
		id, err := repo.AddBooking(ctx, booking)
		if err != nil {
			return err
		}

		for idx := range entries {
			entries[idx].BookingID = id
		}

		if err := repo.AddSettlementEntries(ctx, entries); err != nil {
			return err
		}

		bookingID = id
		return nil
	})
	if err != nil {
		// the payment is already captured; flag it for reconciliation
		log.Error().Err(err).Str("component", "CompletePayment").Msg("")
		s.enqueueTask(ctx, session.Reference, dto.TaskMessage{
			TaskType: dto.TaskRefundReview,
			Data: dto.RefundReviewTask{
				SessionID:      session.ID,
				GatewayOrderID: session.GatewayOrderID,
				PaymentID:      proof.PaymentID,
				Amount:         session.AmountDue,
				Currency:       session.Currency,
				Reason:         "booking persistence failed after capture",
			},
		})
		return resp, errs.ErrBookingPersistence
	}

	if err := s.repository.UpdateCheckoutOrderStatus(ctx, session.GatewayOrderID, domain.OrderStatusPaid); err != nil {
		log.Error().Err(err).Str("component", "CompletePayment").Msg("")
	}

	// settlement and notification are best-effort: the booking stands even
	// if none of them can be delivered
	for _, task := range buildSideEffectTasks(session, bookingID, entries) {
		s.enqueueTask(ctx, session.Reference, task)
	}

	session.Status = domain.SessionStatusConfirmed
	session.BookingID = bookingID
	if err := s.sessions.Update(ctx, session); err != nil {
		log.Error().Err(err).Str("component", "CompletePayment").Msg("")
	}

	return s.confirmation(session), nil
}

func (s *CheckoutServiceImpl) confirmation(session domain.CheckoutSession) dto.PaymentConfirmation {
	return dto.PaymentConfirmation{
		BookingID:    session.BookingID,
		CheckInDate:  utils.ConvertDateTimeToHumanReadableFormat(session.Stay.CheckIn),
		Message:      "Booking confirmed",
		RedirectPath: "/bookings",
	}
}

func (s *CheckoutServiceImpl) markSession(ctx context.Context, session domain.CheckoutSession, sessionStatus, orderStatus string) {
	session.Status = sessionStatus
	if err := s.sessions.Update(ctx, session); err != nil {
		log.Error().Err(err).Str("component", "markSession").Msg("")
	}
	if err := s.repository.UpdateCheckoutOrderStatus(ctx, session.GatewayOrderID, orderStatus); err != nil {
		log.Error().Err(err).Str("component", "markSession").Msg("")
	}
}

// enqueueTask publishes a best-effort task. A publish failure is recorded for
// offline inspection and otherwise swallowed.
func (s *CheckoutServiceImpl) enqueueTask(ctx context.Context, key string, task dto.TaskMessage) {
	payload, err := json.Marshal(task)
	if err != nil {
		log.Error().Err(err).Str("component", "enqueueTask").Str("task_type", task.TaskType).Msg("")
		return
	}

	_, err = s.producer.WriteMessages(kafka.Message{
		Key:   []byte(key),
		Value: payload,
	})
	if err != nil {
		log.Error().Err(err).Str("component", "enqueueTask").Str("task_type", task.TaskType).Msg("")
		if recErr := s.repository.AddSideEffectFailure(ctx, domain.SideEffectFailure{
			TaskType:   task.TaskType,
			BookingRef: key,
			Payload:    string(payload),
			Reason:     err.Error(),
			FailedAt:   time.Now().Unix(),
		}); recErr != nil {
			log.Error().Err(recErr).Str("component", "enqueueTask").Msg("")
		}
	}
}

func (s *CheckoutServiceImpl) GetBookings(ctx context.Context, filter pkgdto.Filter) (response pkgdto.Pagination, err error) {
	var bookingResponse []dto.BookingResponse
	datas, err := s.repository.GetBookings(ctx, filter)
	if err != nil {
		return
	}

	for _, data := range datas {
		bookingResponse = append(bookingResponse, dto.BookingResponse{
			ID:          data.ID,
			Reference:   data.Reference,
			HotelID:     data.HotelID,
			RoomID:      data.RoomID,
			GuestName:   data.GuestName,
			CheckIn:     utils.ConvertDateTimeToHumanReadableFormat(data.CheckIn),
			CheckOut:    utils.ConvertDateTimeToHumanReadableFormat(data.CheckOut),
			BookingType: data.BookingType,
			FinalAmount: data.FinalAmount,
			Currency:    data.Currency,
			Status:      data.Status,
		})
	}

	response.Records = bookingResponse

	return
}

func (s *CheckoutServiceImpl) GetBooking(ctx context.Context, reference string) (resp dto.BookingResponse, err error) {
	data, err := s.repository.GetBookingByReference(ctx, reference)
	if err != nil {
		return
	}

	return dto.BookingResponse{
		ID:          data.ID,
		Reference:   data.Reference,
		HotelID:     data.HotelID,
		RoomID:      data.RoomID,
		GuestName:   data.GuestName,
		CheckIn:     utils.ConvertDateTimeToHumanReadableFormat(data.CheckIn),
		CheckOut:    utils.ConvertDateTimeToHumanReadableFormat(data.CheckOut),
		BookingType: data.BookingType,
		FinalAmount: data.FinalAmount,
		Currency:    data.Currency,
		Status:      data.Status,
	}, nil
}

func (s *CheckoutServiceImpl) ExpireStaleCheckouts() {
	expired, err := s.repository.ExpireStaleCheckoutOrders(context.Background(), time.Now().Unix())
	if err != nil {
		return
	}

	if expired > 0 {
		log.Info().Int64("expired", expired).Str("component", "ExpireStaleCheckouts").Msg("swept abandoned checkouts")
	}
}

func validateGuest(req dto.CheckoutRequest) error {
	if req.GuestName == "" {
		return errs.ErrInvalidGuestDetails
	}
	if !emailPattern.MatchString(req.GuestEmail) {
		return errs.ErrInvalidGuestDetails
	}
	if !phonePattern.MatchString(req.GuestPhone) {
		return errs.ErrInvalidGuestDetails
	}
	if req.HotelID == "" || req.RoomID == "" {
		return errs.ErrInvalidGuestDetails
	}
	if req.Adults < 1 {
		return errs.ErrInvalidGuestDetails
	}
	return nil
}

func buildBooking(session domain.CheckoutSession, paymentID string) domain.Booking {
	now := time.Now().Unix()

	booking := domain.Booking{
		Reference:        session.Reference,
		HotelID:          session.Stay.HotelID,
		RoomID:           session.Stay.RoomID,
		GuestName:        session.Guest.Name,
		GuestEmail:       session.Guest.Email,
		GuestPhone:       session.Guest.Phone,
		CheckIn:          session.Stay.CheckIn,
		CheckOut:         session.Stay.CheckOut,
		DurationHours:    utils.StayDurationHours(time.Unix(session.Stay.CheckIn, 0), time.Unix(session.Stay.CheckOut, 0)),
		Adults:           session.Stay.Adults,
		Children:         session.Stay.Children,
		BookingType:      session.Stay.BookingType,
		GatewayOrderID:   session.GatewayOrderID,
		GatewayPaymentID: paymentID,
		BaseAmount:       session.Breakdown.BasePrice,
		CouponDiscount:   session.Breakdown.CouponDiscount,
		FinalAmount:      session.Breakdown.FinalPrice,
		Currency:         session.Currency,
		Status:           "confirmed",
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	// the GST block travels with the booking only when the guest supplied one
	if session.GSTDetails != nil {
		booking.GSTNumber = &session.GSTDetails.Number
		booking.GSTCompanyName = &session.GSTDetails.CompanyName
		booking.GSTCompanyAddr = &session.GSTDetails.CompanyAddress
	}

	return booking
}

// buildSettlementEntries cuts the payout split: the hotel keeps the base rate
// plus its GST, the platform keeps the fees and absorbs the coupon discount.
func buildSettlementEntries(session domain.CheckoutSession) []domain.SettlementEntry {
	b := session.Breakdown
	now := time.Now().Unix()
	settleOn := utils.SettlementDate(session.Stay.CheckOut)

	hotelNet := b.BasePrice.Add(b.GSTOnBase)
	platformGross := b.PlatformFee.Add(b.GSTOnPlatform).Add(b.ConvenienceFee).Add(b.GSTOnConvenience)

	return []domain.SettlementEntry{
		{
			Payee:          domain.SettlementPayeeHotel,
			GrossAmount:    hotelNet.Add(b.PlatformFee),
			FeeAmount:      b.PlatformFee,
			NetAmount:      hotelNet,
			Currency:       bookingCurrency,
			SettlementDate: settleOn,
			Status:         domain.SettlementStatusPending,
			CreatedAt:      now,
		},
		{
			Payee:          domain.SettlementPayeePlatform,
			GrossAmount:    platformGross,
			FeeAmount:      b.CouponDiscount,
			NetAmount:      platformGross.Sub(b.CouponDiscount),
			Currency:       bookingCurrency,
			SettlementDate: settleOn,
			Status:         domain.SettlementStatusPending,
			CreatedAt:      now,
		},
	}
}

func buildSideEffectTasks(session domain.CheckoutSession, bookingID int64, entries []domain.SettlementEntry) []dto.TaskMessage {
	tasks := make([]dto.TaskMessage, 0, len(entries)+1)

	for _, entry := range entries {
		taskType := dto.TaskHotelSettlement
		if entry.Payee == domain.SettlementPayeePlatform {
			taskType = dto.TaskPlatformSettlement
		}

		tasks = append(tasks, dto.TaskMessage{
			TaskType: taskType,
			Data: dto.SettlementTask{
				BookingID:      bookingID,
				BookingRef:     session.Reference,
				Payee:          entry.Payee,
				GrossAmount:    entry.GrossAmount,
				FeeAmount:      entry.FeeAmount,
				NetAmount:      entry.NetAmount,
				Currency:       entry.Currency,
				SettlementDate: entry.SettlementDate,
				Status:         entry.Status,
			},
		})
	}

	message := fmt.Sprintf("Hi %s, your booking #%d is confirmed. Check-in: %s. Show this message at the front desk.",
		session.Guest.Name, bookingID, utils.ConvertDateTimeToHumanReadableFormat(session.Stay.CheckIn))

	tasks = append(tasks, dto.TaskMessage{
		TaskType: dto.TaskGuestNotification,
		Data: dto.NotificationTask{
			BookingID:  bookingID,
			BookingRef: session.Reference,
			GuestName:  session.Guest.Name,
			GuestPhone: session.Guest.Phone,
			GuestEmail: session.Guest.Email,
			Message:    message,
		},
	})

	return tasks
}

func (s *CheckoutServiceImpl) SendOTP(ctx context.Context, req dto.OTPRequest) (err error) {
	return s.forwardOTP(ctx, "/api/v1/otp/send", req)
}

func (s *CheckoutServiceImpl) ResendOTP(ctx context.Context, req dto.OTPRequest) (err error) {
	return s.forwardOTP(ctx, "/api/v1/otp/resend", req)
}

func (s *CheckoutServiceImpl) VerifyOTP(ctx context.Context, req dto.OTPVerifyRequest) (result json.RawMessage, err error) {
	if !phonePattern.MatchString(req.Phone) || req.Code == "" {
		return nil, errs.ErrInvalidGuestDetails
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, errs.ErrInternalServer
	}

	statusCode, respBody, err := httpclient.SendRequest(ctx, httpclient.HttpRequest{
		URL:    fmt.Sprintf("%s/api/v1/otp/verify", s.config.AuthServiceHost),
		Method: "POST",
		Body:   body,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	})
	if err != nil {
		log.Error().Err(err).Str("component", "VerifyOTP").Msg("")
		return nil, errs.ErrAuthService
	}

	if statusCode != http.StatusOK {
		return nil, errs.ErrClient
	}

	return respBody, nil
}

func (s *CheckoutServiceImpl) forwardOTP(ctx context.Context, path string, req dto.OTPRequest) error {
	if !phonePattern.MatchString(req.Phone) {
		return errs.ErrInvalidGuestDetails
	}

	body, err := json.Marshal(req)
	if err != nil {
		return errs.ErrInternalServer
	}

	statusCode, _, err := httpclient.SendRequest(ctx, httpclient.HttpRequest{
		URL:    fmt.Sprintf("%s%s", s.config.AuthServiceHost, path),
		Method: "POST",
		Body:   body,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	})
	if err != nil {
		log.Error().Err(err).Str("component", "forwardOTP").Msg("")
		return errs.ErrAuthService
	}

	if statusCode != http.StatusOK {
		return errs.ErrAuthService
	}

	return nil
}
