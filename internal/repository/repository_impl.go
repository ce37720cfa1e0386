package repository

import (
	"context"
	"database/sql"

	"github.com/brevistay/checkout-service/internal/domain"
	pkgdto "github.com/brevistay/checkout-service/pkg/dto"
	"github.com/brevistay/checkout-service/pkg/errs"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type BookingRepositoryImpl struct {
	db *sqlx.DB
	tx *sqlx.Tx
}

func CreateBookingRepository(db *sqlx.DB) BookingRepository {
	return &BookingRepositoryImpl{
		db: db,
	}
}

// conn picks the transaction when running inside HandleTrx.
func (r *BookingRepositoryImpl) conn() sqlx.ExtContext {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *BookingRepositoryImpl) prepareNamed(ctx context.Context, query string) (*sqlx.NamedStmt, error) {
	if r.tx != nil {
		return r.tx.PrepareNamedContext(ctx, query)
	}
	return r.db.PrepareNamedContext(ctx, query)
}

func (r *BookingRepositoryImpl) AddCheckoutOrder(ctx context.Context, data domain.CheckoutOrder) (id int64, err error) {
	nstmt, err := r.prepareNamed(ctx, "INSERT INTO checkout_orders(session_id, reference, gateway_order_id, amount, currency, status, expires_at, created_at, updated_at) VALUES (:session_id, :reference, :gateway_order_id, :amount, :currency, :status, :expires_at, :created_at, :updated_at) RETURNING id")
	if err != nil {
		log.Error().Err(err).Str("component", "AddCheckoutOrder").Msg("")
		return
	}

	err = nstmt.GetContext(ctx, &data.ID, data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddCheckoutOrder").Msg("")
		return
	}

	return data.ID, nil
}

func (r *BookingRepositoryImpl) UpdateCheckoutOrderStatus(ctx context.Context, gatewayOrderID string, status string) (err error) {
	_, err = r.conn().ExecContext(ctx, "UPDATE checkout_orders SET status = $1, updated_at = EXTRACT(EPOCH FROM NOW())::bigint WHERE gateway_order_id = $2", status, gatewayOrderID)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateCheckoutOrderStatus").Msg("")
		return
	}

	return nil
}

func (r *BookingRepositoryImpl) ExpireStaleCheckoutOrders(ctx context.Context, now int64) (expired int64, err error) {
	res, err := r.conn().ExecContext(ctx, "UPDATE checkout_orders SET status = $1, updated_at = $2 WHERE status = $3 AND expires_at < $2", domain.OrderStatusExpired, now, domain.OrderStatusInitiated)
	if err != nil {
		log.Error().Err(err).Str("component", "ExpireStaleCheckoutOrders").Msg("")
		return 0, err
	}

	expired, err = res.RowsAffected()
	if err != nil {
		log.Error().Err(err).Str("component", "ExpireStaleCheckoutOrders").Msg("")
		return 0, err
	}

	return expired, nil
}

func (r *BookingRepositoryImpl) AddBooking(ctx context.Context, data domain.Booking) (id int64, err error) {
	nstmt, err := r.tx.PrepareNamedContext(ctx, "INSERT INTO bookings(reference, hotel_id, room_id, guest_name, guest_email, guest_phone, check_in, check_out, duration_hours, adults, children, booking_type, gst_number, gst_company_name, gst_company_address, gateway_order_id, gateway_payment_id, base_amount, coupon_discount, final_amount, currency, status, created_at, updated_at) VALUES (:reference, :hotel_id, :room_id, :guest_name, :guest_email, :guest_phone, :check_in, :check_out, :duration_hours, :adults, :children, :booking_type, :gst_number, :gst_company_name, :gst_company_address, :gateway_order_id, :gateway_payment_id, :base_amount, :coupon_discount, :final_amount, :currency, :status, :created_at, :updated_at) RETURNING id")
	if err != nil {
		log.Error().Err(err).Str("component", "AddBooking").Msg("")
		return
	}

	err = nstmt.GetContext(ctx, &data.ID, data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddBooking").Msg("")
		return
	}

	return data.ID, nil
}

func (r *BookingRepositoryImpl) AddSettlementEntries(ctx context.Context, data []domain.SettlementEntry) (err error) {
	_, err = r.tx.NamedExecContext(ctx, "INSERT INTO settlement_entries(booking_id, payee, gross_amount, fee_amount, net_amount, currency, settlement_date, status, created_at) VALUES (:booking_id, :payee, :gross_amount, :fee_amount, :net_amount, :currency, :settlement_date, :status, :created_at)", data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddSettlementEntries").Msg("")
		return
	}

	return nil
}

func (r *BookingRepositoryImpl) GetBookingByReference(ctx context.Context, reference string) (data domain.Booking, err error) {
	row := r.db.QueryRowxContext(ctx, "SELECT * FROM bookings WHERE reference = $1 AND deleted_at IS NULL", reference)
	err = row.StructScan(&data)
	if err != nil {
		log.Error().Err(err).Str("component", "GetBookingByReference").Msg("")
		if err == sql.ErrNoRows {
			return data, errs.ErrNotFound
		}
		return data, errs.ErrInternalServer
	}

	return
}

func (r *BookingRepositoryImpl) GetBookings(ctx context.Context, filter pkgdto.Filter) (data []domain.Booking, err error) {
	query := "SELECT * FROM bookings WHERE deleted_at IS NULL"

	args := make(map[string]interface{})

	if filter.Status != "" {
		query += " AND status = :status"
		args["status"] = filter.Status
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit != 0 && filter.Page != 0 {
		offset := (filter.Page - 1) * filter.Limit
		query += " LIMIT :limit OFFSET :offset"
		args["limit"] = filter.Limit
		args["offset"] = offset
	}

	nstmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		log.Error().Err(err).Str("component", "GetBookings").Msg("")
		return nil, err
	}

	err = nstmt.SelectContext(ctx, &data, args)
	if err != nil {
		log.Error().Err(err).Str("component", "GetBookings").Msg("")
		return nil, err
	}

	return
}

func (r *BookingRepositoryImpl) AddSideEffectFailure(ctx context.Context, data domain.SideEffectFailure) (err error) {
	_, err = r.db.NamedExecContext(ctx, "INSERT INTO side_effect_failures(task_type, booking_ref, payload, reason, failed_at) VALUES (:task_type, :booking_ref, :payload, :reason, :failed_at)", data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddSideEffectFailure").Msg("")
		return
	}

	return nil
}

func (r *BookingRepositoryImpl) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo BookingRepository) error) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	txRepo := &BookingRepositoryImpl{
		tx: tx,
	}

	err = fn(ctx, txRepo)

	if err != nil {
		return err
	}

	return nil
}
