package dto

import "github.com/shopspring/decimal"

type BookingResponse struct {
	ID          int64           `json:"id"`
	Reference   string          `json:"reference"`
	HotelID     string          `json:"hotel_id"`
	RoomID      string          `json:"room_id"`
	GuestName   string          `json:"guest_name"`
	CheckIn     string          `json:"check_in"`
	CheckOut    string          `json:"check_out"`
	BookingType string          `json:"booking_type"`
	FinalAmount decimal.Decimal `json:"final_amount"`
	Currency    string          `json:"currency"`
	Status      string          `json:"status"`
}
