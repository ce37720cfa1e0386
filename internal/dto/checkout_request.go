package dto

type CheckoutRequest struct {
	GuestName     string             `json:"guest_name"`
	GuestEmail    string             `json:"guest_email"`
	GuestPhone    string             `json:"guest_phone"`
	HotelID       string             `json:"hotel_id"`
	RoomID        string             `json:"room_id"`
	CheckInDate   string             `json:"check_in_date"`
	CheckInTime   string             `json:"check_in_time"`
	CheckOutDate  string             `json:"check_out_date"`
	CheckOutTime  string             `json:"check_out_time"`
	Adults        int                `json:"adults"`
	Children      int                `json:"children"`
	BookingType   string             `json:"booking_type"`
	BasePrice     float64            `json:"base_price"`
	CouponApplied bool               `json:"coupon_applied"`
	GSTDetails    *GSTDetailsRequest `json:"gst_details,omitempty"`
}

type GSTDetailsRequest struct {
	Number         string `json:"number"`
	CompanyName    string `json:"company_name"`
	CompanyAddress string `json:"company_address"`
}
