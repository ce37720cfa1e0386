package utils

import (
	"fmt"
	"time"
)

// Guest-facing timestamps are rendered in IST, where the properties are.
func ConvertDateTimeToHumanReadableFormat(datetime int64) string {
	t := time.Unix(datetime, 0)
	location := time.FixedZone("IST", 5*60*60+30*60)
	istTime := t.In(location)
	outputFormat := "02 January 2006, 15:04 IST"

	return istTime.Format(outputFormat)
}

// ParseStayDateTime combines the storefront's separate date ("2006-01-02")
// and clock ("15:04") fields into a single IST instant.
func ParseStayDateTime(date, clock string) (time.Time, error) {
	location, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.Time{}, fmt.Errorf("error loading IST time zone: %v", err)
	}

	t, err := time.ParseInLocation("2006-01-02 15:04", fmt.Sprintf("%s %s", date, clock), location)
	if err != nil {
		return time.Time{}, fmt.Errorf("error parsing stay time: %v", err)
	}

	return t, nil
}

// StayDurationHours is the billed duration, rounded up to whole hours.
func StayDurationHours(checkIn, checkOut time.Time) int64 {
	d := checkOut.Sub(checkIn)
	if d <= 0 {
		return 0
	}

	hours := int64(d / time.Hour)
	if d%time.Hour != 0 {
		hours++
	}
	return hours
}

// SettlementDate is when a payout for a stay becomes due: two days after
// check-out.
func SettlementDate(checkOut int64) int64 {
	return time.Unix(checkOut, 0).AddDate(0, 0, 2).Unix()
}
