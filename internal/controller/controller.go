package controller

import (
	"github.com/brevistay/checkout-service/internal/dto"
	"github.com/brevistay/checkout-service/internal/service"
	pkgdto "github.com/brevistay/checkout-service/pkg/dto"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type Controller struct {
	service service.CheckoutService
}

func CreateCheckoutController(e *echo.Group, service service.CheckoutService) {
	c := Controller{
		service: service,
	}

	e.POST("/checkout", c.InitiateCheckout)
	e.POST("/checkout/:sessionID/payment", c.CompletePayment)
	e.GET("/bookings", c.GetBookings)
	e.GET("/bookings/:reference", c.GetBooking)

	e.POST("/auth/otp", c.SendOTP)
	e.POST("/auth/otp/resend", c.ResendOTP)
	e.POST("/auth/otp/verify", c.VerifyOTP)
}

func (c *Controller) InitiateCheckout(e echo.Context) error {
	payload := dto.CheckoutRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "InitiateCheckout").Msg("")
	}

	resp, err := c.service.InitiateCheckout(e.Request().Context(), payload)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "", resp)
}

func (c *Controller) CompletePayment(e echo.Context) error {
	payload := dto.PaymentProof{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "CompletePayment").Msg("")
	}

	resp, err := c.service.CompletePayment(e.Request().Context(), e.Param("sessionID"), payload)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, resp.Message, resp)
}

func (c *Controller) GetBookings(e echo.Context) error {
	filter := pkgdto.Filter{}
	err := e.Bind(&filter)
	if err != nil {
		log.Error().Err(err).Str("component", "GetBookings").Msg("")
	}

	responsePayload, err := c.service.GetBookings(e.Request().Context(), filter)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "successfully retrieved bookings", responsePayload)
}

func (c *Controller) GetBooking(e echo.Context) error {
	responsePayload, err := c.service.GetBooking(e.Request().Context(), e.Param("reference"))
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "", responsePayload)
}

func (c *Controller) SendOTP(e echo.Context) error {
	payload := dto.OTPRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "SendOTP").Msg("")
	}

	if err := c.service.SendOTP(e.Request().Context(), payload); err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "OTP sent", nil)
}

func (c *Controller) ResendOTP(e echo.Context) error {
	payload := dto.OTPRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "ResendOTP").Msg("")
	}

	if err := c.service.ResendOTP(e.Request().Context(), payload); err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "OTP resent", nil)
}

func (c *Controller) VerifyOTP(e echo.Context) error {
	payload := dto.OTPVerifyRequest{}
	err := e.Bind(&payload)
	if err != nil {
		log.Error().Err(err).Str("component", "VerifyOTP").Msg("")
	}

	result, err := c.service.VerifyOTP(e.Request().Context(), payload)
	if err != nil {
		return pkgdto.WriteErrorResponse(e, err, nil)
	}

	return pkgdto.WriteSuccessResponse(e, "", result)
}
