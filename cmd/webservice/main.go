package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	_ "time/tzdata"

	"github.com/brevistay/checkout-service/config"
	"github.com/brevistay/checkout-service/internal/controller"
	circuitbreaker "github.com/brevistay/checkout-service/internal/infrastructure/circuit-breaker"
	"github.com/brevistay/checkout-service/internal/infrastructure/database/postgres"
	"github.com/brevistay/checkout-service/internal/infrastructure/message-queue/kafka"
	paymentgateway "github.com/brevistay/checkout-service/internal/infrastructure/payment-gateway"
	"github.com/brevistay/checkout-service/internal/infrastructure/sessionstore"
	"github.com/brevistay/checkout-service/internal/infrastructure/tracing"
	localmiddleware "github.com/brevistay/checkout-service/internal/middleware"
	"github.com/brevistay/checkout-service/internal/repository"
	"github.com/brevistay/checkout-service/internal/service"
	"github.com/brevistay/checkout-service/internal/worker"
	pkgdto "github.com/brevistay/checkout-service/pkg/dto"
	"github.com/go-co-op/gocron/v2"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger

	config := config.CreateNewConfig()

	cb := circuitbreaker.CreateCircuitBreaker("checkout-service")
	gateway := paymentgateway.CreateRazorpayGateway(config, cb)

	kafkaProducer := kafka.CreateKafkaProducer(config)
	kafkaReader := kafka.CreateKafkaReader(config)

	redisClient := sessionstore.CreateRedisClient(config)
	sessions := sessionstore.CreateRedisStore(redisClient)

	db, err := postgres.GetDBInstance(config.PostgreSQLConfig.DBUsername, config.PostgreSQLConfig.DBPassword, config.PostgreSQLConfig.DBHost, config.PostgreSQLConfig.DBPort, config.PostgreSQLConfig.DBName)
	if err != nil {
		panic(err)
	}

	traceProvider, err := tracing.InitTracing(config.TracingConfig.CollectorHost)
	if err != nil {
		fmt.Println(err)
	}

	defer func() {
		if err := traceProvider.Shutdown(context.Background()); err != nil {
			fmt.Println(err)
		}
	}()

	tracer := traceProvider.Tracer("checkout-service")

	e := echo.New()
	g := e.Group("/api/v1")

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
			defer span.End()

			req := c.Request()
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	})

	// Used empty string so that metrics are not prefixed with the service name making it easier to aggregate across services
	e.Use(echoprometheus.NewMiddleware(""))
	go func() {
		metrics := echo.New()
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(fmt.Sprintf(":%s", config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	e.Use(localmiddleware.Logger)

	g.GET("/ping", func(c echo.Context) error {
		return pkgdto.WriteSuccessResponse(c, "Hello, World!", nil)
	})

	bookingRepo := repository.CreateBookingRepository(db)
	checkoutSvc := service.CreateCheckoutService(bookingRepo, gateway, sessions, kafkaProducer, config)
	controller.CreateCheckoutController(g, checkoutSvc)

	sideEffectWorker := worker.CreateSideEffectWorker(kafkaReader, bookingRepo, config)
	go sideEffectWorker.Run(context.Background())

	s, err := gocron.NewScheduler()
	if err != nil {
		panic(err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(
			time.Minute,
		),
		gocron.NewTask(
			checkoutSvc.ExpireStaleCheckouts,
		),
	)
	if err != nil {
		panic(err)
	}

	s.Start()

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%s", config.ServicePort)))
}
