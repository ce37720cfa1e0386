package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServicePort             string
	MetricsPort             string
	PostgreSQLConfig        PostgreSQLConfig
	RedisConfig             RedisConfig
	RazorpayConfig          RazorpayConfig
	KafkaConfig             KafkaConfig
	AuthServiceHost         string
	SettlementServiceHost   string
	NotificationServiceHost string
	TracingConfig           TracingConfig
	CheckoutSessionTTL      int
}

type PostgreSQLConfig struct {
	DBHost     string
	DBName     string
	DBPort     string
	DBUsername string
	DBPassword string
}

type RedisConfig struct {
	Address  string
	Password string
}

type RazorpayConfig struct {
	KeyID     string
	KeySecret string
}

type KafkaConfig struct {
	BrokerAddress   string
	BrokerTopic     string
	BrokerPartition int
}

type TracingConfig struct {
	CollectorHost string
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	brokerPartition, _ := strconv.Atoi(os.Getenv("BROKER_PARTITION"))

	// the gateway wait has to end somewhere; default to ten minutes
	sessionTTL, err := strconv.Atoi(os.Getenv("CHECKOUT_SESSION_TTL_MINUTES"))
	if err != nil || sessionTTL <= 0 {
		sessionTTL = 10
	}

	conf := Config{
		ServicePort: os.Getenv("SERVICE_PORT"),
		MetricsPort: os.Getenv("METRICS_PORT"),
		PostgreSQLConfig: PostgreSQLConfig{
			DBHost:     os.Getenv("DB_HOST"),
			DBName:     os.Getenv("DB_NAME"),
			DBPort:     os.Getenv("DB_PORT"),
			DBUsername: os.Getenv("DB_USERNAME"),
			DBPassword: os.Getenv("DB_PASSWORD"),
		},
		RedisConfig: RedisConfig{
			Address:  os.Getenv("REDIS_ADDRESS"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		RazorpayConfig: RazorpayConfig{
			KeyID:     os.Getenv("RAZORPAY_KEY_ID"),
			KeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		},
		KafkaConfig: KafkaConfig{
			BrokerAddress:   os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:     os.Getenv("BROKER_TOPIC"),
			BrokerPartition: brokerPartition,
		},
		AuthServiceHost:         os.Getenv("AUTH_SERVICE_HOST"),
		SettlementServiceHost:   os.Getenv("SETTLEMENT_SERVICE_HOST"),
		NotificationServiceHost: os.Getenv("NOTIFICATION_SERVICE_HOST"),
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
		CheckoutSessionTTL: sessionTTL,
	}

	return &conf
}
