package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type (
	Tasks struct {
		AssignmentExpiryInterval time.Duration
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // middleware rate limiter capacity
		RateLimiterBurst int           // middleware rate limiter burst/refill
		PprofEnabled     bool
		PprofPort        string
	}

	Log struct {
		Level string
	}

	Auth struct {
		JWTSecret string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}

	Dispatch struct {
		OfferTTL            time.Duration
		RebroadcastSchedule string
		RebroadcastWindow   time.Duration
		RebroadcastBatch    int
	}

	Payout struct {
		AmountMinor int64
		Currency    string
	}

	Tracking struct {
		DefaultSpeedKmh float64
		TrafficTimezone string
	}

	Kafka struct {
		PortHealthcheck string
		Brokers         string
		Topic           string
		EventsTopic     string
		ConsumerGroup   string
		Sarama          Sarama
		Handlers        KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		DeliveryCreated DeliveryCreated
	}

	DeliveryCreated struct {
		ProcessTimeout time.Duration
	}

	Config struct {
		Tasks    Tasks
		Server   HTTPServer
		Log      Log
		Auth     Auth
		Database Database
		Dispatch Dispatch
		Payout   Payout
		Tracking Tracking
		Kafka    Kafka
	}
)

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

// LoadDatabase только секция POSTGRES_*, для cmd/migrate.
func LoadDatabase() (*Database, error) {
	db := databaseFromEnv()
	if err := validateDatabase(&db); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return &db, nil
}

// BrokerList список брокеров из KAFKA_BROKERS через запятую.
func (k Kafka) BrokerList() []string {
	brokers := strings.Split(k.Brokers, ",")
	res := make([]string, 0, len(brokers))
	for _, b := range brokers {
		if b = strings.TrimSpace(b); b != "" {
			res = append(res, b)
		}
	}
	return res
}

func loadFromEnv() (*Config, error) {
	expiryInterval, err := osGetEnvDuration("BACKGROUND_ASSIGNMENT_EXPIRY_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	deliveryCreatedTimeout, err := osGetEnvDuration("KAFKA_HANDLER_DELIVERY_CREATED_PROCESS_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	offerTTL, err := osGetEnvDuration("DISPATCH_OFFER_TTL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rebroadcastWindow, err := osGetEnvDuration("DISPATCH_REBROADCAST_WINDOW")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rebroadcastBatch, err := osGetInt("DISPATCH_REBROADCAST_BATCH")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	payoutMinor, err := osGetInt64("RIDER_PAYOUT_MINOR")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	defaultSpeed, err := osGetFloat("TRACKING_DEFAULT_SPEED_KMH")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		Tasks: Tasks{
			AssignmentExpiryInterval: expiryInterval,
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		Log: Log{
			Level: os.Getenv("LOG_LEVEL"),
		},
		Auth: Auth{
			JWTSecret: os.Getenv("AUTH_JWT_SECRET"),
		},
		Database: databaseFromEnv(),
		Dispatch: Dispatch{
			OfferTTL:            offerTTL,
			RebroadcastSchedule: os.Getenv("DISPATCH_REBROADCAST_SCHEDULE"),
			RebroadcastWindow:   rebroadcastWindow,
			RebroadcastBatch:    rebroadcastBatch,
		},
		Payout: Payout{
			AmountMinor: payoutMinor,
			Currency:    os.Getenv("RIDER_PAYOUT_CURRENCY"),
		},
		Tracking: Tracking{
			DefaultSpeedKmh: defaultSpeed,
			TrafficTimezone: os.Getenv("TRACKING_TRAFFIC_TIMEZONE"),
		},
		Kafka: Kafka{
			Brokers:         os.Getenv("KAFKA_BROKERS"),
			Topic:           os.Getenv("KAFKA_TOPIC"),
			EventsTopic:     os.Getenv("KAFKA_EVENTS_TOPIC"),
			ConsumerGroup:   os.Getenv("KAFKA_CONSUMER_GROUP"),
			PortHealthcheck: os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				DeliveryCreated: DeliveryCreated{
					ProcessTimeout: deliveryCreatedTimeout,
				},
			},
		},
	}, nil
}

func databaseFromEnv() Database {
	return Database{
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		DBName:   os.Getenv("POSTGRES_DB"),
		SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
	}
}

func validateDatabase(db *Database) error {
	if db.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if db.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if db.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if db.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if db.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if db.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}
	return nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if cfg.Auth.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET is required")
	}

	if err := validateDatabase(&cfg.Database); err != nil {
		return err
	}

	if cfg.Tasks.AssignmentExpiryInterval == time.Duration(0) {
		return errors.New("BACKGROUND_ASSIGNMENT_EXPIRY_INTERVAL is required")
	}

	if cfg.Dispatch.OfferTTL == time.Duration(0) {
		return errors.New("DISPATCH_OFFER_TTL is required")
	}
	if cfg.Dispatch.RebroadcastSchedule == "" {
		return errors.New("DISPATCH_REBROADCAST_SCHEDULE is required")
	}
	if cfg.Dispatch.RebroadcastWindow == time.Duration(0) {
		return errors.New("DISPATCH_REBROADCAST_WINDOW is required")
	}
	if cfg.Dispatch.RebroadcastBatch == 0 {
		return errors.New("DISPATCH_REBROADCAST_BATCH is required")
	}

	if cfg.Payout.AmountMinor <= 0 {
		return errors.New("RIDER_PAYOUT_MINOR must be positive")
	}
	if cfg.Payout.Currency == "" {
		return errors.New("RIDER_PAYOUT_CURRENCY is required")
	}

	if cfg.Tracking.DefaultSpeedKmh < 0 {
		return errors.New("TRACKING_DEFAULT_SPEED_KMH must not be negative")
	}
	if cfg.Tracking.TrafficTimezone != "" {
		if _, err := time.LoadLocation(cfg.Tracking.TrafficTimezone); err != nil {
			return fmt.Errorf("TRACKING_TRAFFIC_TIMEZONE: %w", err)
		}
	}

	if cfg.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.Topic == "" {
		return errors.New("KAFKA_TOPIC is required")
	}
	if cfg.Kafka.EventsTopic == "" {
		return errors.New("KAFKA_EVENTS_TOPIC is required")
	}
	if cfg.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if cfg.Kafka.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}

	if cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}

	if cfg.Kafka.Handlers.DeliveryCreated.ProcessTimeout == time.Duration(0) {
		return errors.New("KAFKA_HANDLER_DELIVERY_CREATED_PROCESS_TIMEOUT is required")
	}

	return nil
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetInt64(s string) (int64, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid int64 format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetFloat(s string) (float64, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
