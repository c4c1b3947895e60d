package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

var (
	// ErrReadConfig файл конфигурации не прочитан или не разобран
	ErrReadConfig = errors.New("config: failed to read config")

	// ErrInvalidConfig значения конфигурации некорректны
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Стратегии компенсации при частичной фиксации
const (
	CompensationNone   = "none"
	CompensationRefund = "refund"
)

// Провайдеры списания
const (
	PaymentProviderService  = "service"
	PaymentProviderRazorpay = "razorpay"
)

type Config struct {
	Server           ServerConfig   `toml:"server"`
	Logs             LogsConfig     `toml:"logs"`
	Metrics          MetricsConfig  `toml:"metrics"`
	Database         DatabaseConfig `toml:"database"`
	Redis            RedisConfig    `toml:"redis"`
	Kafka            KafkaConfig    `toml:"kafka"`
	Razorpay         RazorpayConfig `toml:"razorpay"`
	CatalogService   ServiceConfig  `toml:"catalog_service"`
	PaymentService   ServiceConfig  `toml:"payment_service"`
	BookingService   ServiceConfig  `toml:"booking_service"`
	ComplaintService ServiceConfig  `toml:"complaint_service"`
	Engine           EngineConfig   `toml:"engine"`
	Operator         OperatorConfig `toml:"operator"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// DatabaseConfig Postgres для журнала сверки
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig блокировки изменений бронирований. Без Redis блокировки живут в памяти процесса.
type RedisConfig struct {
	Enabled   bool   `toml:"enabled"`
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
	LockTTL   int    `toml:"lock_ttl"` // секунды
}

type KafkaConfig struct {
	Enabled      bool     `toml:"enabled"`
	Brokers      []string `toml:"brokers"`
	Topic        string   `toml:"topic"`
	MaxAttempts  int      `toml:"max_attempts"`
	BatchTimeout int      `toml:"batch_timeout_ms"`
}

type RazorpayConfig struct {
	KeyID     string `toml:"key_id"`
	KeySecret string `toml:"key_secret"`
	Currency  string `toml:"currency"`
}

// ServiceConfig адрес удаленного сервиса
type ServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// OperatorConfig доступ к журналу сверки.
// Без токена маршруты сверки не регистрируются.
type OperatorConfig struct {
	Token string `toml:"token"`
}

// minOperatorTokenLen минимальная длина токена оператора
const minOperatorTokenLen = 16

// EngineConfig параметры оформления бронирований
type EngineConfig struct {
	Compensation    string `toml:"compensation"`     // none | refund
	PaymentProvider string `toml:"payment_provider"` // service | razorpay
	DraftTTL        int    `toml:"draft_ttl"`        // минуты
	SweepInterval   int    `toml:"sweep_interval"`   // секунды
}

func (e EngineConfig) DraftTTLDuration() time.Duration {
	return time.Duration(e.DraftTTL) * time.Minute
}

func (e EngineConfig) SweepIntervalDuration() time.Duration {
	return time.Duration(e.SweepInterval) * time.Second
}

func (s ServiceConfig) TimeoutDuration() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}

// Load читает конфигурацию из TOML файла поверх значений по умолчанию
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
	}
	return Parse(string(data))
}

// Parse разбирает TOML из строки
func Parse(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			Level: "info",
			File:  "./logs/app.log",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "reservationservice",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: RedisConfig{
			KeyPrefix: "reservation:inflight:",
			LockTTL:   30,
		},
		Kafka: KafkaConfig{
			Topic:        "reservation-events",
			MaxAttempts:  3,
			BatchTimeout: 50,
		},
		Razorpay: RazorpayConfig{
			Currency: "INR",
		},
		CatalogService:   ServiceConfig{Timeout: 5},
		PaymentService:   ServiceConfig{Timeout: 15},
		BookingService:   ServiceConfig{Timeout: 10},
		ComplaintService: ServiceConfig{Timeout: 5},
		Engine: EngineConfig{
			Compensation:    CompensationNone,
			PaymentProvider: PaymentProviderService,
			DraftTTL:        30,
			SweepInterval:   60,
		},
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}
	if c.Metrics.Enabled && c.Metrics.ServiceName == "" {
		return fmt.Errorf("%w: metrics.service_name is required", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}

	services := map[string]ServiceConfig{
		"catalog_service":   c.CatalogService,
		"booking_service":   c.BookingService,
		"complaint_service": c.ComplaintService,
	}
	if c.Engine.PaymentProvider == PaymentProviderService {
		services["payment_service"] = c.PaymentService
	}
	for name, s := range services {
		if s.URL == "" {
			return fmt.Errorf("%w: %s.url is required", ErrInvalidConfig, name)
		}
		if s.Timeout <= 0 {
			return fmt.Errorf("%w: %s.timeout must be positive", ErrInvalidConfig, name)
		}
	}

	switch c.Engine.Compensation {
	case CompensationNone, CompensationRefund:
	default:
		return fmt.Errorf("%w: engine.compensation must be %q or %q", ErrInvalidConfig, CompensationNone, CompensationRefund)
	}

	switch c.Engine.PaymentProvider {
	case PaymentProviderService:
	case PaymentProviderRazorpay:
		if c.Razorpay.KeyID == "" || c.Razorpay.KeySecret == "" {
			return fmt.Errorf("%w: razorpay.key_id and razorpay.key_secret are required", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: engine.payment_provider must be %q or %q",
			ErrInvalidConfig, PaymentProviderService, PaymentProviderRazorpay)
	}

	if c.Engine.DraftTTL <= 0 || c.Engine.SweepInterval <= 0 {
		return fmt.Errorf("%w: engine.draft_ttl and engine.sweep_interval must be positive", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required", ErrInvalidConfig)
	}
	if c.Kafka.Enabled && (len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "") {
		return fmt.Errorf("%w: kafka.brokers and kafka.topic are required", ErrInvalidConfig)
	}
	if c.Operator.Token != "" && len(c.Operator.Token) < minOperatorTokenLen {
		return fmt.Errorf("%w: operator.token must be at least %d characters", ErrInvalidConfig, minOperatorTokenLen)
	}

	return nil
}
