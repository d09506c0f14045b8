// Initializing common application configuration
package config

import (
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Order    OrderConfig    `mapstructure:"order"`
	Payment  PaymentConfig  `mapstructure:"payment"`
	Worker   WorkerConfig   `mapstructure:"worker"`
}

type ServerConfig struct {
	AppVersion  string `json:"appVersion"`
	Host        string `json:"host" validate:"required"`
	Port        string `json:"port" validate:"required"`
	Timeout     time.Duration
	IdleTimeout time.Duration
	Env         string `json:"environment"`
	Mode        string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Password string `json:"password"`
	DB       int    `json:"db"`

	// Connection pool settings
	MaxRetries   int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolTimeout  time.Duration

	// TTL for availability snapshots served to catalog reads
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type OrderConfig struct {
	// MaxTicketsPerOrder caps the summed quantity across all line items.
	MaxTicketsPerOrder int `mapstructure:"max_tickets_per_order"`
}

type PaymentConfig struct {
	// Delay simulates gateway latency.
	Delay time.Duration `mapstructure:"delay"`
	// SuccessRate is the simulated charge success probability [0..1].
	SuccessRate float64 `mapstructure:"success_rate"`
	// Timeout bounds the whole charge attempt; a timeout is compensated
	// exactly like a declined payment.
	Timeout time.Duration `mapstructure:"timeout"`
}

type WorkerConfig struct {
	ReapInterval time.Duration `mapstructure:"reap_interval"`
	// PendingMaxAge is how long an order may stay PENDING before the
	// reaper cancels it and releases its stock.
	PendingMaxAge time.Duration `mapstructure:"pending_max_age"`
}

func LoadConfig() (*viper.Viper, error) {

	viperInstance := viper.New()

	viperInstance.AddConfigPath("./config")
	viperInstance.SetConfigName("config")
	viperInstance.SetConfigType("yaml")

	setDefaults(viperInstance)

	err := viperInstance.ReadInConfig()

	if err != nil {
		return nil, err
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		log.Fatalf("unable to decode config into struct, %v", err)
		return nil, err
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "eventbooker_user")
	v.SetDefault("database.dbname", "eventbooker")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.cache_ttl", 30*time.Second)

	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.expiration", 24*time.Hour)

	v.SetDefault("order.max_tickets_per_order", 10)

	v.SetDefault("payment.delay", time.Second)
	v.SetDefault("payment.success_rate", 0.95)
	v.SetDefault("payment.timeout", 10*time.Second)

	v.SetDefault("worker.reap_interval", time.Minute)
	v.SetDefault("worker.pending_max_age", 15*time.Minute)
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
