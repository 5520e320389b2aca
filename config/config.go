package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Backend  BackendConfig  `yaml:"backend"`
	Auth     AuthConfig     `yaml:"auth"`
	Cache    CacheConfig    `yaml:"cache"`
	Worker   WorkerConfig   `yaml:"worker"`
	Hotel    HotelConfig    `yaml:"hotel"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingEventsTopic string   `yaml:"booking_events_topic"`
	GroupID            string   `yaml:"group_id"`
}

// BackendConfig points at the remote booking backend that owns all
// room/booking/payment persistence.
type BackendConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	RetryCount     int    `yaml:"retry_count"`
}

type AuthConfig struct {
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
	Secret          string `yaml:"secret"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes"`
}

type CacheConfig struct {
	SnapshotTTLSeconds int `yaml:"snapshot_ttl_seconds"`
}

type WorkerConfig struct {
	RefreshIntervalSeconds int `yaml:"refresh_interval_seconds"`
}

// HotelConfig carries the static room inventory. Rooms are property
// master data and change by redeploy, not through the dashboard.
type HotelConfig struct {
	Rooms []RoomConfig `yaml:"rooms"`
}

type RoomConfig struct {
	ID            int64    `yaml:"id"`
	Number        string   `yaml:"number"`
	Type          string   `yaml:"type"`
	PricePerNight float64  `yaml:"price_per_night"`
	Status        string   `yaml:"status"`
	Amenities     []string `yaml:"amenities"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
