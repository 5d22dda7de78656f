package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pathways-hq/pathways/internal/types"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Auth       AuthConfig       `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	Kafka      KafkaConfig
	PubSub     PubSubConfig  `validate:"required"`
	Logging    LoggingConfig `validate:"required"`
	Cache      CacheConfig
	S3         S3Config
	Email      EmailConfig
	RBAC       RBACConfig
	Remittance RemittanceConfig
	Complaint  ComplaintConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type AuthConfig struct {
	Provider types.AuthProvider `validate:"required"`
	Secret   string             `validate:"required"`
	APIKey   APIKeyConfig
}

type APIKeyConfig struct {
	Header string `default:"x-api-key"`
	// Keys maps the sha256 hex digest of an api key to its details
	Keys map[string]APIKeyDetails
}

type APIKeyDetails struct {
	UserID string
	Name   string
}

type PostgresConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifeMins int
}

type KafkaConfig struct {
	Brokers       []string
	ConsumerGroup string
	ClientID      string
	UseSASL       bool
	SASLMechanism string
	SASLUser      string
	SASLPassword  string
}

type PubSubConfig struct {
	Type types.PubSubType `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type CacheConfig struct {
	// TTLSeconds controls how long reference data stays cached
	TTLSeconds int
}

type S3Config struct {
	Enabled          bool
	Region           string
	DocumentBucket   string
	ReportBucket     string
	PresignExpiryMin int
}

type EmailConfig struct {
	Enabled     bool
	APIKey      string
	FromAddress string
	FromName    string
}

type RBACConfig struct {
	PolicyPath string
}

// RemittanceConfig holds the thresholds used when scanning departed
// candidates for remittance anomalies.
type RemittanceConfig struct {
	MissingAfterDays    int
	FirstRemittanceDays int
	LowFrequencyGapDays int
	UnusualDeviationPct int
}

type ComplaintConfig struct {
	// DefaultSLAHours applies to complaints created without an
	// explicit SLA.
	DefaultSLAHours int
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pathways")

	v.SetEnvPrefix("PATHWAYS")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.ApplyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// ApplyDefaults fills in defaults for optional sections
func (c *Configuration) ApplyDefaults() {
	if c.PubSub.Type == "" {
		c.PubSub.Type = types.MemoryPubSub
	}
	if c.Postgres.MaxOpenConns <= 0 {
		c.Postgres.MaxOpenConns = 20
	}
	if c.Postgres.MaxIdleConns <= 0 {
		c.Postgres.MaxIdleConns = 5
	}
	if c.Postgres.ConnMaxLifeMins <= 0 {
		c.Postgres.ConnMaxLifeMins = 30
	}
	if c.Cache.TTLSeconds <= 0 {
		c.Cache.TTLSeconds = 300
	}
	if c.S3.PresignExpiryMin <= 0 {
		c.S3.PresignExpiryMin = 15
	}
	if c.Complaint.DefaultSLAHours <= 0 {
		c.Complaint.DefaultSLAHours = types.DefaultComplaintSLAHours
	}
	if c.Remittance.MissingAfterDays <= 0 {
		c.Remittance.MissingAfterDays = 45
	}
	if c.Remittance.FirstRemittanceDays <= 0 {
		c.Remittance.FirstRemittanceDays = 60
	}
	if c.Remittance.LowFrequencyGapDays <= 0 {
		c.Remittance.LowFrequencyGapDays = 60
	}
	if c.Remittance.UnusualDeviationPct <= 0 {
		c.Remittance.UnusualDeviationPct = 50
	}
	if c.Auth.APIKey.Header == "" {
		c.Auth.APIKey.Header = "x-api-key"
	}
	if c.RBAC.PolicyPath == "" {
		c.RBAC.PolicyPath = "./config/rbac/roles.json"
	}
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or other non-web applications
func GetDefaultConfig() *Configuration {
	cfg := &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		PubSub:     PubSubConfig{Type: types.MemoryPubSub},
		Auth: AuthConfig{
			Provider: types.AuthProviderInternal,
			Secret:   "local-dev-secret",
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
