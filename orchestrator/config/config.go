package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/services/placement"
)

type HttpApiConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
	Debug      bool   `mapstructure:"debug"`
	// Bcrypt hash of the operator API key, generated with
	// `cosign_cli gen_api_key`.
	APIKeyHash string `mapstructure:"api_key_hash"`
}

type StateConfig struct {
	DBDSN     string `mapstructure:"dbdsn"`
	Namespace string `mapstructure:"namespace"`
}

type SessionConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	JanitorInterval time.Duration `mapstructure:"janitor_interval"`
}

type OTPGuardConfig struct {
	EntryTTL      time.Duration `mapstructure:"entry_ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

type AuthorityConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	MaxAttempts  int           `mapstructure:"max_attempts"`
	BackoffStep  time.Duration `mapstructure:"backoff_step"`
	CallTimeout  time.Duration `mapstructure:"call_timeout"`
}

type EnvelopeConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	AuthToken string        `mapstructure:"auth_token"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type KYCConfig struct {
	FaceURL     string        `mapstructure:"face_url"`
	LivenessURL string        `mapstructure:"liveness_url"`
	OCRURL      string        `mapstructure:"ocr_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type LedgerConfig struct {
	PostgresDSN string `mapstructure:"postgres_dsn"`
}

type JournalConfig struct {
	Backend string `mapstructure:"backend"` // file, kafka or none

	FilePath string `mapstructure:"file_path"`

	KafkaEndpoint       string        `mapstructure:"kafka_endpoint"`
	KafkaTopic          string        `mapstructure:"kafka_topic"`
	KafkaTrustStorePath string        `mapstructure:"kafka_truststore_path"`
	ProducerCredentials string        `mapstructure:"producer_credentials"` // username:password
	KafkaTimeout        time.Duration `mapstructure:"kafka_timeout"`
}

type ArtifactConfig struct {
	Dir string `mapstructure:"dir"`
}

type PlacementConfig struct {
	FallbackWidth  float64         `mapstructure:"fallback_width"`
	FallbackHeight float64         `mapstructure:"fallback_height"`
	Tables         placement.Table `mapstructure:"tables"`
}

type Config struct {
	HttpApiConfig   *HttpApiConfig   `mapstructure:"http_api"`
	StateConfig     *StateConfig     `mapstructure:"state"`
	SessionConfig   *SessionConfig   `mapstructure:"session"`
	OTPGuardConfig  *OTPGuardConfig  `mapstructure:"otp_guard"`
	AuthorityConfig *AuthorityConfig `mapstructure:"authority"`
	EnvelopeConfig  *EnvelopeConfig  `mapstructure:"envelope"`
	KYCConfig       *KYCConfig       `mapstructure:"kyc"`
	LedgerConfig    *LedgerConfig    `mapstructure:"ledger"`
	JournalConfig   *JournalConfig   `mapstructure:"journal"`
	ArtifactConfig  *ArtifactConfig  `mapstructure:"artifacts"`
	PlacementConfig *PlacementConfig `mapstructure:"placement"`
}

// Load reads the optional YAML file at path and applies COSIGN_-prefixed
// environment overrides (COSIGN_AUTHORITY_BASE_URL overrides
// authority.base_url). Defaults are registered for every leaf so both
// sources can override selectively.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix("COSIGN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_api.listen_addr", "localhost:8080")
	v.SetDefault("http_api.debug", false)
	v.SetDefault("http_api.api_key_hash", "")

	v.SetDefault("state.dbdsn", "./cosign_state")
	v.SetDefault("state.namespace", "cosign")

	v.SetDefault("session.ttl", 72*time.Hour)
	v.SetDefault("session.janitor_interval", 10*time.Minute)

	v.SetDefault("otp_guard.entry_ttl", 5*time.Minute)
	v.SetDefault("otp_guard.sweep_interval", time.Minute)

	v.SetDefault("authority.base_url", "")
	v.SetDefault("authority.client_id", "")
	v.SetDefault("authority.client_secret", "")
	v.SetDefault("authority.max_attempts", 3)
	v.SetDefault("authority.backoff_step", 500*time.Millisecond)
	v.SetDefault("authority.call_timeout", 30*time.Second)

	v.SetDefault("envelope.base_url", "")
	v.SetDefault("envelope.auth_token", "")
	v.SetDefault("envelope.timeout", 30*time.Second)

	v.SetDefault("kyc.face_url", "")
	v.SetDefault("kyc.liveness_url", "")
	v.SetDefault("kyc.ocr_url", "")
	v.SetDefault("kyc.timeout", 30*time.Second)

	v.SetDefault("ledger.postgres_dsn", "")

	v.SetDefault("journal.backend", "file")
	v.SetDefault("journal.file_path", "./cosign_journal")
	v.SetDefault("journal.kafka_endpoint", "")
	v.SetDefault("journal.kafka_topic", "signing_events")
	v.SetDefault("journal.kafka_truststore_path", "")
	v.SetDefault("journal.producer_credentials", "")
	v.SetDefault("journal.kafka_timeout", 10*time.Second)

	v.SetDefault("artifacts.dir", "./cosign_artifacts")

	v.SetDefault("placement.fallback_width", placement.DefaultFallbackWidth)
	v.SetDefault("placement.fallback_height", placement.DefaultFallbackHeight)
}

// Validate rejects configurations the daemon cannot run with. Placement
// rect geometry is checked separately when the placement service is built.
func (c *Config) Validate() error {
	if c.HttpApiConfig == nil || c.HttpApiConfig.ListenAddr == "" {
		return fmt.Errorf("http_api.listen_addr is required")
	}
	if c.HttpApiConfig.APIKeyHash == "" {
		return fmt.Errorf("http_api.api_key_hash is required, generate one with `cosign_cli gen_api_key`")
	}
	if c.StateConfig == nil || c.StateConfig.DBDSN == "" {
		return fmt.Errorf("state.dbdsn is required")
	}
	if c.ArtifactConfig == nil || c.ArtifactConfig.Dir == "" {
		return fmt.Errorf("artifacts.dir is required")
	}
	if c.AuthorityConfig == nil || c.AuthorityConfig.BaseURL == "" {
		return fmt.Errorf("authority.base_url is required")
	}
	if c.AuthorityConfig.ClientID == "" || c.AuthorityConfig.ClientSecret == "" {
		return fmt.Errorf("authority.client_id and authority.client_secret are required")
	}
	if c.EnvelopeConfig == nil || c.EnvelopeConfig.BaseURL == "" {
		return fmt.Errorf("envelope.base_url is required")
	}
	if c.LedgerConfig == nil || c.LedgerConfig.PostgresDSN == "" {
		return fmt.Errorf("ledger.postgres_dsn is required")
	}
	if c.PlacementConfig == nil || len(c.PlacementConfig.Tables) == 0 {
		return fmt.Errorf("placement.tables must configure at least one template")
	}

	if c.JournalConfig != nil {
		switch c.JournalConfig.Backend {
		case "file":
			if c.JournalConfig.FilePath == "" {
				return fmt.Errorf("journal.file_path is required for the file backend")
			}
		case "kafka":
			if c.JournalConfig.KafkaEndpoint == "" || c.JournalConfig.KafkaTopic == "" {
				return fmt.Errorf("journal.kafka_endpoint and journal.kafka_topic are required for the kafka backend")
			}
		case "none":
		default:
			return fmt.Errorf("journal.backend must be file, kafka or none, got %q", c.JournalConfig.Backend)
		}
	}

	return nil
}
