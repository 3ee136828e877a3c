package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. BANKSKD_DATABASE_DSN
const EnvPrefix = "BANKSKD"

// RestConfig holds every setting the REST API needs
type RestConfig struct {
	Port           string                 `mapstructure:"port" validate:"required,numeric"`
	AllowedOrigins []string               `mapstructure:"allowed_origins"`
	Database       DatabaseSettings       `mapstructure:"database"`
	Logger         LoggerSettings         `mapstructure:"logger"`
	Auth           AuthSettings           `mapstructure:"auth"`
	Tryout         TryoutSettings         `mapstructure:"tryout"`
	Billing        BillingSettings        `mapstructure:"billing"`
	MediaConnector MediaConnectorSettings `mapstructure:"media_connector"`
}

// Validate checks the top level fields and every nested settings block
func (c *RestConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validation failed for RestConfig: %w", err)
	}

	nested := []interface{ Validate() error }{
		&c.Database, &c.Logger, &c.Auth, &c.Tryout, &c.Billing, &c.MediaConnector,
	}
	for _, s := range nested {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// InitializeRestConfig loads the YAML file at path, applies environment overrides and validates the result.
// A missing file is tolerated so the service can be configured from the environment alone.
func InitializeRestConfig(path string) (*RestConfig, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		}
	}

	var cfg RestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// newViper registers defaults for every key. Keys unknown to viper are not
// picked up from the environment by Unmarshal.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("allowed_origins", []string{"*"})

	v.SetDefault("database.type", SqliteDbType)
	v.SetDefault("database.dsn", "bank-skd.db")
	v.SetDefault("database.name", "")
	v.SetDefault("database.max_open_conns", 0)

	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("logger.service", DefaultLogService)
	v.SetDefault("logger.file_path", "")
	v.SetDefault("logger.max_size", 0)
	v.SetDefault("logger.max_backups", 0)
	v.SetDefault("logger.max_age", 0)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "bank-skd")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("auth.bcrypt_cost", 0)

	v.SetDefault("tryout.expiry_scan_interval", 30*time.Second)
	v.SetDefault("tryout.expiry_batch_size", 100)
	v.SetDefault("tryout.default_passing_twk", 65)
	v.SetDefault("tryout.default_passing_tiu", 80)
	v.SetDefault("tryout.default_passing_tkp", 166)

	v.SetDefault("billing.gateway", ManualGateway)
	v.SetDefault("billing.server_key", "")
	v.SetDefault("billing.mentor_commission_percent", 70)
	v.SetDefault("billing.min_withdrawal", 50000)
	v.SetDefault("billing.transfer_instructions", "")

	v.SetDefault("media_connector.provider", LocalStorageProvider)
	v.SetDefault("media_connector.connection_string", "")
	v.SetDefault("media_connector.container_name", "")
	v.SetDefault("media_connector.local_dir", "./data/media")
	v.SetDefault("media_connector.max_upload_bytes", 5<<20)

	return v
}
