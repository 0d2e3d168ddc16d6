package config

import (
	"fmt"
	"os"
	"strings"

	httpapi "github.com/qellagg/qella-waitlist/internal/api/http"
	"github.com/qellagg/qella-waitlist/internal/mail"
	"github.com/qellagg/qella-waitlist/internal/store"
	"github.com/qellagg/qella-waitlist/internal/store/bunt"
	"github.com/qellagg/qella-waitlist/internal/validate"
	"github.com/qellagg/qella-waitlist/log"
	"github.com/spf13/viper"
)

// StorageConfig selects the store realization backing the waitlist.
type StorageConfig struct {
	Backend string `mapstructure:"backend"`
}

// Config represents the global configuration for the service.
type Config struct {
	Storage  StorageConfig   `mapstructure:"storage"`
	DB       store.Config    `mapstructure:"mysql"`
	Bunt     bunt.Config     `mapstructure:"bunt"`
	Logger   log.Config      `mapstructure:"logger"`
	HTTP     httpapi.Config  `mapstructure:"http"`
	Mailer   mail.Config     `mapstructure:"mailer"`
	Validate validate.Config `mapstructure:"validate"`
}

// LoadConfig loads the configuration from a file and/or environment variables.
// Environment variables take precedence over config file values.
func LoadConfig(cfgFile string) (*Config, error) {
	viper.SetConfigType("toml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))

	bindEnvVars()

	// Config file is optional - env vars alone can carry the whole config
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %v", err)
			}
		}
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("$HOME/config/qella-waitlist")
		viper.AddConfigPath("/etc/qella-waitlist")
		_ = viper.ReadInConfig()
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %v", err)
	}

	return &config, nil
}

// bindEnvVars binds environment variables to config keys
func bindEnvVars() {
	// Storage
	viper.BindEnv("storage.backend", "STORAGE_BACKEND")

	// MySQL
	viper.BindEnv("mysql.dsn", "MYSQL_DSN")
	viper.BindEnv("mysql.automigrate", "MYSQL_AUTOMIGRATE")
	viper.BindEnv("mysql.max_open_connections", "MYSQL_MAX_OPEN_CONNECTIONS")
	viper.BindEnv("mysql.max_idle_connections", "MYSQL_MAX_IDLE_CONNECTIONS")

	// BuntDB
	viper.BindEnv("bunt.waitlist_path", "BUNT_WAITLIST_PATH")
	viper.BindEnv("bunt.mail_path", "BUNT_MAIL_PATH")

	// Logger
	viper.BindEnv("logger.level", "LOG_LEVEL")
	viper.BindEnv("logger.add_source", "LOG_ADD_SOURCE")

	// HTTP
	viper.BindEnv("http.port", "HTTP_PORT")
	viper.BindEnv("http.address", "HTTP_ADDRESS")
	viper.BindEnv("http.allowed_origins", "HTTP_ALLOWED_ORIGINS")

	// Mailer
	viper.BindEnv("mailer.sendgrid_api_key", "MAILER_SENDGRID_API_KEY")
	viper.BindEnv("mailer.from_email", "MAILER_FROM_EMAIL")
	viper.BindEnv("mailer.from_email_name", "MAILER_FROM_EMAIL_NAME")
	viper.BindEnv("mailer.reply_to", "MAILER_REPLY_TO")
	viper.BindEnv("mailer.worker_interval", "MAILER_WORKER_INTERVAL")

	// Validation rules
	viper.BindEnv("validate.username_min_len", "VALIDATE_USERNAME_MIN_LEN")
	viper.BindEnv("validate.username_max_len", "VALIDATE_USERNAME_MAX_LEN")
}
