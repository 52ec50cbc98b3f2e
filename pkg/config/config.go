package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "BOOKSTORE"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv           = "BOOKSTORE_APP_ENV"
	EnvLogLevel         = "BOOKSTORE_LOG_LEVEL"
	EnvDBPath           = "BOOKSTORE_DB_PATH"
	EnvAutoMigrate      = "BOOKSTORE_AUTO_MIGRATE"
	EnvCredentialScheme = "BOOKSTORE_CREDENTIAL_SCHEME"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Security SecurityConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Security.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BOOKSTORE_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"BOOKSTORE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BOOKSTORE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Path        string        `envconfig:"BOOKSTORE_DB_PATH" default:"bookstore.db"`
	BusyTimeout time.Duration `envconfig:"BOOKSTORE_DB_BUSY_TIMEOUT" default:"5s"`
	AutoMigrate bool          `envconfig:"BOOKSTORE_AUTO_MIGRATE" default:"true"`
}

// DSN renders the sqlite connection string with foreign keys enforced.
func (db DBConfig) DSN() string {
	q := url.Values{}
	q.Set("_busy_timeout", fmt.Sprintf("%d", db.BusyTimeout.Milliseconds()))
	q.Set("_foreign_keys", "1")
	return fmt.Sprintf("file:%s?%s", db.Path, q.Encode())
}

// Credential verification schemes. Plain preserves the legacy store-as-given
// behavior the app migrated from; argon2id is the salted-hash upgrade.
const (
	CredentialSchemePlain    = "plain"
	CredentialSchemeArgon2ID = "argon2id"
)

type SecurityConfig struct {
	CredentialScheme string `envconfig:"BOOKSTORE_CREDENTIAL_SCHEME" default:"plain"`
	ArgonMemoryKB    int    `envconfig:"BOOKSTORE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int    `envconfig:"BOOKSTORE_ARGON_TIME" default:"3"`
	ArgonParallelism int    `envconfig:"BOOKSTORE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int    `envconfig:"BOOKSTORE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int    `envconfig:"BOOKSTORE_ARGON_KEY_LEN" default:"32"`
}

func (s SecurityConfig) validate() error {
	switch s.CredentialScheme {
	case CredentialSchemePlain, CredentialSchemeArgon2ID:
		return nil
	default:
		return fmt.Errorf("%s must be %q or %q, got %q",
			EnvCredentialScheme, CredentialSchemePlain, CredentialSchemeArgon2ID, s.CredentialScheme)
	}
}
