package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// ErrConfigUnreadable is returned when the environment cannot be decoded into Config.
var ErrConfigUnreadable = errors.New("configuration unreadable")

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV" default:"development"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT" default:"8080"`
		Host     string `envconfig:"HOST" default:"0.0.0.0"`
		Enable   bool   `envconfig:"ENABLE" default:"true"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"5"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS" default:"0"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name   string `envconfig:"NAME" default:"tzbot"`
		APIKey string `envconfig:"API_KEY"`
		CORS   struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable           bool `envconfig:"ENABLE"`
			MaxRequests      int  `envconfig:"MAX_REQUESTS" default:"30"`
			WriteMaxRequests int  `envconfig:"WRITE_MAX_REQUESTS" default:"5"`
			WindowSeconds    int  `envconfig:"WINDOW_SECONDS" default:"60"`
		} `envconfig:"RATE_LIMITER"`
	} `envconfig:"APP"`

	Discord struct {
		Enable        bool   `envconfig:"ENABLE" default:"true"`
		Token         string `envconfig:"TOKEN"`
		CommandPrefix string `envconfig:"COMMAND_PREFIX" default:"/tzadd"`
	} `envconfig:"DISCORD"`

	Store struct {
		Path        string `envconfig:"PATH" default:"zones.json"`
		ZoneinfoDir string `envconfig:"ZONEINFO_DIR"`
	} `envconfig:"STORE"`

	Report struct {
		ShowDayOffset bool   `envconfig:"SHOW_DAY_OFFSET"`
		Disclaimer    string `envconfig:"DISCLAIMER" default:"I'm a bot, message joey if something went wrong or needs changing"`
	} `envconfig:"REPORT"`

	Cache struct {
		Redis struct {
			Enable  bool `envconfig:"ENABLE"`
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"60"`
	} `envconfig:"CACHE"`

	Backup struct {
		S3 struct {
			Enable          bool   `envconfig:"ENABLE"`
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			Region          string `envconfig:"REGION" default:"auto"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			BucketName      string `envconfig:"BUCKET_NAME"`
			Directory       string `envconfig:"DIRECTORY" default:"tzbot"`
		} `envconfig:"S3"`
	} `envconfig:"BACKUP"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
	} `envconfig:"EXTERNAL"`
}

var (
	conf        Config
	once        sync.Once
	initErr     error
	initialized bool
)

// Init loads .env (if present) and decodes the environment into the shared Config.
// Only the first call does any work.
func Init() error {
	once.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		if err := envconfig.Process("", &conf); err != nil {
			initErr = fmt.Errorf("%w: %w", ErrConfigUnreadable, err)

			return
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	return initErr
}

// Get returns the process configuration. A configuration that cannot be read
// is the one condition the bot refuses to start on.
func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}
