package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/labstack/gommon/log"
	"github.com/subosito/gotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"campusnest/handler"
	"campusnest/model"
	"campusnest/pgp"
	"campusnest/storage"
)

type Config struct {
	AppEnv     string `env:"APP_ENV" envDefault:"development"`
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":1323"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"error"`
	JWTSecret  string `env:"JWT_SECRET,required"`
	SentryDSN  string `env:"SENTRY_DSN"`

	DBDriver    string `env:"DB_DRIVER" envDefault:"sqlite"`
	DBPath      string `env:"DB_PATH" envDefault:"campusnest.db"`
	DatabaseURL string `env:"DATABASE_URL"`

	MediaDriver           string `env:"MEDIA_DRIVER" envDefault:"s3"`
	MediaDir              string `env:"MEDIA_DIR" envDefault:"media"`
	MediaPublicBaseURL    string `env:"MEDIA_PUBLIC_BASE_URL"`
	MediaUploadsPerSecond int    `env:"MEDIA_UPLOADS_PER_SECOND" envDefault:"10"`
	AWSRegion             string `env:"AWS_REGION"`
	AWSBucketName         string `env:"AWS_BUCKET_NAME"`

	MaxImageBytes  int64         `env:"MAX_IMAGE_BYTES" envDefault:"10485760"`
	MaxVideoBytes  int64         `env:"MAX_VIDEO_BYTES" envDefault:"52428800"`
	OrphanMediaAge time.Duration `env:"ORPHAN_MEDIA_AGE" envDefault:"24h"`

	AdminEmails []string `env:"ADMIN_EMAILS" envSeparator:","`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`

	PGPPrivateKey string `env:"PGP_PRIVATE_KEY"`
	PGPPassphrase string `env:"PGP_PASSPHRASE"`
}

// loadConfig reads .env when present, then the environment.
func loadConfig() (Config, error) {
	gotenv.Load()

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := checkConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func checkConfig(cfg Config) error {
	required := map[string]string{}

	switch cfg.DBDriver {
	case "sqlite":
		required["DB_PATH"] = cfg.DBPath
	case "postgres":
		required["DATABASE_URL"] = cfg.DatabaseURL
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	switch cfg.MediaDriver {
	case "s3":
		required["AWS_REGION"] = cfg.AWSRegion
		required["AWS_BUCKET_NAME"] = cfg.AWSBucketName
	case "disk":
		required["MEDIA_DIR"] = cfg.MediaDir
		required["MEDIA_PUBLIC_BASE_URL"] = cfg.MediaPublicBaseURL
	default:
		return fmt.Errorf("unsupported MEDIA_DRIVER %q", cfg.MediaDriver)
	}

	if cfg.PGPPrivateKey != "" {
		required["PGP_PASSPHRASE"] = cfg.PGPPassphrase
	}

	for k, v := range required {
		if v == "" {
			return fmt.Errorf("missing required config: %s", k)
		}
	}
	return nil
}

func (cfg Config) limits() handler.Limits {
	return handler.Limits{
		MaxImageBytes:  cfg.MaxImageBytes,
		MaxVideoBytes:  cfg.MaxVideoBytes,
		OrphanMediaAge: cfg.OrphanMediaAge,
	}
}

// bodyLimit leaves room for six images, one video and the form fields.
func (cfg Config) bodyLimit() string {
	total := cfg.MaxImageBytes*model.MaxImages + cfg.MaxVideoBytes
	return fmt.Sprintf("%dK", total/1024+1024)
}

func logLevel(s string) log.Lvl {
	switch strings.ToLower(s) {
	case "debug":
		return log.DEBUG
	case "info":
		return log.INFO
	case "warn":
		return log.WARN
	case "off":
		return log.OFF
	default:
		return log.ERROR
	}
}

func openDB(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseURL)
	default:
		dialector = sqlite.Open(cfg.DBPath)
	}

	return gorm.Open(dialector, &gorm.Config{})
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.City{},
		&model.File{},
		&model.Submission{},
		&model.Property{},
		&model.ContactSubmission{},
		&model.FlatmateQuery{},
	)
}

func newMediaStore(ctx context.Context, cfg Config) (storage.Store, error) {
	if cfg.MediaDriver == "disk" {
		return storage.NewDiskStore(cfg.MediaDir, cfg.MediaPublicBaseURL)
	}

	return storage.NewS3Store(ctx, storage.S3Options{
		Region:           cfg.AWSRegion,
		Bucket:           cfg.AWSBucketName,
		PublicBaseURL:    cfg.MediaPublicBaseURL,
		UploadsPerSecond: cfg.MediaUploadsPerSecond,
	})
}

func newSigner(cfg Config) (*pgp.Signer, error) {
	if cfg.PGPPrivateKey != "" {
		return pgp.NewSigner(cfg.PGPPrivateKey, cfg.PGPPassphrase)
	}

	log.Warn("PGP_PRIVATE_KEY is not set; generating a signing key for this process only")
	return pgp.NewEphemeralSigner("campusnest", "signing@campusnest.local")
}
