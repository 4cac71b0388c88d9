package main

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"

	"campusnest/handler"
	"campusnest/model"
	"campusnest/pgp"
	"campusnest/storage"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.SentryDSN != "" {
		err = sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.AppEnv,
		})
		if err != nil {
			log.Fatalf("sentry.Init: %s", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	db, err := openDB(cfg)
	if err != nil {
		log.Fatal(err)
	}

	media, err := newMediaStore(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to configure media store: %s", err)
	}

	signer, err := newSigner(cfg)
	if err != nil {
		log.Fatalf("failed to load signing key: %s", err)
	}

	e, err := newServer(cfg, db, media, signer)
	if err != nil {
		log.Fatal(err)
	}

	// Start server
	e.Logger.Fatal(e.Start(cfg.ListenAddr))
}

func newServer(cfg Config, db *gorm.DB, media storage.Store, signer *pgp.Signer) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(logLevel(cfg.LogLevel))
	log.SetLevel(logLevel(cfg.LogLevel))
	e.HTTPErrorHandler = errorHandler(e)

	if err := model.CheckCityTable(); err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Infof("%s %s %d %s request_id=%s", v.Method, v.URI, v.Status, v.Latency, v.RequestID)
			return nil
		},
	}))

	// Saniztize
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "SAMEORIGIN",
		HSTSMaxAge:            3600,
		ContentSecurityPolicy: "default-src 'self'",
	}))

	if len(cfg.CORSOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.CORSOrigins,
		}))
	} else {
		e.Use(middleware.CORS())
	}

	e.Use(middleware.BodyLimit(cfg.bodyLimit()))

	// Authenticate
	e.Use(echojwt.WithConfig(getJwtMVConfig(cfg.JWTSecret)))

	// Authorize
	authEnforcer, err := newEnforcer()
	if err != nil {
		return nil, err
	}
	e.Use(AuthorizationMW{Enforcer: authEnforcer}.Authorize)

	e.Validator = newCustomValidator()
	h := &handler.Handler{
		DB:          db,
		Media:       media,
		Signer:      signer,
		JWTSecret:   []byte(cfg.JWTSecret),
		AdminEmails: cfg.AdminEmails,
		Limits:      cfg.limits(),
	}

	// Routes
	e.POST("/auth/signup", h.Signup)
	e.POST("/auth/login", h.Login)
	e.GET("/account/me", h.Me)

	e.GET("/properties", h.FetchProperties)
	e.GET("/properties/:id", h.FetchProperty)
	e.GET("/properties/:id/contact-link", h.FetchPropertyContactLink)

	e.GET("/cities", h.FetchCities)
	e.GET("/vocabulary/:kind", h.FetchVocabulary)

	e.POST("/submissions", h.CreateSubmission)
	e.GET("/submissions/mine", h.FetchMySubmissions)
	e.GET("/submissions/:id", h.FetchSubmission)

	e.POST("/contact", h.CreateContactSubmission)
	e.POST("/flatmate-queries", h.CreateFlatmateQuery)

	e.GET("/files/:id/download", h.DownloadFile)

	if cfg.MediaDriver == "disk" {
		e.Static("/media/", cfg.MediaDir)
	}

	admin := e.Group("/admin")
	admin.GET("/submissions", h.FetchReviewQueue)
	admin.POST("/submissions/:id/publish", h.PublishSubmission)
	admin.POST("/submissions/:id/draft", h.SaveSubmissionDraft)
	admin.POST("/submissions/:id/reject", h.RejectSubmission)
	admin.GET("/properties", h.FetchAdminProperties)
	admin.GET("/contact-submissions", h.FetchContactSubmissions)
	admin.GET("/flatmate-queries", h.FetchFlatmateQueries)
	admin.GET("/files", h.FetchFiles)
	admin.POST("/files/prune", h.PruneFiles)

	return e, nil
}
