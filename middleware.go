package main

import (
	_ "embed"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
	stringadapter "github.com/casbin/casbin/v2/persist/string-adapter"
	"github.com/getsentry/sentry-go"
	"github.com/go-playground/validator"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"campusnest/handler"
	"campusnest/model"
)

//go:embed auth_model.conf
var authModel string

//go:embed policy.csv
var authPolicy string

func newEnforcer() (*casbin.Enforcer, error) {
	m, err := casbinmodel.NewModelFromString(authModel)
	if err != nil {
		return nil, err
	}

	return casbin.NewEnforcer(m, stringadapter.NewAdapter(authPolicy))
}

type AuthorizationMW struct {
	Enforcer *casbin.Enforcer
}

func (cfg AuthorizationMW) Authorize(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := handler.UserFromContext(c)
		if err != nil {
			user = model.AuthUser{Roles: []string{model.RoleAnonymous}}
		}

		for _, role := range user.Roles {
			ok, casbinErr := cfg.Enforcer.Enforce(role, c.Path(), c.Request().Method)
			if casbinErr != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "authorization error")
			}
			if ok {
				c.Set("user", &user)
				return next(c)
			}
		}

		if user.ID == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Please sign in.")
		}
		return echo.NewHTTPError(http.StatusForbidden, "You do not have access to this page.")
	}
}

type PublicPaths struct {
	Path   string
	Method string
}

// Requests to these may carry no token; a token, when sent, is still used.
var publicPaths = []PublicPaths{
	{Path: "/auth/signup", Method: http.MethodPost},
	{Path: "/auth/login", Method: http.MethodPost},
	{Path: "/properties", Method: http.MethodGet},
	{Path: "/properties/:id", Method: http.MethodGet},
	{Path: "/properties/:id/contact-link", Method: http.MethodGet},
	{Path: "/cities", Method: http.MethodGet},
	{Path: "/vocabulary/:kind", Method: http.MethodGet},
	{Path: "/contact", Method: http.MethodPost},
	{Path: "/flatmate-queries", Method: http.MethodPost},
	{Path: "/files/:id/download", Method: http.MethodGet},
	{Path: "/media/*", Method: http.MethodGet},
}

func isPublicPath(c echo.Context) bool {
	for _, p := range publicPaths {
		if c.Path() == p.Path && c.Request().Method == p.Method {
			return true
		}
	}
	return false
}

func getJwtMVConfig(secret string) echojwt.Config {
	return echojwt.Config{
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(model.JwtCustomClaims)
		},
		ContextKey: "user_auth",
		SigningKey: []byte(secret),
		ErrorHandler: func(c echo.Context, err error) error {
			if isPublicPath(c) {
				return nil
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "Please sign in.")
		},
		ContinueOnIgnoredError: true,
	}
}

type CustomValidator struct {
	validator *validator.Validate
}

func newCustomValidator() *CustomValidator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterValidation("contact", func(fl validator.FieldLevel) bool {
		return model.IsValidContactNumber(fl.Field().String())
	})

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	fields := model.FieldErrors{}
	for _, fe := range verrs {
		fields.Add(fe.Field(), validationMessage(fe))
	}
	return &handler.ValidationError{Fields: fields}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "contact":
		return "must be exactly 10 digits"
	case "min":
		if fe.Kind() == reflect.Slice {
			return "select at least " + fe.Param()
		}
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	}
	return "is invalid"
}

// errorHandler reports server errors to Sentry before rendering the
// default JSON error body.
func errorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if report := reportableError(err); report != nil {
			sentry.CaptureException(report)
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}

// reportableError is the cause worth sending to Sentry: nil for client
// errors, the attached internal error for 5xx responses that carry one.
func reportableError(err error) error {
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		return err
	}
	if he.Code < http.StatusInternalServerError {
		return nil
	}
	if he.Internal != nil {
		return he.Internal
	}
	return he
}
