package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"campusnest/model"
)

func (h *Handler) Signup(c echo.Context) error {
	u := model.SignupUserReq{}
	if err := c.Bind(&u); err != nil {
		return err
	}

	u.Email = model.StripEmail(u.Email)
	if problems := fieldErrors(c, &u); !problems.Empty() {
		return validationError(problems)
	}

	var existing int64
	if err := h.DB.Model(&model.User{}).Where("email = ?", u.Email).Count(&existing).Error; err != nil {
		log.Errorf("signup lookup failed: %v", err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Something went wrong. Please try again later."}
	}
	if existing > 0 {
		return &echo.HTTPError{Code: http.StatusConflict, Message: "User already exists. Reset password?"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return &echo.HTTPError{Code: http.StatusInternalServerError}
	}

	newUser := model.User{
		Email:    u.Email,
		Password: string(hash),
		Roles:    h.rolesForEmail(u.Email),
	}

	if err := h.DB.Create(&newUser).Error; err != nil {
		log.Errorf("failed to create user: %v", err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Something went wrong. Please try again later."}
	}

	return c.JSON(http.StatusCreated, newUser.ToAccountFormat())
}

func (h *Handler) Login(c echo.Context) error {
	f := model.LoginUserReq{}
	if err := c.Bind(&f); err != nil {
		return err
	}

	f.Email = model.StripEmail(f.Email)
	if problems := fieldErrors(c, &f); !problems.Empty() {
		return validationError(problems)
	}

	u := model.User{}
	err := h.DB.Where("email = ?", f.Email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &echo.HTTPError{Code: http.StatusUnauthorized, Message: "Invalid email or password."}
		}
		log.Errorf("login lookup failed: %v", err)
		return &echo.HTTPError{Code: http.StatusInternalServerError}
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(f.Password)) != nil {
		return &echo.HTTPError{Code: http.StatusUnauthorized, Message: "Invalid email or password."}
	}

	claims := &model.JwtCustomClaims{
		Roles: strings.Join(u.Roles, ","),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
			Subject:   u.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(h.JWTSecret)
	if err != nil {
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Something went wrong. Please try again later."}
	}

	return c.JSON(http.StatusOK, model.LoginUserResponse{Token: signedToken})
}

// Me is the session context the front-end keeps: who is signed in and
// whether the admin dashboard is available to them.
func (h *Handler) Me(c echo.Context) error {
	reqUser := currentUser(c)

	u := model.User{}
	err := h.DB.First(&u, "id = ?", reqUser.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &echo.HTTPError{Code: http.StatusNotFound, Message: "User not found. Please try again later."}
		}
		return &echo.HTTPError{Code: http.StatusInternalServerError}
	}

	return c.JSON(http.StatusOK, u.ToAccountFormat())
}
