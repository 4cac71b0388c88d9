package model

import (
	"database/sql"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAnonymous = "anonymous"
	RoleMember    = "member"
	RoleAdmin     = "admin"
)

// Primary user struct for DB interactions
type User struct {
	ID        string   `json:"id" gorm:"type:uuid;primarykey"`
	Email     string   `json:"email" gorm:"uniqueIndex"`
	Password  string   `json:"-"`
	Roles     []string `json:"roles" gorm:"serializer:json"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt sql.NullTime `gorm:"index"`
}

// User extracted from JWT token
type AuthUser struct {
	ID      string   `json:"id"`
	Roles   []string `json:"roles"`
	IsAdmin bool     `json:"is_admin"`
}

// User as returned by /account/me
type AccountUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func (base *User) BeforeCreate(tx *gorm.DB) (err error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return err
	}

	base.ID = id.String()
	return
}

type SignupUserReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginUserReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginUserResponse struct {
	Token string `json:"token"`
}

type JwtCustomClaims struct {
	Roles string `json:"roles"`
	jwt.RegisteredClaims
}

func (user User) IsAdmin() bool {
	return containsString(user.Roles, RoleAdmin)
}

func (user User) ToAccountFormat() AccountUser {
	return AccountUser{
		ID:        user.ID,
		Email:     user.Email,
		Roles:     user.Roles,
		IsAdmin:   user.IsAdmin(),
		CreatedAt: user.CreatedAt,
	}
}
