package handler

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"campusnest/model"
)

// UserFromContext reads the user out of the JWT parsed by the auth middleware.
func UserFromContext(c echo.Context) (model.AuthUser, error) {
	jwtToken, ok := c.Get("user_auth").(*jwt.Token)
	if !ok || jwtToken == nil {
		return model.AuthUser{}, fmt.Errorf("no token")
	}

	claims, ok := jwtToken.Claims.(*model.JwtCustomClaims)
	if !ok {
		return model.AuthUser{}, fmt.Errorf("invalid token claims")
	}

	// To make sure it's a valid uuid
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.AuthUser{}, fmt.Errorf("invalid subject; expected UUID: %v", err)
	}

	u := model.AuthUser{ID: id.String()}
	if claims.Roles != "" {
		u.Roles = strings.Split(claims.Roles, ",")
	}
	for _, role := range u.Roles {
		if role == model.RoleAdmin {
			u.IsAdmin = true
		}
	}

	return u, nil
}

// currentUser is the user the authorization middleware let through. Anonymous
// requests get a user without ID.
func currentUser(c echo.Context) *model.AuthUser {
	u, ok := c.Get("user").(*model.AuthUser)
	if !ok || u == nil {
		return &model.AuthUser{}
	}
	return u
}

func (h *Handler) rolesForEmail(email string) []string {
	roles := []string{model.RoleMember}
	for _, admin := range h.AdminEmails {
		if model.StripEmail(admin) == email {
			roles = append(roles, model.RoleAdmin)
			break
		}
	}
	return roles
}
