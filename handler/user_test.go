package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/icrowley/fake"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusnest/model"
)

func contextWithClaims(claims *model.JwtCustomClaims) echo.Context {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if claims != nil {
		c.Set("user_auth", jwt.NewWithClaims(jwt.SigningMethodHS256, claims))
	}
	return c
}

func TestUserFromContext(t *testing.T) {
	id := uuid.NewString()

	u, err := UserFromContext(contextWithClaims(&model.JwtCustomClaims{
		Roles:            "member,admin",
		RegisteredClaims: jwt.RegisteredClaims{Subject: id},
	}))
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, []string{model.RoleMember, model.RoleAdmin}, u.Roles)
	assert.True(t, u.IsAdmin)

	u, err = UserFromContext(contextWithClaims(&model.JwtCustomClaims{
		Roles:            "member",
		RegisteredClaims: jwt.RegisteredClaims{Subject: id},
	}))
	require.NoError(t, err)
	assert.False(t, u.IsAdmin)

	_, err = UserFromContext(contextWithClaims(&model.JwtCustomClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "not-a-uuid"},
	}))
	assert.Error(t, err)

	_, err = UserFromContext(contextWithClaims(nil))
	assert.Error(t, err)
}

func TestCurrentUserDefaultsToAnonymous(t *testing.T) {
	c := contextWithClaims(nil)
	u := currentUser(c)
	require.NotNil(t, u)
	assert.Empty(t, u.ID)
	assert.False(t, u.IsAdmin)

	c.Set("user", &model.AuthUser{ID: "someone", IsAdmin: true})
	assert.Equal(t, "someone", currentUser(c).ID)
}

func TestRolesForEmail(t *testing.T) {
	h := &Handler{AdminEmails: []string{" Admin@CampusNest.test "}}

	assert.Equal(t, []string{model.RoleMember}, h.rolesForEmail(fake.EmailAddress()))
	assert.Equal(t, []string{model.RoleMember, model.RoleAdmin}, h.rolesForEmail("admin@campusnest.test"))
}
