package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/shinyyama/podcast-backend/internal/handler"
	"github.com/shinyyama/podcast-backend/internal/identity"
	"github.com/shinyyama/podcast-backend/internal/model"
	"github.com/shinyyama/podcast-backend/internal/repository"
	"gorm.io/gorm"
)

// HeaderImpersonate lets an admin act as another user, identified by email.
const HeaderImpersonate = "X-Impersonate-Email"

// TokenVerifier is satisfied by *auth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	users    repository.UserRepository
}

// NewFirebaseVerifier builds a Firebase auth client for projectID.
func NewFirebaseVerifier(ctx context.Context, projectID string) (*auth.Client, error) {
	if projectID == "" {
		return nil, errors.New("FIREBASE_PROJECT_ID is not set")
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		return nil, err
	}
	return app.Auth(ctx)
}

func NewAuthMiddleware(verifier TokenVerifier, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, users: users}
}

// RequireAuth verifies the bearer ID token, resolves the signed-in user by
// email and stores the request identity in the request context.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authz := c.Request().Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			return unauthorized(c)
		}
		ctx := c.Request().Context()
		token, err := m.verifier.VerifyIDToken(ctx, strings.TrimPrefix(authz, "Bearer "))
		if err != nil {
			return unauthorized(c)
		}
		email, _ := token.Claims["email"].(string)
		if email == "" {
			return unauthorized(c)
		}
		self, err := m.lookup(ctx, email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return unauthorized(c)
			}
			return c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("internal_error", err.Error()))
		}

		id := identity.Self(toIdentityUser(self))
		if target := strings.TrimSpace(c.Request().Header.Get(HeaderImpersonate)); target != "" && !strings.EqualFold(target, self.Email) {
			if !self.IsAdmin {
				return c.JSON(http.StatusForbidden, handler.NewErrorResponse("forbidden", "impersonation requires admin"))
			}
			acting, err := m.lookup(ctx, target)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return c.JSON(http.StatusNotFound, handler.NewErrorResponse("not_found", "impersonated user not found"))
				}
				return c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("internal_error", err.Error()))
			}
			id.Acting = toIdentityUser(acting)
			log.Printf("[auth] impersonate real=%s acting=%s path=%s", id.Real.Email, id.Acting.Email, c.Path())
		}

		c.Set("uid", token.UID)
		c.SetRequest(c.Request().WithContext(identity.With(ctx, id)))
		return next(c)
	}
}

func (m *AuthMiddleware) lookup(ctx context.Context, email string) (*model.User, error) {
	return m.users.FindByEmail(ctx, strings.TrimSpace(email))
}

func toIdentityUser(u *model.User) identity.User {
	return identity.User{ID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin}
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized", "unauthorized"))
}
