package reportengine

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores everything past 72 bytes and x/crypto refuses to hash longer input.
const maxPasswordBytes = 72

// ErrInvalidCredentials is returned for any failed login, whichever field was wrong.
var ErrInvalidCredentials = errors.New("incorrect username or password")

const invalidCredentialsDetail = "Incorrect username or password"

// AdminIdentity is the single account allowed to use the API. It is built once
// from configuration and never changes afterwards.
type AdminIdentity struct {
	username     string
	passwordHash []byte
}

// NewAdminIdentity wraps an already hashed password.
func NewAdminIdentity(username, passwordHash string) *AdminIdentity {
	return &AdminIdentity{username: username, passwordHash: []byte(passwordHash)}
}

// AdminIdentityFromConfig uses AdminPasswordHash when set and otherwise hashes
// AdminPassword once.
func AdminIdentityFromConfig(cfg Config) (*AdminIdentity, error) {
	hash := cfg.AdminPasswordHash
	if hash == "" {
		var err error
		hash, err = HashPassword(cfg.AdminPassword)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
	}
	return NewAdminIdentity(cfg.AdminUsername, hash), nil
}

// HashPassword returns a bcrypt hash of the first 72 bytes of password.
func HashPassword(password string) (string, error) {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	hash, err := bcrypt.GenerateFromPassword(b, bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Username returns the configured admin username.
func (a *AdminIdentity) Username() string {
	return a.username
}

// Authenticate reports whether username and password match the admin identity.
// A malformed stored hash counts as a mismatch.
func (a *AdminIdentity) Authenticate(username, password string) (*User, bool) {
	if subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) != 1 {
		return nil, false
	}
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		return nil, false
	}
	return &User{Username: a.username}, true
}

func (a *App) handleLogin(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	user, ok := a.Admin.Authenticate(*req.Username, *req.Password)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, invalidCredentialsDetail).SetInternal(ErrInvalidCredentials)
	}
	token, err := a.Tokens.Issue(user.Username)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	return c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}
