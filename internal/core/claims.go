package core

import (
	"errors"

	"github.com/golang-jwt/jwt/v4"
)

const (
	ContextClaimsKey      = "auth_claims"
	ContextCurrentUserKey = "current_user"
)

var ErrMissingIdentity = errors.New("token has no user_id or sub claim")

// Claims 由上游 IdP 簽發；user_id 缺少時退回標準的 sub
type Claims struct {
	Username string `json:"username"`
	UserID   string `json:"user_id"`
	jwt.RegisteredClaims
}

// Identity 對應到 healthcheck.User.ID
func (c Claims) Identity() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}

// Valid 在 exp / nbf / iat 之外還要求有使用者身分
func (c Claims) Valid() error {
	if err := c.RegisteredClaims.Valid(); err != nil {
		return err
	}
	if c.Identity() == "" {
		return ErrMissingIdentity
	}
	return nil
}
