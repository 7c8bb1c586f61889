package command

import (
	"errors"
	"time"

	"squadhealth/config"
	"squadhealth/internal/core"

	"github.com/golang-jwt/jwt/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type TokenHandler struct {
	logger *zap.Logger
	secret []byte
	issuer string
	now    func() time.Time
}

func NewTokenHandler(conf *config.Configuration, logger *zap.Logger) *TokenHandler {
	return &TokenHandler{
		logger: logger,
		secret: []byte(conf.App.SecretKey),
		issuer: conf.App.Name,
		now:    time.Now,
	}
}

// Sign 用 APP__SECRET_KEY 簽一張本機測試用的 token
func (handler *TokenHandler) Sign(cmd *cobra.Command, args []string) error {
	if len(handler.secret) == 0 {
		return errors.New("APP__SECRET_KEY is not configured")
	}
	ttl, err := cmd.Flags().GetDuration("ttl")
	if err != nil {
		return err
	}
	username, _ := cmd.Flags().GetString("username")

	now := handler.now()
	claims := &core.Claims{
		UserID:   args[0],
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    handler.issuer,
			Subject:   args[0],
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(handler.secret)
	if err != nil {
		return err
	}
	handler.logger.Debug("token signed", zap.String("userID", args[0]), zap.Duration("ttl", ttl))
	cmd.Println(signed)
	return nil
}
