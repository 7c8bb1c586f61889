package command

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"squadhealth/config"
	"squadhealth/internal/core"

	"github.com/golang-jwt/jwt/v4"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func tokenCommand(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().Duration("ttl", time.Hour, "")
	cmd.Flags().String("username", "", "")
	cmd.SetOut(out)
	return cmd
}

func TestTokenSign(t *testing.T) {
	conf := &config.Configuration{App: config.App{Name: "squadhealth", SecretKey: "local-secret"}}
	handler := NewTokenHandler(conf, zap.NewNop())

	var out bytes.Buffer
	cmd := tokenCommand(&out)
	require.NoError(t, cmd.Flags().Set("username", "alice@example.com"))
	require.NoError(t, handler.Sign(cmd, []string{"alice"}))

	claims := &core.Claims{}
	_, err := jwt.ParseWithClaims(strings.TrimSpace(out.String()), claims, func(*jwt.Token) (any, error) {
		return []byte("local-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Identity())
	assert.Equal(t, "alice@example.com", claims.Username)
	assert.Equal(t, "squadhealth", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenSignWithoutSecret(t *testing.T) {
	handler := NewTokenHandler(&config.Configuration{}, zap.NewNop())
	var out bytes.Buffer
	assert.Error(t, handler.Sign(tokenCommand(&out), []string{"alice"}))
	assert.Empty(t, out.String())
}
