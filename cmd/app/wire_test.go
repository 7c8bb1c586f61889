package main

import (
	"bytes"
	"strings"
	"testing"

	"squadhealth/config"
	"squadhealth/internal/command"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func runSubcommand(t *testing.T, conf *config.Configuration, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "squadhealth", SilenceUsage: true, SilenceErrors: true}
	command.Register(root, func() (*command.Command, func(), error) {
		return wireCommand(conf, zap.NewNop())
	})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestWireCommandPeriod(t *testing.T) {
	out, err := runSubcommand(t, &config.Configuration{}, "period", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2023 - 2nd Half\n", out)
}

func TestWireCommandToken(t *testing.T) {
	conf := &config.Configuration{App: config.App{Name: "squadhealth", SecretKey: "local-secret"}}
	out, err := runSubcommand(t, conf, "token", "alice", "--ttl", "1h")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "."), 3, "prints a signed JWT")

	_, err = runSubcommand(t, &config.Configuration{}, "token", "alice")
	assert.Error(t, err)
}
