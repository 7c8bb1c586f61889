package command

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPeriodPrint(t *testing.T) {
	handler := NewPeriodHandler(zap.NewNop())
	handler.now = func() time.Time { return time.Date(2024, time.September, 12, 9, 0, 0, 0, time.UTC) }

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		cmd := &cobra.Command{}
		cmd.SetOut(&out)
		err := handler.Print(cmd, args)
		return out.String(), err
	}

	out, err := run()
	require.NoError(t, err)
	assert.Equal(t, "2024 - 1st Half\n", out)

	out, err = run("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2023 - 2nd Half\n", out)

	_, err = run("03/01/2024")
	assert.Error(t, err)
}
