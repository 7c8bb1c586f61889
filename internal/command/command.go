package command

import (
	"time"

	commandHandler "squadhealth/internal/command/handler"

	"github.com/google/wire"
	"github.com/spf13/cobra"
)

var ProviderSet = wire.NewSet(
	NewCommand,
	commandHandler.NewPeriodHandler,
	commandHandler.NewTokenHandler,
)

type Command struct {
	period *commandHandler.PeriodHandler
	token  *commandHandler.TokenHandler
}

func NewCommand(
	period *commandHandler.PeriodHandler,
	token *commandHandler.TokenHandler,
) *Command {
	return &Command{period: period, token: token}
}

// Register 子命令只在執行時才初始化依賴，避免 serve 以外的指令連線資料庫
func Register(rootCmd *cobra.Command, newCmd func() (*Command, func(), error)) {
	run := func(fn func(*Command) func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			command, cleanup, err := newCmd()
			if err != nil {
				return err
			}
			defer cleanup()
			return fn(command)(cmd, args)
		}
	}

	period := &cobra.Command{
		Use:   "period [YYYY-MM-DD]",
		Short: "print the assessment period of a date (default today, UTC)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  run(func(c *Command) func(*cobra.Command, []string) error { return c.period.Print }),
	}

	token := &cobra.Command{
		Use:   "token <userID>",
		Short: "sign a local bearer token with APP__SECRET_KEY",
		Args:  cobra.ExactArgs(1),
		RunE:  run(func(c *Command) func(*cobra.Command, []string) error { return c.token.Sign }),
	}
	token.Flags().Duration("ttl", 24*time.Hour, "token lifetime")
	token.Flags().String("username", "", "username claim")

	rootCmd.AddCommand(period, token)
}
