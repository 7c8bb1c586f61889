package command

import (
	"time"

	"squadhealth/internal/healthcheck"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type PeriodHandler struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewPeriodHandler(logger *zap.Logger) *PeriodHandler {
	return &PeriodHandler{
		logger: logger,
		now:    time.Now,
	}
}

// Print 輸出指定日期（預設今天，UTC）所屬的評估期間
func (handler *PeriodHandler) Print(cmd *cobra.Command, args []string) error {
	date := handler.now().UTC()
	if len(args) > 0 {
		parsed, err := time.Parse("2006-01-02", args[0])
		if err != nil {
			handler.logger.Warn("invalid date argument", zap.String("date", args[0]), zap.Error(err))
			return err
		}
		date = parsed
	}
	cmd.Println(healthcheck.AssessmentPeriod(date))
	return nil
}
