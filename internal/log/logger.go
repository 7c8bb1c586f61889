package log

import (
	"fmt"
	"os"
	"strings"

	"squadhealth/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger 建立 JSON logger；回傳的 AtomicLevel 可在設定熱更新時調整層級
func NewLogger(conf *config.Configuration) (*zap.Logger, zap.AtomicLevel, error) {
	atomic := zap.NewAtomicLevelAt(ParseLevel(conf.Log.Level))

	// 1) Encoder 設定（JSON、ISO8601 時間、caller/level 鍵等）
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.MessageKey = "message"
	encCfg.LevelKey = "level"
	encCfg.TimeKey = "ts"
	encCfg.CallerKey = "caller"
	encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	encCfg.EncodeCaller = zapcore.ShortCallerEncoder
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	encoder := zapcore.NewJSONEncoder(encCfg)

	// 2) 分流到 stdout / stderr（同時受全域門檻控制）
	stdoutWriter := zapcore.AddSync(os.Stdout)
	stderrWriter := zapcore.AddSync(os.Stderr)

	stdoutLevel := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return atomic.Enabled(l) && l < zapcore.WarnLevel
	})
	stderrLevel := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return atomic.Enabled(l) && l >= zapcore.WarnLevel
	})

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, stdoutWriter, stdoutLevel),
		zapcore.NewCore(encoder, stderrWriter, stderrLevel),
	}

	// 3) 指定 LOG__FILE 時另外寫入可輪替的檔案
	if conf.Log.File != "" {
		cores = append(cores, zapcore.NewCore(encoder, fileWriter(conf.Log), atomic))
	}

	core := zapcore.NewTee(cores...)

	// 4) Options：顯示 caller；stacktrace 只在 Error+ 時出現
	opts := []zap.Option{
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	}

	logger := zap.New(core, opts...).With(
		zap.String("service", conf.App.Name),
		zap.String("env", conf.App.Env),
	)
	logger.Info(fmt.Sprintf("zap logger set level: %s", atomic.Level()))

	return logger, atomic, nil
}

// ParseLevel 無法辨識時回傳 info
func ParseLevel(level string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

func fileWriter(conf config.Log) zapcore.WriteSyncer {
	maxSize := conf.MaxSize
	if maxSize <= 0 {
		maxSize = 100
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   conf.File,
		MaxSize:    maxSize,
		MaxBackups: conf.MaxBackups,
		MaxAge:     conf.MaxAge,
		Compress:   true,
	})
}
