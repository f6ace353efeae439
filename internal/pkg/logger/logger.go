package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"flexgen/internal/config"
)

// Init 初始化全局日志
func Init(cfg *config.LogConfig) error {
	// 设置日志级别
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// 设置时间格式
	switch cfg.TimeFormat {
	case "Unix":
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	case "UnixMs":
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	default:
		zerolog.TimeFieldFormat = time.RFC3339
	}

	// 设置输出
	var output io.Writer = os.Stdout
	switch {
	case cfg.Output == "stderr":
		output = os.Stderr
	case cfg.Output == "file" && cfg.FilePath != "":
		file, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return err
		}
		output = file
	}

	// Console 格式 (开发环境友好)
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	log.Logger = New(output)
	// 没有挂 logger 的 context 回退到全局 logger
	zerolog.DefaultContextLogger = &log.Logger

	return nil
}

// New 创建带公共字段的 logger
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Caller().Str("app", "flexgen").Logger()
}

// WithRequestID 把带 request_id 的子 logger 挂到 context 上
func WithRequestID(ctx context.Context, requestID string) context.Context {
	l := log.Logger.With().Str("request_id", requestID).Logger()
	return l.WithContext(ctx)
}

// Ctx 获取 context 上的 logger
func Ctx(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
