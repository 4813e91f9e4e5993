package main

import (
	"context"
	"os"
	"time"

	"orders-hertz/conf"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	hertzzap "github.com/hertz-contrib/logger/zap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

func initLog(h *server.Hertz, cfg conf.Hertz) {
	var opts []hertzzap.Option
	if conf.GetEnv() == "online" {
		opts = append(opts, hertzzap.WithCoreEnc(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())))
	} else {
		opts = append(opts, hertzzap.WithCoreEnc(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())))
	}
	logger := hertzzap.NewLogger(opts...)
	hlog.SetLogger(logger)
	hlog.SetLevel(conf.LogLevel())

	fileWriter := &zapcore.BufferedWriteSyncer{
		WS: zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.LogFileName,
			MaxSize:    cfg.LogMaxSize,
			MaxBackups: cfg.LogMaxBackups,
			MaxAge:     cfg.LogMaxAge,
		}),
		FlushInterval: time.Minute,
	}
	if conf.GetEnv() == "online" {
		hlog.SetOutput(fileWriter)
	} else {
		hlog.SetOutput(zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout), fileWriter))
	}

	h.OnShutdown = append(h.OnShutdown, func(ctx context.Context) {
		_ = fileWriter.Sync()
	})
}
