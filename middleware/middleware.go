package middleware

import (
	"orders-hertz/conf"

	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/hertz-contrib/cors"
	"github.com/hertz-contrib/gzip"
	"github.com/hertz-contrib/logger/accesslog"
	"github.com/hertz-contrib/pprof"
)

// StreamPath is excluded from gzip so the WebSocket upgrade passes untouched.
const StreamPath = "/orders/stream"

// Register installs the middleware chain in front of every route.
func Register(h *server.Hertz, cfg conf.Hertz) {
	h.Use(recovery.Recovery())
	h.Use(RequestIDMiddleware())

	// pprof
	if cfg.EnablePprof {
		pprof.Register(h)
	}

	// gzip
	if cfg.EnableGzip {
		h.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{StreamPath})))
	}

	// access log
	if cfg.EnableAccessLog {
		h.Use(accesslog.New())
	}

	// cors
	h.Use(cors.Default())
}
