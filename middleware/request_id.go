package middleware

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestIDMiddleware keeps the caller's X-Request-ID or generates one,
// and echoes it on the response.
func RequestIDMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		id := string(c.GetHeader(HeaderRequestID))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Response.Header.Set(HeaderRequestID, id)
		c.Next(ctx)
	}
}

func RequestID(c *app.RequestContext) string {
	return c.GetString(requestIDKey)
}
