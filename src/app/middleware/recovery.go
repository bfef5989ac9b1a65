package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"inventory/src/app/http/response"
	"inventory/src/infra/logger"
)

// Recovery turns a panicking handler into a 500 error envelope and logs the
// stack against the request id. It must be the first middleware in the chain.
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
//
// Usage:
//
//	router.Use(middleware.Recovery(logger))
func Recovery(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			requestID := GetRequestID(c)
			logger.WithRequestID(log, requestID).Error("handler panicked",
				"panic", rec,
				"method", c.Request.Method,
				"route", c.FullPath(),
				"path", c.Request.URL.Path,
				"stack", string(debug.Stack()),
			)

			if c.Writer.Written() {
				// The status line is already out; only stop the chain.
				c.Abort()
				return
			}
			response.InternalError(c, requestID)
		}()

		c.Next()
	}
}
