package middleware

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// maxLoggedBody caps how much of each body ends up in a log line.
const maxLoggedBody = 2048

// Logging emits one line per request with the method, path, status, latency
// and request id, followed by the (truncated) request and response bodies.
// 5xx responses log at error level, 4xx at warn.
func Logging(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			path += "?" + q
		}

		var reqBody []byte
		if c.Request.Body != nil {
			reqBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(reqBody))
		}

		rec := &responseCapture{ResponseWriter: c.Writer}
		c.Writer = rec

		c.Next()

		status := c.Writer.Status()
		line := fmt.Sprintf("%s %s | %d | %s | %s | request: %s | response: %s |",
			c.Request.Method,
			path,
			status,
			time.Since(start).Round(time.Microsecond),
			GetRequestID(c),
			truncate(reqBody),
			truncate(rec.body.Bytes()),
		)
		if errs := c.Errors.String(); errs != "" {
			line += " errors: " + errs
		}

		switch {
		case status >= 500:
			log.Error(line)
		case status >= 400:
			log.Warn(line)
		default:
			log.Info(line)
		}
	}
}

func truncate(b []byte) string {
	if len(b) > maxLoggedBody {
		return string(b[:maxLoggedBody]) + "..."
	}
	return string(b)
}

// responseCapture captures the response body while delegating to the original writer.
type responseCapture struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (r *responseCapture) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseCapture) WriteString(s string) (int, error) {
	r.body.WriteString(s)
	return r.ResponseWriter.WriteString(s)
}
