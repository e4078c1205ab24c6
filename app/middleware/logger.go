package middleware

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/pretty"
)

// maxLoggedBody caps how much of a request body lands in the log.
const maxLoggedBody = 1000

// Logger writes one access-log line per request: timestamp, status,
// latency, client IP, method and URI, plus the compacted body for
// requests that carry one. 404s are not logged.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, file, line, ok := runtime.Caller(0)
		fileInfo := "???"
		if ok {
			fileInfo = fmt.Sprintf("%s:%d", filepath.Base(file), line)
		}

		start := time.Now()

		var bodyStr string
		if c.Request.Method == http.MethodPost ||
			c.Request.Method == http.MethodPut ||
			c.Request.Method == http.MethodDelete {
			bodyStr = requestBody(c)
		}

		c.Next()

		if c.Writer.Status() == http.StatusNotFound {
			return
		}

		logMsg := fmt.Sprintf("[GIN] %v | %s | %3d | %13v | %15s | %s | %s",
			start.Format("2006/01/02 - 15:04:05"),
			fileInfo,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
			c.Request.Method,
			c.Request.RequestURI,
		)
		if bodyStr != "" {
			logMsg += fmt.Sprintf("\nRequest Body: %s", bodyStr)
		}

		fmt.Println(logMsg)
	}
}

// requestBody reads and restores the request body so the handler still
// sees it.
func requestBody(c *gin.Context) string {
	var bodyBytes []byte
	if c.Request.Body != nil {
		bodyBytes, _ = io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	}
	return CompressBody(string(bodyBytes))
}

// CompressBody strips JSON whitespace and truncates oversized bodies.
func CompressBody(body string) string {
	if len(body) == 0 {
		return ""
	}

	compressed := pretty.Ugly([]byte(body))
	if len(compressed) > maxLoggedBody {
		return string(compressed[:maxLoggedBody]) + "..."
	}
	return string(compressed)
}
