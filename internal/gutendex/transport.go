package gutendex

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/Xunop/gutenbrowse/internal/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// maxLoggedBody caps how much of a response body ends up in the debug log.
const maxLoggedBody = 2048

// LoggingTransport is an http.RoundTripper that logs outbound requests. Bodies
// are only read and logged when the debug level is enabled.
type LoggingTransport struct {
	Base http.RoundTripper
}

func (t *LoggingTransport) base() http.RoundTripper {
	if t.Base == nil {
		return http.DefaultTransport
	}
	return t.Base
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !log.Logger.Core().Enabled(zapcore.DebugLevel) {
		return t.base().RoundTrip(req)
	}

	start := time.Now()
	log.Debug("Outbound request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	)

	resp, err := t.base().RoundTrip(req)
	if err != nil {
		log.Debug("Outbound request failed",
			zap.String("url", req.URL.String()),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return resp, err
	}

	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(respBody))

	logged := respBody
	if len(logged) > maxLoggedBody {
		logged = logged[:maxLoggedBody]
	}
	log.Debug("Outbound response",
		zap.Int("status_code", resp.StatusCode),
		zap.String("url", req.URL.String()),
		zap.Duration("duration", time.Since(start)),
		zap.Int("body_bytes", len(respBody)),
		zap.ByteString("body", logged),
	)
	if readErr != nil {
		return nil, readErr
	}

	return resp, nil
}
