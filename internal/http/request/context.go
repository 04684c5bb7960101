package request // import "github.com/Xunop/gutenbrowse/internal/http/request"

import (
	"context"
	"net"
	"net/http"
	"strings"
)

type ContextKey int

const (
	ClientIPContextKey ContextKey = iota
	RequestIDContextKey
)

func getContextStringValue(r *http.Request, key ContextKey) string {
	if v := r.Context().Value(key); v != nil {
		if value, valid := v.(string); valid {
			return value
		}
	}
	return ""
}

// ClientIP returns the client IP address stored in the context.
func ClientIP(r *http.Request) string {
	return getContextStringValue(r, ClientIPContextKey)
}

// RequestID returns the request ID stored in the context.
func RequestID(r *http.Request) string {
	return getContextStringValue(r, RequestIDContextKey)
}

// WithValues returns r with the client IP and request ID stored in its context.
func WithValues(r *http.Request, clientIP, requestID string) *http.Request {
	ctx := context.WithValue(r.Context(), ClientIPContextKey, clientIP)
	ctx = context.WithValue(ctx, RequestIDContextKey, requestID)
	return r.WithContext(ctx)
}

// FindClientIP returns the client's real IP address, trusting
// X-Forwarded-For and X-Real-Ip when present.
func FindClientIP(r *http.Request) string {
	headers := []string{"X-Forwarded-For", "X-Real-Ip"}
	for _, header := range headers {
		value := r.Header.Get(header)

		if value != "" {
			addresses := strings.Split(value, ",")
			address := strings.TrimSpace(addresses[0])
			address = dropIPv6zone(address)

			if net.ParseIP(address) != nil {
				return address
			}
		}
	}

	// Fallback to TCP/IP source IP address.
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	return dropIPv6zone(remoteIP)
}

func dropIPv6zone(address string) string {
	if i := strings.IndexByte(address, '%'); i != -1 {
		address = address[:i]
	}
	return address
}
