package middleware // import "github.com/Xunop/gutenbrowse/internal/middleware"

import (
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
)

type brotliWriter struct {
	http.ResponseWriter
	bw          *brotli.Writer
	wroteHeader bool
	encode      bool
}

func (b *brotliWriter) WriteHeader(code int) {
	if b.wroteHeader {
		return
	}
	b.wroteHeader = true

	// Bodiless responses are passed through untouched.
	b.encode = code != http.StatusNoContent && code != http.StatusNotModified &&
		(code < 300 || code >= 400) && b.Header().Get("Content-Encoding") == ""
	if b.encode {
		b.Header().Set("Content-Encoding", "br")
		b.Header().Del("Content-Length")
		b.bw = brotli.NewWriterLevel(b.ResponseWriter, brotli.DefaultCompression)
	}
	b.ResponseWriter.WriteHeader(code)
}

func (b *brotliWriter) Write(p []byte) (int, error) {
	if !b.wroteHeader {
		b.WriteHeader(http.StatusOK)
	}
	if b.encode {
		return b.bw.Write(p)
	}
	return b.ResponseWriter.Write(p)
}

func (b *brotliWriter) close() error {
	if b.bw != nil {
		return b.bw.Close()
	}
	return nil
}

func acceptsBrotli(r *http.Request) bool {
	for _, enc := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		enc = strings.TrimSpace(enc)
		if i := strings.IndexByte(enc, ';'); i != -1 {
			if strings.TrimSpace(enc[i+1:]) == "q=0" {
				continue
			}
			enc = strings.TrimSpace(enc[:i])
		}
		if enc == "br" {
			return true
		}
	}
	return false
}

// Compress encodes response bodies with brotli when the client accepts it.
func Compress(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Encoding")
		if !acceptsBrotli(r) {
			next.ServeHTTP(w, r)
			return
		}

		bw := &brotliWriter{ResponseWriter: w}
		defer bw.close()
		next.ServeHTTP(bw, r)
	})
}
