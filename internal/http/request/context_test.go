package request

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFindClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.7:5555"
	if ip := FindClientIP(r); ip != "192.0.2.7" {
		t.Errorf(`Unexpected result, got %q instead of "192.0.2.7"`, ip)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if ip := FindClientIP(r); ip != "203.0.113.9" {
		t.Errorf(`Unexpected result, got %q instead of "203.0.113.9"`, ip)
	}

	r.Header.Set("X-Forwarded-For", "garbage")
	r.Header.Set("X-Real-Ip", "fe80::1%eth0")
	if ip := FindClientIP(r); ip != "fe80::1" {
		t.Errorf(`Unexpected result, got %q instead of "fe80::1"`, ip)
	}
}

func TestContextValues(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if ClientIP(r) != "" || RequestID(r) != "" {
		t.Fatal("Expected empty values on a bare request")
	}

	r = WithValues(r, "198.51.100.1", "req-1")
	if ClientIP(r) != "198.51.100.1" {
		t.Errorf("Unexpected client IP %q", ClientIP(r))
	}
	if RequestID(r) != "req-1" {
		t.Errorf("Unexpected request ID %q", RequestID(r))
	}
}
