package capture

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("POST", "/hook/abc123?tag=a&tag=b&src=ci", strings.NewReader(`{"event":"push"}`))
	r.Header.Set("Content-Type", "application/json")
	r.Header.Add("X-Batch", "1")
	r.Header.Add("X-Batch", "2")

	now := time.Now().UTC()
	rec := FromRequest("abc123", r, now)

	if rec.EndpointID != "abc123" {
		t.Fatalf("endpoint id: %q", rec.EndpointID)
	}
	if rec.Method != "POST" {
		t.Fatalf("method: %q", rec.Method)
	}
	if !rec.Timestamp.Equal(now) {
		t.Fatalf("timestamp not server-set: %v", rec.Timestamp)
	}
	if rec.ContentType != "application/json" {
		t.Fatalf("content type: %q", rec.ContentType)
	}
	if rec.Headers["X-Batch"] != "2" {
		t.Fatalf("duplicate header must keep last value, got %q", rec.Headers["X-Batch"])
	}
	if rec.Headers["Host"] == "" {
		t.Fatalf("host header missing: %#v", rec.Headers)
	}
	if rec.Query["tag"] != "b" || rec.Query["src"] != "ci" {
		t.Fatalf("query: %#v", rec.Query)
	}
	body, ok := rec.Body.(map[string]any)
	if !ok || body["event"] != "push" {
		t.Fatalf("body: %#v", rec.Body)
	}
	if rec.Size != len(`{"event":"push"}`) {
		t.Fatalf("size: %d", rec.Size)
	}
	if rec.IP != Unknown {
		t.Fatalf("no proxy headers: expected sentinel, got %q", rec.IP)
	}
}

func TestFromRequest_UnknownContentType(t *testing.T) {
	r := httptest.NewRequest("PUT", "/hook/abc123", nil)
	rec := FromRequest("abc123", r, time.Now())
	if rec.ContentType != Unknown {
		t.Fatalf("content type: %q", rec.ContentType)
	}
	if rec.Body != nil {
		t.Fatalf("empty body: %#v", rec.Body)
	}
	if rec.Size != 0 {
		t.Fatalf("size: %d", rec.Size)
	}
}

func TestClientIP(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"platform header first", map[string]string{
			"X-Vercel-Forwarded-For": "10.0.0.1, 10.0.0.2",
			"X-Forwarded-For":        "192.168.1.1",
			"X-Real-Ip":              "172.16.0.1",
		}, "10.0.0.1"},
		{"forwarded-for first entry", map[string]string{
			"X-Forwarded-For": " 203.0.113.7 , 10.0.0.2",
			"X-Real-Ip":       "172.16.0.1",
		}, "203.0.113.7"},
		{"real-ip fallback", map[string]string{
			"X-Real-Ip": "172.16.0.1",
		}, "172.16.0.1"},
		{"nothing", map[string]string{}, Unknown},
	}
	for _, tc := range cases {
		if got := ClientIP(tc.headers); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}
