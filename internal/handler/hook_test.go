package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func callHook(t *testing.T, store Store, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	c := e.NewContext(req, rr)
	c.SetPath("/hook/:id")
	c.SetParamNames("id")
	c.SetParamValues("abc123")

	h := &HookHandler{Store: store, Logger: zerolog.Nop()}
	if err := h.Handle(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rr
}

func decodeAck(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var ack map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &ack); err != nil {
		t.Fatalf("decode ack: %v", err)
	}
	return ack
}

func TestHook_JSONBodyCaptured(t *testing.T) {
	store := newFakeStore()
	rr := callHook(t, store, "POST", "/hook/abc123", "application/json", `{"event":"user.created","data":{"id":1}}`)

	if rr.Code != 200 {
		t.Fatalf("status: %d", rr.Code)
	}
	ack := decodeAck(t, rr)
	if ack["success"] != true {
		t.Fatalf("ack: %#v", ack)
	}
	if _, err := time.Parse(time.RFC3339, ack["timestamp"].(string)); err != nil {
		t.Fatalf("ack timestamp: %v", err)
	}

	rec, got := store.waitAppend(time.Second)
	if !got {
		t.Fatal("capture was never persisted")
	}
	if rec.EndpointID != "abc123" || rec.Method != "POST" {
		t.Fatalf("record: %#v", rec)
	}
	if !strings.Contains(rec.ContentType, "application/json") {
		t.Fatalf("content type: %q", rec.ContentType)
	}
	body, ok := rec.Body.(map[string]any)
	if !ok || body["event"] != "user.created" {
		t.Fatalf("body: %#v", rec.Body)
	}
	data, ok := body["data"].(map[string]any)
	if !ok || data["id"] != float64(1) {
		t.Fatalf("nested body: %#v", body["data"])
	}
}

func TestHook_TextBodyCaptured(t *testing.T) {
	store := newFakeStore()
	callHook(t, store, "POST", "/hook/abc123", "text/plain", "hello")

	rec, got := store.waitAppend(time.Second)
	if !got {
		t.Fatal("capture was never persisted")
	}
	if rec.Body != "hello" {
		t.Fatalf("body: %#v", rec.Body)
	}
}

// The central invariant: 200 with success:true for every method, body shape
// and storage condition.
func TestHook_Always200(t *testing.T) {
	cases := []struct {
		name        string
		down        bool
		method      string
		contentType string
		body        string
	}{
		{"store down", true, "POST", "application/json", `{"a":1}`},
		{"malformed json", false, "POST", "application/json", `{"broken`},
		{"get no body", false, "GET", "", ""},
		{"delete", false, "DELETE", "", ""},
		{"binary garbage", false, "PUT", "application/octet-stream", "\x00\xff\xfe"},
		{"bogus multipart", false, "POST", "multipart/form-data; boundary=x", "nope"},
		{"store down, garbage", true, "PATCH", ";;;", "\x01\x02"},
	}
	for _, tc := range cases {
		store := newFakeStore()
		store.down = tc.down
		rr := callHook(t, store, tc.method, "/hook/abc123", tc.contentType, tc.body)
		if rr.Code != 200 {
			t.Fatalf("%s: status %d", tc.name, rr.Code)
		}
		if ack := decodeAck(t, rr); ack["success"] != true {
			t.Fatalf("%s: ack %#v", tc.name, ack)
		}
		if _, got := store.waitAppend(time.Second); !got {
			t.Fatalf("%s: append never attempted", tc.name)
		}
	}
}

func TestHook_VerbRecordedVerbatim(t *testing.T) {
	for _, method := range []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"} {
		store := newFakeStore()
		rr := callHook(t, store, method, "/hook/abc123", "", "")
		if rr.Code != 200 {
			t.Fatalf("%s: status %d", method, rr.Code)
		}
		rec, got := store.waitAppend(time.Second)
		if !got {
			t.Fatalf("%s: append never attempted", method)
		}
		if rec.Method != method {
			t.Fatalf("expected method %q, got %q", method, rec.Method)
		}
	}
}
