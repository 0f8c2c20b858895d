package capture

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Dhananjay-JSR/webhooky/internal/model"
)

// FromRequest builds the immutable CaptureRecord for one inbound request.
// It consumes the request body. It never fails: an unreadable body is
// recorded as nil.
func FromRequest(endpointID string, r *http.Request, now time.Time) model.CaptureRecord {
	headers := FlattenHeader(r.Header)
	if r.Host != "" {
		headers["Host"] = r.Host
	}
	query := FlattenQuery(r.URL.Query())

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		raw = nil
	}
	body := Normalize(raw, headers["Content-Type"])

	contentType := headers["Content-Type"]
	if contentType == "" {
		contentType = Unknown
	}

	return model.CaptureRecord{
		EndpointID:  endpointID,
		Method:      r.Method,
		Headers:     headers,
		Query:       query,
		Body:        body,
		ContentType: contentType,
		Size:        BodySize(body),
		IP:          ClientIP(headers),
		Timestamp:   now,
	}
}

// FlattenHeader collapses a multi-valued header map to single values,
// last value wins.
func FlattenHeader(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, vs := range h {
		if len(vs) > 0 {
			out[k] = vs[len(vs)-1]
		}
	}
	return out
}

// FlattenQuery collapses query parameters to single values, last value wins.
func FlattenQuery(values url.Values) map[string]string {
	return flatten(values)
}

// ClientIP derives a best-effort client address from proxy headers, in
// priority order. Falls back to the Unknown sentinel.
func ClientIP(headers map[string]string) string {
	if v := headers["X-Vercel-Forwarded-For"]; v != "" {
		return firstForwarded(v)
	}
	if v := headers["X-Forwarded-For"]; v != "" {
		return firstForwarded(v)
	}
	if v := headers["X-Real-Ip"]; v != "" {
		return v
	}
	return Unknown
}

func firstForwarded(v string) string {
	first, _, _ := strings.Cut(v, ",")
	return strings.TrimSpace(first)
}
