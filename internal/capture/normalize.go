// Package capture turns an arbitrary inbound HTTP request into a
// model.CaptureRecord. Normalization is total: no input, however malformed,
// produces an error — parse failures degrade to weaker representations and
// ultimately to nil.
package capture

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/url"
	"strings"
)

// Unknown is the sentinel stored when the content type or client address
// cannot be determined.
const Unknown = "unknown"

// Normalize maps raw request bytes plus the declared content type to a
// JSON-representable value: nil, a string, or nested maps/slices/scalars.
// Dispatch is on content-type token, first match wins.
func Normalize(body []byte, contentType string) any {
	switch {
	case strings.Contains(contentType, "application/json"):
		if v, ok := parseJSON(body); ok {
			return v
		}
		// malformed JSON keeps the raw text instead of failing the request
		return asText(body)
	case strings.Contains(contentType, "application/x-www-form-urlencoded"):
		return parseForm(body)
	case strings.Contains(contentType, "multipart/form-data"):
		if v, ok := parseMultipart(body, contentType); ok {
			return v
		}
		return nil
	default:
		return asText(body)
	}
}

// BodySize approximates the byte length of the normalized body by
// serializing it to JSON. Unattainable sizes are 0.
func BodySize(body any) int {
	if body == nil {
		return 0
	}
	b, err := json.Marshal(body)
	if err != nil {
		return 0
	}
	return len(b)
}

// asText keeps the payload as a string, sniffing for JSON first since
// clients routinely send JSON without the matching header. Empty text
// normalizes to nil.
func asText(body []byte) any {
	if v, ok := parseJSON(body); ok {
		return v
	}
	if len(body) == 0 {
		return nil
	}
	return string(body)
}

func parseJSON(body []byte) (any, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, false
	}
	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return nil, false
	}
	return v, true
}

// parseForm decodes URL-encoded pairs into a flat string map. Pairs that
// fail to decode are skipped; duplicates collapse to the last value.
func parseForm(body []byte) map[string]string {
	values, _ := url.ParseQuery(string(body))
	return flatten(values)
}

// parseMultipart decodes each part into either its text value or, for file
// uploads, {name, type, size} metadata in place of the raw bytes.
func parseMultipart(body []byte, contentType string) (map[string]any, bool) {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, false
	}
	boundary := params["boundary"]
	if boundary == "" {
		return nil, false
	}

	mr := multipart.NewReader(bytes.NewReader(body), boundary)
	out := make(map[string]any)
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, false
		}
		data, err := io.ReadAll(part)
		if err != nil {
			return nil, false
		}
		name := part.FormName()
		if name == "" {
			continue
		}
		if filename := part.FileName(); filename != "" {
			out[name] = map[string]any{
				"name": filename,
				"type": part.Header.Get("Content-Type"),
				"size": len(data),
			}
		} else {
			out[name] = string(data)
		}
	}
	return out, true
}

func flatten(values url.Values) map[string]string {
	out := make(map[string]string, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			out[k] = vs[len(vs)-1]
		}
	}
	return out
}
