package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

const (
	// MaxURLs is the maximum number of websites in one analysis:
	// the primary website plus nine competitors.
	MaxURLs = 10

	// URLFieldPrefix is the naming convention for URL form fields.
	// Only fields whose name starts with this prefix end up in a Payload.
	URLFieldPrefix = "url"

	// PrimaryFieldName is the name of the primary website field.
	PrimaryFieldName = "url1"
)

// FormField is a single named form input, in document order.
type FormField struct {
	Name  string
	Value string
}

// URLFields turns a list of URLs into form fields named url1..urlN.
// The first URL becomes the primary website.
func URLFields(urls []string) []FormField {
	fields := make([]FormField, len(urls))
	for i, u := range urls {
		fields[i] = FormField{Name: PayloadKey(i), Value: u}
	}
	return fields
}

// Payload is the ordered list of URLs submitted to the server.
// Index 0 is the primary website; the rest are competitors.
// It is encoded as a JSON object keyed url1, url2, ... in order.
type Payload []string

// BuildPayload builds a Payload from the form fields present at submit time.
//
// Fields that do not follow the URL naming convention, and fields whose value
// is blank after trimming, are skipped. The remaining values are numbered
// compactly, with the url1 field always first.
// ErrPrimaryURLRequired is returned when url1 is missing or blank, and
// ErrTooManyURLs when more than MaxURLs values remain.
func BuildPayload(fields []FormField) (Payload, error) {
	var (
		primary     string
		competitors []string
	)

	for _, f := range fields {
		if !strings.HasPrefix(f.Name, URLFieldPrefix) {
			continue
		}
		value := strings.TrimSpace(f.Value)
		if value == "" {
			continue
		}
		if f.Name == PrimaryFieldName && primary == "" {
			primary = value
			continue
		}
		competitors = append(competitors, value)
	}

	if primary == "" {
		return nil, ErrPrimaryURLRequired
	}

	payload := append(Payload{primary}, competitors...)
	if len(payload) > MaxURLs {
		return nil, ErrTooManyURLs
	}
	return payload, nil
}

// PayloadKey returns the positional key (url1, url2, ...) for index i.
func PayloadKey(i int) string {
	return URLFieldPrefix + strconv.Itoa(i+1)
}

// Primary returns the primary website URL.
func (p Payload) Primary() string {
	if len(p) == 0 {
		return ""
	}
	return p[0]
}

// Competitors returns the competitor URLs in submission order.
func (p Payload) Competitors() []string {
	if len(p) < 2 {
		return nil
	}
	return p[1:]
}

// Get returns the URL stored under the positional key, if any.
func (p Payload) Get(key string) (string, bool) {
	for i, u := range p {
		if PayloadKey(i) == key {
			return u, true
		}
	}
	return "", false
}

// MarshalJSON encodes the payload as {"url1": "...", "url2": "..."}
// preserving submission order.
func (p Payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, u := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		value, err := json.Marshal(u)
		if err != nil {
			return nil, err
		}
		buf.WriteString(strconv.Quote(PayloadKey(i)))
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
