package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"checkout/internal/core/domain/model/fault"
)

const (
	// placeholderToken is what a UI layer produces when it stringifies an object.
	placeholderToken = "[object object]"

	maxMessageLength = 300
	maxDepth         = 4
)

// Field names checked in priority order.
var (
	messageKeys = []string{"message", "error", "msg", "error_description", "errorMessage"}
	detailKeys  = []string{"details", "detail", "description"}
	hintKeys    = []string{"hint", "code", "error_code", "status"}
)

// Patterns match at the start of a word: "eof" matches "unexpected EOF" and
// "NetworkError" matches "network", but "thereof" matches nothing.
var kindRules = []struct {
	kind    fault.Kind
	pattern *regexp.Regexp
}{
	{fault.PopupBlocked, wordStart("popup", "pop-up", "pop up", "window was blocked", "window blocked")},
	{fault.Timeout, wordStart("timeout", "timed out", "deadline exceeded", "etimedout", "took too long")},
	{fault.NetworkError, wordStart(
		"network", "failed to fetch", "connection refused", "connection reset", "econnrefused",
		"econnreset", "no such host", "offline", "load failed", "dial tcp", "eof",
	)},
	{fault.ServiceUnavailable, wordStart(
		"service unavailable", "temporarily unavailable", "server unavailable", "bad gateway",
		"overloaded", "maintenance", "503", "502",
	)},
	{fault.ValidationError, wordStart(
		"invalid", "required", "must be", "validation", "violates", "malformed",
		"is missing", "are missing", "missing field", "missing parameter", "not allowed",
		"unprocessable", "422",
	)},
}

func wordStart(phrases ...string) *regexp.Regexp {
	quoted := make([]string, len(phrases))
	for i, p := range phrases {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)`)
}

// Kinds whose extracted text is usually technical; the buyer sees the
// kind's default message instead.
var technicalKinds = map[fault.Kind]bool{
	fault.PopupBlocked:       true,
	fault.NetworkError:       true,
	fault.Timeout:            true,
	fault.ServiceUnavailable: true,
}

// ErrorClassifier normalises errors of any shape into a fault.Classification.
//
// Accepted inputs: strings, error values (including wrapped *fault.Error,
// *fault.RemoteError, net.Error and context errors), maps, JSON bytes and
// structs. Text is taken from, in order: a (possibly nested) message field,
// a details field, a hint or code field, then any readable string field.
// When nothing readable is found the result is Unknown with a generic
// message; a stringified-object placeholder never reaches the buyer.
type ErrorClassifier struct{}

func NewErrorClassifier() ErrorClassifier {
	return ErrorClassifier{}
}

// Classify returns the kind and user-facing message for raw.
func (c ErrorClassifier) Classify(raw any) fault.Classification {
	switch v := raw.(type) {
	case nil:
		return unknown("")
	case fault.Classification:
		return v
	case error:
		return c.classifyError(v)
	case string:
		return c.classifyString(v)
	case []byte:
		return c.classifyString(string(v))
	case json.RawMessage:
		return c.classifyString(string(v))
	case map[string]any:
		return c.classifyFields(v)
	case map[string]string:
		m := make(map[string]any, len(v))
		for k, s := range v {
			m[k] = s
		}
		return c.classifyFields(m)
	case fmt.Stringer:
		return c.classifyString(v.String())
	default:
		if m, ok := toMap(raw); ok {
			return c.classifyFields(m)
		}
		return unknown("")
	}
}

func (c ErrorClassifier) classifyError(err error) fault.Classification {
	var fe *fault.Error
	if errors.As(err, &fe) {
		return fe.Classification()
	}

	var re *fault.RemoteError
	if errors.As(err, &re) {
		return c.classifyRemote(re)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return known(fault.Timeout, "")
	}

	var ne net.Error
	if errors.As(err, &ne) {
		if ne.Timeout() {
			return known(fault.Timeout, "")
		}
		return known(fault.NetworkError, "")
	}

	var oe *net.OpError
	if errors.As(err, &oe) {
		return known(fault.NetworkError, "")
	}

	return c.classifyString(err.Error())
}

func (c ErrorClassifier) classifyRemote(re *fault.RemoteError) fault.Classification {
	var cls fault.Classification
	switch p := re.Payload.(type) {
	case nil:
		cls = unknown("")
	case map[string]any:
		cls = c.classifyFields(p)
	default:
		cls = c.Classify(p)
	}

	kind, ok := kindForStatus(re.StatusCode)
	if !ok || (cls.Kind != fault.Unknown && !technicalKinds[kind]) {
		return cls
	}
	if technicalKinds[kind] {
		return known(kind, "")
	}
	msg := cls.Message
	if msg == fault.GenericMessage {
		msg = ""
	}
	return known(kind, msg)
}

func (c ErrorClassifier) classifyString(s string) fault.Classification {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "{") {
		var m map[string]any
		if err := json.Unmarshal([]byte(trimmed), &m); err == nil {
			return c.classifyFields(m)
		}
	}
	if !usable(trimmed) {
		return unknown("")
	}
	return fromText(trimmed, "")
}

func (c ErrorClassifier) classifyFields(m map[string]any) fault.Classification {
	code := codeOf(m)

	if msg := firstString(m, messageKeys, 0); msg != "" {
		return fromText(msg, code)
	}
	if msg := firstString(m, detailKeys, 0); msg != "" {
		return fromText(msg, code)
	}
	if hint, ok := m["hint"].(string); ok && usable(hint) {
		return fromText(hint, code)
	}
	if code != "" {
		if kind := kindOf(code); kind != fault.Unknown {
			return known(kind, "")
		}
	}
	if msg := anyString(m, 0); msg != "" {
		return fromText(msg, code)
	}
	return unknown("")
}

// firstString looks up keys in order. A map value is searched recursively
// with the message keys, so {"error": {"message": "..."}} resolves.
func firstString(m map[string]any, keys []string, depth int) string {
	if depth > maxDepth {
		return ""
	}
	for _, key := range keys {
		switch v := m[key].(type) {
		case string:
			if usable(v) {
				return strings.TrimSpace(v)
			}
		case map[string]any:
			if s := firstString(v, messageKeys, depth+1); s != "" {
				return s
			}
			if s := firstString(v, detailKeys, depth+1); s != "" {
				return s
			}
		case []any:
			for _, el := range v {
				if nested, ok := el.(map[string]any); ok {
					if s := firstString(nested, messageKeys, depth+1); s != "" {
						return s
					}
				}
				if s, ok := el.(string); ok && usable(s) {
					return strings.TrimSpace(s)
				}
			}
		}
	}
	return ""
}

// codeOf returns the hint, code or status field as text.
func codeOf(m map[string]any) string {
	for _, key := range hintKeys {
		switch v := m[key].(type) {
		case string:
			if usable(v) {
				return strings.TrimSpace(v)
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}

// anyString returns the first readable string value, visiting keys in
// sorted order so the result is stable.
func anyString(m map[string]any, depth int) string {
	if depth > maxDepth {
		return ""
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if usable(v) {
				return strings.TrimSpace(v)
			}
		case map[string]any:
			if s := anyString(v, depth+1); s != "" {
				return s
			}
		}
	}
	return ""
}

func fromText(text, code string) fault.Classification {
	kind := kindOf(text)
	if kind == fault.Unknown && code != "" {
		kind = kindOf(code)
	}
	if technicalKinds[kind] {
		return known(kind, "")
	}
	return known(kind, text)
}

func kindOf(text string) fault.Kind {
	lower := strings.ToLower(text)
	for _, rule := range kindRules {
		if rule.pattern.MatchString(lower) {
			return rule.kind
		}
	}
	return fault.Unknown
}

func kindForStatus(status int) (fault.Kind, bool) {
	switch {
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return fault.Timeout, true
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity || status == http.StatusConflict:
		return fault.ValidationError, true
	case status >= http.StatusInternalServerError:
		return fault.ServiceUnavailable, true
	default:
		return fault.Unknown, false
	}
}

func usable(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	lower := strings.ToLower(s)
	if strings.Contains(lower, placeholderToken) {
		return false
	}
	switch lower {
	case "undefined", "null", "nil", "{}", "<nil>":
		return false
	}
	return true
}

func known(kind fault.Kind, message string) fault.Classification {
	if message == "" {
		message = kind.DefaultMessage()
	}
	if len(message) > maxMessageLength {
		n := maxMessageLength
		for n > 0 && !utf8.RuneStart(message[n]) {
			n--
		}
		message = message[:n]
	}
	return fault.Classification{Kind: kind, Message: message}
}

func unknown(message string) fault.Classification {
	return known(fault.Unknown, message)
}

// toMap turns a struct (or pointer to one) into a generic map via its JSON form.
func toMap(v any) (map[string]any, bool) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct && rv.Kind() != reflect.Map {
		return nil, false
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, false
	}
	return m, true
}
