package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Error is a non-2xx response decoded at the gateway boundary. Message
// carries the server's own wording verbatim so domain-rule violations
// ("This book is currently not available.") reach the user untouched.
// Fields holds per-field validation messages when the server returns them.
type Error struct {
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
	}
	if len(e.Fields) > 0 {
		// Детерминированный порядок полей для сообщения
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], "; ")))
		}
		return fmt.Sprintf("server error (%d): %s", e.Status, strings.Join(parts, ", "))
	}
	return fmt.Sprintf("server error (%d)", e.Status)
}

// ParseError decodes an error body into *Error. The server answers in
// three shapes: {"detail": "..."}, {"error": "..."} and
// {field: ["msg", ...]} for validation failures. An undecodable body
// falls back to the raw text.
func ParseError(status int, body []byte) *Error {
	apiErr := &Error{Status: status}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		apiErr.Message = strings.TrimSpace(string(body))
		return apiErr
	}

	for _, key := range []string{"detail", "error", "message"} {
		if msg, ok := raw[key]; ok {
			var s string
			if err := json.Unmarshal(msg, &s); err == nil && s != "" {
				apiErr.Message = s
				delete(raw, key)
				break
			}
		}
	}

	// Остальные ключи трактуем как field -> список сообщений
	for field, msg := range raw {
		var list []string
		if err := json.Unmarshal(msg, &list); err == nil {
			apiErr.Fields = appendField(apiErr.Fields, field, list...)
			continue
		}
		var single string
		if err := json.Unmarshal(msg, &single); err == nil {
			apiErr.Fields = appendField(apiErr.Fields, field, single)
		}
	}

	return apiErr
}

func appendField(fields map[string][]string, field string, msgs ...string) map[string][]string {
	if fields == nil {
		fields = make(map[string][]string)
	}
	fields[field] = append(fields[field], msgs...)
	return fields
}

// IsUnauthorized reports an authentication failure (401).
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden reports an authorization failure (403).
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

// IsNotFound reports a missing resource (404).
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsConflict reports a business-rule violation. The server signals these
// as 400 (no copies available, duplicate active loan, already returned)
// or 409.
func IsConflict(err error) bool {
	return hasStatus(err, http.StatusBadRequest) || hasStatus(err, http.StatusConflict)
}

func hasStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}
