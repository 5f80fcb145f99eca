// internal/openmarket/rejection.go
package openmarket

import (
	"bytes"
	"encoding/json"
	"strings"
)

var phoneDuplicateMarkers = []string{"이미", "already", "존재"}

// SignupRejection is what a failed sign-up tells the user.
type SignupRejection struct {
	// PhoneDuplicate is set when the phone_number field says the number is taken.
	PhoneDuplicate bool
	// Message is the text to alert, empty when the body carried nothing usable.
	Message string
}

type field struct {
	name  string
	value json.RawMessage
}

// ParseSignupRejection reads a sign-up error body. Precedence: phone duplicate,
// a bare string body, "error", "detail", then every field message in body order.
func ParseSignupRejection(body []byte) SignupRejection {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return SignupRejection{}
	}

	switch body[0] {
	case '"':
		return SignupRejection{Message: messageText(body)}
	case '[':
		return SignupRejection{Message: strings.Join(flatten(body), "\n")}
	case '{':
	default:
		return SignupRejection{}
	}

	fields, err := orderedFields(body)
	if err != nil {
		return SignupRejection{}
	}

	for _, f := range fields {
		if f.name != "phone_number" {
			continue
		}
		for _, msg := range flatten(f.value) {
			for _, marker := range phoneDuplicateMarkers {
				if strings.Contains(msg, marker) {
					return SignupRejection{PhoneDuplicate: true}
				}
			}
		}
	}

	for _, key := range []string{"error", "detail"} {
		for _, f := range fields {
			if f.name == key && truthy(f.value) {
				return SignupRejection{Message: strings.Join(flatten(f.value), "\n")}
			}
		}
	}

	var messages []string
	for _, f := range fields {
		messages = append(messages, flatten(f.value)...)
	}
	return SignupRejection{Message: strings.Join(messages, "\n")}
}

// orderedFields decodes a JSON object keeping its key order.
func orderedFields(body []byte) ([]field, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	var fields []field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, _ := tok.(string)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		fields = append(fields, field{name: name, value: value})
	}
	return fields, nil
}

// flatten spreads an array into its element texts; any other value is one text.
func flatten(raw json.RawMessage) []string {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			out = append(out, messageText(item))
		}
		return out
	}
	return []string{messageText(raw)}
}

// messageText renders a JSON value as display text: strings unquoted, null empty,
// anything else as its JSON source.
func messageText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}

func truthy(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "false", "0", `""`:
		return false
	}
	return true
}
