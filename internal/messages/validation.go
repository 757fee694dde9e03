package messages

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// MaxCommandLength bounds a single terminal line.
const MaxCommandLength = 4096

var ErrInvalidPayload = errors.New("invalid message payload")

// Session ids become a NATS subject token, so dots, wildcards and whitespace
// are rejected.
var sessionIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidateSessionID checks that sid can be used as a subject token.
func ValidateSessionID(sid string) error {
	if sid == "" {
		return fmt.Errorf("session_id is required")
	}
	if !sessionIDRegex.MatchString(sid) {
		return fmt.Errorf("session_id must contain only alphanumeric characters, hyphens, and underscores")
	}
	return nil
}

const terminalCommandSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["session_id", "cmd"],
  "additionalProperties": false,
  "properties": {
    "session_id": {"type": "string", "pattern": "^[A-Za-z0-9_-]{1,64}$"},
    "cmd": {"type": "string", "minLength": 1, "maxLength": 4096},
    "correlation_id": {"type": "string", "maxLength": 128}
  }
}`

var compiledCommandSchema = jsonschema.MustCompileString("https://devstation.dev/schemas/terminal-command.json", terminalCommandSchema)

// DecodeTerminalCommand validates a raw payload against the command schema
// and decodes it. When subject is non-empty its session token must match the
// body.
func DecodeTerminalCommand(subject string, data []byte) (TerminalCommandMessage, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return TerminalCommandMessage{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if err := compiledCommandSchema.Validate(doc); err != nil {
		return TerminalCommandMessage{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	var msg TerminalCommandMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return TerminalCommandMessage{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if subject != "" {
		if sid := SessionFromSubject(subject); sid != msg.SessionID {
			return TerminalCommandMessage{}, fmt.Errorf("%w: subject session %q does not match body %q", ErrInvalidPayload, sid, msg.SessionID)
		}
	}
	return msg, nil
}

// SessionFromSubject extracts the session token from a terminal subject, or
// "" when subject is not one.
func SessionFromSubject(subject string) string {
	parts := strings.Split(subject, ".")
	switch {
	case len(parts) == 4 && parts[0] == "terminal" && parts[1] == "session":
		return parts[2]
	case len(parts) == 5 && parts[0] == "event" && parts[1] == "terminal" && parts[2] == "session":
		return parts[3]
	}
	return ""
}
