package messages

import (
	"encoding/json"
	"fmt"
	"time"

	"devstation/internal/shell"
)

// =============================================================================
// CORE INTERFACES
// =============================================================================

// Message represents any message in the system
type Message interface {
	Subject() string
	Validate() error
}

// Command represents an input that requests something to happen
type Command interface {
	Message
	IsCommand()
}

// Event represents something that has happened
type Event interface {
	Message
	IsEvent()
	Timestamp() time.Time
}

// =============================================================================
// SUBJECT CONSTANTS
// =============================================================================

const (
	// Streams
	TerminalStream = "TERMINAL"
	EventStream    = "EVENT"

	// Commands; * = session id
	TerminalCommandSubjectPattern = "terminal.session.*.command"

	// Events; * = session id
	TerminalOutputSubjectPattern  = "event.terminal.session.*.output"
	TerminalClearSubjectPattern   = "event.terminal.session.*.clear"
	TerminalViewDocSubjectPattern = "event.terminal.session.*.viewdoc"
	TerminalEnvSubjectPattern     = "event.terminal.session.*.env"
)

// =============================================================================
// TERMINAL DOMAIN - COMMANDS
// =============================================================================

// TerminalCommandMessage is one line typed into a session's terminal.
type TerminalCommandMessage struct {
	SessionID     string `json:"session_id"`
	Cmd           string `json:"cmd"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

func (c TerminalCommandMessage) Subject() string { return TerminalCommandSubject(c.SessionID) }
func (c TerminalCommandMessage) IsCommand()      {}
func (c TerminalCommandMessage) Validate() error {
	if err := ValidateSessionID(c.SessionID); err != nil {
		return err
	}
	if c.Cmd == "" {
		return fmt.Errorf("cmd is required")
	}
	if len(c.Cmd) > MaxCommandLength {
		return fmt.Errorf("cmd exceeds %d bytes", MaxCommandLength)
	}
	return nil
}

// =============================================================================
// TERMINAL DOMAIN - EVENTS
// =============================================================================

// TerminalOutputEvent carries the lines one command produced. Lines may be
// empty for a blank command; the prompt is still echoed.
type TerminalOutputEvent struct {
	SessionID     string       `json:"session_id"`
	Cmd           string       `json:"cmd"`
	Lines         []shell.Line `json:"lines"`
	EmittedAt     time.Time    `json:"emitted_at"`
	CorrelationID string       `json:"correlation_id,omitempty"`
}

func (e TerminalOutputEvent) Subject() string      { return TerminalOutputSubject(e.SessionID) }
func (e TerminalOutputEvent) IsEvent()             {}
func (e TerminalOutputEvent) Timestamp() time.Time { return e.EmittedAt }
func (e TerminalOutputEvent) Validate() error {
	if err := ValidateSessionID(e.SessionID); err != nil {
		return err
	}
	for i, l := range e.Lines {
		if !l.Kind.Valid() {
			return fmt.Errorf("line %d: unknown kind %q", i, l.Kind)
		}
	}
	return nil
}

// TerminalClearEvent resets a session's log to the banner.
type TerminalClearEvent struct {
	SessionID string       `json:"session_id"`
	Cmd       string       `json:"cmd"`
	Banner    []shell.Line `json:"banner"`
	ClearedAt time.Time    `json:"cleared_at"`
}

func (e TerminalClearEvent) Subject() string      { return TerminalClearSubject(e.SessionID) }
func (e TerminalClearEvent) IsEvent()             {}
func (e TerminalClearEvent) Timestamp() time.Time { return e.ClearedAt }
func (e TerminalClearEvent) Validate() error      { return ValidateSessionID(e.SessionID) }

// TerminalViewDocEvent triggers document viewing in the UI
type TerminalViewDocEvent struct {
	SessionID string    `json:"session_id"`
	Name      string    `json:"name"`
	HTML      string    `json:"html"`
	ViewedAt  time.Time `json:"viewed_at"`
}

func (e TerminalViewDocEvent) Subject() string      { return TerminalViewDocSubject(e.SessionID) }
func (e TerminalViewDocEvent) IsEvent()             {}
func (e TerminalViewDocEvent) Timestamp() time.Time { return e.ViewedAt }
func (e TerminalViewDocEvent) Validate() error {
	if err := ValidateSessionID(e.SessionID); err != nil {
		return err
	}
	if e.Name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// TerminalEnvEvent reports a change to a session's environment. Patch is an
// RFC 7386 merge patch from the previous snapshot.
type TerminalEnvEvent struct {
	SessionID string          `json:"session_id"`
	Patch     json.RawMessage `json:"patch"`
	Packages  []string        `json:"packages"`
	ChangedAt time.Time       `json:"changed_at"`
}

func (e TerminalEnvEvent) Subject() string      { return TerminalEnvSubject(e.SessionID) }
func (e TerminalEnvEvent) IsEvent()             {}
func (e TerminalEnvEvent) Timestamp() time.Time { return e.ChangedAt }
func (e TerminalEnvEvent) Validate() error {
	if err := ValidateSessionID(e.SessionID); err != nil {
		return err
	}
	if len(e.Patch) == 0 || !json.Valid(e.Patch) {
		return fmt.Errorf("patch must be a JSON document")
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func TerminalCommandSubject(sessionID string) string {
	return fmt.Sprintf("terminal.session.%s.command", sessionID)
}

func TerminalOutputSubject(sessionID string) string {
	return fmt.Sprintf("event.terminal.session.%s.output", sessionID)
}

func TerminalClearSubject(sessionID string) string {
	return fmt.Sprintf("event.terminal.session.%s.clear", sessionID)
}

func TerminalViewDocSubject(sessionID string) string {
	return fmt.Sprintf("event.terminal.session.%s.viewdoc", sessionID)
}

func TerminalEnvSubject(sessionID string) string {
	return fmt.Sprintf("event.terminal.session.%s.env", sessionID)
}

// TerminalEventSubjects lists the concrete event subjects of one session.
func TerminalEventSubjects(sessionID string) []string {
	return []string{
		TerminalOutputSubject(sessionID),
		TerminalClearSubject(sessionID),
		TerminalViewDocSubject(sessionID),
		TerminalEnvSubject(sessionID),
	}
}
