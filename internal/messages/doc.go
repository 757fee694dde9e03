// Package messages holds the NATS messaging contracts of the station.
//
// Commands flow in on the TERMINAL stream, one subject per session:
//
//	terminal.session.<sid>.command   TerminalCommandMessage
//
// Events flow out on the EVENT stream:
//
//	event.terminal.session.<sid>.output    TerminalOutputEvent
//	event.terminal.session.<sid>.clear     TerminalClearEvent
//	event.terminal.session.<sid>.viewdoc   TerminalViewDocEvent
//	event.terminal.session.<sid>.env       TerminalEnvEvent
//
// Pattern constants are for consumers; the *Subject functions build concrete
// subjects for publishers. Incoming command payloads are checked against a
// JSON schema by DecodeTerminalCommand before they reach the interpreter.
//
//	cmd := messages.NewTerminalCommandMessage(sid, "git status").
//	    WithCorrelation("req-123")
//	if err := messages.NewPublisher(js).PublishCommand(ctx, cmd); err != nil {
//	    return err
//	}
package messages
