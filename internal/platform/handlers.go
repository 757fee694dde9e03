package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"devstation/internal/messages"
	"devstation/internal/runtime"
	"devstation/internal/shell"
	components "devstation/ui/components"

	"github.com/rs/xid"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	datastar "github.com/starfederation/datastar/sdk/go"
)

// commandPublisher is the part of messages.Publisher /terminal needs.
type commandPublisher interface {
	PublishCommand(ctx context.Context, cmd messages.Command) error
}

// terminalSignals are the datastar signals the prompt sends.
type terminalSignals struct {
	Cmd string `json:"cmd"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ─────────────────── HEALTH ───────────────────

type hostStats struct {
	Hostname      string  `json:"hostname"`
	OS            string  `json:"os"`
	Platform      string  `json:"platform"`
	KernelVersion string  `json:"kernel_version"`
	UptimeSeconds uint64  `json:"uptime_seconds"`
	MemTotal      uint64  `json:"mem_total"`
	MemUsedPct    float64 `json:"mem_used_percent"`
}

// readHost is replaced in tests.
var readHost = func(ctx context.Context) (hostStats, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return hostStats{}, fmt.Errorf("host info: %w", err)
	}
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return hostStats{}, fmt.Errorf("memory: %w", err)
	}
	return hostStats{
		Hostname:      info.Hostname,
		OS:            info.OS,
		Platform:      info.Platform,
		KernelVersion: info.KernelVersion,
		UptimeSeconds: info.Uptime,
		MemTotal:      vm.Total,
		MemUsedPct:    vm.UsedPercent,
	}, nil
}

// Health reports liveness, live sessions and host information. Host lookups
// failing do not fail the check.
func Health(te *runtime.TerminalEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{
			"status":   "ok",
			"sessions": te.Sessions().Active(),
		}
		if hs, err := readHost(r.Context()); err != nil {
			slog.Warn("health: host stats", "err", err)
		} else {
			body["host"] = hs
		}
		writeJSON(w, http.StatusOK, body)
	}
}

// ─────────────────── BROWSER TERMINAL ───────────────────

// TerminalCommandHandler publishes the prompt's command to
// terminal.session.<sid>.command. A blank line cannot travel as a command,
// so it is executed here and its events published directly.
func TerminalCommandHandler(pub commandPublisher, te *runtime.TerminalEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := SessionID(r)
		var sig terminalSignals
		if err := datastar.ReadSignals(r, &sig); err != nil {
			http.Error(w, "bad signals", http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(sig.Cmd) == "" {
			out, err := te.Execute(r.Context(), sid, sig.Cmd, "")
			if err == nil {
				err = te.Publish(r.Context(), out)
			}
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusAccepted)
			return
		}

		cmd, err := messages.BuildCommand("TerminalCommandMessage", map[string]any{
			"session_id":     sid,
			"cmd":            sig.Cmd,
			"correlation_id": xid.New().String(),
		})
		if err == nil {
			err = cmd.Validate()
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := pub.PublishCommand(r.Context(), cmd); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

// TerminalCompleteHandler completes the first word of the prompt. A single
// match is written back into the cmd signal; several are listed under the
// prompt.
func TerminalCompleteHandler(te *runtime.TerminalEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sig terminalSignals
		if err := datastar.ReadSignals(r, &sig); err != nil {
			http.Error(w, "bad signals", http.StatusBadRequest)
			return
		}
		sse := datastar.NewSSE(w, r)

		var matches []string
		if partial := strings.TrimLeft(sig.Cmd, " "); !strings.Contains(partial, " ") {
			matches = te.Sessions().Complete(partial)
		}
		if len(matches) == 1 {
			patch, _ := json.Marshal(terminalSignals{Cmd: matches[0] + " "})
			if err := sse.MergeSignals(patch); err != nil {
				slog.Warn("complete: merge signals", "err", err)
			}
			matches = nil
		}
		if err := sse.MergeFragmentTempl(components.Completions(matches), datastar.WithSelectorID("completions")); err != nil {
			slog.Warn("complete: merge fragment", "err", err)
		}
	}
}

// ─────────────────── JSON API ───────────────────

type processRequest struct {
	Command   string `json:"command"`
	SessionID string `json:"session_id,omitempty"`
}

type processResponse struct {
	SessionID string       `json:"session_id"`
	Result    shell.Result `json:"result"`
}

// ProcessHandler runs one command synchronously and returns its Result.
// Without session_id in the body the cookie session is used.
func ProcessHandler(te *runtime.TerminalEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, 2*messages.MaxCommandLength)
		var req processRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
		if len(req.Command) > messages.MaxCommandLength {
			http.Error(w, "command too long", http.StatusRequestEntityTooLarge)
			return
		}
		sid := req.SessionID
		if sid == "" {
			sid = SessionID(r)
		}
		if err := messages.ValidateSessionID(sid); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		out, err := te.Execute(r.Context(), sid, req.Command, "")
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, processResponse{SessionID: sid, Result: out.Result})
	}
}

// CompleteHandler lists command names starting with ?prefix=.
func CompleteHandler(te *runtime.TerminalEngine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches := te.Sessions().Complete(r.URL.Query().Get("prefix"))
		if matches == nil {
			matches = []string{}
		}
		writeJSON(w, http.StatusOK, map[string][]string{"matches": matches})
	}
}
