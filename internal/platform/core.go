package platform

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"devstation/internal/messages"
	"devstation/internal/metrics"
	"devstation/internal/runtime"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Platform is the running station: the JetStream handle shared by the HTTP
// layer and the terminal engine consuming commands.
type Platform struct {
	JS     jetstream.JetStream
	Engine *runtime.TerminalEngine
}

// Provision creates the EVENT stream and the sessions bucket. Both calls are
// idempotent.
func Provision(ctx context.Context, js jetstream.JetStream) (jetstream.KeyValue, error) {
	if _, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     messages.EventStream,
		Subjects: []string{"event.>"},
		Storage:  jetstream.FileStorage,
	}); err != nil {
		return nil, fmt.Errorf("create %s stream: %w", messages.EventStream, err)
	}
	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:  runtime.SessionsBucket,
		History: 5,
		Storage: jetstream.FileStorage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s bucket: %w", runtime.SessionsBucket, err)
	}
	return kv, nil
}

// Start provisions JetStream and starts the terminal engine. Interpreters
// unused for sessionIdle are dropped; their state stays in the bucket. The
// engine stops consuming when ctx is done.
func Start(ctx context.Context, nc *nats.Conn, sessionIdle time.Duration) (*Platform, error) {
	metrics.Init()
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	kv, err := Provision(ctx, js)
	if err != nil {
		return nil, err
	}
	slog.Info("streams and buckets ready", "event_stream", messages.EventStream, "bucket", runtime.SessionsBucket)

	sessions := runtime.NewSessionManager(runtime.NewKVStore(kv), slog.Default().With("component", "sessions"))
	go sessions.RunEviction(ctx, sessionIdle)
	te := runtime.NewTerminalEngine(js, sessions)
	if err := te.Start(ctx); err != nil {
		return nil, fmt.Errorf("terminal engine: %w", err)
	}
	slog.Info("terminal engine consuming", "stream", messages.TerminalStream)
	return &Platform{JS: js, Engine: te}, nil
}
