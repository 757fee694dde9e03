package platform

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

// EmbeddedServerConfig holds options for running the embedded server.
type EmbeddedServerConfig struct {
	InProcess       bool
	EnableLogging   bool
	JetStream       bool
	JetStreamDomain string
	LeafNodeURL     string // empty disables leaf node
	LeafNodeCreds   string // only used with LeafNodeURL
	StoreDir        string // JetStream file storage
	Port            int    // client port when not in-process; -1 picks a free one
}

const readyTimeout = 5 * time.Second

// serverOptions translates the station config into nats-server options.
func serverOptions(cfg EmbeddedServerConfig) (*server.Options, error) {
	opts := &server.Options{
		ServerName:      "devstation",
		DontListen:      cfg.InProcess,
		Port:            cfg.Port,
		JetStream:       cfg.JetStream,
		JetStreamDomain: cfg.JetStreamDomain,
		StoreDir:        cfg.StoreDir,
		NoSigs:          true,
	}
	if cfg.LeafNodeURL == "" {
		return opts, nil
	}
	remote, err := url.Parse(cfg.LeafNodeURL)
	if err != nil {
		return nil, fmt.Errorf("leaf node url: %w", err)
	}
	opts.LeafNode.Remotes = []*server.RemoteLeafOpts{{
		URLs:        []*url.URL{remote},
		Credentials: cfg.LeafNodeCreds,
	}}
	return opts, nil
}

// RunEmbeddedServer starts the station's NATS broker and connects a client to
// it. With InProcess the server does not listen on a port and the client
// talks to it directly. The caller owns ns.Shutdown; the returned channel
// only reports ctx ending.
func RunEmbeddedServer(ctx context.Context, cfg EmbeddedServerConfig) (*nats.Conn, *server.Server, <-chan error, error) {
	opts, err := serverOptions(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	ns, err := server.NewServer(opts)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("nats server: %w", err)
	}
	if cfg.EnableLogging {
		ns.SetLogger(NewNATSServerLogger(slog.Default()), false, false)
	}
	go ns.Start()
	if !ns.ReadyForConnections(readyTimeout) {
		ns.Shutdown()
		return nil, nil, nil, fmt.Errorf("nats server not ready after %s", readyTimeout)
	}

	connOpts := []nats.Option{nats.Name("devstation")}
	if cfg.InProcess {
		connOpts = append(connOpts, nats.InProcessServer(ns))
	}
	nc, err := nats.Connect(ns.ClientURL(), connOpts...)
	if err != nil {
		ns.Shutdown()
		return nil, nil, nil, fmt.Errorf("nats connect: %w", err)
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		done <- ctx.Err()
	}()
	return nc, ns, done, nil
}
