package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	root := rootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "devstation dev" {
		t.Fatalf("got %q", got)
	}
}

func TestCommandsRegistered(t *testing.T) {
	root := rootCmd()
	for _, name := range []string{"serve", "repl", "version"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("%s not registered: %v", name, err)
		}
	}
	serve, _, _ := root.Find([]string{"serve"})
	for _, flag := range []string{"port", "headless", "tls", "store-dir"} {
		if serve.Flags().Lookup(flag) == nil {
			t.Fatalf("serve missing --%s", flag)
		}
	}
}
