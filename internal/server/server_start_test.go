package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/example/go-bbpe/internal/config"
	"github.com/example/go-bbpe/internal/model"
	"github.com/example/go-bbpe/internal/tokenizer"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"info", slog.LevelInfo, false},
		{"INFO", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseLogLevel(%q) = %v, nil; want error", tt.in, got)
			}
			continue
		}

		if err != nil {
			t.Errorf("ParseLogLevel(%q) unexpected error: %v", tt.in, err)
			continue
		}

		if got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v; want %v", tt.in, got, tt.want)
		}
	}
}

func newLifecycleTokenizer(t *testing.T) *tokenizer.Tokenizer {
	t.Helper()

	vocab := make(map[string]int32)
	for id, sym := range tokenizer.ByteAlphabet() {
		vocab[sym] = int32(id)
	}

	tok, err := tokenizer.New(&model.File{
		Model: model.Model{Vocab: vocab},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tok
}

func TestStart_LifecycleHealthEncodeAndShutdown(t *testing.T) {
	// Find an available port.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	addr := ln.Addr().String()
	ln.Close() // free it for the server

	cfg := config.DefaultConfig()
	cfg.Server.ListenAddr = addr

	s := New(cfg, newLifecycleTokenizer(t)).WithShutdownTimeout(2 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)

	go func() {
		errCh <- s.Start(ctx)
	}()

	// Wait for the server to be ready.
	client := &http.Client{Timeout: 2 * time.Second}

	if err := waitReady(client, addr); err != nil {
		t.Fatalf("server never became ready: %v", err)
	}

	if err := ProbeHTTP(addr); err != nil {
		t.Errorf("ProbeHTTP: %v", err)
	}

	body, err := json.Marshal(map[string]string{"text": "ab"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	resp, err := client.Post(fmt.Sprintf("http://%s/encode", addr), "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("encode request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("encode status = %d; want 200", resp.StatusCode)
	}

	var encoded struct {
		IDs   []int32 `json:"ids"`
		Count int     `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&encoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if encoded.Count != 2 {
		t.Errorf("count = %d; want 2", encoded.Count)
	}

	// Trigger graceful shutdown.
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Start returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down in time")
	}
}

func waitReady(client *http.Client, addr string) error {
	var err error
	for i := 0; i < 50; i++ {
		var resp *http.Response
		resp, err = client.Get(fmt.Sprintf("http://%s/health", addr))
		if err == nil {
			resp.Body.Close()
			return nil
		}
		time.Sleep(20 * time.Millisecond)
	}
	return err
}
