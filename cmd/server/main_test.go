package main

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/AnshRaj112/voice-journal/internal/config"
)

func TestEncryptionKey(t *testing.T) {
	valid := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("k", 32)))

	tests := []struct {
		name    string
		cfg     config.Config
		wantKey bool
		wantErr bool
	}{
		{"unset", config.Config{}, false, false},
		{"key", config.Config{EncryptionKey: valid}, true, false},
		{"bad key", config.Config{EncryptionKey: "short"}, false, true},
		{"passphrase", config.Config{EncryptionPassphrase: "correct horse", EncryptionSalt: "voice-journal"}, true, false},
		{"short salt", config.Config{EncryptionPassphrase: "correct horse", EncryptionSalt: "x"}, false, true},
		{"key wins over bad salt", config.Config{EncryptionKey: valid, EncryptionPassphrase: "p", EncryptionSalt: "x"}, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			key, err := encryptionKey(&cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if (key != nil) != tt.wantKey {
				t.Errorf("key = %v, wantKey %v", key, tt.wantKey)
			}
		})
	}
}

func TestLoadWithRetry(t *testing.T) {
	attempts := 0
	ready := make(chan struct{})
	load := func(context.Context) error {
		attempts++
		if attempts == 1 {
			return errors.New("storage unavailable")
		}
		return nil
	}

	done := make(chan struct{})
	go func() {
		loadWithRetry(context.Background(), "journal", load, func() { close(ready) })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("loadWithRetry did not finish")
	}
	select {
	case <-ready:
	default:
		t.Error("onReady not called")
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
}

func TestLoadWithRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	loadWithRetry(ctx, "profile", func(context.Context) error {
		return errors.New("storage unavailable")
	}, func() { called = true })
	if called {
		t.Error("onReady called after failures")
	}
}
