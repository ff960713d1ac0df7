package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	slackmd "github.com/goliatone/go-slackmd"
	"github.com/goliatone/go-slackmd/pkg/interfaces"
)

type stubPublisher struct {
	requests []interfaces.PublishRequest
}

func (s *stubPublisher) Publish(_ context.Context, req interfaces.PublishRequest) (*interfaces.PublishResult, error) {
	s.requests = append(s.requests, req)
	return &interfaces.PublishResult{Channel: req.Channel, Timestamp: "1700000001.000200"}, nil
}

func withPublisher(t *testing.T, pub interfaces.Publisher) {
	t.Helper()
	original := moduleBuilder
	t.Cleanup(func() { moduleBuilder = original })
	moduleBuilder = func(cfg slackmd.Config, opts ...slackmd.Option) (*slackmd.Module, error) {
		return original(cfg, append(opts, slackmd.WithPublisher(pub))...)
	}
}

func decodeTypes(t *testing.T, out []byte) []string {
	t.Helper()
	var blocks []map[string]any
	if err := json.Unmarshal(out, &blocks); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	types := make([]string, 0, len(blocks))
	for _, block := range blocks {
		types = append(types, block["type"].(string))
	}
	return types
}

func TestRunConvertsStdin(t *testing.T) {
	var stdout, stderr bytes.Buffer
	stdin := strings.NewReader("# Title\n\nSome *text*.\n\n---\n")

	if err := run(context.Background(), nil, stdin, &stdout, &stderr); err != nil {
		t.Fatalf("run returned error: %v", err)
	}

	got := strings.Join(decodeTypes(t, stdout.Bytes()), ",")
	if got != "header,section,divider" {
		t.Fatalf("unexpected block types %s", got)
	}
	if stderr.Len() != 0 {
		t.Fatalf("expected no stderr output, got %q", stderr.String())
	}
}

func TestRunConvertsFileWithOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(path, []byte("---\ntitle: Notes\n---\n- [x] done\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-file", path,
		"-checkbox-style", "glyph",
		"-block-id-prefix", "notes",
		"-validate",
	}, strings.NewReader(""), &stdout, &stderr)
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}

	var blocks []struct {
		Type    string `json:"type"`
		BlockID string `json:"block_id"`
		Text    struct {
			Text string `json:"text"`
		} `json:"text"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &blocks); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(blocks) != 1 || blocks[0].Text.Text != "☑ done" {
		t.Fatalf("unexpected blocks %#v", blocks)
	}
	if !strings.HasPrefix(blocks[0].BlockID, "notes-") {
		t.Fatalf("expected deterministic block id, got %q", blocks[0].BlockID)
	}
}

func TestRunPublishesFileToFrontMatterChannel(t *testing.T) {
	pub := &stubPublisher{}
	withPublisher(t, pub)

	dir := t.TempDir()
	path := filepath.Join(dir, "update.md")
	if err := os.WriteFile(path, []byte("---\nslack_channel: C0FRONT\n---\nShipped.\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-file", path, "-publish", "-slack-token", "xoxb-test"}, strings.NewReader(""), &stdout, &stderr)
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if len(pub.requests) != 1 || pub.requests[0].Channel != "C0FRONT" {
		t.Fatalf("unexpected publish requests %#v", pub.requests)
	}
	if !strings.Contains(stderr.String(), "posted to C0FRONT at 1700000001.000200") {
		t.Fatalf("expected publish confirmation, got %q", stderr.String())
	}
}

func TestRunPublishesStdin(t *testing.T) {
	pub := &stubPublisher{}
	withPublisher(t, pub)

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-channel", "C0CLI", "-thread", "1700000000.000100", "-slack-token", "xoxb-test"}, strings.NewReader("hello"), &stdout, &stderr)
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if len(pub.requests) != 1 {
		t.Fatalf("expected one publish request, got %d", len(pub.requests))
	}
	if req := pub.requests[0]; req.Channel != "C0CLI" || req.ThreadTS != "1700000000.000100" {
		t.Fatalf("unexpected request %#v", req)
	}
}

func TestRunRejectsInvalidConfiguration(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{"-checkbox-style", "stars"}, strings.NewReader(""), &stdout, &stderr)
	if !errors.Is(err, slackmd.ErrCheckboxStyleInvalid) {
		t.Fatalf("expected ErrCheckboxStyleInvalid, got %v", err)
	}

	t.Setenv(tokenEnv, "")
	err = run(context.Background(), []string{"-channel", "C1"}, strings.NewReader(""), &stdout, &stderr)
	if !errors.Is(err, slackmd.ErrSlackTokenRequired) {
		t.Fatalf("expected ErrSlackTokenRequired, got %v", err)
	}
}

func TestRunUnknownFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-nope"}, strings.NewReader(""), &stdout, &stderr); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}
