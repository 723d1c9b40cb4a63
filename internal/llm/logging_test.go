package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

// memSink collects events in memory.
type memSink struct {
	events []RequestEvent
	err    error
}

func (s *memSink) AppendLLMRequest(_ context.Context, e RequestEvent) error {
	s.events = append(s.events, e)
	return s.err
}

func TestLoggingRecordsEvent(t *testing.T) {
	sink := &memSink{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"ok":true}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 7},
	})
	p := WithLogging(mock, sink)

	ctx := WithPurpose(context.Background(), "evaluate-answer")
	resp, err := p.Generate(ctx, Request{
		System:   "you are a grader",
		Messages: []Message{{Role: "user", Content: "grade this"}},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if resp == nil {
		t.Fatal("nil response")
	}

	if len(sink.events) != 1 {
		t.Fatalf("events recorded = %d, want 1", len(sink.events))
	}
	e := sink.events[0]
	if e.Purpose != "evaluate-answer" {
		t.Errorf("purpose = %q", e.Purpose)
	}
	if !e.Success {
		t.Error("successful call recorded as failure")
	}
	if e.InputTokens != 12 || e.OutputTokens != 7 {
		t.Errorf("tokens = %d/%d, want 12/7", e.InputTokens, e.OutputTokens)
	}
	if e.ResponseBody != `{"ok":true}` {
		t.Errorf("response body = %q", e.ResponseBody)
	}
}

func TestLoggingRecordsFailure(t *testing.T) {
	sink := &memSink{}
	mock := NewMockProvider(MockResponse{Err: errors.New("boom")})
	p := WithLogging(mock, sink)

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected the provider error to pass through")
	}

	if len(sink.events) != 1 {
		t.Fatalf("events recorded = %d, want 1", len(sink.events))
	}
	e := sink.events[0]
	if e.Success {
		t.Error("failed call recorded as success")
	}
	if e.ErrorMessage == "" {
		t.Error("failure recorded without an error message")
	}
}

func TestLoggingSinkErrorDoesNotFailRequest(t *testing.T) {
	sink := &memSink{err: errors.New("db locked")}
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, sink)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("sink failure leaked into the request: %v", err)
	}
}
