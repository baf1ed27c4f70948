package genai

import (
	"context"
	"errors"
	"fmt"
	"testing"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type fakeMessager struct {
	lastParams anthropic.MessageNewParams
	text       string
	err        error
	calls      int
	failFirst  int
}

func (f *fakeMessager) New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error) {
	f.calls++
	f.lastParams = params
	if f.err != nil {
		return nil, f.err
	}
	if f.calls <= f.failFirst {
		return &anthropic.Message{}, nil
	}
	return &anthropic.Message{Content: []anthropic.ContentBlockUnion{{Type: "text", Text: f.text}}}, nil
}

func TestGenerateTextTrimsResponse(t *testing.T) {
	fake := &fakeMessager{text: "  hello\n"}
	c := &AnthropicCaller{messages: fake, model: DefaultModel, timeout: DefaultTimeout}
	out, err := c.GenerateText(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if out != "hello" {
		t.Fatalf("out = %q", out)
	}
}

func TestGenerateTextEmptyResponseIsUnavailable(t *testing.T) {
	fake := &fakeMessager{text: "   "}
	c := &AnthropicCaller{messages: fake, model: DefaultModel, timeout: DefaultTimeout}
	_, err := c.GenerateText(context.Background(), "prompt")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if fake.calls != 3 {
		t.Fatalf("empty responses should be retried, got %d calls", fake.calls)
	}
}

func TestGenerateTextRetriesEmptyThenSucceeds(t *testing.T) {
	fake := &fakeMessager{text: "recovered", failFirst: 2}
	c := &AnthropicCaller{messages: fake, model: DefaultModel, timeout: DefaultTimeout}
	out, err := c.GenerateText(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if out != "recovered" || fake.calls != 3 {
		t.Fatalf("out = %q calls = %d", out, fake.calls)
	}
}

func TestGenerateTextClientErrorIsNotRetried(t *testing.T) {
	fake := &fakeMessager{err: fmt.Errorf("status code: 401")}
	c := &AnthropicCaller{messages: fake, model: DefaultModel, timeout: DefaultTimeout}
	_, err := c.GenerateText(context.Background(), "prompt")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if fake.calls != 1 {
		t.Fatalf("client errors must not be retried, got %d calls", fake.calls)
	}
}

func TestGenerateVisionRejectsEmptyPayload(t *testing.T) {
	c := &AnthropicCaller{messages: &fakeMessager{text: "x"}, model: DefaultModel, timeout: DefaultTimeout}
	_, err := c.GenerateVision(context.Background(), "prompt", Media{})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestGenerateVisionSendsImageAndPrompt(t *testing.T) {
	fake := &fakeMessager{text: "findings"}
	c := &AnthropicCaller{messages: fake, model: DefaultModel, timeout: DefaultTimeout}
	_, err := c.GenerateVision(context.Background(), "describe", Media{MIMEType: "image/png", Data: []byte{1, 2, 3}})
	if err != nil {
		t.Fatalf("GenerateVision: %v", err)
	}
	if len(fake.lastParams.Messages) != 1 {
		t.Fatalf("expected one message, got %d", len(fake.lastParams.Messages))
	}
	if len(fake.lastParams.Messages[0].Content) != 2 {
		t.Fatalf("expected image+text blocks, got %d", len(fake.lastParams.Messages[0].Content))
	}
}

func TestClassifyError(t *testing.T) {
	cases := []struct {
		err  error
		want FailureClass
	}{
		{nil, FailureNone},
		{context.DeadlineExceeded, FailureTimeout},
		{fmt.Errorf("status code: 429"), FailureRateLimit},
		{fmt.Errorf("status code: 503"), FailureServer},
		{fmt.Errorf("status code: 401"), FailureClient},
		{fmt.Errorf("rate limit exceeded"), FailureRateLimit},
		{fmt.Errorf("request timed out"), FailureTimeout},
		{fmt.Errorf("something odd"), FailureServer},
	}
	for _, tc := range cases {
		if got := ClassifyError(tc.err); got != tc.want {
			t.Errorf("ClassifyError(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
