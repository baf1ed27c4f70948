// Package genai wraps the generative vision/text model behind a narrow
// interface. The rest of the system treats the model as an opaque function
// from prompt (plus optional image) to free text; any transport problem is
// surfaced uniformly so callers can degrade to their fallbacks.
package genai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"os"
	"regexp"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	DefaultModel   = "claude-sonnet-4-5"
	DefaultTimeout = 60 * time.Second

	systemPrompt = "You are a cautious medical analysis assistant. You describe findings in plain clinical language, you do not invent facts, and you always follow the requested output format exactly."
)

// ErrUnavailable is returned for every transport-level failure: timeout,
// connection error, rate limit, server error, or an empty response body.
// The caller retries transient classes with a short backoff; once it gives
// up, consumers substitute their fixed fallbacks rather than retrying again.
var ErrUnavailable = errors.New("model provider unavailable")

const maxAttempts = 3

var errEmptyResponse = fmt.Errorf("%w: empty response", ErrUnavailable)

var statusCodeRe = regexp.MustCompile(`(?:status(?:\s+code)?[:=\s]+)(\d{3})`)

// Media is an uploaded image handed to the vision model.
type Media struct {
	MIMEType string
	Data     []byte
}

type Caller interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateVision(ctx context.Context, prompt string, media Media) (string, error)
	ModelName() string
}

type Messager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

type AnthropicCaller struct {
	messages Messager
	model    string
	timeout  time.Duration
}

type ClientCreator func(apiKey string) Messager

func defaultCreator(apiKey string) Messager {
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &c.Messages
}

var newClient ClientCreator = defaultCreator

func NewAnthropicCallerFromEnv() (*AnthropicCaller, error) {
	apiKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	if apiKey == "" {
		return nil, errors.New("ANTHROPIC_API_KEY not configured")
	}
	model := strings.TrimSpace(os.Getenv("HEALTHGENIE_MODEL"))
	if model == "" {
		model = DefaultModel
	}
	return &AnthropicCaller{messages: newClient(apiKey), model: model, timeout: DefaultTimeout}, nil
}

func (a *AnthropicCaller) ModelName() string { return a.model }

func (a *AnthropicCaller) GenerateText(ctx context.Context, prompt string) (string, error) {
	return a.generate(ctx, []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(prompt)})
}

func (a *AnthropicCaller) GenerateVision(ctx context.Context, prompt string, media Media) (string, error) {
	if len(media.Data) == 0 {
		return "", fmt.Errorf("%w: empty image payload", ErrUnavailable)
	}
	mime := media.MIMEType
	if mime == "" {
		mime = "image/jpeg"
	}
	blocks := []anthropic.ContentBlockParamUnion{
		anthropic.NewImageBlockBase64(mime, base64.StdEncoding.EncodeToString(media.Data)),
		anthropic.NewTextBlock(prompt),
	}
	return a.generate(ctx, blocks)
}

func (a *AnthropicCaller) generate(ctx context.Context, blocks []anthropic.ContentBlockParamUnion) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		text, err := a.attempt(ctx, blocks)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if attempt == maxAttempts || ctx.Err() != nil {
			break
		}
		if errors.Is(err, errEmptyResponse) {
			continue
		}
		class := ClassifyError(err)
		if class != FailureTimeout && class != FailureRateLimit && class != FailureServer {
			break
		}
		time.Sleep(backoffDelay(attempt))
	}
	return "", lastErr
}

func (a *AnthropicCaller) attempt(ctx context.Context, blocks []anthropic.ContentBlockParamUnion) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(a.model),
		MaxTokens:   4096,
		System:      []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(blocks...)},
		Temperature: anthropic.Float(0),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errEmptyResponse
	}
	return text, nil
}

func backoffDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 1 * time.Second
	}
	return 2 * time.Second
}

// ClassifyError buckets a transport error for logging. All classes still
// mean "use the fallback"; the class only drives the log line.
type FailureClass int

const (
	FailureNone FailureClass = iota
	FailureTimeout
	FailureRateLimit
	FailureServer
	FailureClient
)

func ClassifyError(err error) FailureClass {
	if err == nil {
		return FailureNone
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return FailureTimeout
	}
	msg := strings.ToLower(err.Error())
	if m := statusCodeRe.FindStringSubmatch(msg); len(m) == 2 {
		switch {
		case strings.HasPrefix(m[1], "429"):
			return FailureRateLimit
		case strings.HasPrefix(m[1], "5"):
			return FailureServer
		case strings.HasPrefix(m[1], "4"):
			return FailureClient
		}
	}
	switch {
	case strings.Contains(msg, "rate limit"), strings.Contains(msg, "429"):
		return FailureRateLimit
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "timed out"):
		return FailureTimeout
	default:
		return FailureServer
	}
}
