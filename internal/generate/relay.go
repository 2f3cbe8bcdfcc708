package generate

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/ideagen/ideagen/backend/go-services/internal/config"
	"github.com/ideagen/ideagen/backend/go-services/internal/prompts"
	"github.com/ideagen/ideagen/backend/go-services/internal/upstream"
	"github.com/ideagen/ideagen/backend/go-services/pkg/apperr"
	"github.com/ideagen/ideagen/backend/go-services/pkg/logger"
	"github.com/ideagen/ideagen/backend/go-services/pkg/metrics"
	"github.com/sashabaranov/go-openai"
)

// Notices appended to the body when the stream breaks after headers were sent.
const (
	StreamErrorNotice   = "\n\nAn error occurred while streaming. Please try again."
	StreamTimeoutNotice = "\n\nThe AI service took too long to respond. Please try again."
)

const seedRange = 10000

// Outcome labels how a stream ended.
type Outcome string

const (
	OutcomeCompleted      Outcome = "completed"
	OutcomeClientCanceled Outcome = "client_canceled"
	OutcomeUpstreamError  Outcome = "upstream_error"
	OutcomeTimeout        Outcome = "timeout"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is the body of a generation call.
type Request struct {
	Messages []Message `json:"messages"`
	APIKey   string    `json:"apiKey"`
}

// Prepared is a validated request ready to be sent upstream.
type Prepared struct {
	APIKey   string
	Category prompts.Category
	Chat     openai.ChatCompletionRequest
}

type Relay struct {
	cfg  config.UpstreamConfig
	now  func() time.Time
	seed func() int
}

type Option func(*Relay)

func WithClock(now func() time.Time) Option { return func(r *Relay) { r.now = now } }

// WithSeed replaces the random seed source; values are reduced into [0,10000).
func WithSeed(seed func() int) Option { return func(r *Relay) { r.seed = seed } }

func NewRelay(cfg config.UpstreamConfig, opts ...Option) *Relay {
	r := &Relay{cfg: cfg, now: time.Now, seed: func() int { return rand.Intn(seedRange) }}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Timeout is the ceiling for one generation, from request to end of stream.
func (r *Relay) Timeout() time.Duration { return r.cfg.Timeout }

// Prepare validates req and builds the upstream chat request. The api key is
// checked before anything else about the conversation.
func (r *Relay) Prepare(req Request) (Prepared, error) {
	if req.APIKey == "" {
		return Prepared{}, apperr.New(apperr.KindUnauthorized, "API key is required")
	}
	if len(req.Messages) == 0 {
		return Prepared{}, apperr.New(apperr.KindInvalidRequest, "Messages are required")
	}
	key := prompts.CategoryKey(req.Messages[len(req.Messages)-1].Content)
	cat, ok := prompts.Lookup(key)
	if !ok {
		return Prepared{}, apperr.New(apperr.KindInvalidCategory, "Invalid category")
	}

	seed := r.seed() % seedRange
	if seed < 0 {
		seed = -seed
	}
	chat := openai.ChatCompletionRequest{
		Model: r.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: cat.System},
			{Role: openai.ChatMessageRoleUser, Content: prompts.UserPrompt(cat, prompts.Booster(seed), r.now(), seed)},
		},
		Temperature:      r.cfg.Temperature,
		TopP:             r.cfg.TopP,
		FrequencyPenalty: r.cfg.FrequencyPenalty,
		PresencePenalty:  r.cfg.PresencePenalty,
		MaxTokens:        r.cfg.MaxTokens,
		Stream:           true,
	}
	return Prepared{APIKey: req.APIKey, Category: cat, Chat: chat}, nil
}

// Open starts the upstream stream. Failures are mapped to apperr kinds so the
// handler can answer before any body bytes are written.
func (r *Relay) Open(ctx context.Context, p Prepared) (*openai.ChatCompletionStream, error) {
	metrics.Generations.WithLabelValues(p.Category.Key).Inc()
	stream, err := upstream.NewClient(r.cfg, p.APIKey).CreateChatCompletionStream(ctx, p.Chat)
	if err == nil {
		logger.Debugf("generation stream opened: category=%s model=%s", p.Category.Key, p.Chat.Model)
		return stream, nil
	}
	metrics.UpstreamErrors.WithLabelValues("open").Inc()
	switch status := upstream.StatusOf(err); {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return nil, apperr.Wrap(apperr.KindTimeout, "AI service timed out", err)
	case status == http.StatusUnauthorized:
		return nil, apperr.Wrap(apperr.KindUpstreamRejected, "API key is invalid", err).WithStatus(http.StatusUnauthorized)
	case status == http.StatusForbidden:
		return nil, apperr.Wrap(apperr.KindUpstreamRejected, "API key lacks permission", err).WithStatus(http.StatusForbidden)
	default:
		logger.Errorf("generation upstream error: %v", err)
		return nil, apperr.Wrap(apperr.KindUpstreamFailure, "AI service error", err)
	}
}

// Pipe copies content fragments from stream to w, calling flush after each
// one, until the stream ends, a choice reports a finish reason, or ctx is
// done. Errors after the first byte cannot change the status any more, so
// they are reported in-band.
func (r *Relay) Pipe(ctx context.Context, stream *openai.ChatCompletionStream, w io.Writer, flush func()) Outcome {
	defer stream.Close()
	outcome := r.pipe(ctx, stream, w, flush)
	metrics.GenerationOutcomes.WithLabelValues(string(outcome)).Inc()
	return outcome
}

func (r *Relay) pipe(ctx context.Context, stream *openai.ChatCompletionStream, w io.Writer, flush func()) Outcome {
	for {
		chunk, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return OutcomeCompleted
			}
			return r.fail(ctx, err, w, flush)
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		choice := chunk.Choices[0]
		if choice.Delta.Content != "" {
			if _, werr := io.WriteString(w, choice.Delta.Content); werr != nil {
				logger.Infof("generation stream canceled by client: %v", werr)
				return OutcomeClientCanceled
			}
			flush()
		}
		if choice.FinishReason != "" {
			logger.Debugf("generation stream finished: reason=%s", choice.FinishReason)
			return OutcomeCompleted
		}
	}
}

func (r *Relay) fail(ctx context.Context, err error, w io.Writer, flush func()) Outcome {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		logger.Warnf("generation stream timed out: %v", err)
		_, _ = io.WriteString(w, StreamTimeoutNotice)
		flush()
		return OutcomeTimeout
	case ctx.Err() != nil:
		logger.Infof("generation stream canceled by client")
		return OutcomeClientCanceled
	default:
		metrics.UpstreamErrors.WithLabelValues("stream").Inc()
		logger.Errorf("generation stream error: %v", err)
		_, _ = io.WriteString(w, StreamErrorNotice)
		flush()
		return OutcomeUpstreamError
	}
}
