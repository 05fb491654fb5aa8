// Package intent decides which catalog action a shopper's message asks
// for. Resolution cascades from hard-coded phrases through the language
// model and its reply parser down to lexical rules, and always yields a
// command.
package intent

import (
	"context"
	"errors"
	"strings"
	"time"

	"stylista-be/internal/pkg/logger"
	"stylista-be/pkg/assistant/action"
	"stylista-be/pkg/assistant/lexical"
	"stylista-be/pkg/assistant/vocabulary"
	"stylista-be/pkg/llm"
)

const module = "INTENT"

// Stage names the step of the cascade that produced a command.
type Stage string

const (
	StageDirectMatch   Stage = "direct_match"
	StageModel         Stage = "model"
	StageResponseParse Stage = "response_parse"
	StageLexical       Stage = "lexical"
	StageSynthesized   Stage = "synthesized"
)

type ResolverOptions struct {
	MaxRetries     int
	AttemptTimeout time.Duration
	MaxTokens      int
	Temperature    float64
	// HistoryWindow bounds the prior turns sent to the model; 0 sends all.
	HistoryWindow int
}

func DefaultResolverOptions() ResolverOptions {
	return ResolverOptions{
		MaxRetries:     2,
		AttemptTimeout: 30 * time.Second,
		MaxTokens:      1024,
		Temperature:    0.3,
		HistoryWindow:  20,
	}
}

type Turn struct {
	Text    string
	History []llm.Message
	Shopper *ShopperHint
}

type Resolution struct {
	Command action.Command
	Stage   Stage
	// Attempts counts model calls, zero when the model was bypassed.
	Attempts    int
	ModelErr    error
	RawResponse string
}

var ErrNoModel = errors.New("no language model configured")

type Resolver struct {
	provider    llm.LLMProvider
	opts        ResolverOptions
	logger      logger.ILogger
	direct      *DirectMatcher
	extractor   *lexical.Extractor
	synthesizer *Synthesizer
	system      string
}

// NewResolver wires the cascade. provider may be nil, in which case every
// turn that misses the direct table goes to the lexical stages.
func NewResolver(provider llm.LLMProvider, vocab *vocabulary.Vocabulary, opts ResolverOptions, logger logger.ILogger) *Resolver {
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	extractor := lexical.NewExtractor(vocab)
	return &Resolver{
		provider:    provider,
		opts:        opts,
		logger:      logger,
		direct:      NewDirectMatcher(vocab),
		extractor:   extractor,
		synthesizer: NewSynthesizer(vocab, extractor),
		system:      buildSystemPrompt(vocab),
	}
}

// Resolve never fails. The worst case is a generic search.
func (r *Resolver) Resolve(ctx context.Context, turn Turn) Resolution {
	text := strings.TrimSpace(turn.Text)
	if text == "" {
		return Resolution{Command: r.synthesizer.Synthesize(text), Stage: StageSynthesized}
	}

	if cmd, ok := r.direct.Match(text); ok {
		r.logger.Debug(module, "Direct match", map[string]interface{}{"action": cmd.Kind()})
		return Resolution{Command: cmd, Stage: StageDirectMatch}
	}

	res := Resolution{}
	reply, attempts, err := r.askModel(ctx, turn)
	res.Attempts = attempts
	res.RawResponse = reply

	if err != nil {
		res.ModelErr = err
		r.logger.Warn(module, "Model unavailable, using fallback", map[string]interface{}{
			"attempts": attempts,
			"error":    err.Error(),
		})
		res.Command, res.Stage = r.lexicalOrSynthesized(text)
		return res
	}

	if raw, ok := ParseResponse(reply); ok {
		cmd, decodeErr := action.Decode(raw)
		if decodeErr == nil {
			res.Command = cmd
			res.Stage = StageModel
			if !isWholeObject(reply) {
				res.Stage = StageResponseParse
			}
			return res
		}
		r.logger.Warn(module, "Model command failed validation", map[string]interface{}{
			"error": decodeErr.Error(),
			"raw":   truncate(reply, 200),
		})
	} else {
		r.logger.Info(module, "No command in model reply", map[string]interface{}{
			"raw": truncate(reply, 200),
		})
	}

	res.Command, res.Stage = r.lexicalOrSynthesized(text)
	return res
}

func (r *Resolver) lexicalOrSynthesized(text string) (action.Command, Stage) {
	if in := r.extractor.Extract(text); !in.IsEmpty() {
		return in.Search(0), StageLexical
	}
	return r.synthesizer.Synthesize(text), StageSynthesized
}

// askModel makes up to 1+MaxRetries immediate attempts, each under its own
// timeout. A cancelled parent context stops the loop.
func (r *Resolver) askModel(ctx context.Context, turn Turn) (string, int, error) {
	if r.provider == nil {
		return "", 0, ErrNoModel
	}
	messages := buildMessages(r.system, turn, r.opts.HistoryWindow)
	options := []llm.Option{
		llm.WithMaxTokens(r.opts.MaxTokens),
		llm.WithTemperature(r.opts.Temperature),
	}

	var lastErr error
	attempts := 0
	for attempt := 0; attempt <= r.opts.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			if lastErr == nil {
				lastErr = ctx.Err()
			}
			break
		}
		attempts++
		reply, err := r.callOnce(ctx, messages, options)
		if err == nil {
			return reply, attempts, nil
		}
		lastErr = err
		r.logger.Debug(module, "Model attempt failed", map[string]interface{}{
			"attempt": attempts,
			"error":   err.Error(),
		})
	}
	return "", attempts, lastErr
}

func (r *Resolver) callOnce(ctx context.Context, messages []llm.Message, options []llm.Option) (string, error) {
	if r.opts.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.AttemptTimeout)
		defer cancel()
	}
	return r.provider.Chat(ctx, messages, options...)
}

func isWholeObject(reply string) bool {
	s := strings.TrimSpace(reply)
	return strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
