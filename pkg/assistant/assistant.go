// Package assistant runs one chat turn end to end: resolve the shopper's
// intent, execute it against the catalog and render the reply.
package assistant

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"stylista-be/internal/pkg/logger"
	"stylista-be/pkg/assistant/action"
	"stylista-be/pkg/assistant/executor"
	"stylista-be/pkg/assistant/intent"
	"stylista-be/pkg/assistant/lexical"
	"stylista-be/pkg/assistant/response"
	"stylista-be/pkg/assistant/vocabulary"
	"stylista-be/pkg/llm"
)

var tracer = otel.Tracer("stylista-be/pkg/assistant")

type Config struct {
	Resolver intent.ResolverOptions
	Executor executor.Options
}

type Request struct {
	Text    string
	History []llm.Message
	Shopper *executor.Shopper
}

type Reply struct {
	Text     string
	Command  action.Command
	Stage    intent.Stage
	Attempts int
	Outcome  executor.Outcome
}

type Assistant struct {
	resolver  *intent.Resolver
	executor  *executor.Executor
	formatter *response.Formatter
	logger    logger.ILogger
}

func New(provider llm.LLMProvider, catalog executor.Catalog, vocab *vocabulary.Vocabulary, cfg Config, logger logger.ILogger) *Assistant {
	return &Assistant{
		resolver:  intent.NewResolver(provider, vocab, cfg.Resolver, logger),
		executor:  executor.New(catalog, lexical.NewExtractor(vocab), vocab, cfg.Executor, logger),
		formatter: response.NewFormatter(vocab),
		logger:    logger,
	}
}

// Respond always produces a reply; failures inside the turn degrade to
// generic searches or explanatory messages.
func (a *Assistant) Respond(ctx context.Context, req Request) Reply {
	ctx, span := tracer.Start(ctx, "assistant.Respond")
	defer span.End()

	resolveCtx, resolveSpan := tracer.Start(ctx, "assistant.Resolve")
	res := a.resolver.Resolve(resolveCtx, intent.Turn{
		Text:    req.Text,
		History: req.History,
		Shopper: hint(req.Shopper),
	})
	resolveSpan.SetAttributes(
		attribute.String("assistant.stage", string(res.Stage)),
		attribute.String("assistant.action", string(res.Command.Kind())),
		attribute.Int("assistant.model_attempts", res.Attempts),
	)
	resolveSpan.End()

	execCtx, execSpan := tracer.Start(ctx, "assistant.Execute")
	out := a.executor.Execute(execCtx, res.Command, executor.Request{Text: req.Text, Shopper: req.Shopper})
	execSpan.SetAttributes(
		attribute.String("assistant.status", string(out.Status)),
		attribute.Int("assistant.products", len(out.Products)),
		attribute.Bool("assistant.degraded", out.Degraded),
	)
	execSpan.End()

	a.logger.Info("ASSISTANT", "Turn resolved", map[string]interface{}{
		"stage":    res.Stage,
		"action":   res.Command.Kind(),
		"status":   out.Status,
		"products": len(out.Products),
		"degraded": out.Degraded,
	})

	return Reply{
		Text:     a.formatter.Format(out),
		Command:  out.Command,
		Stage:    res.Stage,
		Attempts: res.Attempts,
		Outcome:  out,
	}
}

func hint(s *executor.Shopper) *intent.ShopperHint {
	if s == nil {
		return nil
	}
	var location []string
	for _, part := range []string{s.City, s.Country} {
		if strings.TrimSpace(part) != "" {
			location = append(location, part)
		}
	}
	return &intent.ShopperHint{Age: s.Age, Gender: s.Gender, Location: strings.Join(location, ", ")}
}
