package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"stylista-be/internal/config"
	"stylista-be/internal/pkg/logger"
	"stylista-be/pkg/assistant/action"
	"stylista-be/pkg/assistant/intent"
	"stylista-be/pkg/assistant/vocabulary"
	"stylista-be/pkg/llm/factory"

	"github.com/fatih/color"
)

// Runs intent resolution against the configured model and prints which
// stage produced the command. Reads one message per line from stdin when
// no text is given on the command line.
func main() {
	raw := flag.Bool("raw", false, "print the model's raw response")
	flag.Parse()

	cfg := config.Load()
	provider, err := factory.NewLLMProvider(factory.Config{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  cfg.Ai.LLMBaseURL,
		APIKey:   cfg.Ai.LLMApiKey,
	})
	if err != nil {
		color.Red("Failed to initialise model: %v", err)
		os.Exit(1)
	}

	opts := intent.DefaultResolverOptions()
	opts.MaxRetries = cfg.Ai.MaxRetries
	opts.AttemptTimeout = cfg.Ai.AttemptTimeout
	resolver := intent.NewResolver(provider, vocabulary.Default(), opts, logger.NewNopLogger())

	color.Cyan("Resolving with %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	if text := strings.Join(flag.Args(), " "); text != "" {
		resolve(resolver, text, *raw)
		return
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if text := strings.TrimSpace(scanner.Text()); text != "" {
			resolve(resolver, text, *raw)
		}
	}
}

func resolve(resolver *intent.Resolver, text string, raw bool) {
	res := resolver.Resolve(context.Background(), intent.Turn{Text: text})

	color.Yellow("\n> %s", text)
	stage := color.GreenString(string(res.Stage))
	if res.Stage != intent.StageDirectMatch && res.Stage != intent.StageModel {
		stage = color.RedString(string(res.Stage))
	}
	fmt.Printf("stage:    %s\n", stage)
	fmt.Printf("attempts: %d\n", res.Attempts)
	if res.ModelErr != nil {
		color.Red("model:    %v", res.ModelErr)
	}

	b, _ := json.MarshalIndent(action.Marshal(res.Command), "", "  ")
	fmt.Println(string(b))

	if raw && res.RawResponse != "" {
		color.White("raw: %s", res.RawResponse)
	}
}
