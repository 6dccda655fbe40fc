// Command gastroguide-cli is an interactive terminal client for the dialogue
// engine. It talks to the booking database directly and keeps one
// conversation for the whole session.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"gastroguide/config"
	"gastroguide/dao"
	"gastroguide/internal/apperrors"
	"gastroguide/internal/logger"
	"gastroguide/model"
	"gastroguide/service"
	"gastroguide/service/generators"
	"gastroguide/utils"
)

var exampleQueries = []string{
	"Can you find my booking with ID BK001?",
	"What's on the menu?",
	"What are your opening hours?",
	"I want to cancel booking BK002",
	"What's the current time?",
	"Do you offer catering services?",
}

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	dbPath := flag.String("db", "", "sqlite database path (overrides config)")
	examples := flag.Bool("examples", false, "run the example queries and exit")
	flag.Parse()

	if err := run(*configPath, *dbPath, *examples, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "gastroguide-cli: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, dbPath string, examples bool, in io.Reader, out io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.Database.SQLitePath = dbPath
	}
	log := logger.NewStructured("warn", "console")
	ctx := context.Background()

	store, err := dao.NewSQLite(cfg.Database.SQLitePath, log)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.InitSchema(ctx); err != nil {
		return err
	}
	if err := store.Seed(ctx); err != nil {
		return err
	}

	intents, err := config.LoadIntents(cfg.Intents.RulesFile)
	if err != nil {
		return err
	}
	deps := generators.NewDeps(store, store)
	deps.Restaurant = cfg.Restaurant
	engine := service.NewDialogueEngine(model.NewConversationContext(), service.EngineConfig{
		Classifier: service.NewIntentClassifier(intents.Intents, log),
		Deps:       deps,
		Logger:     log,
	})

	if examples {
		fmt.Fprintln(out, "Running example queries...")
		for _, q := range exampleQueries {
			fmt.Fprintf(out, "\nQuery: %s\n", q)
			display(out, turn(ctx, engine, log, q))
		}
		return nil
	}
	return repl(ctx, engine, cfg.Restaurant, log, in, out)
}

func repl(ctx context.Context, engine *service.DialogueEngine, info model.RestaurantInfo, log logger.Logger, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "%s - %s\n", strings.ToUpper(info.Name), info.Assistant)
	fmt.Fprintln(out, "Type 'quit' or 'exit' to end the session")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\nYou: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\nGoodbye!")
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if utils.IsQuitCommand(input) {
			fmt.Fprintf(out, "Thank you for visiting %s. Goodbye!\n", info.Name)
			return nil
		}
		display(out, turn(ctx, engine, log, input))
	}
}

func turn(ctx context.Context, engine *service.DialogueEngine, log logger.Logger, text string) *model.AgentResponse {
	resp, err := engine.ProcessTurn(ctx, text)
	if err != nil {
		log.WithError(err).Warn("turn failed", map[string]interface{}{
			"code":      string(apperrors.CodeOf(err)),
			"retryable": apperrors.IsRetryable(err),
		})
		return model.ErrorResponse()
	}
	return resp
}

func display(out io.Writer, resp *model.AgentResponse) {
	line := strings.Repeat("=", 50)
	fmt.Fprintln(out, "\n"+line)
	fmt.Fprintf(out, "ACTION: %s\n", strings.ToUpper(resp.Action))
	fmt.Fprintln(out, strings.Repeat("-", 50))
	fmt.Fprintf(out, "MESSAGE: %s\n", resp.Message)

	if resp.Data != nil {
		if data, err := json.MarshalIndent(resp.Data, "", "  "); err == nil {
			fmt.Fprintf(out, "\nDATA:\n%s\n", data)
		}
	}
	if resp.NeedsConfirmation {
		fmt.Fprintln(out, "\nACTION REQUIRES CONFIRMATION")
	}
	fmt.Fprintln(out, line)
}
