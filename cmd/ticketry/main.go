// Copyright 2025 Ticketry Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/ticketry/ticketry"
	"github.com/ticketry/ticketry/ai"
	"github.com/ticketry/ticketry/ai/rule"
	"github.com/ticketry/ticketry/core"
)

func main() {
	app := &cli.App{
		Name:  "ticketry",
		Usage: "Classify customer-support tickets and draft grounded answers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to the knowledge base directory",
				Value:   "./ticketry_db",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "OpenAI-compatible service host URL",
				Value: "http://localhost:11434/v1",
			},
			&cli.StringFlag{
				Name:  "embedding-model",
				Usage: "Embedding model name",
			},
			&cli.StringFlag{
				Name:  "chat-model",
				Usage: "Classification and generation model name",
			},
			&cli.BoolFlag{
				Name:  "offline",
				Usage: "Classify with keyword rules instead of the LLM",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "process",
				Usage:  "Process a single ticket and print the record view as JSON",
				Action: processCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "id",
						Usage: "Ticket id (minted when omitted)",
					},
					&cli.StringFlag{
						Name:     "text",
						Aliases:  []string{"t"},
						Usage:    "Ticket text",
						Required: true,
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Overall processing deadline",
						Value: 2 * time.Minute,
					},
				},
			},
			{
				Name:   "bulk",
				Usage:  "Process a JSON file of tickets and print record views as JSONL",
				Action: bulkCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "src",
						Aliases:  []string{"s"},
						Usage:    "Path to a JSON array of tickets ({\"id\", \"text\"})",
						Required: true,
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "Overall processing deadline",
						Value: 10 * time.Minute,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// openCopilot wires a Copilot from the global flags.
func openCopilot(c *cli.Context) (*ticketry.Copilot, error) {
	aiOpts := []ai.ConfigOption{
		ai.WithHost(c.String("host")),
		ai.WithToken(os.Getenv("TICKETRY_API_TOKEN")),
	}
	if model := c.String("embedding-model"); model != "" {
		aiOpts = append(aiOpts, ai.WithEmbeddingModel(model))
	}
	if model := c.String("chat-model"); model != "" {
		aiOpts = append(aiOpts,
			ai.WithClassifierModel(model),
			ai.WithGeneratorModel(model))
	}

	opts := []ticketry.CopilotOption{
		ticketry.WithAIConfig(ai.NewConfig(aiOpts...)),
	}
	if c.Bool("offline") {
		opts = append(opts, ticketry.WithClassifier(rule.NewClassifier()))
	}

	return ticketry.NewCopilot(c.String("db"), opts...)
}

func processCommand(c *cli.Context) error {
	copilot, err := openCopilot(c)
	if err != nil {
		return fmt.Errorf("failed to open knowledge base: %w", err)
	}
	defer copilot.Close()

	p, err := copilot.NewPipeline()
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer p.Release()

	ctx, cancel := context.WithTimeout(context.Background(), c.Duration("timeout"))
	defer cancel()

	record := p.Process(ctx, &core.Ticket{
		Id:        c.String("id"),
		Text:      c.String("text"),
		CreatedAt: time.Now().UTC(),
	})

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(record.View())
}

func bulkCommand(c *cli.Context) error {
	data, err := os.ReadFile(c.String("src"))
	if err != nil {
		return fmt.Errorf("failed to read ticket file: %w", err)
	}

	var tickets []*core.Ticket
	if err := json.Unmarshal(data, &tickets); err != nil {
		return fmt.Errorf("failed to parse ticket file: %w", err)
	}
	if len(tickets) == 0 {
		return fmt.Errorf("no tickets in %s", c.String("src"))
	}

	copilot, err := openCopilot(c)
	if err != nil {
		return fmt.Errorf("failed to open knowledge base: %w", err)
	}
	defer copilot.Close()

	p, err := copilot.NewPipeline()
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer p.Release()

	ctx, cancel := context.WithTimeout(context.Background(), c.Duration("timeout"))
	defer cancel()

	records := p.ProcessAll(ctx, tickets)

	encoder := json.NewEncoder(os.Stdout)
	escalations := 0
	for _, record := range records {
		if record.Escalate {
			escalations++
		}
		if err := encoder.Encode(record.View()); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stderr, "Processed %d tickets, %d flagged for escalation\n",
		len(records), escalations)
	return nil
}

func setup(c *cli.Context) error {
	// Missing .env is fine; the token flag stays optional for local servers.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
