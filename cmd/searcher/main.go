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
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ticketry/ticketry"
	"github.com/ticketry/ticketry/core"
	"github.com/ticketry/ticketry/retrieve"
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

func main() {
	copilot, err := ticketry.NewCopilot("./ticketry_db")
	if err != nil {
		panic(err)
	}
	defer copilot.Close()

	// No threshold: ad-hoc queries want to see weak matches too.
	retriever, err := copilot.NewRetriever(retrieve.WithThreshold(0))
	if err != nil {
		panic(err)
	}

	query := "password reset"
	if len(os.Args) > 1 {
		query = strings.Join(os.Args[1:], " ")
	}

	ctx := context.Background()
	results, err := retriever.Retrieve(ctx, &core.Ticket{Text: query}, nil)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Found %d hits\n", len(results))
	for i, hit := range results {
		fmt.Printf("%d: '%s' (%d)[%0.3f]\n", i, hit.Chunk.Title, hit.Chunk.Id, hit.Score)
	}
}
