package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"

	"github.com/ticketry/ticketry"
	"github.com/ticketry/ticketry/core"
)

// articles is a small built-in knowledge base used when no corpus file
// is given. Handy for smoke-testing retrieval end to end.
var articles = []*core.KnowledgeChunk{
	{
		SourceDocId: "kb-auth",
		Title:       "Resetting your password",
		Text:        "Open the account page, choose Security, and select Reset password. A reset link is emailed to the address on file and expires after 24 hours.",
	},
	{
		SourceDocId: "kb-auth",
		Title:       "Account lockout policy",
		Text:        "Five failed sign-in attempts lock the account for 15 minutes. Administrators can unlock an account early from the member management screen.",
	},
	{
		SourceDocId: "kb-sso",
		Title:       "Configuring SAML single sign-on",
		Text:        "SSO is configured per workspace under Admin, Authentication. Upload the identity provider metadata XML and map the email attribute. Changes take effect on the next sign-in.",
	},
	{
		SourceDocId: "kb-sso",
		Title:       "SSO sign-in loops",
		Text:        "A sign-in loop usually means the clock on the identity provider drifts more than five minutes, or the audience URI does not match the workspace URL.",
	},
	{
		SourceDocId: "kb-api",
		Title:       "Creating and rotating API keys",
		Text:        "API keys are created in the developer console. Rotate a key by creating a replacement, updating callers, and revoking the old key. Revocation is immediate.",
	},
	{
		SourceDocId: "kb-api",
		Title:       "API rate limits",
		Text:        "Requests are limited to 600 per minute per key. Responses include Retry-After when throttled. Use exponential backoff rather than tight retry loops.",
	},
	{
		SourceDocId: "kb-billing",
		Title:       "Understanding your invoice",
		Text:        "Invoices are issued on the first of each month for the previous period. Seat changes are prorated daily. Past invoices are available under Billing, History.",
	},
	{
		SourceDocId: "kb-howto",
		Title:       "Exporting workspace data",
		Text:        "Workspace admins can export all data as JSON from Settings, Export. Large workspaces are exported asynchronously and a download link is emailed when ready.",
	},
	{
		SourceDocId: "kb-howto",
		Title:       "Inviting teammates",
		Text:        "Invite teammates from the member management screen. Invitations expire after seven days and can be resent. Seats are billed from the day the invite is accepted.",
	},
	{
		SourceDocId: "kb-webhooks",
		Title:       "Webhook delivery and retries",
		Text:        "Webhook deliveries retry up to eight times with exponential backoff over 24 hours. Endpoints must answer 2xx within ten seconds or the delivery counts as failed.",
	},
}

var (
	corpusFileName = flag.String("src", "", "JSON file of knowledge chunks")
	dbPath         = flag.String("db", "./ticketry_db", "knowledge base directory")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// chunksFromFile reads a JSON array of chunks from a corpus file.
func chunksFromFile(filename string) ([]*core.KnowledgeChunk, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var chunks []*core.KnowledgeChunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, err
	}
	return chunks, nil
}

// ingestBatched embeds and persists chunks in batches.
func ingestBatched(ctx context.Context, copilot *ticketry.Copilot, chunks []*core.KnowledgeChunk, batchSize int) error {
	for len(chunks) > 0 {
		n := min(batchSize, len(chunks))
		if _, err := copilot.IngestChunks(ctx, chunks[:n]...); err != nil {
			return err
		}
		chunks = chunks[n:]
	}
	return nil
}

func main() {
	copilot, err := ticketry.NewCopilot(*dbPath)
	if err != nil {
		panic(err)
	}
	defer copilot.Close()

	ctx := context.Background()

	// Determine source of corpus data
	chunks := articles
	if *corpusFileName != "" {
		chunks, err = chunksFromFile(*corpusFileName)
		if err != nil {
			panic(err)
		}
	}

	// Ingest in batches of 5
	if err := ingestBatched(ctx, copilot, chunks, 5); err != nil {
		panic(err)
	}

	slog.Info("corpus seeded", "chunks", len(chunks), "db", *dbPath)
}
