// Copyright 2025 Poiesic Systems
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
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/docindex"
	"github.com/poiesic/docindex/ai"
	"github.com/poiesic/docindex/core"
	"github.com/poiesic/docindex/ingestion"
	"github.com/poiesic/docindex/storage/badger"
	"github.com/poiesic/docindex/vectorstore/pinecone"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "docindex",
		Usage: "Document ingestion and vector indexing",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "add",
				Usage:  "Store a document file for later ingestion",
				Action: addCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the document file",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "key",
						Usage: "Storage key for the document (defaults to the file name)",
					},
				},
			},
			{
				Name:   "ingest",
				Usage:  "Chunk, embed and index a stored document",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "key",
						Usage:    "Storage key of the document to ingest",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL (empty for the hosted OpenAI API)",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "text-embedding-ada-002",
					},
					&cli.StringFlag{
						Name:    "embedding-token",
						Usage:   "Embedding service API token",
						EnvVars: []string{"OPENAI_API_KEY"},
					},
					&cli.StringFlag{
						Name:     "index-url",
						Usage:    "Vector index endpoint URL",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "index-api-key",
						Usage:   "Vector index API key",
						EnvVars: []string{"PINECONE_API_KEY"},
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of vectors per upsert request",
						Value: ingestion.DefaultUpsertBatchSize,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Worker pool size for chunking and embedding (0 for auto)",
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List stored documents",
				Action: listCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
				},
			},
			{
				Name:   "remove",
				Usage:  "Remove a stored document",
				Action: removeCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "key",
						Usage:    "Storage key of the document to remove",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func addCommand(c *cli.Context) error {
	ctx := context.Background()

	filePath := c.String("file")
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read document file: %w", err)
	}

	name := filepath.Base(filePath)
	key := c.String("key")
	if key == "" {
		key = name
	}

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewDocumentRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	record, err := repo.PutDocument(ctx, &core.DocumentRecord{Key: key, Name: name}, data)
	if err != nil {
		return fmt.Errorf("failed to store document: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Stored %s (%d bytes) under key %q\n", record.Name, record.Size, record.Key)
	return nil
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	indexAPIKey := c.String("index-api-key")
	if indexAPIKey == "" {
		return fmt.Errorf("index-api-key is required (flag or PINECONE_API_KEY)")
	}

	token := c.String("embedding-token")
	if token == "" {
		return fmt.Errorf("embedding-token is required (flag or OPENAI_API_KEY)")
	}

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithModel(c.String("embedding-model")),
		ai.WithToken(token),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	index, err := pinecone.NewClient(pinecone.Config{
		URL:    c.String("index-url"),
		APIKey: indexAPIKey,
	})
	if err != nil {
		return fmt.Errorf("failed to create index client: %w", err)
	}

	library, err := docindex.Open(c.String("db"),
		docindex.WithAIConfig(aiConfig),
		docindex.WithVectorStore(index),
	)
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer library.Close()

	var opts []ingestion.Option
	opts = append(opts, ingestion.WithBatchSize(c.Int("batch-size")))
	if poolSize := c.Int("pool-size"); poolSize > 0 {
		opts = append(opts, ingestion.WithPoolSize(poolSize))
	}

	key := c.String("key")
	fmt.Fprintf(os.Stderr, "Ingesting %q\n", key)

	chunks, err := library.Ingest(ctx, key, opts...)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	record, err := library.DocumentRepository().GetDocument(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to read document record: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Indexed %d pages, %d chunks into namespace %q\n",
		record.PageCount, record.ChunkCount, core.NamespaceForKey(key))
	if len(chunks) > 0 {
		fmt.Fprintf(os.Stderr, "First chunk: %.80s\n", chunks[0].Text)
	}
	return nil
}

func listCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewDocumentRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	records, err := repo.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	for _, record := range records {
		ingested := "-"
		if !record.IngestedAt.IsZero() {
			ingested = record.IngestedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Printf("%s\t%s\t%d bytes\t%d pages\t%d chunks\tingested: %s\n",
			record.Key, record.Name, record.Size, record.PageCount, record.ChunkCount, ingested)
	}
	fmt.Fprintf(os.Stderr, "%d document(s)\n", len(records))
	return nil
}

func removeCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewDocumentRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	key := c.String("key")
	if err := repo.DeleteDocument(ctx, key); err != nil {
		return fmt.Errorf("failed to remove document: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Removed %q\n", key)
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
