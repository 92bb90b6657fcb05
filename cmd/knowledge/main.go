// Copyright 2025 Phoenix VC
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
	"io/fs"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	knowledge "github.com/phoenixvc/rooivalk-knowledge"
	"github.com/phoenixvc/rooivalk-knowledge/ai"
	"github.com/phoenixvc/rooivalk-knowledge/answer"
	"github.com/phoenixvc/rooivalk-knowledge/core"
	"github.com/phoenixvc/rooivalk-knowledge/search"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "knowledge",
		Usage: "Hybrid retrieval engine over a local document corpus",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:     "db",
				Aliases:  []string{"d"},
				Usage:    "Path to the index directory",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "OpenAI-compatible service host URL",
				Value: "http://localhost:11434",
			},
			&cli.StringFlag{
				Name:  "embedding-model",
				Usage: "Embedding model name",
				Value: "embeddinggemma",
			},
			&cli.StringFlag{
				Name:  "completion-model",
				Usage: "Completion model name",
				Value: "qwen2.5:3b",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "index",
				Usage:     "Index documents from files or directories",
				ArgsUsage: "PATH [PATH...]",
				Action:    indexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "category",
						Usage: "Category applied to documents without frontmatter",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Reindex documents even when their content is unchanged",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Run a hybrid query against the index",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Maximum number of documents returned",
						Value:   search.DefaultTopK,
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Restrict results to one category",
					},
					&cli.Float64Flag{
						Name:  "min-score",
						Usage: "Drop results whose fused score falls below this",
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "Print each retrieval stage as it runs",
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "Answer a question from the index with cited sources",
				ArgsUsage: "QUESTION",
				Action:    askCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Number of documents retrieved for grounding",
						Value:   search.DefaultTopK,
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Restrict retrieval to one category",
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Show corpus statistics",
				Action: statsCommand,
			},
			{
				Name:      "delete",
				Usage:     "Remove a document from the index",
				ArgsUsage: "DOC_ID",
				Action:    deleteCommand,
			},
			{
				Name:   "reembed",
				Usage:  "Regenerate all stored embeddings with the configured model",
				Action: reembedCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openEngine(c *cli.Context) (*knowledge.Engine, error) {
	config := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithCompletionModel(c.String("completion-model")),
	)

	engine, err := knowledge.NewEngine(c.String("db"), knowledge.WithAIConfig(config))
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}
	return engine, nil
}

func indexCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one file or directory is required")
	}

	docs, err := collectDocuments(c.Args().Slice(), c.String("category"))
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("no indexable files found")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx := context.Background()

	if c.Bool("force") {
		report, err := engine.IndexDocuments(ctx, docs)
		if err != nil {
			return err
		}
		printReport(report, 0)
		return nil
	}

	report := &core.IndexReport{}
	skipped := 0
	for _, doc := range docs {
		chunks, wasSkipped, err := engine.ReindexDocument(ctx, doc)
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, &core.IndexError{DocID: doc.ID, Err: err})
			continue
		}
		if wasSkipped {
			skipped++
			continue
		}
		report.Indexed++
		report.TotalChunks += chunks
	}
	printReport(report, skipped)
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a query is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	var monitor search.SearchMonitor
	if c.Bool("verbose") {
		monitor = &stderrMonitor{}
	}

	results, err := engine.SearchWithMonitor(context.Background(), query, search.SearchOptions{
		TopK:     c.Int("top-k"),
		Category: c.String("category"),
		MinScore: c.Float64("min-score"),
	}, monitor)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("No results.")
		return nil
	}

	for i, result := range results {
		fmt.Printf("%d. %s (%s)\n", i+1, result.Title, result.DocID)
		fmt.Printf("   score=%.4f vector=%.4f keyword=%.4f bonus=%.2f\n",
			result.CombinedScore,
			result.Breakdown.VectorComponent,
			result.Breakdown.KeywordComponent,
			result.Breakdown.ExactMatchBonus)
		fmt.Printf("   [%s] %s\n\n", result.SectionLabel, snippet(result.Text, 200))
	}
	return nil
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("a question is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	result, err := engine.Ask(context.Background(), question, answer.AskOptions{
		TopK:     c.Int("top-k"),
		Category: c.String("category"),
	})
	if err != nil {
		return err
	}

	fmt.Println(result.Answer)
	fmt.Println()
	if len(result.Sources) > 0 {
		fmt.Println("Sources:")
		for i, source := range result.Sources {
			fmt.Printf("  [%d] %s (%s)\n", i+1, source.Title, source.DocID)
		}
	}
	fmt.Printf("\nConfidence: %s  Tokens: %d\n", result.Confidence, result.TokensUsed)
	return nil
}

func statsCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	stats, err := engine.Stats(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Documents: %d\n", stats.TotalDocuments)
	fmt.Printf("Chunks:    %d\n", stats.TotalChunks)

	if len(stats.Categories) > 0 {
		categories := make([]string, 0, len(stats.Categories))
		for category := range stats.Categories {
			categories = append(categories, category)
		}
		sort.Strings(categories)

		fmt.Println("Categories:")
		for _, category := range categories {
			name := category
			if name == "" {
				name = "(uncategorized)"
			}
			fmt.Printf("  %-24s %d\n", name, stats.Categories[category])
		}
	}
	return nil
}

func deleteCommand(c *cli.Context) error {
	docID := c.Args().First()
	if docID == "" {
		return fmt.Errorf("a document ID is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	deleted, err := engine.DeleteFromIndex(context.Background(), docID)
	if err != nil {
		return err
	}

	fmt.Printf("Deleted %s (%d chunks)\n", docID, deleted)
	return nil
}

func reembedCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))

	total, err := engine.ReembedAll(context.Background())
	if err != nil {
		return fmt.Errorf("re-embedding failed: %w", err)
	}

	fmt.Printf("Re-embedded %d chunks\n", total)
	return nil
}

// collectDocuments reads every markdown/text file under the given paths into
// documents. The document ID is the cleaned relative path; the title defaults
// to the file name and may be overridden by frontmatter during indexing.
func collectDocuments(paths []string, category string) ([]*core.Document, error) {
	var docs []*core.Document

	addFile := func(path string) error {
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		base := filepath.Base(path)
		docs = append(docs, &core.Document{
			ID:       filepath.ToSlash(filepath.Clean(path)),
			Title:    strings.TrimSuffix(base, filepath.Ext(base)),
			Content:  string(content),
			Category: category,
		})
		return nil
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if err := addFile(root); err != nil {
				return nil, err
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !indexableFile(path) {
				return nil
			}
			return addFile(path)
		})
		if err != nil {
			return nil, err
		}
	}

	return docs, nil
}

func indexableFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".txt":
		return true
	default:
		return false
	}
}

func snippet(text string, max int) string {
	text = strings.Join(strings.Fields(text), " ")
	if len(text) <= max {
		return text
	}
	return text[:max] + "…"
}

func printReport(report *core.IndexReport, skipped int) {
	fmt.Printf("Indexed %d documents (%d chunks)", report.Indexed, report.TotalChunks)
	if skipped > 0 {
		fmt.Printf(", %d unchanged", skipped)
	}
	if report.Failed > 0 {
		fmt.Printf(", %d failed", report.Failed)
	}
	fmt.Println()

	for _, indexErr := range report.Errors {
		fmt.Fprintf(os.Stderr, "  %s: %v\n", indexErr.DocID, indexErr.Err)
	}
}

// stderrMonitor prints each retrieval stage for `search --verbose`.
type stderrMonitor struct{}

var _ search.SearchMonitor = (*stderrMonitor)(nil)

func (m *stderrMonitor) Start(query string) {
	fmt.Fprintf(os.Stderr, "query: %q\n", query)
}

func (m *stderrMonitor) WeightsChosen(w search.Weights) {
	fmt.Fprintf(os.Stderr, "weights: vector=%.1f keyword=%.1f\n", w.Vector, w.Keyword)
}

func (m *stderrMonitor) AfterVectorSearch(results []*core.SearchResult) {
	fmt.Fprintf(os.Stderr, "vector leg: %d candidates\n", len(results))
}

func (m *stderrMonitor) AfterKeywordSearch(results []*core.SearchResult) {
	fmt.Fprintf(os.Stderr, "keyword leg: %d candidates\n", len(results))
}

func (m *stderrMonitor) AfterFusion(results []*core.HybridResult) {
	fmt.Fprintf(os.Stderr, "fused: %d candidates\n", len(results))
}

func (m *stderrMonitor) Finish(results []*core.HybridResult) {
	fmt.Fprintf(os.Stderr, "final: %d results\n\n", len(results))
}

func setupLogger(c *cli.Context) error {
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
