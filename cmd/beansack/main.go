// Copyright 2025 Cafecito Works
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
	"strings"
	"time"

	"github.com/cafecito/beansack"
	"github.com/cafecito/beansack/ai"
	"github.com/cafecito/beansack/core"
	"github.com/cafecito/beansack/query"
	"github.com/urfave/cli/v2"
)

func main() {
	dbFlag := &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		Required: true,
	}
	filterFlags := []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "kind",
			Usage: "Restrict to content kinds (news, blog, post, generated)",
		},
		&cli.StringSliceFlag{
			Name:  "source",
			Usage: "Restrict to sources or share channels",
		},
		&cli.StringSliceFlag{
			Name:  "tag",
			Usage: "Require at least one of these tags (repeatable)",
		},
		&cli.IntFlag{
			Name:  "days",
			Usage: "Only content created in the last N days",
		},
	}

	app := &cli.App{
		Name:  "beansack",
		Usage: "Retrieval console for a beansack content store",
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
				Name:   "search",
				Usage:  "Search stored beans by meaning or by text match",
				Action: searchCommand,
				Flags: append([]cli.Flag{
					dbFlag,
					&cli.StringFlag{
						Name:  "mode",
						Usage: "Search mode: vector or text",
						Value: "vector",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "nomic-embed-text",
					},
					&cli.Float64Flag{
						Name:  "min-score",
						Usage: "Minimum similarity score for vector mode",
						Value: 0.7,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 10,
					},
				}, filterFlags...),
			},
			{
				Name:   "trending",
				Usage:  "Show trending tags for the filtered window",
				Action: trendingCommand,
				Flags: append([]cli.Flag{
					dbFlag,
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of tags",
						Value: 20,
					},
				}, filterFlags...),
			},
			{
				Name:   "count",
				Usage:  "Count beans matching a filter, up to a cap",
				Action: countCommand,
				Flags: append([]cli.Flag{
					dbFlag,
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Counting cap",
						Value: 100,
					},
					&cli.BoolFlag{
						Name:  "unique",
						Usage: "Count one bean per cluster",
					},
				}, filterFlags...),
			},
			{
				Name:   "delete-old",
				Usage:  "Delete beans and chatter older than a retention window",
				Action: deleteOldCommand,
				Flags: []cli.Flag{
					dbFlag,
					&cli.IntFlag{
						Name:  "days",
						Usage: "Retention window in days",
						Value: 30,
					},
				},
			},
			{
				Name:   "sources",
				Usage:  "List distinct sources present in the store",
				Action: sourcesCommand,
				Flags:  []cli.Flag{dbFlag},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// filterFromFlags builds a query filter from the shared filter flags.
func filterFromFlags(c *cli.Context) query.Filter {
	f := query.Filter{
		Kinds:             c.StringSlice("kind"),
		Sources:           c.StringSlice("source"),
		CreatedInLastDays: c.Int("days"),
	}
	return f.WithTags(c.StringSlice("tag")...)
}

func openSack(c *cli.Context) (*beansack.Sack, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithModel(c.String("embedding-model")),
	)
	sack, err := beansack.NewSack(c.String("db"), beansack.WithAIConfig(aiConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return sack, nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	queryText := strings.Join(c.Args().Slice(), " ")
	if queryText == "" {
		return fmt.Errorf("search query is required")
	}

	sack, err := openSack(c)
	if err != nil {
		return err
	}
	defer sack.Close()

	engine, err := sack.NewEngine()
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	defer engine.Close()

	f := filterFromFlags(c)
	limit := c.Int("limit")

	var results []*core.Bean
	switch c.String("mode") {
	case "vector":
		results, err = engine.SemanticSearch(ctx, queryText, f, c.Float64("min-score"), 0, limit)
	case "text":
		results, err = engine.TextSearch(ctx, queryText, f, 0, limit)
	default:
		return fmt.Errorf("invalid mode %q: must be vector or text", c.String("mode"))
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Printf("Found %d hits\n", len(results))
	for i, hit := range results {
		fmt.Printf("%d: %s (%s) %s\n", i, hit.Title, hit.Source, hit.URL)
	}
	return nil
}

func trendingCommand(c *cli.Context) error {
	ctx := context.Background()

	sack, err := beansack.NewSack(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer sack.Close()

	engine, err := sack.NewEngine()
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	defer engine.Close()

	tags, err := engine.TrendingTags(ctx, filterFromFlags(c), 0, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("tag aggregation failed: %w", err)
	}

	for _, tag := range tags {
		fmt.Printf("%6d  %s\n", tag.Count, tag.Tag)
	}
	return nil
}

func countCommand(c *cli.Context) error {
	ctx := context.Background()

	sack, err := beansack.NewSack(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer sack.Close()

	engine, err := sack.NewEngine()
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	defer engine.Close()

	f := filterFromFlags(c)
	limit := c.Int("limit")

	var count int
	if c.Bool("unique") {
		count, err = engine.CountUniqueBeans(ctx, f, limit)
	} else {
		count, err = engine.CountBeans(ctx, f, limit)
	}
	if err != nil {
		return fmt.Errorf("count failed: %w", err)
	}

	if count >= limit {
		fmt.Printf("%d+ beans\n", count)
	} else {
		fmt.Printf("%d beans\n", count)
	}
	return nil
}

func deleteOldCommand(c *cli.Context) error {
	ctx := context.Background()

	days := c.Int("days")
	if days <= 0 {
		return fmt.Errorf("days must be greater than 0")
	}

	sack, err := beansack.NewSack(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer sack.Close()

	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	beansDeleted, err := sack.BeanRepository().DeleteOld(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("bean cleanup failed: %w", err)
	}
	chattersDeleted, err := sack.ChatterRepository().DeleteOld(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("chatter cleanup failed: %w", err)
	}

	fmt.Printf("Deleted %d beans and %d chatter snapshots older than %s\n",
		beansDeleted, chattersDeleted, cutoff.Format(time.DateOnly))
	return nil
}

func sourcesCommand(c *cli.Context) error {
	ctx := context.Background()

	sack, err := beansack.NewSack(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer sack.Close()

	sources, err := sack.BeanRepository().Distinct(ctx, "source")
	if err != nil {
		return fmt.Errorf("source listing failed: %w", err)
	}

	for _, source := range sources {
		fmt.Println(source)
	}
	return nil
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
