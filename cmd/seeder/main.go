package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/cafecito/beansack"
	"github.com/cafecito/beansack/core"
)

// sample stories across a few synthetic sources, grouped into clusters the
// way an upstream deduplicator would assign them
var samples = []*core.Bean{
	{
		URL:       "https://example-wire.com/grid-storage-record",
		Title:     "Grid-scale battery storage hits record installs",
		Kind:      core.KindNews,
		Source:    "example-wire",
		Summary:   "Utilities installed more battery capacity last quarter than in all of the prior year.",
		Tags:      []string{"Energy Storage", "Utilities"},
		Regions:   []string{"US"},
		ClusterID: "grid-storage-q3",
	},
	{
		URL:       "https://daily-ledger.com/battery-boom",
		Title:     "The battery boom nobody saw coming",
		Kind:      core.KindNews,
		Source:    "daily-ledger",
		Summary:   "A surge in grid storage deployments is reshaping utility planning.",
		Tags:      []string{"Energy Storage"},
		Regions:   []string{"US"},
		ClusterID: "grid-storage-q3",
	},
	{
		URL:       "https://example-wire.com/chip-export-rules",
		Title:     "New export rules tighten advanced chip shipments",
		Kind:      core.KindNews,
		Source:    "example-wire",
		Summary:   "Regulators expanded licensing requirements for high-end accelerators.",
		Tags:      []string{"Semiconductors", "Trade Policy"},
		Regions:   []string{"US", "APAC"},
		ClusterID: "chip-exports",
	},
	{
		URL:       "https://tech-notes.dev/reading-the-chip-rules",
		Title:     "Reading the fine print on the new chip rules",
		Kind:      core.KindBlog,
		Source:    "tech-notes",
		Summary:   "What the licensing thresholds actually mean for datacenter buildouts.",
		Tags:      []string{"Semiconductors"},
		ClusterID: "chip-exports",
	},
	{
		URL:      "https://forum.example.com/t/chip-rules-discussion",
		Title:    "So how bad are the new export rules really?",
		Kind:     core.KindPost,
		Source:   "example-forum",
		SharedIn: []string{"hardware"},
		Tags:     []string{"Semiconductors"},
	},
	{
		URL:     "https://daily-ledger.com/rate-cut-signals",
		Title:   "Central bank signals a slower path to rate cuts",
		Kind:    core.KindNews,
		Source:  "daily-ledger",
		Summary: "Officials pointed to sticky services inflation in the latest minutes.",
		Tags:    []string{"Monetary Policy", "Inflation"},
		Regions: []string{"EU"},
	},
	{
		URL:     "https://tech-notes.dev/vector-db-shootout",
		Title:   "A practical vector database shootout",
		Kind:    core.KindBlog,
		Source:  "tech-notes",
		Summary: "Benchmarking recall and latency across five embedded vector stores.",
		Tags:    []string{"Databases", "Machine Learning"},
	},
	{
		URL:      "https://forum.example.com/t/homelab-backups",
		Title:    "What is everyone using for homelab backups these days?",
		Kind:     core.KindPost,
		Source:   "example-forum",
		SharedIn: []string{"selfhosted"},
		Tags:     []string{"Backups"},
	},
}

var dbPath = flag.String("db", "./beansack_db", "database directory")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func main() {
	sack, err := beansack.NewSack(*dbPath)
	if err != nil {
		panic(err)
	}
	defer sack.Close()

	pipeline, err := sack.NewIngestionPipeline()
	if err != nil {
		panic(err)
	}
	defer pipeline.Release()

	ctx := context.Background()
	now := time.Now().UTC()
	for i, bean := range samples {
		// spread creation times over the past week so window filters and
		// sort orders have something to bite on
		bean.Created = now.Add(-time.Duration(i*19) * time.Hour)
	}

	stored, err := pipeline.StoreBeans(ctx, samples...)
	if err != nil {
		panic(err)
	}
	pipeline.Wait()

	slog.Info("seeding complete", "stored", len(stored), "offered", len(samples))
}
