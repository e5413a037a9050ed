// cmd/tools/dataset-generator/main.go
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"stapubox-search/internal/common/config"
	"stapubox-search/internal/common/database"
	"stapubox-search/internal/common/logger"
	"stapubox-search/internal/dataset"
	"stapubox-search/internal/search"
)

func main() {
	seed := flag.Int64("seed", 1, "RNG seed for reproducible datasets")
	out := flag.String("out", "dataset.json", "Output JSON file path")
	index := flag.String("index", "", "Index to load into the configured backend (optional, requires config)")
	flag.Parse()

	records, err := dataset.New(*seed).Generate()
	if err != nil {
		fmt.Printf("Error generating dataset: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated %d records (seed %d)\n", len(records), *seed)

	if err := writeJSON(*out, records); err != nil {
		fmt.Printf("Error writing %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *out)

	if *index == "" {
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	switch cfg.Search.Backend {
	case "elasticsearch":
		esClient, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			fmt.Printf("Error connecting to Elasticsearch: %v\n", err)
			os.Exit(1)
		}
		if err := esClient.Ping(); err != nil {
			fmt.Printf("Error pinging Elasticsearch: %v\n", err)
			os.Exit(1)
		}
		if err := bulkLoad(esClient, *index, records); err != nil {
			fmt.Printf("Error bulk loading: %v\n", err)
			os.Exit(1)
		}

	case "algolia":
		if err := algoliaLoad(cfg, *index, records); err != nil {
			fmt.Printf("Error uploading to Algolia: %v\n", err)
			os.Exit(1)
		}

	default:
		fmt.Printf("Unknown search backend %q\n", cfg.Search.Backend)
		os.Exit(1)
	}

	fmt.Printf("Indexed %d records into %s\n", len(records), *index)
}

// algoliaLoad mirrors the production upload flow: clear the index, then
// push the records through the batch endpoint.
func algoliaLoad(cfg *config.Config, index string, records []dataset.Record) error {
	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	client := search.NewAlgoliaSearcher(
		cfg.Algolia.AppID,
		cfg.Algolia.APIKey,
		cfg.Algolia.BaseURL,
		config.GetDuration(cfg.Algolia.Timeout),
		log,
	)

	objects := make([]map[string]interface{}, len(records))
	for i, r := range records {
		objects[i] = r
	}

	ctx := context.Background()
	if err := client.ClearObjects(ctx, index); err != nil {
		return err
	}
	return client.SaveObjects(ctx, index, objects)
}

func writeJSON(path string, records []dataset.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// bulkLoad pushes records in batches of 500 through the _bulk API.
func bulkLoad(es *database.ElasticsearchClient, index string, records []dataset.Record) error {
	const batchSize = 500

	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}

		var buf bytes.Buffer
		for _, r := range records[start:end] {
			meta := map[string]map[string]string{
				"index": {"_index": index, "_id": fmt.Sprint(r["objectID"])},
			}
			if err := json.NewEncoder(&buf).Encode(meta); err != nil {
				return err
			}
			if err := json.NewEncoder(&buf).Encode(r); err != nil {
				return err
			}
		}

		res, err := es.Client.Bulk(bytes.NewReader(buf.Bytes()),
			es.Client.Bulk.WithIndex(index),
			es.Client.Bulk.WithRefresh("true"),
		)
		if err != nil {
			return err
		}
		body, _ := io.ReadAll(res.Body)
		res.Body.Close()
		if res.IsError() {
			return fmt.Errorf("bulk request failed: %s: %s", res.Status(), body)
		}
	}
	return nil
}
