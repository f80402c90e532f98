//go:build ignore

package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type record struct {
	Model  string         `json:"model"`
	PK     int64          `json:"pk"`
	Fields map[string]any `json:"fields"`
}

// generateSampleFixtures writes the sample catalog used in development:
// data/fixtures/catalog.json and a gzipped copy catalog.json.gz.
// Category 3 is inactive, as are products 5 and 6.
func main() {
	dataDir := "data/fixtures"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	const created = "2024-01-01T08:00:00.000000Z"
	const updated = "2024-01-15T08:00:00.000000Z"

	category := func(pk int64, name, description string, active bool) record {
		return record{Model: "shop.category", PK: pk, Fields: map[string]any{
			"name": name, "description": description, "active": active,
			"date_created": created, "date_updated": updated,
		}}
	}
	product := func(pk int64, name string, active bool, categoryID int64) record {
		return record{Model: "shop.product", PK: pk, Fields: map[string]any{
			"name": name, "active": active, "category": categoryID,
			"date_created": created, "date_updated": updated,
		}}
	}

	records := []record{
		category(1, "Fruits", "Fresh fruit from local farms", true),
		category(2, "Hygiène", "Toothbrushes, soap and other essentials", true),
		category(3, "Archive", "Discontinued lines", false),
		product(1, "Organic apples", true, 1),
		product(2, "Bananas", true, 1),
		product(3, "Bamboo toothbrush", true, 2),
		product(4, "Olive oil soap", true, 2),
		product(5, "Dried figs", false, 1),
		product(6, "Plastic razor", false, 3),
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode fixtures: %v", err)
	}
	data = append(data, '\n')

	plainPath := filepath.Join(dataDir, "catalog.json")
	if err := os.WriteFile(plainPath, data, 0644); err != nil {
		log.Fatalf("Failed to create %s: %v", plainPath, err)
	}
	fmt.Printf("Created %s with %d records\n", plainPath, len(records))

	gzPath := filepath.Join(dataDir, "catalog.json.gz")
	if err := writeGzip(gzPath, data); err != nil {
		log.Fatalf("Failed to create %s: %v", gzPath, err)
	}
	fmt.Printf("Created %s with %d records\n", gzPath, len(records))
}

func writeGzip(filePath string, data []byte) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	if _, err := gzipWriter.Write(data); err != nil {
		return fmt.Errorf("failed to write fixtures: %w", err)
	}
	return gzipWriter.Close()
}
