package fixture

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for fixture files on the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based fixture loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "fixture-loader").Logger(),
	}
}

// Load reads a fixture file, gunzipping it when the name ends in .gz.
func (l *fileLoader) Load(ctx context.Context, filePath string) (*Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.logger.Info().Str("file", filePath).Msg("loading fixture file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open fixture file")
		return nil, fmt.Errorf("failed to open fixture file %s: %w", filePath, err)
	}
	defer file.Close()

	set, err := decodeStream(file, filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to read fixture file")
		return nil, err
	}

	l.logger.Info().
		Str("file", filePath).
		Int("categories", len(set.Categories)).
		Int("products", len(set.Products)).
		Msg("fixture file loaded successfully")

	return set, nil
}

// decodeStream decodes a fixture document named name from r.
func decodeStream(r io.Reader, name string) (*Set, error) {
	if strings.HasSuffix(name, ".gz") {
		gzipReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", name, err)
		}
		defer gzipReader.Close()
		r = gzipReader
	}

	set, err := Decode(r, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return set, nil
}
