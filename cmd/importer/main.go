// Command importer bulk-loads the book catalog from a CSV file with columns
// isbn,title,author,year (header row skipped).
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/dvanenk/bookery/internal/pkg/config"

	database "github.com/dvanenk/bookery/internal/db"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	file := flag.String("file", "books.csv", "path to the books CSV file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file, using environment variables")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pool, err := database.Init(cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.RunMigrations(cfg.DatabaseURL, logger); err != nil {
		return err
	}

	f, err := os.Open(*file)
	if err != nil {
		return fmt.Errorf("opening %s: %w", *file, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("reading %s: %w", *file, err)
	}
	if len(records) <= 1 {
		logger.Warn("No book rows found in CSV", zap.String("file", *file))
		return nil
	}

	rows := make([][]any, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != 4 {
			return fmt.Errorf("row %d: expected 4 columns, got %d", i+2, len(record))
		}
		isbn, title, author := record[0], record[1], record[2]
		year, err := strconv.Atoi(record[3])
		if err != nil {
			return fmt.Errorf("row %d: invalid year %q: %w", i+2, record[3], err)
		}
		rows = append(rows, []any{title, author, year, isbn})
	}

	copied, err := pool.CopyFrom(
		context.Background(),
		pgx.Identifier{"books"},
		[]string{"title", "author", "year", "isbn"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("bulk load failed: %w", err)
	}

	logger.Info("Catalog imported", zap.Int64("books", copied), zap.String("file", *file))
	return nil
}
