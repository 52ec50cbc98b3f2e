package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/bookhaven/bookstore/internal/catalog"
	"github.com/bookhaven/bookstore/pkg/config"
	"github.com/bookhaven/bookstore/pkg/db"
	"github.com/bookhaven/bookstore/pkg/logger"
	"github.com/bookhaven/bookstore/pkg/migrate"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Seeds the catalog from a CSV file (title,author,genre,price,description)
// or from a small built-in starter list when no file is given. Refuses to
// touch a catalog that already has books.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	file := flag.String("file", "", "CSV file with title,author,genre,price,description rows")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	err = migrate.MaybeRun(ctx, cfg, logg, dbClient)
	requireResource(ctx, logg, "migrations", err)

	svc, err := catalog.NewService(catalog.NewRepository(dbClient.DB()))
	requireResource(ctx, logg, "catalog service", err)

	inputs := starterBooks()
	if *file != "" {
		inputs, err = readCSV(*file)
		requireResource(ctx, logg, "csv file", err)
	}

	count, err := svc.Import(ctx, inputs)
	if err != nil {
		logg.Error(ctx, "seeding failed", err)
		os.Exit(1)
	}

	logg.Info(logg.WithField(ctx, "books", count), "catalog seeded")
}

func requireResource(ctx context.Context, logg *logger.Logger, name string, err error) {
	if err != nil {
		logg.Error(ctx, "failed to initialize "+name, err)
		os.Exit(1)
	}
}

func readCSV(path string) ([]catalog.BookInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var inputs []catalog.BookInput
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) < 4 {
			return nil, fmt.Errorf("row %d: want at least 4 fields (title,author,genre,price), got %d", len(inputs)+1, len(record))
		}
		price, err := decimal.NewFromString(record[3])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad price %q: %w", len(inputs)+1, record[3], err)
		}
		input := catalog.BookInput{
			Title:  record[0],
			Author: record[1],
			Genre:  record[2],
			Price:  price,
		}
		if len(record) > 4 {
			input.Description = record[4]
		}
		inputs = append(inputs, input)
	}
	return inputs, nil
}

func starterBooks() []catalog.BookInput {
	return []catalog.BookInput{
		{Title: "Fiction Tales", Author: "Ann Writer", Genre: "Mystery", Price: decimal.NewFromFloat(20.0), Description: "A captivating story."},
		{Title: "Deep Work", Author: "Cal Newport", Genre: "Non-Fiction", Price: decimal.NewFromFloat(15.0), Description: "An informative read."},
		{Title: "The Sea", Author: "John Banville", Genre: "Fiction", Price: decimal.NewFromFloat(12.5), Description: "A quiet novel of memory."},
		{Title: "The Pragmatic Programmer", Author: "Andrew Hunt", Genre: "Non-Fiction", Price: decimal.NewFromFloat(31.99), Description: "From journeyman to master."},
		{Title: "Piranesi", Author: "Susanna Clarke", Genre: "Fantasy", Price: decimal.NewFromFloat(17.0), Description: "The house is kind to those it keeps."},
	}
}
