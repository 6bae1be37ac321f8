// cmd/seed/main.go
package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newDataDirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "data-dir",
		Usage:   "Directory containing reference seed data",
		Value:   "./data/seeds/reference",
		EnvVars: []string{"SEED_DATA_DIR"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed the database with reference data",
		Flags: []cli.Flag{
			newDBURLFlag(),
		},
		Commands: []*cli.Command{
			{
				Name:   "reference",
				Usage:  "Seed reference data (countries, currencies, uoms, shipping lines, consignees)",
				Flags:  []cli.Flag{newDBURLFlag(), newDataDirFlag()},
				Action: runSeeder,
			},
			{
				Name:   "statuses",
				Usage:  "Print the shipment status progression used by the application",
				Action: printStatuses,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runSeeder(c *cli.Context) error {
	dbURL := c.String("db-url")
	dataDir := c.String("data-dir")

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	log.Println("Starting reference data seeding...")

	if err := seedReferenceData(ctx, tx, dataDir); err != nil {
		return fmt.Errorf("failed to seed reference data: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Println("Reference data seeding completed successfully!")
	return nil
}

func seedReferenceData(ctx context.Context, tx *sql.Tx, dataDir string) error {
	tables := []struct {
		name     string
		columns  []string
		conflict string
		file     string
	}{
		{"countries", []string{"code", "name"}, "code", "countries.csv"},
		{"currencies", []string{"code", "name", "symbol"}, "code", "currencies.csv"},
		{"cities", []string{"country_id", "name"}, "name", "cities.csv"},
		{"item_types", []string{"name"}, "name", "item_types.csv"},
		{"uoms", []string{"code", "name", "pieces_per_unit"}, "code", "uoms.csv"},
		{"shipping_lines", []string{"name"}, "name", "shipping_lines.csv"},
		{"consignees", []string{"name", "city_id"}, "name", "consignees.csv"},
		{"final_destinations", []string{"name", "country_id"}, "name", "final_destinations.csv"},
	}

	for _, t := range tables {
		path := filepath.Join(dataDir, t.file)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			log.Printf("Skipping %s: %s not found\n", t.name, path)
			continue
		}
		if err := seedTable(ctx, tx, t.name, t.columns, t.conflict, path); err != nil {
			return fmt.Errorf("failed to seed %s: %w", t.name, err)
		}
	}
	return nil
}

func seedTable(ctx context.Context, tx *sql.Tx, tableName string, columns []string, conflictCol, filePath string) error {
	log.Printf("Seeding %s from %s\n", tableName, filePath)

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s, created_at, updated_at) VALUES (%s, NOW(), NOW()) ON CONFLICT (%s) DO UPDATE SET %s, updated_at = NOW()",
		tableName,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		conflictCol,
		buildUpdateClause(columns),
	)

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read CSV record: %w", err)
		}

		args := make([]interface{}, len(columns))
		for i, col := range columns {
			idx := getColumnIndex(header, col)
			if idx < 0 || idx >= len(record) {
				return fmt.Errorf("column '%s' missing in %s", col, filePath)
			}
			args[i] = nullIfEmpty(record[idx])
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert record into %s: %w", tableName, err)
		}
		count++
	}

	log.Printf("Successfully seeded %s (%d rows)\n", tableName, count)
	return nil
}

func printStatuses(c *cli.Context) error {
	statuses := []string{"Pending", "In Transit", "Port", "Border", "Off load", "Delivered"}
	for i, s := range statuses {
		fmt.Printf("%d. %s\n", i+1, s)
	}
	return nil
}

func buildUpdateClause(columns []string) string {
	clauses := make([]string, 0, len(columns))
	for _, col := range columns {
		clauses = append(clauses, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}
	return strings.Join(clauses, ", ")
}

func getColumnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

// nullIfEmpty returns NULL for empty strings so optional columns stay unset
func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
