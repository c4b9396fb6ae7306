package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/entities"
	"github.com/mrlokans/bookshelf/internal/schemas"
)

// BookCreator is the part of the repository the importer needs.
type BookCreator interface {
	Create(ctx context.Context, in schemas.BookCreate) (entities.Book, error)
}

// ImportJSONCommand bulk-creates books from a JSON array of
// {"title","author","year"} objects.
type ImportJSONCommand struct {
	FilePath     string
	DatabasePath string
	Verbose      bool
	DryRun       bool

	Out io.Writer
}

// ImportResult summarises an import run.
type ImportResult struct {
	Total    int
	Imported int
	Errors   []string
}

// NewImportJSONCommand creates a new ImportJSONCommand
func NewImportJSONCommand() *ImportJSONCommand {
	return &ImportJSONCommand{Out: os.Stdout}
}

// ParseFlags parses command line flags
func (cmd *ImportJSONCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-json", flag.ContinueOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to a JSON file containing an array of books (required)")
	fs.StringVar(&cmd.DatabasePath, "db", envOrDefault("DATABASE_PATH", config.DefaultDatabasePath), "Path to the books database file")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Print every imported book")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Validate the file without writing to the database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-json -file books.json [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create books from a JSON array. Every record is validated with the same rules\n")
		fmt.Fprintf(os.Stderr, "as the HTTP API; invalid records are reported and skipped.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s import-json -file books.json -dry-run\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.FilePath == "" {
		fs.Usage()
		return fmt.Errorf("-file is required")
	}
	return nil
}

// Run executes the import command
func (cmd *ImportJSONCommand) Run() error {
	if cmd.Out == nil {
		cmd.Out = os.Stdout
	}
	ctx := context.Background()

	fmt.Fprintln(cmd.Out, "📚 JSON Import")
	fmt.Fprintln(cmd.Out, "==============")
	if cmd.DryRun {
		fmt.Fprintln(cmd.Out, "🔍 DRY RUN MODE - No changes will be made")
	}

	records, err := readRecords(cmd.FilePath)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.Out, "📖 Found %d records in %s\n", len(records), cmd.FilePath)

	var store BookCreator
	if !cmd.DryRun {
		absDBPath, err := filepath.Abs(cmd.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to get absolute path for database: %w", err)
		}
		fmt.Fprintf(cmd.Out, "💾 Saving to database: %s\n", absDBPath)

		db, err := database.NewDatabaseWithLogLevel(absDBPath, logger.Silent)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()
		store = books.NewRepository(db.DB)
	}

	result := cmd.importRecords(ctx, store, records)

	fmt.Fprintln(cmd.Out, "\n=== Import Summary ===")
	if cmd.DryRun {
		fmt.Fprintf(cmd.Out, "📚 Valid records: %d/%d\n", result.Imported, result.Total)
	} else {
		fmt.Fprintf(cmd.Out, "📚 Books saved: %d/%d\n", result.Imported, result.Total)
	}
	if len(result.Errors) > 0 {
		fmt.Fprintf(cmd.Out, "\n⚠️  %d errors occurred:\n", len(result.Errors))
		for _, msg := range result.Errors {
			fmt.Fprintf(cmd.Out, "  ❌ %s\n", msg)
		}
		return fmt.Errorf("%d of %d records were not imported", len(result.Errors), result.Total)
	}

	fmt.Fprintln(cmd.Out, "\n✅ Import complete!")
	return nil
}

// importRecords validates every record and, unless store is nil, creates it.
// Each create runs in its own transaction, so one failure does not undo the others.
func (cmd *ImportJSONCommand) importRecords(ctx context.Context, store BookCreator, records []schemas.BookCreate) ImportResult {
	result := ImportResult{Total: len(records)}

	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("record %d: %v", i+1, err))
			continue
		}

		if store == nil {
			result.Imported++
			continue
		}

		book, err := store.Create(ctx, rec)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("record %d (%q): %v", i+1, rec.Title, err))
			continue
		}
		result.Imported++

		if cmd.Verbose {
			if book.HasYear() {
				fmt.Fprintf(cmd.Out, "  ✅ #%d \"%s\" by %s (%d)\n", book.ID, book.Title, book.Author, *book.Year)
			} else {
				fmt.Fprintf(cmd.Out, "  ✅ #%d \"%s\" by %s\n", book.ID, book.Title, book.Author)
			}
		}
	}
	return result
}

func readRecords(path string) ([]schemas.BookCreate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var records []schemas.BookCreate
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: expected a JSON array of books: %w", path, err)
	}
	return records, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
