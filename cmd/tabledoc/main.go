package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tabledoc/tabledoc"
)

var (
	dbURL      string
	mysqlURL   string
	sqlitePath string
	outputFile string
	outputDir  string
	schemaName string
)

var rootCmd = &cobra.Command{
	Use:   "tabledoc <table>",
	Short: "Generate HTML reference documentation for a database table",
	Long: `tabledoc reads the catalog of a PostgreSQL, MySQL, or SQLite database and
writes a self-contained HTML document describing one table: its columns,
foreign keys, indexes, comments, and its dependencies on other tables and
stored routines.`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&dbURL, "db-url", "", "PostgreSQL connection string")
	rootCmd.Flags().StringVar(&mysqlURL, "mysql-url", "", "MySQL connection string")
	rootCmd.Flags().StringVar(&sqlitePath, "sqlite", "", "SQLite database file path")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	rootCmd.Flags().StringVarP(&outputDir, "output-dir", "d", "", "Output directory, document is written as <table>.html")
	rootCmd.Flags().StringVarP(&schemaName, "schema", "s", "", "Database schema name (default: public for PostgreSQL)")
}

func run(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	table := args[0]

	url, err := databaseURL()
	if err != nil {
		return err
	}

	if outputDir != "" && outputFile != "" {
		return fmt.Errorf("cannot use both --output-dir and --output flags")
	}
	if outputDir == "" && outputFile == "" {
		outputDir = os.Getenv("TABLEDOC_OUTPUT_DIR")
	}

	opts := &tabledoc.Options{SchemaName: schemaName}

	if outputDir != "" {
		return tabledoc.DescribeAndExport(ctx, url, table, opts, &tabledoc.OutputOptions{OutputDir: outputDir})
	}

	writer := os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to close output file: %v\n", err)
			}
		}()
		writer = f
	}

	return tabledoc.DescribeAndExport(ctx, url, table, opts, &tabledoc.OutputOptions{Writer: writer})
}

// databaseURL picks the connection URL from flags, falling back to
// TABLEDOC_DB_URL. Exactly one source must be set.
func databaseURL() (string, error) {
	count := 0
	url := ""

	if dbURL != "" {
		count++
		url = dbURL
	}
	if mysqlURL != "" {
		count++
		url = mysqlURL
		if !strings.HasPrefix(url, "mysql://") {
			url = "mysql://" + url
		}
	}
	if sqlitePath != "" {
		count++
		url = "sqlite://" + sqlitePath
	}

	if count == 0 {
		if env := os.Getenv("TABLEDOC_DB_URL"); env != "" {
			return env, nil
		}
		return "", fmt.Errorf("one of --db-url, --mysql-url, or --sqlite must be specified (or set TABLEDOC_DB_URL)")
	}
	if count > 1 {
		return "", fmt.Errorf("only one of --db-url, --mysql-url, or --sqlite can be specified")
	}

	return url, nil
}

func main() {
	// .env is optional; flags and real env vars win over it.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
