package db

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dtnitsch/page-rescue/internal/app"
	dbpkg "github.com/dtnitsch/page-rescue/pkg/db"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// RecordsAction lists stored records, newest first.
func RecordsAction(c *cli.Context) error {
	env, err := app.Load(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	database, err := env.OpenDB()
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	defer database.Close()

	records, err := database.ListRecords(c.Context, c.Int("limit"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to list records: %v", err), 2)
	}

	if len(records) == 0 {
		fmt.Println("No records found")
		return nil
	}

	fmt.Printf("%-6s %-20s %-9s %-14s %s\n", "ID", "Created", "Archived", "Content", "URL")
	fmt.Println(strings.Repeat("-", 100))
	for _, r := range records {
		fmt.Printf("%-6d %-20s %-9t %-14s %s\n",
			r.ID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Archived,
			contentLabel(r.HasSnapshot(), r.AIReconstruction),
			r.URL,
		)
	}

	total, err := database.CountRecords(c.Context)
	if err == nil {
		fmt.Printf("\nShowing %d of %d records\n", len(records), total)
	}
	fmt.Printf("\nTip: Use 'page-rescue db show <id>' to see a full record\n")

	return nil
}

// ShowAction prints one record as YAML.
func ShowAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: page-rescue db show <id>", 1)
	}
	id, err := ParseRecordID(c.Args().First())
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	env, err := app.Load(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	database, err := env.OpenDB()
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	defer database.Close()

	rec, err := database.GetRecord(c.Context, id)
	if errors.Is(err, dbpkg.ErrRecordNotFound) {
		return cli.Exit(fmt.Sprintf("record %d not found", id), 1)
	}
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	out, err := yaml.Marshal(rec)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to marshal record: %v", err), 2)
	}
	_, _ = os.Stdout.Write(out)
	return nil
}

// ImportAction loads records from a YAML or JSON array, such as an export of
// an existing document store.
func ImportAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: page-rescue db import <file>", 1)
	}

	data, err := os.ReadFile(c.Args().First())
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to read import file: %v", err), 1)
	}
	records, err := DecodeRecords(data)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	env, err := app.Load(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	database, err := env.OpenDB()
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	defer database.Close()

	n, err := database.ImportRecords(c.Context, records)
	if err != nil {
		env.Logger.Error("import failed", "error", err)
		return cli.Exit(fmt.Sprintf("failed to import records: %v", err), 2)
	}

	env.Logger.Info("Records imported", "count", n, "database", database.Path())
	fmt.Printf("Imported %d records\n", n)
	return nil
}
