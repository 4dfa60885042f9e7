// Command sqldata is a small inspection tool for databases managed by
// the sqldata access layer.
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"sqldata"
)

var flagDB string

func main() {
	root := &cobra.Command{
		Use:          "sqldata",
		Short:        "Inspect and modify a SQLite database through the sqldata access layer",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flagDB, "db", "sqldata.db", "path to the database file")
	root.AddCommand(execCmd(), queryCmd(), tablesCmd(), indexesCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func withDB(fn func(db *sqldata.DB) error) error {
	db := sqldata.New(flagDB)
	defer db.Shutdown()
	return fn(db)
}

func execCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exec <sql>...",
		Short: "Run change statements in order, stopping at the first failure",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *sqldata.DB) error {
				if err := db.ExecuteMultipleChanges(args); err != nil {
					return err
				}
				fmt.Printf("ok (%d statements)\n", len(args))
				return nil
			})
		},
	}
}

func queryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query <sql>",
		Short: "Run a query and print the decoded rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *sqldata.DB) error {
				rows, err := db.ExecuteQuery(args[0])
				if err != nil {
					return err
				}
				for i, row := range rows {
					cols := make([]string, 0, len(row))
					for col := range row {
						cols = append(cols, col)
					}
					sort.Strings(cols)
					parts := make([]string, 0, len(cols))
					for _, col := range cols {
						parts = append(parts, fmt.Sprintf("%s=%s", col, row[col]))
					}
					fmt.Printf("%d: %s\n", i+1, strings.Join(parts, " "))
				}
				fmt.Printf("(%d rows)\n", len(rows))
				return nil
			})
		},
	}
}

func tablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the tables in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *sqldata.DB) error {
				names, err := db.ExistingTables()
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Println(name)
				}
				return nil
			})
		},
	}
}

func indexesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "indexes [table]",
		Short: "List indexes, optionally only those owned by one table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *sqldata.DB) error {
				var names []string
				var err *sqldata.Error
				if len(args) == 1 {
					names, err = db.ExistingIndexesForTable(args[0])
				} else {
					names, err = db.ExistingIndexes()
				}
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Println(name)
				}
				return nil
			})
		},
	}
	return cmd
}
