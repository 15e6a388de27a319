package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jacentio/todos/internal/config"
	"github.com/jacentio/todos/store"
)

const (
	defaultTable    = "local-todos"
	defaultEndpoint = "http://localhost:8000"
	defaultCount    = 3
)

// tableFlags are shared by every subcommand. Empty values fall back to the
// environment and then to the local emulator defaults.
type tableFlags struct {
	table    string
	endpoint string
	region   string
}

func (f *tableFlags) storeConfig() (store.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return store.Config{}, err
	}
	sc := cfg.Store
	if f.table != "" {
		sc.TableName = f.table
	}
	if f.endpoint != "" {
		sc.Endpoint = f.endpoint
	}
	if f.region != "" {
		sc.Region = f.region
	}
	if sc.TableName == "" {
		sc.TableName = defaultTable
	}
	if sc.Endpoint == "" {
		sc.Endpoint = defaultEndpoint
	}
	return sc, nil
}

// opener is swapped in tests.
var opener store.OpenFunc = store.Open

func newRootCmd() *cobra.Command {
	flags := &tableFlags{}

	root := &cobra.Command{
		Use:           "todo-table",
		Short:         "Provision and seed the todo table",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.table, "table", "", "table name (default $TABLE_NAME or "+defaultTable+")")
	root.PersistentFlags().StringVar(&flags.endpoint, "endpoint", "", "DynamoDB endpoint (default $DDB_ENDPOINT or "+defaultEndpoint+")")
	root.PersistentFlags().StringVar(&flags.region, "region", "", "AWS region (default $AWS_REGION)")

	root.AddCommand(newEnsureCmd(flags), newSeedCmd(flags))
	return root
}

func newEnsureCmd(flags *tableFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "ensure",
		Short: "Create the table and its status index if missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tbl, err := openTable(cmd, flags)
			if err != nil {
				return err
			}
			return ensure(cmd, tbl)
		},
	}
}

func newSeedCmd(flags *tableFlags) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Ensure the table and put sample items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 0 {
				return fmt.Errorf("--count must not be negative, got %d", count)
			}
			tbl, err := openTable(cmd, flags)
			if err != nil {
				return err
			}
			if err := ensure(cmd, tbl); err != nil {
				return err
			}
			items, err := tbl.Seed(cmd.Context(), count, uuid.NewString)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d items.\n", len(items))
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", defaultCount, "number of sample items")
	return cmd
}

func openTable(cmd *cobra.Command, flags *tableFlags) (*store.Table, error) {
	sc, err := flags.storeConfig()
	if err != nil {
		return nil, err
	}
	return opener(cmd.Context(), sc)
}

func ensure(cmd *cobra.Command, tbl *store.Table) error {
	created, err := tbl.EnsureTable(cmd.Context())
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintln(cmd.OutOrStdout(), "Creating table...")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Table ready: %s\n", tbl.Name())
	return nil
}
