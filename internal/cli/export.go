package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/resloader/pkg/export"
)

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every resolved value resource to a SQLite snapshot",
		Long: `Resolve every loaded value resource and append the result as a new snapshot
to a SQLite database. Repeated exports to the same file can be compared with SQL.`,
		Example: `  resloader export --out snapshot.db
  sqlite3 snapshot.db 'SELECT name, value FROM entries WHERE type = "string"'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.initProject(cmd.Context())
			if err != nil {
				return err
			}
			defer p.Close()

			prog := newProgress(loggerFromContext(cmd.Context()))
			snap, err := export.FromEngine(p.engine, p.cfg.Package, p.cfg.Locale)
			if err != nil {
				return err
			}

			store, err := export.Open(out)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.Write(cmd.Context(), snap); err != nil {
				return err
			}
			prog.step("snapshot written", "entries", len(snap.Entries), "db", out)

			printSuccess("Exported %d entries", len(snap.Entries))
			printKeyValue("Snapshot", snap.ID.String())
			printFile(out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "snapshot.db", "SQLite database to write")
	return cmd
}
