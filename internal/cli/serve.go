package cli

import (
	"github.com/spf13/cobra"

	"github.com/tsawler/textable/internal/server"
	"github.com/tsawler/textable/store"
)

var (
	serveAddrFlag string
	serveDBFlag   string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the parsing API over HTTP",
	Long: `Serve starts an HTTP server for parsing captures.

Routes:
  GET    /healthz
  GET    /v1/commands
  POST   /v1/parse?command=&name=&save=     body: raw capture or multipart "file"
  POST   /v1/export?command=&name=&format=
  GET    /v1/documents?command=              with a database
  GET    /v1/documents/:id                   with a database
  DELETE /v1/documents/:id                   with a database
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadedConfig()
		if err != nil {
			return err
		}
		if serveAddrFlag != "" {
			cfg.Server.Addr = serveAddrFlag
		}

		dbPath := serveDBFlag
		if dbPath == "" {
			dbPath = cfg.Store.Path
		}
		var st *store.Store
		if dbPath != "" {
			st, err = store.Open(dbPath)
			if err != nil {
				return err
			}
			defer st.Close()
		}

		ctx, cancel := signalContext()
		defer cancel()

		return server.New(cfg, st).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddrFlag, "addr", "", "listen address (default from config, :8080)")
	serveCmd.Flags().StringVar(&serveDBFlag, "db", "", "SQLite database for saved documents (default from config)")
}
