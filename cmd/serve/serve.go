// Package serve handles the HTTP API server command
package serve

import (
	"net/http"

	"presyohan/pricelist/cmd/root"
	serverhttp "presyohan/pricelist/server/http"

	"github.com/spf13/cobra"
)

var addr string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the import HTTP API",
	Long: `Serve exposes the parse, dry-run and apply operations as a small
JSON API for callers that drive imports programmatically.`,
	Run: serveFunc,
}

func init() {
	Cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides configuration)")
}

func serveFunc(cmd *cobra.Command, args []string) {
	c, err := root.BuildContainer()
	if err != nil {
		root.Log.Fatalf("Error loading configuration: %v", err)
	}

	listen := c.Config().Server.Addr
	if addr != "" {
		listen = addr
	}

	router := serverhttp.NewRouter(c)
	root.Log.Infof("Listening on %s", listen)
	if err := http.ListenAndServe(listen, router); err != nil {
		root.Log.Fatalf("Server error: %v", err)
	}
}
