package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/valter-silva-au/onboard/internal/web"
)

var (
	servePort   int
	serveStatic string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web front end",
	Long: `Start the HTTP server: POST /api/generate runs the onboarding
pipeline over the offline demo session and returns the full run result as
JSON; all other paths are served from the static directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server := web.NewServer(serveStatic, sessionTimeout())

		addr := fmt.Sprintf(":%d", servePort)
		fmt.Printf("Serving on http://localhost%s (static dir: %s)\n", addr, serveStatic)
		if err := http.ListenAndServe(addr, server.Handler()); err != nil {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "port to listen on")
	serveCmd.Flags().StringVar(&serveStatic, "static", "web", "directory with static files")
	rootCmd.AddCommand(serveCmd)
}
