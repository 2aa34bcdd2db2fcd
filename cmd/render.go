package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ahmed-3del/portfolio/internal/page"
	"github.com/Ahmed-3del/portfolio/internal/section"
)

var (
	renderOut  string
	renderLive string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write the composed page as a static HTML file",
	Long: `render composes the home page from the site config and writes it out.
Without --live the page has no live session and shows the first phrase
statically. Use "-o -" to write to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		d := page.FromConfig(cfg, section.Home, time.Now())
		d.LivePath = renderLive

		var w io.Writer = cmd.OutOrStdout()
		if renderOut != "-" {
			f, err := os.Create(renderOut)
			if err != nil {
				return fmt.Errorf("creating %s: %w", renderOut, err)
			}
			defer f.Close()
			w = f
		}
		if err := page.Home(d).Render(w); err != nil {
			return fmt.Errorf("rendering page: %w", err)
		}
		if renderOut != "-" {
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", renderOut)
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "output", "o", "index.html", "output file, - for stdout")
	renderCmd.Flags().StringVar(&renderLive, "live", "", "websocket path for the live session, empty for a static page")
	rootCmd.AddCommand(renderCmd)
}
