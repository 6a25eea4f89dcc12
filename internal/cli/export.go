package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/kyaoi/thoughtforge/internal/render"
)

func newExportCmd() *cobra.Command {
	var (
		out    string
		unsafe bool
	)
	cmd := &cobra.Command{
		Use:   "export FILE.md",
		Short: "Render a markdown file to a standalone HTML page",
		Long:  "Render FILE.md to HTML. Front matter is stripped and its title, if any, becomes the page title. Output goes to stdout unless --output is given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			data, err := os.ReadFile(src)
			if err != nil {
				return err
			}
			if !utf8.Valid(data) {
				return fmt.Errorf("%s is not valid UTF-8", src)
			}

			title := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
			page, err := render.NewHTML(unsafe).Page(string(data), title)
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(page)
				return err
			}
			if err := os.WriteFile(out, page, 0o644); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output path for the HTML page (- for stdout)")
	cmd.Flags().BoolVar(&unsafe, "unsafe", false, "pass raw HTML in the markdown through unchanged")
	return cmd
}
