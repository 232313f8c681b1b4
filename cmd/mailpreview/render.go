package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailpreview/pkg/preview"
)

var renderFlags struct {
	templateFlags
	out      string
	sanitize bool
}

var renderCmd = &cobra.Command{
	Use:   "render BODY",
	Short: "Render a template to HTML",
	Long: `Render composes BODY with the header and footer partials, renders it with
the JSON data and writes the HTML to stdout or --out.

Template errors are printed to stderr and no HTML is written.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		renderFlags.body = args[0]
		in, err := renderFlags.read()
		if err != nil {
			return err
		}

		r := preview.New(preview.WithSanitize(renderFlags.sanitize))
		res, err := renderInput(cmd, r, in)
		if err != nil {
			return err
		}

		if renderFlags.out == "" {
			_, err = fmt.Fprint(cmd.OutOrStdout(), res.HTML)
			return err
		}
		if err := os.WriteFile(renderFlags.out, []byte(res.HTML), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Rendered %q to %s\n", res.Subject, renderFlags.out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderFlags.register(renderCmd)
	renderCmd.Flags().StringVarP(&renderFlags.out, "out", "o", "", "output file (default stdout)")
	renderCmd.Flags().BoolVar(&renderFlags.sanitize, "sanitize", false, "run the output through the email HTML policy")
}
