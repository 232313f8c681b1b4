package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailpreview/pkg/preview"
)

var envFiles []string

var rootCmd = &cobra.Command{
	Use:   "mailpreview",
	Short: "Live previewer for EJS email templates",
	Long: `mailpreview composes EJS email templates from a body, a shared header and a
shared footer, renders them with JSON test data and relays the result to a
real inbox.

Configuration is read from the environment and from .env files.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load (default .env when present)")
}

// templateFlags names the files of a template set on disk.
type templateFlags struct {
	body   string
	header string
	footer string
	data   string
}

func (f *templateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.header, "header", "", "header partial file")
	cmd.Flags().StringVar(&f.footer, "footer", "", "footer partial file")
	cmd.Flags().StringVar(&f.data, "data", "", "JSON data file")
}

// paths returns the files that exist on disk, body first.
func (f *templateFlags) paths() []string {
	out := []string{f.body}
	for _, p := range []string{f.header, f.footer, f.data} {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// read loads the template set. Optional files that are not given are empty.
func (f *templateFlags) read() (preview.Input, error) {
	var in preview.Input
	for _, it := range []struct {
		path string
		dst  *string
	}{
		{f.body, &in.Body},
		{f.header, &in.Header},
		{f.footer, &in.Footer},
		{f.data, &in.Data},
	} {
		if it.path == "" {
			continue
		}
		b, err := os.ReadFile(it.path)
		if err != nil {
			return in, fmt.Errorf("read %s: %w", filepath.Base(it.path), err)
		}
		*it.dst = string(b)
	}
	return in, nil
}

// errRenderFailed marks a template error already reported to the user.
var errRenderFailed = errors.New("render failed")

// renderInput renders in and reports a template error on stderr.
func renderInput(cmd *cobra.Command, r *preview.Renderer, in preview.Input) (preview.Result, error) {
	res := r.Render(cmd.Context(), in)
	if !res.OK() {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", res.Message)
		return res, errRenderFailed
	}
	return res, nil
}
