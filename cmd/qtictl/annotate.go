package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"qtirender/internal/domain"
	"qtirender/internal/render"
	"qtirender/internal/style"
)

type annotateFlags struct {
	prefix   string
	charset  string
	sanitize bool
	minify   bool
	asJSON   bool
	summary  bool
}

func (f *annotateFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.prefix, "prefix", "a11y-", "Prefix for generated ids")
	fs.StringVar(&f.charset, "charset", "", "Input encoding (default: sniffed from BOM or <meta>)")
	fs.BoolVar(&f.sanitize, "sanitize", false, "Sanitize the markup before labeling")
	fs.BoolVar(&f.minify, "minify", false, "Minify the output")
	fs.BoolVar(&f.asJSON, "json", false, "Print the rendered fragment as JSON")
	fs.BoolVar(&f.summary, "summary", true, "Print a blank summary to stderr")
}

func newAnnotateCmd() *cobra.Command {
	var flags annotateFlags
	cmd := &cobra.Command{
		Use:   "annotate [file]",
		Short: "Label the inline blanks of an HTML fragment",
		Long: `annotate reads an HTML fragment from a file, or stdin when no file is
given, labels its inline blanks and prints the result with the style
tags it needs. Ids are numbered sequentially so output is reproducible.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			return runAnnotate(ctx, in, cmd.OutOrStdout(), cmd.ErrOrStderr(), flags)
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func runAnnotate(ctx context.Context, in io.Reader, out, errOut io.Writer, flags annotateFlags) error {
	contentType := "text/html"
	if flags.charset != "" {
		contentType += "; charset=" + flags.charset
	}
	markup, err := render.ReadMarkup(in, contentType)
	if err != nil {
		return err
	}

	r := render.New(render.Options{
		IDPrefix:   flags.prefix,
		Sanitize:   flags.sanitize,
		Minify:     flags.minify,
		Sequential: true,
	})
	frag, err := r.Render(ctx, markup)
	if err != nil {
		return err
	}

	if flags.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(frag); err != nil {
			return err
		}
	} else {
		if tags := style.Tags(frag.Styles); tags != "" {
			fmt.Fprintln(out, tags)
		}
		fmt.Fprintln(out, frag.HTML)
	}

	if flags.summary {
		printSummary(errOut, frag)
	}
	return nil
}

func printSummary(w io.Writer, frag *domain.RenderedFragment) {
	fmt.Fprintf(w, "%d blank(s)\n", len(frag.Blanks))
	for _, b := range frag.Blanks {
		switch {
		case len(b.LabelledBy) > 0:
			fmt.Fprintf(w, "  %s (%s) labelledby=%v", b.ID, b.Kind, b.LabelledBy)
		case b.Label != "":
			fmt.Fprintf(w, "  %s (%s) label=%q", b.ID, b.Kind, b.Label)
		default:
			fmt.Fprintf(w, "  %s (%s) unlabeled", b.ID, b.Kind)
		}
		if b.ResponseIdentifier != "" {
			fmt.Fprintf(w, " response=%s", b.ResponseIdentifier)
		}
		if b.DescribedBy != "" {
			fmt.Fprintf(w, " describedby=%s", b.DescribedBy)
		}
		fmt.Fprintln(w)
	}
}
