package cli

import (
	"bufio"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/voracio/sheetsense/internal/domain/document"
	"github.com/voracio/sheetsense/internal/export"
	"github.com/voracio/sheetsense/pkg/errors"
)

type resolveOptions struct {
	documentPath   string
	attributesPath string
	attrs          []string
	fallback       bool
	batch          bool
}

func newResolveCmd(root *rootOptions) *cobra.Command {
	opts := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve attributes against a document",
		Long:  "Reads an extracted document (JSON with lines and tables) and resolves the requested attribute names against it, printing one result per attribute.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.documentPath, "document", "d", "", "path to the extracted document JSON (required)")
	cmd.Flags().StringVar(&opts.attributesPath, "attributes", "", "path to a file with one attribute name per line")
	cmd.Flags().StringArrayVarP(&opts.attrs, "attr", "a", nil, "attribute name to resolve (repeatable)")
	cmd.Flags().BoolVar(&opts.fallback, "fallback", false, "enable the LLM fallback for unresolved attributes")
	cmd.Flags().BoolVar(&opts.batch, "batch", false, "send unresolved attributes in one batched fallback request")
	_ = cmd.MarkFlagRequired("document")
	return cmd
}

// readAttributes merges the --attr flags with the attributes file, keeping
// the given order.
func readAttributes(opts *resolveOptions) ([]string, error) {
	attrs := append([]string(nil), opts.attrs...)
	if opts.attributesPath != "" {
		f, err := os.Open(opts.attributesPath)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInvalidParam, "open attributes file")
		}
		defer f.Close()
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			if line := strings.TrimSpace(sc.Text()); line != "" {
				attrs = append(attrs, line)
			}
		}
		if err := sc.Err(); err != nil {
			return nil, errors.Wrap(err, errors.CodeInvalidParam, "read attributes file")
		}
	}
	return attrs, nil
}

func runResolve(cmd *cobra.Command, root *rootOptions, opts *resolveOptions) error {
	format, err := export.ParseFormat(root.output)
	if err != nil {
		return err
	}

	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	cfg.Engine.EnableFallback = cfg.Engine.EnableFallback || opts.fallback
	cfg.Engine.BatchFallback = cfg.Engine.BatchFallback || opts.batch
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	f, err := os.Open(opts.documentPath)
	if err != nil {
		return errors.Wrap(err, errors.CodeDocumentUnavailable, "open document")
	}
	defer f.Close()
	doc, err := document.FromJSON(f)
	if err != nil {
		return err
	}

	attrs, err := readAttributes(opts)
	if err != nil {
		return err
	}

	syn, err := loadSynonyms(cfg)
	if err != nil {
		return err
	}
	resolver := buildResolver(cfg, syn, logger, nil)

	results, err := resolver.ResolveAll(cmd.Context(), doc, attrs)
	if err != nil {
		return err
	}
	return export.Write(cmd.OutOrStdout(), format, results)
}
