package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"verisem/internal/diagfmt"
	"verisem/internal/driver"
	"verisem/internal/source"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [flags] file.sv",
	Short: "Tokenize a SystemVerilog source file",
	Long:  `Tokens breaks a source file into its token stream, one token per line with its kind and position`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func runTokens(cmd *cobra.Command, args []string) error {
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}

	toks, bag := driver.TokenizeFile(fileSet, id, maxDiagnostics(cmd))
	if bag.Len() > 0 {
		if err := diagfmt.Pretty(os.Stderr, fileSet, bag.Items(), prettyOptions(cmd, os.Stderr)); err != nil {
			return err
		}
	}

	for _, tok := range toks {
		start, _ := fileSet.Resolve(tok.Span)
		if _, err := fmt.Fprintf(os.Stdout, "%4d:%-3d %-12s %q\n", start.Line, start.Col, tok.Kind, tok.Text); err != nil {
			return err
		}
	}
	return nil
}
