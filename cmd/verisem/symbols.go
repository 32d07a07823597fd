package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"verisem/internal/diagfmt"
	"verisem/internal/driver"
	"verisem/internal/source"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols [flags] file.sv",
	Short: "Print the resolved symbol table of a source file",
	Long:  `Symbols builds the scope tree for one file, resolves every captured reference and prints both the tree and the reference-to-definition map`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSymbols,
}

func init() {
	symbolsCmd.Flags().Bool("refs", true, "print the reference-to-definition map")
}

func runSymbols(cmd *cobra.Command, args []string) error {
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}

	res := driver.AnalyzeFile(fileSet, id, maxDiagnostics(cmd))
	if res.Bag.Len() > 0 {
		if err := diagfmt.Pretty(os.Stderr, fileSet, res.Bag.Items(), prettyOptions(cmd, os.Stderr)); err != nil {
			return err
		}
	}

	fmt.Fprint(os.Stdout, res.Table.DumpScopeTree())

	showRefs, _ := cmd.Flags().GetBool("refs")
	if showRefs {
		chains := res.Table.ResolvedChainMap()
		if len(chains) > 0 {
			fmt.Fprintln(os.Stdout)
			names := make([]string, 0, len(chains))
			for name := range chains {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(os.Stdout, "%s -> %s\n", name, chains[name])
			}
		}
	}

	if res.Bag.HasErrors() {
		return fmt.Errorf("analysis reported errors")
	}
	return nil
}
