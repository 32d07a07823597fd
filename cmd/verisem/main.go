package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"verisem/internal/diagfmt"
	"verisem/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "verisem",
	Short: "SystemVerilog symbol table and reference resolver",
	Long:  `verisem builds hierarchical symbol tables for SystemVerilog sources and resolves identifier references to their declarations`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(symbolsCmd)
	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics per file (0 = default)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// prettyOptions derives renderer options from the persistent color flag.
func prettyOptions(cmd *cobra.Command, out *os.File) diagfmt.Options {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	opts := diagfmt.Options{IsTTY: isTerminal(out)}
	switch colorFlag {
	case "on":
		opts.Color = diagfmt.ColorAlways
	case "off":
		opts.Color = diagfmt.ColorNever
	default:
		opts.Color = diagfmt.ColorAuto
	}
	return opts
}

func maxDiagnostics(cmd *cobra.Command) int {
	n, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	return n
}
