package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"verisem/internal/diag"
	"verisem/internal/diagfmt"
	"verisem/internal/driver"
	"verisem/internal/project"
	"verisem/internal/source"
	"verisem/internal/ui"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file.sv|directory>",
	Short: "Analyze sources and report diagnostics",
	Long:  `Diag runs the full analysis pipeline (parse, symbol table, resolution) over a file or a directory tree and reports every diagnostic found`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDiag,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	diagCmd.Flags().Int("jobs", 0, "number of parallel analyses (0 = one per CPU)")
	diagCmd.Flags().Bool("disk-cache", false, "reuse cached results for unchanged files")
	diagCmd.Flags().Bool("no-progress", false, "disable the progress display")
}

func runDiag(cmd *cobra.Command, args []string) error {
	target := args[0]
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", target, err)
	}

	format, _ := cmd.Flags().GetString("format")
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	if !info.IsDir() {
		return diagFile(cmd, target, format)
	}
	return diagDir(cmd, target, format)
}

func diagFile(cmd *cobra.Command, path, format string) error {
	fileSet := source.NewFileSet()
	id, err := fileSet.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}

	res := driver.AnalyzeFile(fileSet, id, maxDiagnostics(cmd))
	res.Bag.Sort()
	if err := emitDiags(cmd, fileSet, res.Bag, format); err != nil {
		return err
	}
	if res.Bag.HasErrors() {
		return fmt.Errorf("analysis reported errors")
	}
	return nil
}

func diagDir(cmd *cobra.Command, dir, format string) error {
	jobs, _ := cmd.Flags().GetInt("jobs")
	useCache, _ := cmd.Flags().GetBool("disk-cache")
	noProgress, _ := cmd.Flags().GetBool("no-progress")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	opts := driver.DirOptions{
		MaxDiagnostics: maxDiagnostics(cmd),
		Jobs:           jobs,
	}

	// The project manifest supplies defaults the flags did not set.
	if manifest, ok, err := project.LoadFromDir(dir); err != nil {
		return err
	} else if ok {
		if opts.MaxDiagnostics == 0 {
			opts.MaxDiagnostics = manifest.Analysis.MaxDiagnostics
		}
		if opts.Jobs == 0 {
			opts.Jobs = manifest.Analysis.Jobs
		}
		useCache = useCache || manifest.Analysis.DiskCache
	}

	if useCache {
		cache, err := driver.OpenDiskCache("verisem")
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
		opts.Cache = cache
	}

	showProgress := !noProgress && !quiet && format == "pretty" && isTerminal(os.Stdout)

	var progressDone chan error
	if showProgress {
		files, err := driver.ListSourceFiles(dir)
		if err != nil {
			return err
		}
		events := make(chan driver.Event, 64)
		opts.Events = driver.ChannelSink(events)

		model := ui.NewProgressModel("analyzing "+dir, files, events)
		program := tea.NewProgram(model)
		progressDone = make(chan error, 1)
		go func() {
			_, err := program.Run()
			progressDone <- err
		}()
		defer func() {
			close(events)
			<-progressDone
		}()
	}

	fileSet, results, err := driver.AnalyzeDir(context.Background(), dir, opts)
	if err != nil {
		return err
	}

	merged := diag.NewBag(0)
	for _, res := range results {
		if res.Bag != nil {
			merged.Merge(res.Bag)
		}
	}
	merged.Sort()

	if err := emitDiags(cmd, fileSet, merged, format); err != nil {
		return err
	}
	if merged.HasErrors() {
		return fmt.Errorf("analysis reported errors")
	}
	return nil
}

func emitDiags(cmd *cobra.Command, fileSet *source.FileSet, bag *diag.Bag, format string) error {
	if bag.Len() == 0 {
		return nil
	}
	if format == "json" {
		return diagfmt.JSON(os.Stdout, fileSet, bag.Items())
	}
	return diagfmt.Pretty(os.Stdout, fileSet, bag.Items(), prettyOptions(cmd, os.Stdout))
}
