package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"go.uber.org/zap"

	"github.com/viant/jstranslate/internal/config"
	"github.com/viant/jstranslate/internal/repository"
	"github.com/viant/jstranslate/pkg/cache"
	"github.com/viant/jstranslate/pkg/pipeline"
	"github.com/viant/jstranslate/pkg/report"
	"github.com/viant/jstranslate/pkg/scope"
)

type convertFlags struct {
	out        string
	module     string
	runtime    string
	strict     bool
	report     string
	noCache    bool
	dumpScopes bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "jstranslate",
		Short: "Translate JavaScript into the target scripting language",
	}
	root.AddCommand(newConvertCmd())
	return root
}

func newConvertCmd() *cobra.Command {
	flags := &convertFlags{}
	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Translate a file or directory of JavaScript sources",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), args[0], flags)
		},
	}
	cmd.Flags().StringVar(&flags.out, "out", "", "output file or directory (default: alongside input, .pys extension)")
	cmd.Flags().StringVar(&flags.module, "module", "", "project name used in report output")
	cmd.Flags().StringVar(&flags.runtime, "runtime", "include", "runtime-import preamble: include|skip")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "promote every warning to a fatal error")
	cmd.Flags().StringVar(&flags.report, "report", "", "write a JSON diagnostic report to this path")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "bypass the parsed-AST cache")
	cmd.Flags().BoolVar(&flags.dumpScopes, "dump-scopes", false, "write the binder's scope tree as YAML alongside each output file")
	return cmd
}

func runConvert(ctx context.Context, input string, flags *convertFlags) error {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	fs := afs.New()
	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("stat %s: %w", input, err)
	}

	det := repository.New(fs)
	proj, err := det.DetectProject(ctx, input)
	if err != nil {
		logger.Warn("project detection failed", zap.Error(err))
		proj = &repository.Project{RootPath: filepath.Dir(input), Name: flags.module}
	}
	cfg, err := config.Load(ctx, fs, proj.RootPath)
	if err != nil {
		logger.Warn("config load failed", zap.Error(err))
		cfg = &config.Config{}
	}
	merged := cfg.Merge(config.Config{
		Out:     flags.out,
		Runtime: flags.runtime,
		Strict:  flags.strict,
		Report:  flags.report,
	})

	moduleName := flags.module
	if moduleName == "" {
		moduleName = proj.Name
	}

	var c *cache.Cache
	if !flags.noCache {
		c = cache.New(fs, filepath.Join(proj.RootPath, ".cache", "ast"))
	}

	opt := pipeline.Options{
		Strict:   merged.Strict,
		Runtime:  pipeline.RuntimeMode(merged.Runtime),
		UseCache: !flags.noCache,
	}

	projReport := report.NewProject(moduleName, proj.RootPath)

	var files []string
	if info.IsDir() {
		files, err = collectJSFiles(input)
		if err != nil {
			return err
		}
	} else {
		files = []string{input}
	}

	exitCodes := make([]int, 0, len(files))
	for _, f := range files {
		src, err := os.ReadFile(f)
		if err != nil {
			logger.Error("read source", zap.String("file", f), zap.Error(err))
			exitCodes = append(exitCodes, 2)
			continue
		}
		fileOpt := opt
		fileOpt.SourceName = filepath.Base(f)

		res := pipeline.Run(ctx, f, src, c, fileOpt)
		exitCodes = append(exitCodes, res.ExitCode)

		for _, line := range pipeline.FormatDiagnostics(res) {
			logger.Info(line)
		}

		outPath := outputPath(f, input, merged.Out)
		if res.Output != "" {
			if err := writeOutput(outPath, res.Output); err != nil {
				logger.Error("write output", zap.String("file", outPath), zap.Error(err))
				exitCodes[len(exitCodes)-1] = 2
				continue
			}
		}

		if flags.dumpScopes && res.Analysis != nil {
			if err := dumpScopes(outPath, res.Analysis); err != nil {
				logger.Warn("dump scopes", zap.String("file", outPath), zap.Error(err))
			}
		}

		rel, _ := filepath.Rel(proj.RootPath, f)
		if rel == "" {
			rel = f
		}
		var fp uint64
		if rbytes, err := os.ReadFile(outPath); err == nil {
			fp, _ = report.Fingerprint(rbytes)
		}
		projReport.AddFile(&report.File{
			Path:        filepath.ToSlash(rel),
			Fingerprint: fp,
			ExitCode:    res.ExitCode,
			Diagnostics: res.Bus.Sorted(),
			ExportCount: len(res.Exports.Named) + boolToInt(res.Exports.Default != ""),
		})
	}

	if merged.Report != "" {
		data, err := report.DiagnosticsJSON(projReport)
		if err != nil {
			return fmt.Errorf("build diagnostic report: %w", err)
		}
		if err := writeOutput(merged.Report, string(data)); err != nil {
			return fmt.Errorf("write diagnostic report %s: %w", merged.Report, err)
		}
		fmt.Println(report.Render(projReport))
	}

	worst := pipeline.WorstExitCode(exitCodes)
	if worst != 0 {
		os.Exit(worst)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// outputPath computes the destination path for one translated file, mirroring
// spec.md §6's single-file-vs-directory --out semantics: a file target names
// the exact output path, a directory target mirrors the input tree under it,
// and no --out at all writes alongside the source with a new extension.
func outputPath(file, inputRoot, out string) string {
	if out == "" {
		return strings.TrimSuffix(file, filepath.Ext(file)) + ".pys"
	}
	if file == inputRoot {
		return out
	}
	rel, err := filepath.Rel(inputRoot, file)
	if err != nil {
		rel = filepath.Base(file)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ".pys"
	return filepath.Join(out, rel)
}

// dumpScopes writes the binder's scope tree next to a translated file's
// output, named <outPath>.scopes.yaml, for --dump-scopes debugging.
func dumpScopes(outPath string, analysis *scope.AnalysisResult) error {
	data, err := scope.DumpYAML(analysis)
	if err != nil {
		return err
	}
	return os.WriteFile(outPath+".scopes.yaml", data, 0644)
}

func writeOutput(path, content string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(content), 0644)
}

// collectJSFiles walks a directory for .js/.jsx sources, skipping
// node_modules and any hidden directory, the same two rules
// inspector/jsx.Inspector.InspectProject's own directory walk applies.
func collectJSFiles(root string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if info.Name() == "node_modules" || strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		ext := filepath.Ext(path)
		if ext == ".js" || ext == ".jsx" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
