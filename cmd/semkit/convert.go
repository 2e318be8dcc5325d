package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/semkit/semkit/semi"
)

func convertCmd(configPath *string) *cobra.Command {
	var (
		from, to  string
		semiPath  string
		outDir    string
		indent    bool
		noProps   bool
		assignIDs bool
		modifiers bool
	)

	cmd := &cobra.Command{
		Use:   "convert -f FORMAT -t FORMAT PATTERN...",
		Short: "Convert semantic structures between formats",
		Long: `Convert reads every file matching the input patterns, decodes it with
the source format, passes each structure through the canonical scoped
graph, and encodes it in the target format. Patterns support ** globs.

A file that fails to convert is logged and skipped; the rest of the
batch keeps going.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if semiPath == "" {
				semiPath = cfg.SemI
			}
			opts := encodeOpts{
				indent:     indent || cfg.Indent,
				properties: !noProps,
				modifiers:  modifiers || cfg.PredicateModifiers,
			}
			if cfg.Properties != nil && !noProps {
				opts.properties = *cfg.Properties
			}

			src, ok := formats[from]
			if !ok || src.decode == nil {
				return fmt.Errorf("unknown source format %q (choose from %s)",
					from, strings.Join(sorted(formatNames(func(f *format) bool { return f.decode != nil })), ", "))
			}
			dst, ok := formats[to]
			if !ok || dst.encode == nil {
				return fmt.Errorf("unknown target format %q (choose from %s)",
					to, strings.Join(sorted(formatNames(func(f *format) bool { return f.encode != nil })), ", "))
			}
			si, err := loadSemI(semiPath)
			if err != nil {
				return err
			}

			files, err := expand(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no input files match %v", args)
			}

			failed := 0
			for _, file := range files {
				if err := convertFile(file, src, dst, si, opts, outDir, assignIDs); err != nil {
					slog.Error("conversion failed", "file", file, "error", err)
					failed++
					continue
				}
				slog.Debug("converted", "file", file)
			}
			slog.Info("batch complete", "files", len(files), "failed", failed)
			return nil
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "simplemrs", "Source format")
	cmd.Flags().StringVarP(&to, "to", "t", "", "Target format")
	cmd.Flags().StringVar(&semiPath, "semi", "", "Grammar interface (.smi or compiled .yaml)")
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "Output directory (default stdout)")
	cmd.Flags().BoolVar(&indent, "indent", false, "Indented output")
	cmd.Flags().BoolVar(&noProps, "no-properties", false, "Suppress morphosemantic properties")
	cmd.Flags().BoolVar(&assignIDs, "assign-ids", false, "Assign a UUID identifier to graphs that lack one")
	cmd.Flags().BoolVar(&modifiers, "predicate-modifiers", false, "Synthesize modifier edges in bare-dependency output")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func convertFile(file string, src, dst *format, si *semi.SemI, opts encodeOpts, outDir string, assignIDs bool) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	gs, err := src.decode(data, si)
	if err != nil {
		return err
	}
	if assignIDs {
		for _, g := range gs {
			if g.Identifier == "" {
				g.Identifier = uuid.NewString()
			}
		}
	}
	out, err := dst.encode(gs, si, opts)
	if err != nil {
		return err
	}
	if outDir == "" {
		fmt.Println(string(out))
		return nil
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	target := filepath.Join(outDir, stem(filepath.Base(file))+dst.extension)
	return os.WriteFile(target, append(out, '\n'), 0o644)
}

// stem drops every extension so chained suffixes like .mrs.json restart
// from the bare name.
func stem(name string) string {
	if i := strings.IndexByte(name, '.'); i > 0 {
		return name[:i]
	}
	return name
}

// expand resolves ** glob patterns; a pattern with no matches that names
// an existing file is taken literally.
func expand(patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, statErr := os.Stat(pattern); statErr == nil {
				matches = []string{pattern}
			}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

func sorted(names []string) []string {
	sort.Strings(names)
	return names
}
