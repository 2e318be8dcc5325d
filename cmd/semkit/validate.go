package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func validateCmd(configPath *string) *cobra.Command {
	var (
		from     string
		semiPath string
	)

	cmd := &cobra.Command{
		Use:   "validate -f FORMAT PATTERN...",
		Short: "Check that input files decode cleanly",
		Long: `Validate decodes every file matching the input patterns and reports
syntax or structural problems without writing any output. Scoped and
dependency inputs are additionally run through the canonical graph
builder, so malformed scope or dangling links are caught too.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if semiPath == "" {
				semiPath = cfg.SemI
			}
			f, ok := formats[from]
			if !ok {
				return fmt.Errorf("unknown format %q (choose from %s)",
					from, strings.Join(sorted(formatNames(func(*format) bool { return true })), ", "))
			}
			check := f.checkFor()
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

			invalid := 0
			for _, file := range files {
				data, err := os.ReadFile(file)
				if err == nil {
					err = check(data, si)
				}
				if err != nil {
					slog.Error("invalid", "file", file, "error", err)
					invalid++
					continue
				}
				fmt.Printf("%s: ok\n", file)
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d files invalid", invalid, len(files))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "simplemrs", "Input format")
	cmd.Flags().StringVar(&semiPath, "semi", "", "Grammar interface (.smi or compiled .yaml)")

	return cmd
}
