package main

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"pathschema/internal/diagnostic"
	"pathschema/internal/errors"
)

func newKeysCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "keys <schema>",
		Short: "List a schema's keys with their templates and required entities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			order, err := a.engine.KeyOrder(name)
			if err != nil {
				return err
			}

			templates, err := a.engine.ReadSchema(name)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(order))

			for _, key := range order {
				fields, err := a.engine.RequiredFieldsFor(key, name)
				if err != nil {
					return err
				}

				rows = append(rows, []string{key, templates[key], strings.Join(fields, ", ")})
			}

			return printTable(cmd.OutOrStdout(), []string{"KEY", "TEMPLATE", "NEEDS"}, rows)
		},
	}
}

func newFieldsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fields <schema> <key>",
		Short: "Print the entity names a key needs, one per line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := a.engine.RequiredFieldsFor(args[1], args[0])
			if err != nil {
				return err
			}

			return printLines(cmd.OutOrStdout(), fields)
		},
	}
}

func newFlattenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "flatten <schema> <key>",
		Short: "Print a key's template with every $key reference expanded",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flat, err := a.engine.Flatten(args[1], args[0])
			if err != nil {
				return err
			}

			return printLines(cmd.OutOrStdout(), []string{flat})
		},
	}
}

func newResolveCmd(a *app) *cobra.Command {
	var opts contextOptions

	cmd := &cobra.Command{
		Use:   "resolve <schema> [key...]",
		Short: "Resolve keys against a context",
		Long: `Resolve prints one path per key. Without keys it resolves every key of the
schema in dependency order and prints a table; keys that cannot be resolved
from the context show their error instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := opts.load()
			if err != nil {
				return err
			}

			name, keys := args[0], args[1:]

			if len(keys) > 0 {
				paths := make([]string, 0, len(keys))

				for _, key := range keys {
					p, err := a.engine.Resolve(key, ctx, name)
					if err != nil {
						return err
					}

					paths = append(paths, p)
				}

				return printLines(cmd.OutOrStdout(), paths)
			}

			order, err := a.engine.KeyOrder(name)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(order))

			for _, key := range order {
				p, err := a.engine.Resolve(key, ctx, name)
				if err != nil {
					p = "error: " + err.Error()
				}

				rows = append(rows, []string{key, p})
			}

			return printTable(cmd.OutOrStdout(), []string{"KEY", "PATH"}, rows)
		},
	}

	opts.addFlags(cmd.Flags())

	return cmd
}

func newTreeCmd(a *app) *cobra.Command {
	var (
		opts  contextOptions
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "tree <schema>",
		Short: "Resolve a folder tree (stored as folders_<schema>)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := opts.load()
			if err != nil {
				return err
			}

			var rows [][]string

			for f, err := range a.engine.Folders(args[0], ctx) {
				if err != nil {
					return err
				}

				mode := ""
				if f.Mode != 0 {
					mode = f.Mode.String()
				}

				rows = append(rows, []string{f.Path, f.Umask, mode, f.Pgrp})
			}

			if plain {
				paths := make([]string, len(rows))
				for i, r := range rows {
					paths[i] = r[0]
				}

				return printLines(cmd.OutOrStdout(), paths)
			}

			return printTable(cmd.OutOrStdout(), []string{"PATH", "UMASK", "MODE", "PGRP"}, rows)
		},
	}

	opts.addFlags(cmd.Flags())
	cmd.Flags().BoolVar(&plain, "plain", false, "print paths only")

	return cmd
}

func newLintCmd(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "lint <schema>...",
		Short: "Check schemas for broken references, cycles and bad placeholders",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			var total diagnostic.Diagnostics

			for _, name := range args {
				diags, err := a.engine.Lint(name)
				if err != nil {
					return err
				}

				for _, d := range diags.All() {
					if _, err := fmt.Fprint(w, severityPrinter(d.Severity).Sprintln(name+": "+d.String())); err != nil {
						return err
					}
				}

				if len(diags.Errors) == 0 && len(diags.Warnings) == 0 {
					if _, err := fmt.Fprint(w, pterm.Success.Sprintln("schema "+name+" is clean")); err != nil {
						return err
					}
				}

				total.Merge(*diags)
			}

			failed := len(total.Errors)
			if strict {
				failed += len(total.Warnings)
			}

			if failed > 0 {
				return errors.Newf("%d problem(s) in %s", failed, strings.Join(args, ", "))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")

	return cmd
}

func severityPrinter(s diagnostic.DiagnosticSeverity) pterm.PrefixPrinter {
	switch s {
	case diagnostic.DiagnosticError:
		return pterm.Error
	case diagnostic.DiagnosticWarning:
		return pterm.Warning
	default:
		return pterm.Info
	}
}
