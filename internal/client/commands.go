// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/MKhiriev/go-pass-vault/models"
)

// NewRootCommand builds the gopass command tree on top of app. Errors are
// returned to the caller instead of being printed, so main decides on the
// exit code.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "gopass",
		Short: "gopass - a client for the go-pass-vault server",
		Long: `gopass keeps passwords and notes in a go-pass-vault server.

Entries are encrypted on this machine with your vault passphrase before they
are sent, so the server only ever stores envelopes it cannot read.

The passphrase is taken from GOPASS_PASSPHRASE or asked for on the terminal.`,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return ErrUsage
			}
			return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
		},
	}

	root.SetOut(app.out)
	root.SetErr(app.out)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	root.AddCommand(
		newListCommand(app),
		newAddCommand(app),
		newEditCommand(app),
		newRemoveCommand(app),
		newGenerateCommand(app),
		newCopyCommand(app),
		newVersionCommand(app),
	)

	return root
}

func newListCommand(app *App) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List vault entries",
		Long: `Lists the entries that decrypt with your passphrase.

Entries that do not decrypt are skipped and counted. --query keeps only
entries whose title, username, url or notes contain the term, ignoring case.

Examples:
  gopass list
  gopass list -q mail`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.list(cmd.Context(), query)
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "show only entries containing this term")

	return cmd
}

func newAddCommand(app *App) *cobra.Command {
	var flags recordFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Encrypt and store a new entry",
		Long: `Encrypts a new entry locally and stores the envelope on the server.

Examples:
  gopass add --title Email --username alice@example.com --password hunter2
  gopass add -t Bank -g 24`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.add(cmd.Context(), flags.patch(cmd.Flags()))
		},
	}
	flags.bind(cmd.Flags())

	return cmd
}

func newEditCommand(app *App) *cobra.Command {
	var flags recordFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an entry",
		Long: `Decrypts an entry, changes the given fields and stores it again with
fresh encryption. Fields without a flag keep their value.

Examples:
  gopass edit 0192f0c1-8c6e-7a4b-9d3e-1f2a3b4c5d6e --username bob`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.edit(cmd.Context(), args[0], flags.patch(cmd.Flags()))
		},
	}
	flags.bind(cmd.Flags())

	return cmd
}

func newRemoveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete an entry",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.remove(cmd.Context(), args[0])
		},
	}
}

func newGenerateCommand(app *App) *cobra.Command {
	opts := models.PasswordOptions{}

	cmd := &cobra.Command{
		Use:     "gen",
		Aliases: []string{"generate"},
		Short:   "Generate a password",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.generate(cmd.Context(), opts)
		},
	}

	fs := cmd.Flags()
	fs.IntVarP(&opts.Length, "length", "l", 20, "password length (4-128)")
	fs.BoolVar(&opts.IncludeLetters, "letters", true, "include letters")
	fs.BoolVar(&opts.IncludeNumbers, "numbers", true, "include digits")
	fs.BoolVar(&opts.IncludeSymbols, "symbols", true, "include symbols")
	fs.BoolVar(&opts.ExcludeLookAlikes, "no-lookalikes", false, "exclude l, 1, I, |, o, 0 and O")

	return cmd
}

func newCopyCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "copy [id]",
		Aliases: []string{"cp"},
		Short:   "Copy the password of an entry to the clipboard",
		Long: `Copies the password of an entry to the clipboard.

Without an id the entries are shown in a picker on the terminal.`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id string
			if len(args) == 1 {
				id = args[0]
			}
			return app.copy(cmd.Context(), id)
		},
	}
}

func newVersionCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the server version",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.version(cmd.Context())
		},
	}
}

// recordFlags holds the record fields shared by add and edit.
type recordFlags struct {
	title    string
	username string
	password string
	url      string
	notes    string
	generate int
}

func (f *recordFlags) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&f.title, "title", "t", "", "entry title")
	fs.StringVarP(&f.username, "username", "u", "", "login name")
	fs.StringVarP(&f.password, "password", "p", "", "password")
	fs.StringVar(&f.url, "url", "", "site address")
	fs.StringVarP(&f.notes, "notes", "n", "", "free-form notes")
	fs.IntVarP(&f.generate, "generate", "g", 0, "generate a password of this length unless --password is given")
}

// patch keeps only the flags that were set on the command line.
func (f *recordFlags) patch(fs *pflag.FlagSet) recordPatch {
	changed := func(name string, value *string) *string {
		if fs.Changed(name) {
			return value
		}
		return nil
	}

	return recordPatch{
		Title:    changed("title", &f.title),
		Username: changed("username", &f.username),
		Password: changed("password", &f.password),
		URL:      changed("url", &f.url),
		Notes:    changed("notes", &f.notes),
		Generate: f.generate,
	}
}

// usageArgs reports argument count errors as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return nil
	}
}
