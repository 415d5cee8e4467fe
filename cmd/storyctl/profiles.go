package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// profileOps adapts one profile kind to the shared command tree.
type profileOps struct {
	kind     string
	list     func() ([]profileRow, error)
	create   func(name string) (string, error)
	remove   func(id string) error
	setDef   func(id string) error
	export   func(path string) (int, error)
	doImport func(path string) (int, error)
}

type profileRow struct {
	ID        string
	Name      string
	IsDefault bool
}

func personaOps() profileOps {
	return profileOps{
		kind: "personas",
		list: func() ([]profileRow, error) {
			list, err := store.Services.Personas.GetPersonas()
			if err != nil {
				return nil, err
			}
			rows := make([]profileRow, 0, len(list))
			for _, p := range list {
				rows = append(rows, profileRow{ID: p.ID, Name: p.Name, IsDefault: p.IsDefault})
			}
			return rows, nil
		},
		create: func(name string) (string, error) {
			p, err := store.Services.Personas.CreatePersona(name)
			if err != nil {
				return "", err
			}
			return p.ID, nil
		},
		remove:   func(id string) error { return store.Services.Personas.DeletePersona(id) },
		setDef:   func(id string) error { return store.Services.Personas.SetDefaultPersona(id) },
		export:   func(path string) (int, error) { return store.Services.Transfers.ExportPersonas(path) },
		doImport: func(path string) (int, error) { return store.Services.Transfers.ImportPersonas(path) },
	}
}

func personalOps() profileOps {
	return profileOps{
		kind: "personals",
		list: func() ([]profileRow, error) {
			list, err := store.Services.Personals.GetPersonals()
			if err != nil {
				return nil, err
			}
			rows := make([]profileRow, 0, len(list))
			for _, p := range list {
				rows = append(rows, profileRow{ID: p.ID, Name: p.Name, IsDefault: p.IsDefault})
			}
			return rows, nil
		},
		create: func(name string) (string, error) {
			p, err := store.Services.Personals.CreatePersonal(name)
			if err != nil {
				return "", err
			}
			return p.ID, nil
		},
		remove:   func(id string) error { return store.Services.Personals.DeletePersonal(id) },
		setDef:   func(id string) error { return store.Services.Personals.SetDefaultPersonal(id) },
		export:   func(path string) (int, error) { return store.Services.Transfers.ExportPersonals(path) },
		doImport: func(path string) (int, error) { return store.Services.Transfers.ImportPersonals(path) },
	}
}

func newProfileCmd(use, short string, ops func() profileOps) *cobra.Command {
	cmd := &cobra.Command{Use: use, Short: short}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List profiles; the default is marked with *",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := ops().list()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, r := range rows {
				mark := " "
				if r.IsDefault {
					mark = "*"
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", mark, r.ID, r.Name)
			}
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ops().create(args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a profile and drop its character mappings",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ops().remove(args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "default <id>",
		Short: "Make a profile the default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ops().setDef(args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "export <file.toml|file.yaml>",
		Short: "Export every profile to a TOML or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o := ops()
			n, err := o.export(args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d %s\n", n, o.kind)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file|dir>",
		Short: "Import profiles from a file or, recursively, a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o := ops()
			n, err := o.doImport(args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d %s\n", n, o.kind)
			return nil
		},
	})

	return cmd
}

func init() {
	rootCmd.AddCommand(newProfileCmd("personas", "Manage personas", personaOps))
	rootCmd.AddCommand(newProfileCmd("personals", "Manage personal profiles", personalOps))
}
