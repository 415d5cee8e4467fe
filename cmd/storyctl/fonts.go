package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fontsCmd = &cobra.Command{
	Use:   "fonts",
	Short: "Inspect and change message fonts",
}

var fontsCSSCmd = &cobra.Command{
	Use:   "css",
	Short: "Print the font custom properties as a :root rule",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		css, err := store.Services.Fonts.CSSText()
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), css)
		return err
	},
}

var fontSize int

var fontsSetCmd = &cobra.Command{
	Use:   "set <normal|dialogue|italic|code> <family>",
	Short: "Set the family and size of a font slot",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := store.Services.Fonts.UpdateFontSlot(args[0], args[1], fontSize)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s (version %d)\n", args[0], settings.Version)
		return nil
	},
}

var fontsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default fonts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := store.Services.Fonts.ResetFontSettings()
		return err
	},
}

func init() {
	fontsSetCmd.Flags().IntVarP(&fontSize, "size", "s", 16, "font size in px (8-72)")
	fontsCmd.AddCommand(fontsCSSCmd, fontsSetCmd, fontsResetCmd)
	rootCmd.AddCommand(fontsCmd)
}
