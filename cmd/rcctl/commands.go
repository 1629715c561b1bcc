package main

import (
	"fmt"

	"go-reusable-content/internal/app"
	"go-reusable-content/internal/config"
	"go-reusable-content/internal/generator"
	"go-reusable-content/internal/manifest"

	"github.com/spf13/cobra"
)

// openApp loads the config named by --config and wires the application.
func openApp(cmd *cobra.Command) (*app.App, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	logger, err := app.NewLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return app.New(cfg, logger)
}

// RootCommand builds the rcctl command tree.
func RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "rcctl",
		Short:         "Manage reusable content entries and their Layouts HTML files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("config", "c", "", "config file (default: ./rcb.yaml if present)")

	root.AddCommand(
		ListCommand(),
		ShowCommand(),
		PathCommand(),
		EnsureCommand(),
		ScaffoldCommand(),
		SyncCommand(),
		DeleteCommand(),
	)
	return root
}

func ListCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "list",
		Short: "List reusable content entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			list := a.Manager.List
			if ribbonOnly, _ := cmd.Flags().GetBool("ribbon"); ribbonOnly {
				list = a.Manager.RibbonEntries
			}
			records, err := list()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No reusable content found.")
				return nil
			}
			for _, r := range records {
				mode := "copy"
				if r.Info.IsAutomaticUpdate {
					mode = "auto"
				}
				ribbon := ""
				if r.Info.IsShowInRibbon {
					ribbon = " [ribbon]"
				}
				fmt.Fprintf(out, "- %s (%s, %s)%s\n", r.Title(), r.Info.Category, mode, ribbon)
			}
			return nil
		},
	}
	c.Flags().Bool("ribbon", false, "only entries shown in the ribbon")
	return c
}

func ShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <title>",
		Short: "Print an entry's stored HTML content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			record, err := a.Manager.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), record.Info.Content)
			return nil
		},
	}
}

func PathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path <title>",
		Short: "Print the resolved HTML source file path of an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			path, err := a.Manager.HTMLFilePath(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func EnsureCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "ensure",
		Short: "Create or update the entries declared in a manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			m, err := manifest.Load(file)
			if err != nil {
				return err
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			infos := m.Infos()
			if err := a.Manager.Ensure(infos...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ensured %d reusable content entries.\n", len(infos))
			return nil
		},
	}
	c.Flags().StringP("file", "f", "reusable-content.yaml", "manifest file")
	return c
}

func ScaffoldCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "scaffold",
		Short: "Create placeholder HTML files for manifest entries that have none",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			m, err := manifest.Load(file)
			if err != nil {
				return err
			}

			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			resolver := app.NewResolver(cfg)

			out := cmd.OutOrStdout()
			for _, info := range m.Infos() {
				if info.FileName == "" {
					continue
				}
				filePath, created, err := generator.ScaffoldSourceFile(info, resolver)
				if err != nil {
					return err
				}
				if created {
					fmt.Fprintf(out, "Created %s\n", filePath)
				} else {
					fmt.Fprintf(out, "Exists  %s\n", filePath)
				}
			}
			return nil
		},
	}
	c.Flags().StringP("file", "f", "reusable-content.yaml", "manifest file")
	return c
}

func SyncCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Reload automatic-update entries from their HTML files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			updated, err := a.Manager.Sync()
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d reusable content entries.\n", updated)
			return err
		},
	}
}

func DeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <title>...",
		Short: "Remove entries from the list (source files are kept)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			for _, title := range args {
				if err := a.Manager.Delete(title); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", title)
			}
			return nil
		},
	}
}
