package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/berktools/berk/internal/app"
	"github.com/berktools/berk/internal/ui"
	"github.com/berktools/berk/internal/workflow"
)

func (c *cli) lookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <word>",
		Short: "Look up a word",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return c.withDeps(func(deps *app.Deps) error {
				data, err := deps.Client.Lookup(cmd.Context(), query)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), ui.WordText(data))
				return nil
			})
		},
	}
}

func (c *cli) savedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "saved [filter]",
		Short: "List saved words",
		Long: `List saved words. An optional filter keeps lemmas
containing it, ignoring case.

When the backend is unreachable the list from the last session is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := ""
			if len(args) == 1 {
				filter = args[0]
			}
			return c.withDeps(func(deps *app.Deps) error {
				if err := deps.Workflow.LoadSaved(cmd.Context()); err != nil {
					if !deps.Workflow.Snapshot().Offline {
						return err
					}
					fmt.Fprintln(cmd.ErrOrStderr(), workflow.OfflineNotice)
				}
				out := cmd.OutOrStdout()
				items := deps.Workflow.Filter(filter)
				if len(items) == 0 {
					if filter != "" {
						fmt.Fprintf(out, "No saved words match %q.\n", filter)
					} else {
						fmt.Fprintln(out, "No saved words yet.")
					}
					return nil
				}
				for _, item := range items {
					if t := item.CreatedAtTime(); !t.IsZero() {
						fmt.Fprintf(out, "%s\t%s\n", item.Lemma, t.Local().Format("2006-01-02"))
					} else {
						fmt.Fprintln(out, item.Lemma)
					}
				}
				return nil
			})
		},
	}
}

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <lemma>",
		Short: "Show the details of a saved word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withDeps(func(deps *app.Deps) error {
				data, err := deps.Workflow.Expand(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), ui.WordText(data))
				return nil
			})
		},
	}
}

func (c *cli) saveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <word>",
		Short: "Look up a word and save it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return c.withDeps(func(deps *app.Deps) error {
				ctx := cmd.Context()
				flow := deps.Workflow
				if err := flow.LoadSaved(ctx); err != nil {
					return err
				}
				if err := flow.Search(ctx, query); err != nil {
					return err
				}
				snap := flow.Snapshot()
				if snap.Result == nil {
					return workflow.ErrNoResult
				}
				out := cmd.OutOrStdout()
				lemma := snap.Result.Word
				if flow.IsSaved(lemma) {
					fmt.Fprintf(out, "%s is already saved\n", lemma)
					return nil
				}
				if err := flow.Save(ctx); err != nil {
					return err
				}
				fmt.Fprintf(out, "Saved %s\n", lemma)
				return nil
			})
		},
	}
}

func (c *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <lemma>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved word",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withDeps(func(deps *app.Deps) error {
				ctx := cmd.Context()
				// Load first so the mirror is rewritten with the rest of the list.
				if err := deps.Workflow.LoadSaved(ctx); err != nil {
					return err
				}
				if err := deps.Workflow.Delete(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return nil
			})
		},
	}
}
