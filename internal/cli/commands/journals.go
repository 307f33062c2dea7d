package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/SscSPs/burnout_journal/internal/cli/printers"
	"github.com/SscSPs/burnout_journal/internal/client/journalsync"
)

func addJournals(topLevel *cobra.Command, o *Options) {
	var all bool
	var pages int

	list := &cobra.Command{
		Use:     "journals",
		Aliases: []string{"ls"},
		Short:   "List journals, newest first.",
		Example: `
journal journals
journal journals --pages 3
journal journals --all
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, release, err := o.journals(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			sync := journalsync.New(store,
				journalsync.WithPageSize(o.PageSize),
				journalsync.WithLogger(o.logger),
			)
			defer sync.Close()

			sync.LoadInitial(cmd.Context())
			for i := 1; all || i < pages; i++ {
				st := sync.State()
				if st.Error != "" || !st.HasMore {
					break
				}
				sync.LoadMore(cmd.Context())
			}

			st := sync.State()
			printers.Journals(cmd.OutOrStdout(), st.Journals)
			if st.Error != "" {
				printers.Warn(cmd.OutOrStdout(), "%s", st.Error)
			} else if st.HasMore {
				printers.Faint(cmd.OutOrStdout(), "more available: --pages %d or --all", pages+1)
			}
			return nil
		},
	}
	list.Flags().BoolVar(&all, "all", false, "Load every page.")
	list.Flags().IntVar(&pages, "pages", 1, "Number of pages to load.")

	show := &cobra.Command{
		Use:   "show [date]",
		Short: "Print a journal's entries.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := journalDateArg(args, time.Now())
			if err != nil {
				return err
			}
			store, release, err := o.journals(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			j, err := store.GetJournal(cmd.Context(), date)
			if err != nil {
				return err
			}
			if j == nil {
				printers.Faint(cmd.OutOrStdout(), "No journal for %s.", date)
				return nil
			}
			printers.Title(cmd.OutOrStdout(), date)
			printers.Entries(cmd.OutOrStdout(), j.Entries, "")
			return nil
		},
	}

	hide := &cobra.Command{
		Use:   "hide <date>",
		Short: "Hide a journal from lists.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := journalDateArg(args, time.Now())
			if err != nil {
				return err
			}
			store, release, err := o.journals(cmd.Context())
			if err != nil {
				return err
			}
			defer release()
			if err := store.HideJournal(cmd.Context(), date); err != nil {
				return err
			}
			printers.Success(cmd.OutOrStdout(), "Hid %s.", date)
			return nil
		},
	}

	unhide := &cobra.Command{
		Use:   "unhide <date>",
		Short: "Restore a hidden journal.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := journalDateArg(args, time.Now())
			if err != nil {
				return err
			}
			store, release, err := o.journals(cmd.Context())
			if err != nil {
				return err
			}
			defer release()
			if err := store.UnhideJournal(cmd.Context(), date); err != nil {
				return err
			}
			printers.Success(cmd.OutOrStdout(), "Restored %s.", date)
			return nil
		},
	}

	topLevel.AddCommand(list, show, hide, unhide)
}
