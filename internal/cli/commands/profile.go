package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/SscSPs/burnout_journal/internal/cli/printers"
	"github.com/SscSPs/burnout_journal/internal/dto"
)

func addProfile(topLevel *cobra.Command, o *Options) {
	profile := &cobra.Command{
		Use:   "profile",
		Short: "Show your preferences.",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := o.apiClient()
			if err != nil {
				return err
			}
			p, err := client.GetProfile(cmd.Context())
			if err != nil {
				return err
			}
			printers.Profile(cmd.OutOrStdout(), p)
			return nil
		},
	}

	var name, timezone, dateFormat, timeFormat string
	set := &cobra.Command{
		Use:     "set",
		Short:   "Change your preferences.",
		Example: "journal profile set --timezone Europe/Berlin --time-format 12h",
		RunE: func(cmd *cobra.Command, args []string) error {
			var req dto.UpdateProfileRequest
			if cmd.Flags().Changed("name") {
				req.DisplayName = &name
			}
			if cmd.Flags().Changed("timezone") {
				req.Timezone = &timezone
			}
			if cmd.Flags().Changed("date-format") {
				req.DateFormat = &dateFormat
			}
			if cmd.Flags().Changed("time-format") {
				req.TimeFormat = &timeFormat
			}
			if req == (dto.UpdateProfileRequest{}) {
				return errors.New("nothing to change")
			}

			client, err := o.apiClient()
			if err != nil {
				return err
			}
			p, err := client.UpdateProfile(cmd.Context(), req)
			if err != nil {
				return err
			}
			printers.Profile(cmd.OutOrStdout(), p)
			return nil
		},
	}
	set.Flags().StringVar(&name, "name", "", "Display name.")
	set.Flags().StringVar(&timezone, "timezone", "", "IANA timezone, e.g. Europe/Berlin.")
	set.Flags().StringVar(&dateFormat, "date-format", "", "DD/MM/YYYY, MM/DD/YYYY or YYYY-MM-DD.")
	set.Flags().StringVar(&timeFormat, "time-format", "", "12h or 24h.")

	var confirm bool
	deleteAccount := &cobra.Command{
		Use:   "delete-account",
		Short: "Permanently delete your account and journals.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return errors.New("this cannot be undone; pass --yes to confirm")
			}
			client, err := o.apiClient()
			if err != nil {
				return err
			}
			if err := client.DeleteAccount(cmd.Context()); err != nil {
				return err
			}
			store, err := o.sessionStore()
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			printers.Success(cmd.OutOrStdout(), "Account deleted.")
			return nil
		},
	}
	deleteAccount.Flags().BoolVar(&confirm, "yes", false, "Confirm deletion.")

	profile.AddCommand(set, deleteAccount)
	topLevel.AddCommand(profile)
}
