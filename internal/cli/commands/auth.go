package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/SscSPs/burnout_journal/internal/cli/printers"
	"github.com/SscSPs/burnout_journal/internal/client/apiclient"
	"github.com/SscSPs/burnout_journal/internal/client/session"
	"github.com/SscSPs/burnout_journal/internal/dto"
)

func addAuth(topLevel *cobra.Command, o *Options) {
	var email, name string

	login := &cobra.Command{
		Use:     "login",
		Short:   "Sign in and remember the session.",
		Example: "journal login --email me@example.com",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd, "Password: ")
			if err != nil {
				return err
			}
			client := apiclient.New(o.APIURL)
			resp, err := client.SignIn(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			return o.remember(cmd, resp)
		},
	}
	login.Flags().StringVarP(&email, "email", "e", "", "Account email.")
	_ = login.MarkFlagRequired("email")

	signup := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in.",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd, "Choose a password (8+ characters): ")
			if err != nil {
				return err
			}
			client := apiclient.New(o.APIURL)
			resp, err := client.SignUp(cmd.Context(), dto.SignUpRequest{Email: email, Password: password, DisplayName: name})
			if err != nil {
				return err
			}
			return o.remember(cmd, resp)
		},
	}
	signup.Flags().StringVarP(&email, "email", "e", "", "Account email.")
	signup.Flags().StringVar(&name, "name", "", "Display name.")
	_ = signup.MarkFlagRequired("email")

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the session.",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := o.sessionStore()
			if err != nil {
				return err
			}
			if client, err := o.apiClient(); err == nil {
				if err := client.SignOut(cmd.Context()); err != nil {
					o.logger.Warn("Server sign-out failed", "error", err)
				}
			}
			if err := store.Clear(); err != nil {
				return err
			}
			printers.Success(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}

	topLevel.AddCommand(login, signup, logout)
}

func (o *Options) remember(cmd *cobra.Command, resp *dto.AuthResponse) error {
	store, err := o.sessionStore()
	if err != nil {
		return err
	}
	err = store.Save(session.Credentials{
		APIURL:    o.APIURL,
		Token:     resp.Token,
		Email:     resp.User.Email,
		ExpiresAt: resp.ExpiresAt,
	})
	if err != nil {
		return err
	}
	printers.Success(cmd.OutOrStdout(), "Signed in as %s.", resp.User.Email)
	return nil
}

// readPassword reads without echo on a terminal, or one line from piped input.
func readPassword(cmd *cobra.Command, prompt string) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), prompt)
		raw, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("password is required")
	}
	return password, nil
}
