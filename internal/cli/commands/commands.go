// Package commands wires the journal CLI.
package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/SscSPs/burnout_journal/internal/adapters/database/pgsql"
	"github.com/SscSPs/burnout_journal/internal/client/apiclient"
	"github.com/SscSPs/burnout_journal/internal/client/editor"
	"github.com/SscSPs/burnout_journal/internal/client/journalsync"
	"github.com/SscSPs/burnout_journal/internal/client/livecoach"
	"github.com/SscSPs/burnout_journal/internal/client/local"
	"github.com/SscSPs/burnout_journal/internal/client/session"
	"github.com/SscSPs/burnout_journal/internal/core/domain"
	"github.com/SscSPs/burnout_journal/internal/core/services"
	"github.com/SscSPs/burnout_journal/pkg/database"
)

const defaultAPIURL = "http://localhost:8080"

// Options is the resolved CLI configuration: flags, then JOURNAL_* env, then .journal.yaml.
type Options struct {
	ConfigFile       string
	APIURL           string
	SessionPath      string
	DatabaseURL      string
	UserID           string
	AutosaveDelay    time.Duration
	EntryCooldown    time.Duration
	LiveSetupTimeout time.Duration
	PageSize         int

	apiURLExplicit bool
	logger         *slog.Logger
}

// journalStore is what the journal commands need from either backend.
type journalStore interface {
	journalsync.ListSource
	editor.EntryStore
	GetJournal(ctx context.Context, journalID string) (*domain.JournalWithEntries, error)
	CreateJournalWithEntry(ctx context.Context, journalID string) (*domain.JournalWithEntries, error)
	HideJournal(ctx context.Context, journalID string) error
	UnhideJournal(ctx context.Context, journalID string) error
}

func New() *cobra.Command {
	return newRoot(&Options{})
}

func newRoot(o *Options) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "journal",
		Short:         "Burnout journaling on the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.load(v, cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.SetOut(color.Output)

	f := cmd.PersistentFlags()
	f.StringVar(&o.ConfigFile, "config", "", "Config file (default .journal.yaml in the working or home directory).")
	f.String("api-url", defaultAPIURL, "Journal API base URL.")
	f.String("database-url", "", "Use Postgres directly instead of the API. Requires --user.")
	f.String("user", "", "User id for --database-url.")
	_ = v.BindPFlag("api_url", f.Lookup("api-url"))
	_ = v.BindPFlag("database_url", f.Lookup("database-url"))
	_ = v.BindPFlag("user", f.Lookup("user"))

	AddCommands(cmd, o)
	return cmd
}

func AddCommands(topLevel *cobra.Command, o *Options) {
	addAuth(topLevel, o)
	addJournals(topLevel, o)
	addWrite(topLevel, o)
	addAnalyze(topLevel, o)
	addCoach(topLevel, o)
	addQuiz(topLevel, o)
	addProfile(topLevel, o)
	addUpload(topLevel, o)
}

func (o *Options) load(v *viper.Viper, cmd *cobra.Command) error {
	v.SetDefault("api_url", defaultAPIURL)
	v.SetDefault("session_path", session.DefaultPath)
	v.SetDefault("autosave_delay", editor.DefaultSaveDelay.String())
	v.SetDefault("entry_cooldown", editor.DefaultEntryCooldown.String())
	v.SetDefault("live_setup_timeout", livecoach.DefaultSetupTimeout.String())
	v.SetDefault("page_size", journalsync.DefaultPageSize)
	v.SetEnvPrefix("JOURNAL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if o.ConfigFile != "" {
		v.SetConfigFile(o.ConfigFile)
	} else {
		v.SetConfigName(".journal")
		v.AddConfigPath("./")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	o.APIURL = v.GetString("api_url")
	o.SessionPath = v.GetString("session_path")
	o.DatabaseURL = v.GetString("database_url")
	o.UserID = v.GetString("user")
	o.AutosaveDelay = v.GetDuration("autosave_delay")
	o.EntryCooldown = v.GetDuration("entry_cooldown")
	o.LiveSetupTimeout = v.GetDuration("live_setup_timeout")
	o.PageSize = v.GetInt("page_size")
	o.apiURLExplicit = cmd.Flags().Changed("api-url") || os.Getenv("JOURNAL_API_URL") != "" || v.InConfig("api_url")
	o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
	return nil
}

func (o *Options) sessionStore() (*session.Store, error) {
	return session.Open(o.SessionPath)
}

// apiClient returns a client carrying the saved session token.
func (o *Options) apiClient() (*apiclient.Client, error) {
	store, err := o.sessionStore()
	if err != nil {
		return nil, err
	}
	creds, err := store.Load()
	if errors.Is(err, session.ErrNoSession) {
		return nil, errors.New("not signed in; run `journal login` first")
	}
	if err != nil {
		return nil, err
	}
	if creds.Expired(time.Now()) {
		return nil, errors.New("session expired; run `journal login` again")
	}

	baseURL := o.APIURL
	if !o.apiURLExplicit && creds.APIURL != "" {
		baseURL = creds.APIURL
	}
	return apiclient.New(baseURL, apiclient.WithToken(creds.Token)), nil
}

// journals picks the backend: the API by default, Postgres when --database-url is set.
// The returned func releases any resources the backend holds.
func (o *Options) journals(ctx context.Context) (journalStore, func(), error) {
	if o.DatabaseURL == "" {
		client, err := o.apiClient()
		if err != nil {
			return nil, nil, err
		}
		return client, func() {}, nil
	}
	if o.UserID == "" {
		return nil, nil, errors.New("--user is required with --database-url")
	}

	provider := database.NewPoolProvider(o.DatabaseURL, true)
	pool, err := provider.Pool(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	repos := pgsql.NewRepositoryProvider(pool)
	svc := services.NewJournalService(repos.JournalRepo,
		services.WithEntryCooldown(o.EntryCooldown),
		services.WithDefaultPageSize(o.PageSize),
	)
	return local.NewJournalStore(svc, o.UserID), provider.Close, nil
}

// journalDateArg resolves an optional date argument. It accepts YYYY-MM-DD,
// "today" and "yesterday", and defaults to today in the local timezone.
func journalDateArg(args []string, now time.Time) (string, error) {
	if len(args) == 0 || args[0] == "today" {
		return domain.JournalDateFor(now, time.Local), nil
	}
	if args[0] == "yesterday" {
		return domain.JournalDateFor(now.AddDate(0, 0, -1), time.Local), nil
	}
	if !domain.IsValidJournalDate(args[0]) {
		return "", fmt.Errorf("%q is not a YYYY-MM-DD date", args[0])
	}
	return args[0], nil
}
