package services

import (
	"net/http"

	portsrepo "github.com/SscSPs/burnout_journal/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/burnout_journal/internal/core/ports/services"
	"github.com/SscSPs/burnout_journal/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// mediaStore may be nil when object storage is not configured.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, mediaStore portsrepo.MediaStore) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)

	// Sessions of deleted accounts stop working immediately.
	container.Token = NewTokenService(cfg, WithUserLookup(container.User))
	container.Google = NewGoogleOAuthService(cfg)

	container.Journal = NewJournalService(
		repos.JournalRepo,
		WithEntryCooldown(cfg.EntryCreateCooldown),
		WithDefaultPageSize(cfg.JournalPageSize),
	)
	container.Quiz = NewQuizService(repos.QuizRepo)

	container.Analysis = NewAnalysisGateway(cfg.EngineURL, cfg.EngineTimeout)
	container.Live = NewLiveSessionService(
		cfg.GeminiAPIKey,
		cfg.GeminiLiveModel,
		WithLiveHTTPClient(&http.Client{Timeout: cfg.EngineTimeout}),
	)
	container.Media = NewMediaService(mediaStore)

	return container
}
