// Package apiclient is a typed HTTP client for the journal backend.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/burnout_journal/internal/apperrors"
	"github.com/SscSPs/burnout_journal/internal/client/editor"
	"github.com/SscSPs/burnout_journal/internal/client/journalsync"
	"github.com/SscSPs/burnout_journal/internal/core/domain"
	"github.com/SscSPs/burnout_journal/internal/dto"
)

var (
	_ journalsync.ListSource = (*Client)(nil)
	_ editor.EntryStore      = (*Client)(nil)
)

// APIError is a non-2xx reply from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps the status onto the shared error sentinels so callers can use errors.Is.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return apperrors.ErrValidation
	case http.StatusUnauthorized:
		return apperrors.ErrUnauthorized
	case http.StatusForbidden:
		return apperrors.ErrForbidden
	case http.StatusNotFound:
		return apperrors.ErrNotFound
	case http.StatusConflict:
		return apperrors.ErrDuplicate
	case http.StatusTooManyRequests:
		return apperrors.ErrTooManyRequests
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		return apperrors.ErrUpstreamUnavailable
	default:
		return nil
	}
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets the session token sent as a Bearer credential.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// Client talks to /api/v1. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// New returns a client for the backend at baseURL, e.g. http://localhost:8080.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/api/v1",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the session token.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current session token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var errBody struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&errBody); err == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// SignUp creates a password account and keeps the returned session token.
func (c *Client) SignUp(ctx context.Context, req dto.SignUpRequest) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/signup", nil, req, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp, nil
}

// SignIn authenticates with email and password and keeps the returned session token.
func (c *Client) SignIn(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/signin", nil, dto.SignInRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	c.SetToken(resp.Token)
	return &resp, nil
}

// SignOut ends the session and forgets the token.
func (c *Client) SignOut(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/signout", nil, nil, nil)
	c.SetToken("")
	return err
}

// ListJournals fetches one page of journal summaries, newest first.
func (c *Client) ListJournals(ctx context.Context, pageSize int, startAfterID string) ([]domain.JournalSummary, error) {
	q := url.Values{}
	if pageSize > 0 {
		q.Set("limit", strconv.Itoa(pageSize))
	}
	if startAfterID != "" {
		q.Set("startAfter", startAfterID)
	}
	var resp dto.ListJournalsResponse
	if err := c.do(ctx, http.MethodGet, "/journals", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Journals, nil
}

// GetJournal returns the journal and its entries, or nil when it is absent or hidden.
func (c *Client) GetJournal(ctx context.Context, journalID string) (*domain.JournalWithEntries, error) {
	var resp dto.GetJournalResponse
	err := c.do(ctx, http.MethodGet, "/journals/"+url.PathEscape(journalID), nil, nil, &resp)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toJournalWithEntries(resp.Journal, resp.Entries), nil
}

// EnsureJournal creates the journal if it does not exist.
func (c *Client) EnsureJournal(ctx context.Context, journalID string) error {
	return c.do(ctx, http.MethodPut, "/journals/"+url.PathEscape(journalID), nil, nil, nil)
}

// CreateJournalWithEntry starts a day with its first, empty entry.
func (c *Client) CreateJournalWithEntry(ctx context.Context, journalID string) (*domain.JournalWithEntries, error) {
	var resp dto.CreateJournalWithEntryResponse
	if err := c.do(ctx, http.MethodPost, "/journals/"+url.PathEscape(journalID)+"/with-entry", nil, nil, &resp); err != nil {
		return nil, err
	}
	return toJournalWithEntries(resp.Journal, []dto.EntryResponse{resp.Entry}), nil
}

// HideJournal soft-deletes a journal.
func (c *Client) HideJournal(ctx context.Context, journalID string) error {
	return c.do(ctx, http.MethodDelete, "/journals/"+url.PathEscape(journalID), nil, nil, nil)
}

// UnhideJournal restores a hidden journal.
func (c *Client) UnhideJournal(ctx context.Context, journalID string) error {
	return c.do(ctx, http.MethodPost, "/journals/"+url.PathEscape(journalID)+"/unhide", nil, nil, nil)
}

// CreateEntry adds an empty entry to the journal.
func (c *Client) CreateEntry(ctx context.Context, journalID string) (*domain.Entry, error) {
	var resp dto.EntryResponse
	if err := c.do(ctx, http.MethodPost, entriesPath(journalID), nil, nil, &resp); err != nil {
		return nil, err
	}
	e := resp.ToDomainEntry(journalID)
	return &e, nil
}

// SaveEntry replaces an entry's content.
func (c *Client) SaveEntry(ctx context.Context, journalID, entryID, content string) error {
	return c.do(ctx, http.MethodPut, entriesPath(journalID)+"/"+url.PathEscape(entryID), nil, dto.SaveEntryRequest{Content: &content}, nil)
}

// DeleteEntry removes an entry.
func (c *Client) DeleteEntry(ctx context.Context, journalID, entryID string) error {
	return c.do(ctx, http.MethodDelete, entriesPath(journalID)+"/"+url.PathEscape(entryID), nil, nil, nil)
}

// Analyze scores text for burnout.
func (c *Client) Analyze(ctx context.Context, text string) (*domain.AnalysisResult, error) {
	var resp domain.AnalysisResult
	if err := c.do(ctx, http.MethodPost, "/journal/analyze", nil, dto.AnalyzeRequest{Text: text}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateLiveSession requests a live coach token.
func (c *Client) CreateLiveSession(ctx context.Context) (*domain.LiveSession, error) {
	var resp domain.LiveSession
	if err := c.do(ctx, http.MethodPost, "/live/session", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SubmitQuiz stores questionnaire answers and returns the quiz id.
func (c *Client) SubmitQuiz(ctx context.Context, responses map[int]int) (string, error) {
	var resp dto.SubmitQuizResponse
	if err := c.do(ctx, http.MethodPost, "/quizzes", nil, dto.SubmitQuizRequest{Responses: responses}, &resp); err != nil {
		return "", err
	}
	return resp.QuizID, nil
}

// QuizStats lists normalized questionnaire scores, oldest first.
func (c *Client) QuizStats(ctx context.Context) ([]domain.QuizStat, error) {
	var resp dto.QuizStatsResponse
	if err := c.do(ctx, http.MethodGet, "/quizzes/stats", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Stats, nil
}

// QuizQuestions fetches the questionnaire and its answer scale.
func (c *Client) QuizQuestions(ctx context.Context) (*dto.QuizQuestionsResponse, error) {
	var resp dto.QuizQuestionsResponse
	if err := c.do(ctx, http.MethodGet, "/quizzes/questions", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetProfile returns the caller's preferences.
func (c *Client) GetProfile(ctx context.Context) (*domain.Profile, error) {
	var resp domain.Profile
	if err := c.do(ctx, http.MethodGet, "/profile", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateProfile changes the fields set in req.
func (c *Client) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (*domain.Profile, error) {
	var resp domain.Profile
	if err := c.do(ctx, http.MethodPut, "/profile", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteAccount removes the account and forgets the token.
func (c *Client) DeleteAccount(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/profile", nil, nil, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

// CreateUpload requests a presigned upload URL.
func (c *Client) CreateUpload(ctx context.Context, filename, contentType string) (*domain.UploadTicket, error) {
	var resp domain.UploadTicket
	req := dto.CreateUploadRequest{Filename: filename, ContentType: contentType}
	if err := c.do(ctx, http.MethodPost, "/uploads", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func entriesPath(journalID string) string {
	return "/journals/" + url.PathEscape(journalID) + "/entries"
}

func toJournalWithEntries(j dto.JournalResponse, entries []dto.EntryResponse) *domain.JournalWithEntries {
	out := &domain.JournalWithEntries{
		Journal: domain.Journal{JournalID: j.JournalID, CreatedAt: j.CreatedAt},
		Entries: make([]domain.Entry, len(entries)),
	}
	for i, e := range entries {
		out.Entries[i] = e.ToDomainEntry(j.JournalID)
	}
	return out
}
