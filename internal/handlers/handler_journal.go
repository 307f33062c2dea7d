package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/burnout_journal/internal/core/ports/services"
	"github.com/SscSPs/burnout_journal/internal/dto"
	"github.com/SscSPs/burnout_journal/internal/middleware"
	"github.com/gin-gonic/gin"
)

type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// registerJournalRoutes registers journal and entry routes on the authenticated group.
func registerJournalRoutes(rg *gin.RouterGroup, js portssvc.JournalSvcFacade) {
	h := newJournalHandler(js)

	journals := rg.Group("/journals")
	journals.GET("", h.listJournals)
	journals.GET("/:date", h.getJournal)
	journals.PUT("/:date", h.ensureJournal)
	journals.DELETE("/:date", h.hideJournal)
	journals.POST("/:date/unhide", h.unhideJournal)
	journals.POST("/:date/with-entry", h.createJournalWithEntry)

	entries := journals.Group("/:date/entries")
	entries.POST("", h.createEntry)
	entries.PUT("/:entryID", h.saveEntry)
	entries.DELETE("/:entryID", h.deleteEntry)
}

func bindJournalURI(c *gin.Context) (journalURI, bool) {
	var uri journalURI
	if err := c.ShouldBindUri(&uri); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid journal date in path", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Journal id must be a YYYY-MM-DD date"})
		return uri, false
	}
	return uri, true
}

func bindEntryURI(c *gin.Context) (entryURI, bool) {
	var uri entryURI
	if err := c.ShouldBindUri(&uri); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid entry path", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid journal date or entry id"})
		return uri, false
	}
	return uri, true
}

// listJournals godoc
// @Summary List journals
// @Description Lists the caller's visible journals, newest date first, one page at a time.
// @Tags journals
// @Produce json
// @Param limit query int false "Page size"
// @Param startAfter query string false "Last journal id already held (YYYY-MM-DD)"
// @Param nextToken query string false "Cursor from a previous page"
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /journals [get]
// @Security BearerAuth
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for ListJournals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalService.ListJournals(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list journals")
		return
	}

	logger.Debug("Journals listed", slog.Int("count", len(resp.Journals)), slog.Bool("has_more", resp.HasMore))
	c.JSON(http.StatusOK, resp)
}

// getJournal godoc
// @Summary Get a journal
// @Description Returns the journal and its entries, oldest entry first. Hidden journals are not found.
// @Tags journals
// @Produce json
// @Param date path string true "Journal date (YYYY-MM-DD)"
// @Success 200 {object} dto.GetJournalResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /journals/{date} [get]
// @Security BearerAuth
func (h *journalHandler) getJournal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	uri, ok := bindJournalURI(c)
	if !ok {
		return
	}

	journal, err := h.journalService.GetJournal(c.Request.Context(), userID, uri.Date)
	if err != nil {
		respondError(c, err, "Failed to retrieve journal")
		return
	}

	c.JSON(http.StatusOK, dto.ToGetJournalResponse(journal))
}

// ensureJournal godoc
// @Summary Ensure a journal exists
// @Description Creates the journal container for the date if it is missing. Idempotent.
// @Tags journals
// @Param date path string true "Journal date (YYYY-MM-DD)"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Router /journals/{date} [put]
// @Security BearerAuth
func (h *journalHandler) ensureJournal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	uri, ok := bindJournalURI(c)
	if !ok {
		return
	}

	if err := h.journalService.EnsureJournal(c.Request.Context(), userID, uri.Date); err != nil {
		respondError(c, err, "Failed to create journal")
		return
	}
	c.Status(http.StatusNoContent)
}

// createJournalWithEntry godoc
// @Summary Start a day with its first entry
// @Description Creates (or un-hides) the journal and adds one empty entry atomically.
// @Tags journals
// @Produce json
// @Param date path string true "Journal date (YYYY-MM-DD)"
// @Success 201 {object} dto.CreateJournalWithEntryResponse
// @Failure 400 {object} ErrorResponse
// @Router /journals/{date}/with-entry [post]
// @Security BearerAuth
func (h *journalHandler) createJournalWithEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	uri, ok := bindJournalURI(c)
	if !ok {
		return
	}

	created, err := h.journalService.CreateJournalWithEntry(c.Request.Context(), userID, uri.Date)
	if err != nil {
		respondError(c, err, "Failed to create journal")
		return
	}
	if len(created.Entries) == 0 {
		logger.Error("Journal created without its first entry", slog.String("journal_id", uri.Date))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create journal"})
		return
	}

	c.JSON(http.StatusCreated, dto.CreateJournalWithEntryResponse{
		Journal: dto.ToJournalResponse(&created.Journal),
		Entry:   dto.ToEntryResponse(&created.Entries[0]),
	})
}

// hideJournal godoc
// @Summary Hide a journal
// @Description Soft-deletes the journal. Its entries are kept.
// @Tags journals
// @Param date path string true "Journal date (YYYY-MM-DD)"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /journals/{date} [delete]
// @Security BearerAuth
func (h *journalHandler) hideJournal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	uri, ok := bindJournalURI(c)
	if !ok {
		return
	}

	if err := h.journalService.HideJournal(c.Request.Context(), userID, uri.Date); err != nil {
		respondError(c, err, "Failed to hide journal")
		return
	}
	c.Status(http.StatusNoContent)
}

// unhideJournal godoc
// @Summary Restore a hidden journal
// @Tags journals
// @Param date path string true "Journal date (YYYY-MM-DD)"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /journals/{date}/unhide [post]
// @Security BearerAuth
func (h *journalHandler) unhideJournal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	uri, ok := bindJournalURI(c)
	if !ok {
		return
	}

	if err := h.journalService.UnhideJournal(c.Request.Context(), userID, uri.Date); err != nil {
		respondError(c, err, "Failed to restore journal")
		return
	}
	c.Status(http.StatusNoContent)
}

// createEntry godoc
// @Summary Add an entry
// @Description Adds an empty entry to the journal. Limited to one per cool-down window.
// @Tags entries
// @Produce json
// @Param date path string true "Journal date (YYYY-MM-DD)"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse "Entry cool-down active"
// @Router /journals/{date}/entries [post]
// @Security BearerAuth
func (h *journalHandler) createEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	uri, ok := bindJournalURI(c)
	if !ok {
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), userID, uri.Date)
	if err != nil {
		respondError(c, err, "Failed to create entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// saveEntry godoc
// @Summary Save an entry
// @Description Replaces the entry content. Last write wins.
// @Tags entries
// @Accept json
// @Produce json
// @Param date path string true "Journal date (YYYY-MM-DD)"
// @Param entryID path string true "Entry ID"
// @Param entry body dto.SaveEntryRequest true "New content"
// @Success 200 {object} dto.SaveEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /journals/{date}/entries/{entryID} [put]
// @Security BearerAuth
func (h *journalHandler) saveEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	uri, ok := bindEntryURI(c)
	if !ok {
		return
	}

	var req dto.SaveEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind save entry request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.journalService.SaveEntry(c.Request.Context(), userID, uri.Date, uri.EntryID, *req.Content)
	if err != nil {
		respondError(c, err, "Failed to save entry")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// deleteEntry godoc
// @Summary Delete an entry
// @Tags entries
// @Param date path string true "Journal date (YYYY-MM-DD)"
// @Param entryID path string true "Entry ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /journals/{date}/entries/{entryID} [delete]
// @Security BearerAuth
func (h *journalHandler) deleteEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	uri, ok := bindEntryURI(c)
	if !ok {
		return
	}

	if err := h.journalService.DeleteEntry(c.Request.Context(), userID, uri.Date, uri.EntryID); err != nil {
		respondError(c, err, "Failed to delete entry")
		return
	}
	c.Status(http.StatusNoContent)
}
