package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"learnlog/internal/app"
	"learnlog/internal/forms"
	"learnlog/internal/session"
	"learnlog/internal/transport/http/middleware"
	"learnlog/internal/transport/http/response"
)

type JournalHandler struct {
	journalService *app.JournalService
	sessions       *session.Store
}

func NewJournalHandler(journalService *app.JournalService, sessions *session.Store) *JournalHandler {
	return &JournalHandler{journalService: journalService, sessions: sessions}
}

// NewEntryPage serves the blank entry form state.
func (h *JournalHandler) NewEntryPage(c *gin.Context) {
	response.OK(c, gin.H{
		"entry_date": time.Now(),
		"flashes":    popFlashes(c, h.sessions),
	})
}

// CreateEntry validates the submitted form and persists a new entry.
func (h *JournalHandler) CreateEntry(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "authentication required")
		return
	}

	var form forms.EntryForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	if errs, ok := form.Validate(); !ok {
		response.FormErrors(c, errs)
		return
	}

	entry, err := h.journalService.Create(c.Request.Context(), app.EntryInput{
		UserID:    userID,
		Title:     form.Title,
		Duration:  form.Duration,
		Learnings: form.Learnings,
		Resources: form.Resources,
		Tags:      form.Tags,
		EntryDate: form.EntryDateOrNow(),
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrTitleExists):
			response.Error(c, http.StatusBadRequest, response.CodeTitleExists, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "create entry failed")
		}
		return
	}

	flash(c, h.sessions, "success", "Journal posted")
	if wantsJSON(c) {
		response.OK(c, entry)
		return
	}
	c.Redirect(http.StatusFound, "/journals")
}

// ListEntries shows all of the current user's entries, newest first.
func (h *JournalHandler) ListEntries(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "authentication required")
		return
	}

	entries, err := h.journalService.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list entries failed")
		return
	}

	response.OK(c, gin.H{
		"user_id": userID,
		"entries": entries,
		"flashes": popFlashes(c, h.sessions),
	})
}

// ListEntriesByTag filters the current user's entries by an exact tag token.
func (h *JournalHandler) ListEntriesByTag(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "authentication required")
		return
	}

	tag := c.Param("tag")
	entries, err := h.journalService.ListByTag(c.Request.Context(), userID, tag)
	if err != nil {
		if errors.Is(err, app.ErrInvalidInput) {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list entries failed")
		return
	}

	response.OK(c, gin.H{
		"user_id": userID,
		"tag":     tag,
		"entries": entries,
		"flashes": popFlashes(c, h.sessions),
	})
}

// EntryDetails shows a single entry looked up by title.
func (h *JournalHandler) EntryDetails(c *gin.Context) {
	entry, err := h.journalService.Detail(c.Request.Context(), c.Param("title"))
	if err != nil {
		if errors.Is(err, app.ErrEntryNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeEntryNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "load entry failed")
		return
	}

	response.OK(c, gin.H{
		"entry":   entry,
		"flashes": popFlashes(c, h.sessions),
	})
}

// EditEntryPage serves the edit form pre-filled from the stored entry.
func (h *JournalHandler) EditEntryPage(c *gin.Context) {
	entry, err := h.journalService.Detail(c.Request.Context(), c.Param("title"))
	if err != nil {
		if errors.Is(err, app.ErrEntryNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeEntryNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "load entry failed")
		return
	}
	response.OK(c, gin.H{"entry": entry})
}

// EditEntry overwrites the entry currently known by the title in the path.
func (h *JournalHandler) EditEntry(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "authentication required")
		return
	}

	originalTitle := c.Param("title")

	var form forms.EntryForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	if errs, ok := form.Validate(); !ok {
		response.FormErrors(c, errs)
		return
	}

	entry, err := h.journalService.Update(c.Request.Context(), originalTitle, app.EntryInput{
		UserID:    userID,
		Title:     form.Title,
		Duration:  form.Duration,
		Learnings: form.Learnings,
		Resources: form.Resources,
		Tags:      form.Tags,
		EntryDate: form.EntryDateOrNow(),
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrEntryNotFound):
			response.Error(c, http.StatusNotFound, response.CodeEntryNotFound, err.Error())
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrTitleExists):
			response.Error(c, http.StatusBadRequest, response.CodeTitleExists, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "update entry failed")
		}
		return
	}

	flash(c, h.sessions, "success", fmt.Sprintf("You've updated: %s!", originalTitle))
	if wantsJSON(c) {
		response.OK(c, entry)
		return
	}
	c.Redirect(http.StatusFound, "/journals")
}

// AuditTrail shows the current user's recent entry actions as recorded by
// the audit consumer. The optional limit query parameter caps the rows.
func (h *JournalHandler) AuditTrail(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "authentication required")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid limit")
		return
	}

	events, err := h.journalService.AuditTrail(c.Request.Context(), userID, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "load audit trail failed")
		return
	}

	response.OK(c, gin.H{
		"user_id": userID,
		"events":  events,
	})
}

// DeleteEntry removes an entry by title.
func (h *JournalHandler) DeleteEntry(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "authentication required")
		return
	}

	title := c.Param("title")
	if err := h.journalService.DeleteByTitle(c.Request.Context(), userID, title); err != nil {
		if errors.Is(err, app.ErrEntryNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeEntryNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "delete entry failed")
		return
	}

	flash(c, h.sessions, "success", fmt.Sprintf("You've deleted %s!", title))
	if wantsJSON(c) {
		response.OK(c, gin.H{"deleted_title": title})
		return
	}
	c.Redirect(http.StatusFound, "/journals")
}
