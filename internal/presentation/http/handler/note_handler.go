package handler

import (
	"net/http"
	"strings"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/application/service"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/enum"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/repository"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/presentation/http/dto/request"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// NoteHandler handles the shop owner's notes
type NoteHandler struct {
	noteService *service.NoteService
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(noteService *service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// List handles searching notes
func (h *NoteHandler) List(c *gin.Context) {
	var req request.NoteFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.NoteFilterParams{
		Pagination: pageParams(req.Page, req.PerPage),
		Search:     req.Search,
	}
	if p := enum.NotePriority(strings.ToLower(req.Priority)); p.IsValid() {
		params.Priority = &p
	}

	result, err := h.noteService.ListNotes(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, "Notes retrieved successfully", result)
}

// Get handles retrieving a single note
func (h *NoteHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	note, err := h.noteService.GetNote(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Note retrieved successfully", note)
}

// Create handles adding a note
func (h *NoteHandler) Create(c *gin.Context) {
	var req request.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	note, err := h.noteService.CreateNote(c.Request.Context(), noteInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Note created successfully", note)
}

// Update handles replacing a note
func (h *NoteHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req request.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	note, err := h.noteService.UpdateNote(c.Request.Context(), id, noteInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Note updated successfully", note)
}

// Delete handles removing a note
func (h *NoteHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.noteService.DeleteNote(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Note deleted successfully", nil)
}

func noteInput(req *request.NoteRequest) *service.NoteInput {
	return &service.NoteInput{
		Title:    req.Title,
		Content:  req.Content,
		Tags:     req.Tags,
		Priority: req.Priority,
	}
}
