package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/notes-api/internal/model"
	"github.com/iliyamo/notes-api/internal/repository"
)

// NotesHandler implements the note CRUD endpoints. All of them sit
// behind the auth middleware and read the caller's id from context;
// mutations additionally verify ownership of the targeted note.
type NotesHandler struct {
	Notes repository.NoteStore
}

func NewNotesHandler(notes repository.NoteStore) *NotesHandler {
	return &NotesHandler{Notes: notes}
}

type noteReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Tag         string `json:"tag"`
}

type deleteResp struct {
	Success string     `json:"success"`
	Note    model.Note `json:"note"`
}

// getUserID extracts the authenticated user's id from the context.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// noteID parses the :id path parameter. A non-numeric id cannot match
// any note, so the caller treats a parse failure as not found.
func noteID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return id, err == nil
}

// FetchAll handles GET /api/notes/fetchAllNotes and returns every note
// owned by the caller, an empty array when there are none.
func (h *NotesHandler) FetchAll(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	notes, err := h.Notes.ListByOwner(ctx, uid)
	if err != nil {
		c.Logger().Errorf("list notes: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, notes)
}

// Create handles POST /api/notes/createNote. Every violated validation
// rule is reported. The owner is always the authenticated caller; any
// owner field in the body is ignored.
func (h *NotesHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req noteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if verrs := model.ValidateNewNote(req.Title, req.Description); len(verrs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": verrs})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	note := model.Note{
		UserID:      uid,
		Title:       req.Title,
		Description: req.Description,
		Tag:         req.Tag,
	}
	if err := h.Notes.Create(ctx, &note); err != nil {
		c.Logger().Errorf("create note: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, note)
}

// Update handles PUT /api/notes/updatenote/:id. Only the fields
// present in the body replace stored values. The note must exist (404)
// and belong to the caller (401); the store applies the patch
// conditionally on id and owner so a concurrent owner change cannot
// slip a foreign mutation through.
func (h *NotesHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := noteID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Note not found"})
	}
	var req noteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	note, err := h.Notes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Note not found"})
		}
		c.Logger().Errorf("get note: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}
	if note.UserID != uid {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Not authorized"})
	}

	updated, err := h.Notes.Update(ctx, id, uid, model.NotePatch{
		Title:       req.Title,
		Description: req.Description,
		Tag:         req.Tag,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Note not found"})
		}
		c.Logger().Errorf("update note: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/notes/deleteNote/:id with the same
// not-found/ownership checks as Update. The response carries the
// deleted note's last known state.
func (h *NotesHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := noteID(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Note not found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	note, err := h.Notes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Note not found"})
		}
		c.Logger().Errorf("get note: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}
	if note.UserID != uid {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Not authorized"})
	}

	if err := h.Notes.Delete(ctx, id, uid); err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Note not found"})
		}
		c.Logger().Errorf("delete note: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal Server Error"})
	}
	return c.JSON(http.StatusOK, deleteResp{Success: "Note has been deleted", Note: note})
}
