package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/notes-api/internal/model"
	"github.com/iliyamo/notes-api/internal/repository"
)

func newNotesHandler() (*NotesHandler, *repository.MemoryNoteStore) {
	notes := repository.NewMemoryNoteStore()
	return NewNotesHandler(notes), notes
}

func asCaller(uid uint64, params ...string) func(echo.Context) {
	return func(c echo.Context) {
		c.Set("user_id", uid)
		if len(params) == 1 {
			c.SetParamNames("id")
			c.SetParamValues(params[0])
		}
	}
}

func seedNote(t *testing.T, notes *repository.MemoryNoteStore, owner uint64) model.Note {
	t.Helper()
	n := model.Note{UserID: owner, Title: "Groceries", Description: "Buy milk and eggs", Tag: "home"}
	require.NoError(t, notes.Create(context.Background(), &n))
	return n
}

func TestCreateAndFetchRoundTrip(t *testing.T) {
	h, _ := newNotesHandler()

	rec := call(t, h.Create, http.MethodPost, "/api/notes/createNote",
		`{"title":"Groceries","description":"Buy milk and eggs","tag":"home"}`, asCaller(1))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created model.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotZero(t, created.ID, "store assigns the id")
	assert.Equal(t, uint64(1), created.UserID)
	assert.Equal(t, "Groceries", created.Title)

	rec = call(t, h.FetchAll, http.MethodGet, "/api/notes/fetchAllNotes", "", asCaller(1))
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []model.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, created.ID, mine[0].ID)

	// A different caller must not see it, and gets an array, not null.
	rec = call(t, h.FetchAll, http.MethodGet, "/api/notes/fetchAllNotes", "", asCaller(2))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreateNoteCollectsValidationErrors(t *testing.T) {
	h, notes := newNotesHandler()

	rec := call(t, h.Create, http.MethodPost, "/api/notes/createNote",
		`{"title":"ab","description":"abc"}`, asCaller(1))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Errors []model.FieldError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 2)
	assert.Equal(t, "title", resp.Errors[0].Field)
	assert.Equal(t, "description", resp.Errors[1].Field)
	assert.Zero(t, notes.Len(), "nothing persisted on validation failure")
}

func TestCreateNoteIgnoresClientSuppliedOwner(t *testing.T) {
	h, _ := newNotesHandler()

	rec := call(t, h.Create, http.MethodPost, "/api/notes/createNote",
		`{"title":"Groceries","description":"Buy milk and eggs","user_id":999}`, asCaller(1))
	require.Equal(t, http.StatusOK, rec.Code)

	var created model.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, uint64(1), created.UserID, "owner is always the caller")
}

func TestUpdateNotePartial(t *testing.T) {
	h, notes := newNotesHandler()
	n := seedNote(t, notes, 1)

	rec := call(t, h.Update, http.MethodPut, "/api/notes/updatenote/1",
		`{"tag":"urgent"}`, asCaller(1, "1"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated model.Note
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, n.Title, updated.Title, "title unchanged")
	assert.Equal(t, n.Description, updated.Description, "description unchanged")
	assert.Equal(t, "urgent", updated.Tag)
}

func TestUpdateNoteForeignOwner(t *testing.T) {
	h, notes := newNotesHandler()
	n := seedNote(t, notes, 2)

	rec := call(t, h.Update, http.MethodPut, "/api/notes/updatenote/1",
		`{"title":"Hijacked"}`, asCaller(1, "1"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Not authorized"}`, rec.Body.String())

	stored, err := notes.GetByID(context.Background(), n.ID)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", stored.Title, "foreign note untouched")
}

func TestUpdateNoteNotFound(t *testing.T) {
	h, _ := newNotesHandler()

	for _, id := range []string{"99", "not-a-number"} {
		rec := call(t, h.Update, http.MethodPut, "/api/notes/updatenote/"+id,
			`{"title":"Whatever"}`, asCaller(1, id))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Note not found"}`, rec.Body.String())
	}
}

func TestDeleteNote(t *testing.T) {
	h, notes := newNotesHandler()
	seedNote(t, notes, 1)

	rec := call(t, h.Delete, http.MethodDelete, "/api/notes/deleteNote/1", "", asCaller(1, "1"))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success string     `json:"success"`
		Note    model.Note `json:"note"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Note has been deleted", resp.Success)
	assert.Equal(t, "Groceries", resp.Note.Title, "last known state returned")
	assert.Zero(t, notes.Len())
}

func TestDeleteNoteForeignOwner(t *testing.T) {
	h, notes := newNotesHandler()
	seedNote(t, notes, 2)

	rec := call(t, h.Delete, http.MethodDelete, "/api/notes/deleteNote/1", "", asCaller(1, "1"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Not authorized"}`, rec.Body.String())
	assert.Equal(t, 1, notes.Len(), "note remains")
}

func TestDeleteNoteNotFound(t *testing.T) {
	h, notes := newNotesHandler()
	seedNote(t, notes, 1)

	rec := call(t, h.Delete, http.MethodDelete, "/api/notes/deleteNote/99", "", asCaller(1, "99"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Note not found"}`, rec.Body.String())
	assert.Equal(t, 1, notes.Len(), "no store mutation on a miss")
}
