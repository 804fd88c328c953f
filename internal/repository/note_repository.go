package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/notes-api/internal/model"
)

var ErrNoteNotFound = errors.New("note not found")

// NoteStore is the persistence seam for notes. Update and Delete are
// conditional on both the note id and its owner so that a mutation can
// never land on another user's note, even if the record changes
// between the handler's ownership check and the write.
type NoteStore interface {
	ListByOwner(ctx context.Context, userID uint64) ([]model.Note, error)
	Create(ctx context.Context, n *model.Note) error
	GetByID(ctx context.Context, id uint64) (model.Note, error)
	Update(ctx context.Context, id, ownerID uint64, patch model.NotePatch) (model.Note, error)
	Delete(ctx context.Context, id, ownerID uint64) error
}

// NoteRepo implements NoteStore over the `notes` table.
type NoteRepo struct{ DB *sql.DB }

func NewNoteRepo(db *sql.DB) *NoteRepo { return &NoteRepo{DB: db} }

const noteCols = "id,user_id,title,description,tag,created_at,updated_at"

// ListByOwner returns every note owned by userID, oldest first. The
// result is an empty slice, not nil, when the user has no notes.
func (r *NoteRepo) ListByOwner(ctx context.Context, userID uint64) ([]model.Note, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+noteCols+" FROM notes WHERE user_id=? ORDER BY id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []model.Note{}
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Description, &n.Tag, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// Create inserts the note and fills in its assigned id and timestamps.
func (r *NoteRepo) Create(ctx context.Context, n *model.Note) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO notes (user_id, title, description, tag) VALUES (?,?,?,?)",
		n.UserID, n.Title, n.Description, n.Tag)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	stored, err := r.GetByID(ctx, uint64(id))
	if err != nil {
		return err
	}
	*n = stored
	return nil
}

// GetByID fetches a note regardless of owner.
func (r *NoteRepo) GetByID(ctx context.Context, id uint64) (model.Note, error) {
	return scanNote(r.DB.QueryRowContext(ctx,
		"SELECT "+noteCols+" FROM notes WHERE id=? LIMIT 1", id))
}

// Update applies the provided patch fields in a single statement
// matching id AND owner, then returns the resulting row. A note that
// does not exist under that owner yields ErrNoteNotFound.
func (r *NoteRepo) Update(ctx context.Context, id, ownerID uint64, patch model.NotePatch) (model.Note, error) {
	sets := []string{}
	args := []any{}
	if patch.Title != "" {
		sets = append(sets, "title=?")
		args = append(args, patch.Title)
	}
	if patch.Description != "" {
		sets = append(sets, "description=?")
		args = append(args, patch.Description)
	}
	if patch.Tag != "" {
		sets = append(sets, "tag=?")
		args = append(args, patch.Tag)
	}
	if len(sets) > 0 {
		sets = append(sets, "updated_at=NOW()")
		args = append(args, id, ownerID)
		if _, err := r.DB.ExecContext(ctx,
			"UPDATE notes SET "+strings.Join(sets, ",")+" WHERE id=? AND user_id=?",
			args...); err != nil {
			return model.Note{}, err
		}
	}
	// Re-read scoped to the owner: RowsAffected cannot distinguish
	// "row missing" from "values unchanged".
	return scanNote(r.DB.QueryRowContext(ctx,
		"SELECT "+noteCols+" FROM notes WHERE id=? AND user_id=? LIMIT 1", id, ownerID))
}

// Delete removes the note, conditional on the owner.
func (r *NoteRepo) Delete(ctx context.Context, id, ownerID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM notes WHERE id=? AND user_id=?", id, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoteNotFound
	}
	return nil
}

func scanNote(row *sql.Row) (model.Note, error) {
	var n model.Note
	err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Description, &n.Tag, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Note{}, ErrNoteNotFound
	}
	return n, err
}
