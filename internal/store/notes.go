package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nhle/dayboard/internal/model"
)

// AddNote appends a note to the notes list.
func (s *SQLiteStore) AddNote(ctx context.Context, title, body string, now time.Time) (model.Note, error) {
	if strings.TrimSpace(title) == "" && strings.TrimSpace(body) == "" {
		return model.Note{}, fmt.Errorf("note must have a title or a body")
	}

	note := model.Note{
		ID:        uuid.New().String(),
		Title:     title,
		Body:      body,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}

	err := s.updateNotes(ctx, func(notes []model.Note) ([]model.Note, error) {
		return append(notes, note), nil
	})
	if err != nil {
		return model.Note{}, fmt.Errorf("adding note: %w", err)
	}
	return note, nil
}

// UpdateNote replaces the title and body of an existing note.
func (s *SQLiteStore) UpdateNote(ctx context.Context, note model.Note, now time.Time) (model.Note, error) {
	var updated model.Note
	err := s.updateNotes(ctx, func(notes []model.Note) ([]model.Note, error) {
		for i := range notes {
			if notes[i].ID == note.ID {
				notes[i].Title = note.Title
				notes[i].Body = note.Body
				notes[i].UpdatedAt = now.UTC()
				updated = notes[i]
				return notes, nil
			}
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return model.Note{}, fmt.Errorf("updating note %s: %w", note.ID, err)
	}
	return updated, nil
}

// DeleteNote removes a note by ID.
func (s *SQLiteStore) DeleteNote(ctx context.Context, id string) error {
	err := s.updateNotes(ctx, func(notes []model.Note) ([]model.Note, error) {
		for i := range notes {
			if notes[i].ID == id {
				return append(notes[:i], notes[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return fmt.Errorf("deleting note %s: %w", id, err)
	}
	return nil
}

// Notes returns all notes in creation order.
func (s *SQLiteStore) Notes(ctx context.Context) ([]model.Note, error) {
	var notes []model.Note
	if _, err := s.Get(ctx, KeyNotes, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// updateNotes loads the notes list, applies fn and writes the result back
// in one transaction.
func (s *SQLiteStore) updateNotes(
	ctx context.Context,
	fn func([]model.Note) ([]model.Note, error),
) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		var notes []model.Note
		if _, err := getJSON(ctx, tx, KeyNotes, &notes); err != nil {
			return err
		}
		notes, err := fn(notes)
		if err != nil {
			return err
		}
		return putJSON(ctx, tx, KeyNotes, notes)
	})
}
