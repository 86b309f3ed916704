package service

import (
	"testing"
	"time"

	"noter-be/internal/dto"
	"noter-be/internal/entity"
	"noter-be/internal/pkg/apperror"
	"noter-be/internal/repository/implementation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookmarkToggle_RoundTrip(t *testing.T) {
	h := newHarness(t)
	alice := h.seed.User("Alice")
	bob := h.seed.User("Bob")
	note := h.seed.Note(alice, "Recipe", true, nil)

	res, err := h.bookmarks.Toggle(h.ctx, idOf(bob), note.Id)
	require.NoError(t, err)
	assert.True(t, res.IsBookmarked)
	assert.EqualValues(t, 1, h.seed.Count("bookmarks", "user_id = ? AND note_id = ?", bob.Id, note.Id))

	res, err = h.bookmarks.Toggle(h.ctx, idOf(bob), note.Id)
	require.NoError(t, err)
	assert.False(t, res.IsBookmarked)
	assert.Zero(t, h.seed.Count("bookmarks", "user_id = ? AND note_id = ?", bob.Id, note.Id))
}

func TestBookmarkToggle_OwnPrivateNote(t *testing.T) {
	h := newHarness(t)
	alice := h.seed.User("Alice")
	note := h.seed.Note(alice, "Journal", false, nil)

	res, err := h.bookmarks.Toggle(h.ctx, idOf(alice), note.Id)
	require.NoError(t, err)
	assert.True(t, res.IsBookmarked)
}

func TestBookmarkToggle_Errors(t *testing.T) {
	h := newHarness(t)
	alice := h.seed.User("Alice")
	bob := h.seed.User("Bob")
	public := h.seed.Note(alice, "Open", true, nil)
	private := h.seed.Note(alice, "Closed", false, nil)

	tests := []struct {
		name   string
		caller *uuid.UUID
		noteId uuid.UUID
		want   apperror.Kind
	}{
		{name: "missing note wins over anonymous", caller: nil, noteId: uuid.New(), want: apperror.KindNotFound},
		{name: "missing note", caller: idOf(bob), noteId: uuid.New(), want: apperror.KindNotFound},
		{name: "anonymous", caller: nil, noteId: public.Id, want: apperror.KindUnauthenticated},
		{name: "someone else's private note", caller: idOf(bob), noteId: private.Id, want: apperror.KindForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.bookmarks.Toggle(h.ctx, tt.caller, tt.noteId)
			require.Error(t, err)
			assert.True(t, apperror.Is(err, tt.want), "got %v", err)
		})
	}
	assert.Zero(t, h.seed.Count("bookmarks", ""))
}

func TestBookmarkToggle_RemovesAfterNoteTurnsPrivate(t *testing.T) {
	h := newHarness(t)
	alice := h.seed.User("Alice")
	bob := h.seed.User("Bob")
	note := h.seed.Note(alice, "Briefly shared", true, nil)
	h.seed.Bookmark(bob, note, time.Minute)

	_, err := h.notes.Update(h.ctx, idOf(alice), &dto.UpdateNoteRequest{Id: note.Id, IsPublic: ptr(false)})
	require.NoError(t, err)

	res, err := h.bookmarks.Toggle(h.ctx, idOf(bob), note.Id)
	require.NoError(t, err)
	assert.False(t, res.IsBookmarked)
	assert.Zero(t, h.seed.Count("bookmarks", "user_id = ? AND note_id = ?", bob.Id, note.Id))

	_, err = h.bookmarks.Toggle(h.ctx, idOf(bob), note.Id)
	assert.True(t, apperror.Is(err, apperror.KindForbidden), "got %v", err)
	assert.Zero(t, h.seed.Count("bookmarks", "user_id = ? AND note_id = ?", bob.Id, note.Id))
}

func TestBookmarkList_NewestFirstAndVisibleOnly(t *testing.T) {
	h := newHarness(t)
	alice := h.seed.User("Alice")
	bob := h.seed.User("Bob")
	older := h.seed.Note(alice, "Older", true, nil)
	newer := h.seed.Note(alice, "Newer", true, nil)
	hidden := h.seed.Note(alice, "Hidden later", true, nil)
	own := h.seed.Note(bob, "Bob's own private", false, nil)

	h.seed.Bookmark(bob, older, 3*time.Hour)
	h.seed.Bookmark(bob, hidden, 2*time.Hour)
	h.seed.Bookmark(bob, newer, time.Hour)
	h.seed.Bookmark(bob, own, time.Minute)

	_, err := h.notes.Update(h.ctx, idOf(alice), &dto.UpdateNoteRequest{Id: hidden.Id, IsPublic: ptr(false)})
	require.NoError(t, err)

	list, err := h.bookmarks.List(h.ctx, bob.Id)
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, own.Id, list[0].Id)
	assert.Equal(t, newer.Id, list[1].Id)
	assert.Equal(t, older.Id, list[2].Id)
	for _, item := range list {
		assert.True(t, item.IsBookmarked)
	}
	assert.True(t, list[1].BookmarkedAt.After(list[2].BookmarkedAt))

	empty, err := h.bookmarks.List(h.ctx, alice.Id)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestBookmarkRepository_InsertIgnoresDuplicate(t *testing.T) {
	h := newHarness(t)
	alice := h.seed.User("Alice")
	note := h.seed.Note(alice, "Once", true, nil)
	repo := implementation.NewBookmarkRepository(h.db)

	inserted, err := repo.Insert(h.ctx, &entity.Bookmark{UserId: alice.Id, NoteId: note.Id})
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.Insert(h.ctx, &entity.Bookmark{UserId: alice.Id, NoteId: note.Id})
	require.NoError(t, err)
	assert.False(t, inserted)

	assert.EqualValues(t, 1, h.seed.Count("bookmarks", "note_id = ?", note.Id))
}
