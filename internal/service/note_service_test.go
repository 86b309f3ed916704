package service

import (
	"testing"

	"noter-be/internal/dto"
	"noter-be/internal/pkg/apperror"
	"noter-be/pkg/cache"
	"noter-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteShow_PrivateNoteOnlyForOwner(t *testing.T) {
	h := newHarness(t)
	alice := h.seed.User("Alice")
	bob := h.seed.User("Bob")
	folder := h.seed.Folder(alice, "Drafts", false, nil)
	note := h.seed.Note(alice, "Secret", false, folder)

	_, err := h.notes.Show(h.ctx, idOf(bob), note.Id)
	assert.True(t, apperror.Is(err, apperror.KindForbidden), "got %v", err)

	_, err = h.notes.Show(h.ctx, nil, note.Id)
	assert.True(t, apperror.Is(err, apperror.KindForbidden), "got %v", err)

	res, err := h.notes.Show(h.ctx, idOf(alice), note.Id)
	require.NoError(t, err)
	assert.Equal(t, "Secret", res.Title)
	assert.True(t, res.IsOwner)
	require.NotNil(t, res.FolderId)
	assert.Equal(t, folder.Id, *res.FolderId)
	assert.Equal(t, "Alice", res.Author.Name)
}

func TestNoteShow_UnknownNote(t *testing.T) {
	h := newHarness(t)
	alice := h.seed.User("Alice")

	_, err := h.notes.Show(h.ctx, idOf(alice), uuid.New())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	assert.EqualError(t, err, "Note not found")
}

func TestNoteShow_AnonymousNeverBookmarked(t *testing.T) {
	h := newHarness(t)
	alice := h.seed.User("Alice")
	bob := h.seed.User("Bob")
	note := h.seed.Note(alice, "Shared", true, nil)

	toggled, err := h.bookmarks.Toggle(h.ctx, idOf(bob), note.Id)
	require.NoError(t, err)
	require.True(t, toggled.IsBookmarked)

	anon, err := h.notes.Show(h.ctx, nil, note.Id)
	require.NoError(t, err)
	assert.False(t, anon.IsBookmarked)
	assert.False(t, anon.IsOwner)

	// Served from the shared cache entry, but projected for Bob.
	asBob, err := h.notes.Show(h.ctx, idOf(bob), note.Id)
	require.NoError(t, err)
	assert.True(t, asBob.IsBookmarked)
	assert.Nil(t, asBob.FolderId)
}

func TestNoteShow_OwnerCopyDoesNotLeak(t *testing.T) {
	h := newHarness(t)
	alice := h.seed.User("Alice")
	bob := h.seed.User("Bob")
	folder := h.seed.Folder(alice, "Work", true, nil)
	note := h.seed.Note(alice, "Plan", true, folder)

	_, err := h.notes.Show(h.ctx, idOf(alice), note.Id)
	require.NoError(t, err)
	_, found, _ := h.store.Get(h.ctx, cache.NoteKey(note.Id, &alice.Id))
	assert.True(t, found)

	res, err := h.notes.Show(h.ctx, idOf(bob), note.Id)
	require.NoError(t, err)
	assert.False(t, res.IsOwner)
	assert.Nil(t, res.FolderId)

	_, found, _ = h.store.Get(h.ctx, cache.NoteKey(note.Id, nil))
	assert.True(t, found)
	_, found, _ = h.store.Get(h.ctx, cache.NoteKey(note.Id, &bob.Id))
	assert.False(t, found, "viewer ids other than the owner never become keys")
}

func TestNoteUpdate_VisibleToSubsequentReads(t *testing.T) {
	h := newHarness(t)
	alice := h.seed.User("Alice")
	bob := h.seed.User("Bob")
	note := h.seed.Note(alice, "Before", true, nil)

	// Warm both cache entries.
	_, err := h.notes.Show(h.ctx, idOf(alice), note.Id)
	require.NoError(t, err)
	_, err = h.notes.Show(h.ctx, nil, note.Id)
	require.NoError(t, err)

	_, err = h.notes.Update(h.ctx, idOf(alice), &dto.UpdateNoteRequest{Id: note.Id, Title: ptr("After")})
	require.NoError(t, err)

	for _, caller := range []*uuid.UUID{idOf(alice), idOf(bob), nil} {
		res, err := h.notes.Show(h.ctx, caller, note.Id)
		require.NoError(t, err)
		assert.Equal(t, "After", res.Title)
	}
	assert.Contains(t, h.publisher.types(), events.TypeNoteUpdated)
}

func TestNoteUpdate_HidingNoteTakesEffectImmediately(t *testing.T) {
	h := newHarness(t)
	alice := h.seed.User("Alice")
	bob := h.seed.User("Bob")
	note := h.seed.Note(alice, "Public for now", true, nil)

	_, err := h.notes.Show(h.ctx, idOf(bob), note.Id)
	require.NoError(t, err)

	_, err = h.notes.Update(h.ctx, idOf(alice), &dto.UpdateNoteRequest{Id: note.Id, IsPublic: ptr(false)})
	require.NoError(t, err)

	_, err = h.notes.Show(h.ctx, idOf(bob), note.Id)
	assert.True(t, apperror.Is(err, apperror.KindForbidden), "got %v", err)
}

func TestNoteUpdate_Permissions(t *testing.T) {
	h := newHarness(t)
	alice := h.seed.User("Alice")
	bob := h.seed.User("Bob")
	note := h.seed.Note(alice, "Mine", true, nil)
	bobsFolder := h.seed.Folder(bob, "Bob's", true, nil)

	_, err := h.notes.Update(h.ctx, idOf(bob), &dto.UpdateNoteRequest{Id: note.Id, Title: ptr("Hijack")})
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	_, err = h.notes.Update(h.ctx, idOf(alice), &dto.UpdateNoteRequest{Id: uuid.New(), Title: ptr("x")})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	_, err = h.notes.Update(h.ctx, idOf(alice), &dto.UpdateNoteRequest{
		Id:       note.Id,
		FolderId: dto.OptionalUUID{Set: true, Value: &bobsFolder.Id},
	})
	assert.True(t, apperror.Is(err, apperror.KindForbidden))
}

func TestNoteUpdate_MoveToRoot(t *testing.T) {
	h := newHarness(t)
	alice := h.seed.User("Alice")
	folder := h.seed.Folder(alice, "Inbox", true, nil)
	note := h.seed.Note(alice, "Filed", true, folder)

	res, err := h.notes.Update(h.ctx, idOf(alice), &dto.UpdateNoteRequest{
		Id:       note.Id,
		FolderId: dto.OptionalUUID{Set: true},
	})
	require.NoError(t, err)
	assert.Nil(t, res.FolderId)

	// Absent folderId leaves placement alone.
	res, err = h.notes.Update(h.ctx, idOf(alice), &dto.UpdateNoteRequest{Id: note.Id, Title: ptr("Renamed")})
	require.NoError(t, err)
	assert.Nil(t, res.FolderId)
	assert.Equal(t, "Renamed", res.Title)
}

func TestNoteCreate(t *testing.T) {
	h := newHarness(t)
	alice := h.seed.User("Alice")
	bob := h.seed.User("Bob")
	folder := h.seed.Folder(alice, "Ideas", true, nil)

	t.Run("defaults to public", func(t *testing.T) {
		res, err := h.notes.Create(h.ctx, alice.Id, &dto.CreateNoteRequest{Title: "Hello", Content: "<p>hi</p>"})
		require.NoError(t, err)
		assert.True(t, res.IsPublic)
		assert.Nil(t, res.FolderId)
	})

	t.Run("explicit private stays private", func(t *testing.T) {
		res, err := h.notes.Create(h.ctx, alice.Id, &dto.CreateNoteRequest{Title: "Quiet", Content: "x", IsPublic: ptr(false)})
		require.NoError(t, err)
		assert.False(t, res.IsPublic)

		_, err = h.notes.Show(h.ctx, idOf(bob), res.Id)
		assert.True(t, apperror.Is(err, apperror.KindForbidden))
	})

	t.Run("into own folder", func(t *testing.T) {
		res, err := h.notes.Create(h.ctx, alice.Id, &dto.CreateNoteRequest{Title: "Filed", Content: "x", FolderId: &folder.Id})
		require.NoError(t, err)
		require.NotNil(t, res.FolderId)
		assert.Equal(t, folder.Id, *res.FolderId)
	})

	t.Run("into someone else's folder", func(t *testing.T) {
		_, err := h.notes.Create(h.ctx, bob.Id, &dto.CreateNoteRequest{Title: "Sneaky", Content: "x", FolderId: &folder.Id})
		assert.True(t, apperror.Is(err, apperror.KindForbidden))
	})

	t.Run("into a missing folder", func(t *testing.T) {
		missing := uuid.New()
		_, err := h.notes.Create(h.ctx, alice.Id, &dto.CreateNoteRequest{Title: "Lost", Content: "x", FolderId: &missing})
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})

	assert.Contains(t, h.publisher.types(), events.TypeNoteCreated)
}

func TestNoteList_FolderFilter(t *testing.T) {
	h := newHarness(t)
	alice := h.seed.User("Alice")
	bob := h.seed.User("Bob")
	folder := h.seed.Folder(alice, "Inbox", true, nil)
	h.seed.Note(alice, "Root note", false, nil)
	h.seed.Note(alice, "Filed note", true, folder)
	h.seed.Note(bob, "Not mine", true, nil)

	all, err := h.notes.List(h.ctx, alice.Id, &dto.ListNotesRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	root, err := h.notes.List(h.ctx, alice.Id, &dto.ListNotesRequest{FolderId: dto.OptionalUUID{Set: true}})
	require.NoError(t, err)
	require.Len(t, root, 1)
	assert.Equal(t, "Root note", root[0].Title)

	filed, err := h.notes.List(h.ctx, alice.Id, &dto.ListNotesRequest{FolderId: dto.OptionalUUID{Set: true, Value: &folder.Id}})
	require.NoError(t, err)
	require.Len(t, filed, 1)
	assert.Equal(t, "Filed note", filed[0].Title)
	assert.Equal(t, "Filed note body", filed[0].Excerpt)
}

func TestNoteDelete_RemovesBookmarksAndCache(t *testing.T) {
	h := newHarness(t)
	alice := h.seed.User("Alice")
	bob := h.seed.User("Bob")
	note := h.seed.Note(alice, "Doomed", true, nil)
	h.seed.Bookmark(bob, note, 0)

	_, err := h.notes.Show(h.ctx, nil, note.Id)
	require.NoError(t, err)

	err = h.notes.Delete(h.ctx, idOf(bob), note.Id)
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	require.NoError(t, h.notes.Delete(h.ctx, idOf(alice), note.Id))

	assert.Zero(t, h.seed.Count("notes", "id = ?", note.Id))
	assert.Zero(t, h.seed.Count("bookmarks", "note_id = ?", note.Id))

	_, found, _ := h.store.Get(h.ctx, cache.NoteKey(note.Id, nil))
	assert.False(t, found)

	_, err = h.notes.Show(h.ctx, nil, note.Id)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	assert.Contains(t, h.publisher.types(), events.TypeNoteDeleted)
}
