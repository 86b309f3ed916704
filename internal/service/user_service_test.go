package service

import (
	"testing"

	"noter-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserDirectory(t *testing.T) {
	h := newHarness(t)
	bob := h.seed.User("Bob")
	alice := h.seed.User("Alice")
	h.seed.Note(alice, "Public one", true, nil)
	h.seed.Note(alice, "Public two", true, nil)
	h.seed.Note(alice, "Private", false, nil)
	h.seed.Note(bob, "Private", false, nil)

	dir, err := h.users.Directory(h.ctx)
	require.NoError(t, err)
	require.Len(t, dir, 2)
	assert.Equal(t, "Alice", dir[0].Name)
	assert.EqualValues(t, 2, dir[0].PublicNoteCount)
	assert.Equal(t, "Bob", dir[1].Name)
	assert.Zero(t, dir[1].PublicNoteCount)
}

func TestUserProfile_Visibility(t *testing.T) {
	h := newHarness(t)
	alice := h.seed.User("Alice")
	bob := h.seed.User("Bob")
	h.seed.Note(alice, "Public", true, nil)
	h.seed.Note(alice, "Private", false, nil)
	h.seed.Folder(alice, "Open", true, nil)
	closed := h.seed.Folder(alice, "Closed", false, nil)
	h.seed.Folder(alice, "Nested", true, closed)

	self, err := h.users.Profile(h.ctx, idOf(alice), alice.Id)
	require.NoError(t, err)
	assert.True(t, self.IsSelf)
	require.NotNil(t, self.Email)
	assert.Equal(t, "alice@example.com", *self.Email)
	assert.EqualValues(t, 2, self.NoteCount)
	assert.EqualValues(t, 3, self.FolderCount)
	assert.Len(t, self.RecentNotes, 2)
	assert.Len(t, self.RecentFolders, 2, "only root folders are listed")

	for _, caller := range []*uuid.UUID{idOf(bob), nil} {
		other, err := h.users.Profile(h.ctx, caller, alice.Id)
		require.NoError(t, err)
		assert.False(t, other.IsSelf)
		assert.Nil(t, other.Email)
		assert.EqualValues(t, 1, other.NoteCount)
		assert.EqualValues(t, 2, other.FolderCount)
		require.Len(t, other.RecentNotes, 1)
		assert.Equal(t, "Public", other.RecentNotes[0].Title)
		require.Len(t, other.RecentFolders, 1)
		assert.Equal(t, "Open", other.RecentFolders[0].Name)
	}

	_, err = h.users.Profile(h.ctx, nil, uuid.New())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestUserContent_BookmarksOnlyForSelf(t *testing.T) {
	h := newHarness(t)
	alice := h.seed.User("Alice")
	bob := h.seed.User("Bob")
	bobsNote := h.seed.Note(bob, "Bob's public", true, nil)
	h.seed.Note(alice, "Alice public", true, nil)
	h.seed.Note(alice, "Alice private", false, nil)
	h.seed.Folder(alice, "B folder", true, nil)
	h.seed.Folder(alice, "A folder", false, nil)
	h.seed.Bookmark(alice, bobsNote, 0)

	self, err := h.users.Content(h.ctx, idOf(alice), alice.Id)
	require.NoError(t, err)
	assert.True(t, self.IsSelf)
	assert.Len(t, self.Notes, 2)
	require.Len(t, self.Folders, 2)
	assert.Equal(t, "A folder", self.Folders[0].Name)
	require.Len(t, self.Bookmarks, 1)
	assert.Equal(t, bobsNote.Id, self.Bookmarks[0].Id)

	asBob, err := h.users.Content(h.ctx, idOf(bob), alice.Id)
	require.NoError(t, err)
	assert.False(t, asBob.IsSelf)
	require.Len(t, asBob.Notes, 1)
	assert.Equal(t, "Alice public", asBob.Notes[0].Title)
	require.Len(t, asBob.Folders, 1)
	assert.Equal(t, "B folder", asBob.Folders[0].Name)
	assert.Nil(t, asBob.Bookmarks)
	assert.Equal(t, "Alice", asBob.User.Name)
}
