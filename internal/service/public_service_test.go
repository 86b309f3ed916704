package service

import (
	"testing"

	"noter-be/internal/dto"
	"noter-be/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 50, ClampLimit(0, 50, 100))
	assert.Equal(t, 50, ClampLimit(-3, 50, 100))
	assert.Equal(t, 7, ClampLimit(7, 50, 100))
	assert.Equal(t, 100, ClampLimit(500, 50, 100))
}

func TestPublicNotes_OnlyPublicWithBookmarkProjection(t *testing.T) {
	h := newHarness(t)
	alice := h.seed.User("Alice")
	bob := h.seed.User("Bob")
	shared := h.seed.Note(alice, "Shared", true, nil)
	h.seed.Note(alice, "Private", false, nil)
	h.seed.Bookmark(bob, shared, 0)

	anon, err := h.public.PublicNotes(h.ctx, nil, 0)
	require.NoError(t, err)
	require.Len(t, anon, 1)
	assert.Equal(t, "Shared", anon[0].Title)
	assert.False(t, anon[0].IsBookmarked)
	assert.Nil(t, anon[0].FolderId)

	// Second read is served from the feed cache but projected for Bob.
	asBob, err := h.public.PublicNotes(h.ctx, idOf(bob), 0)
	require.NoError(t, err)
	require.Len(t, asBob, 1)
	assert.True(t, asBob[0].IsBookmarked)

	_, found, _ := h.store.Get(h.ctx, cache.PublicNotesKey(DefaultFeedLimit))
	assert.True(t, found)
}

func TestPublicNotes_FeedCacheIsDroppedOnInvalidate(t *testing.T) {
	h := newHarness(t)
	alice := h.seed.User("Alice")
	h.seed.Note(alice, "First", true, nil)

	feed, err := h.public.PublicNotes(h.ctx, nil, 10)
	require.NoError(t, err)
	require.Len(t, feed, 1)

	h.seed.Note(alice, "Second", true, nil)

	feed, err = h.public.PublicNotes(h.ctx, nil, 10)
	require.NoError(t, err)
	assert.Len(t, feed, 1, "feed is served from cache until it expires or is invalidated")

	h.cache.InvalidateFeeds(h.ctx)

	feed, err = h.public.PublicNotes(h.ctx, nil, 10)
	require.NoError(t, err)
	assert.Len(t, feed, 2)
}

func TestPublicFolders_Level(t *testing.T) {
	h := newHarness(t)
	alice := h.seed.User("Alice")
	top := h.seed.Folder(alice, "Top", true, nil)
	h.seed.Folder(alice, "Secret top", false, nil)
	h.seed.Folder(alice, "Nested", true, top)
	h.seed.Folder(alice, "Nested secret", false, top)
	h.seed.Note(alice, "Public note", true, top)
	h.seed.Note(alice, "Private note", false, top)

	roots, err := h.public.PublicFolders(h.ctx, nil)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "Top", roots[0].Name)
	assert.EqualValues(t, 1, roots[0].NoteCount)
	assert.EqualValues(t, 1, roots[0].SubfolderCount)

	nested, err := h.public.PublicFolders(h.ctx, &top.Id)
	require.NoError(t, err)
	require.Len(t, nested, 1)
	assert.Equal(t, "Nested", nested[0].Name)
}

func TestExplore(t *testing.T) {
	h := newHarness(t)
	alice := h.seed.User("Alice")
	bob := h.seed.User("Bob")
	for _, title := range []string{"One", "Two", "Three"} {
		h.seed.Note(alice, title, true, nil)
	}
	hidden := h.seed.Note(alice, "Hidden", false, nil)
	h.seed.Folder(alice, "Open", true, nil)
	h.seed.Folder(alice, "Closed", false, nil)
	h.seed.Bookmark(alice, hidden, 0)

	res, err := h.public.Explore(h.ctx, idOf(bob), &dto.ExploreRequest{NotesLimit: 2, FoldersLimit: 0})
	require.NoError(t, err)
	assert.Len(t, res.Notes, 2)
	require.Len(t, res.Folders, 1)
	assert.Equal(t, "Open", res.Folders[0].Name)
	assert.Equal(t, dto.ExploreMeta{
		TotalNotes:   3,
		TotalFolders: 1,
		NotesLimit:   2,
		FoldersLimit: DefaultFeedLimit,
	}, res.Meta)

	_, found, _ := h.store.Get(h.ctx, cache.ExploreKey(2, DefaultFeedLimit))
	assert.True(t, found)

	cached, err := h.public.Explore(h.ctx, nil, &dto.ExploreRequest{NotesLimit: 2})
	require.NoError(t, err)
	assert.Equal(t, res.Meta, cached.Meta)
	for _, n := range cached.Notes {
		assert.False(t, n.IsBookmarked)
		assert.NotEqual(t, hidden.Id, n.Id)
	}
}

func TestExplore_EmptyFeedsAreNotNil(t *testing.T) {
	h := newHarness(t)

	res, err := h.public.Explore(h.ctx, nil, &dto.ExploreRequest{})
	require.NoError(t, err)
	assert.NotNil(t, res.Notes)
	assert.NotNil(t, res.Folders)
	assert.Zero(t, res.Meta.TotalNotes)
}
