package service

import (
	"testing"

	"noter-be/internal/dto"
	"noter-be/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSearchCorpus(h *harness) {
	alice := h.seed.User("Alice Walker")
	bob := h.seed.User("Bob Stone")
	recipes := h.seed.Folder(alice, "Recipes", true, nil)
	h.seed.Folder(alice, "Secret recipes", false, nil)
	h.seed.Note(alice, "Banana bread", true, recipes)
	h.seed.Note(alice, "Secret banana trick", false, recipes)
	h.seed.Note(bob, "Banana republic history", true, nil)
	h.seed.Note(bob, "Gardening", true, nil)
}

func TestSearch_Validation(t *testing.T) {
	h := newHarness(t)

	for _, q := range []string{"", " ", "a", "  b  "} {
		_, err := h.search.Search(h.ctx, nil, &dto.SearchRequest{Query: q})
		require.Error(t, err, "query %q", q)
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	}

	res, err := h.search.Search(h.ctx, nil, &dto.SearchRequest{Query: "zz"})
	require.NoError(t, err)
	assert.Zero(t, res.TotalResults)
	assert.NotNil(t, res.Notes)
	assert.NotNil(t, res.Folders)
	assert.Equal(t, "all", res.Type)
}

func TestSearch_MatchesTitleAndExcludesPrivate(t *testing.T) {
	h := newHarness(t)
	seedSearchCorpus(h)

	res, err := h.search.Search(h.ctx, nil, &dto.SearchRequest{Query: "  BANANA "})
	require.NoError(t, err)
	assert.Equal(t, "BANANA", res.Query)
	require.Len(t, res.Notes, 2)
	assert.Equal(t, "Banana bread", res.Notes[0].Title)
	assert.Equal(t, "Banana republic history", res.Notes[1].Title)
	assert.Empty(t, res.Folders)
	assert.Equal(t, 2, res.TotalResults)
}

func TestSearch_MatchesAuthorName(t *testing.T) {
	h := newHarness(t)
	seedSearchCorpus(h)

	res, err := h.search.Search(h.ctx, nil, &dto.SearchRequest{Query: "stone", Type: "notes"})
	require.NoError(t, err)
	assert.Len(t, res.Notes, 2)
	for _, n := range res.Notes {
		assert.Equal(t, "Bob Stone", n.Author.Name)
	}
	assert.Empty(t, res.Folders)
}

func TestSearch_SlashFilters(t *testing.T) {
	h := newHarness(t)
	seedSearchCorpus(h)

	byAuthor, err := h.search.Search(h.ctx, nil, &dto.SearchRequest{Query: "banana /by:walker", Type: "notes"})
	require.NoError(t, err)
	require.Len(t, byAuthor.Notes, 1)
	assert.Equal(t, "Banana bread", byAuthor.Notes[0].Title)

	inFolder, err := h.search.Search(h.ctx, nil, &dto.SearchRequest{Query: "/in:recipes", Type: "notes"})
	require.NoError(t, err)
	require.Len(t, inFolder.Notes, 1)
	assert.Equal(t, "Banana bread", inFolder.Notes[0].Title)
}

func TestSearch_Folders(t *testing.T) {
	h := newHarness(t)
	seedSearchCorpus(h)

	res, err := h.search.Search(h.ctx, nil, &dto.SearchRequest{Query: "recipe", Type: "folders"})
	require.NoError(t, err)
	assert.Equal(t, "folders", res.Type)
	assert.Empty(t, res.Notes)
	require.Len(t, res.Folders, 1)
	assert.Equal(t, "Recipes", res.Folders[0].Name)
	assert.EqualValues(t, 1, res.Folders[0].NoteCount)
	assert.Equal(t, 1, res.TotalResults)
}

func TestSearch_Limit(t *testing.T) {
	h := newHarness(t)
	seedSearchCorpus(h)

	res, err := h.search.Search(h.ctx, nil, &dto.SearchRequest{Query: "banana", Type: "notes", Limit: 1})
	require.NoError(t, err)
	assert.Len(t, res.Notes, 1)
}
