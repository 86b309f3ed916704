package mapper

import (
	"testing"
	"time"

	"noter-be/internal/dto"
	"noter-be/internal/entity"
	"noter-be/pkg/access"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNoteProjection(t *testing.T) {
	folder := uuid.New()
	note := &entity.Note{
		Id:        uuid.New(),
		Title:     "Midterm Review",
		Content:   "<p>Chapters 1-4</p>",
		AuthorId:  uuid.New(),
		IsPublic:  true,
		FolderId:  &folder,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	author := dto.AuthorSummary{Id: note.AuthorId, Name: "A"}
	m := NewResponseMapper()

	owner := m.Note(note, author, access.ViewOwner, true)
	assert.True(t, owner.IsOwner)
	assert.True(t, owner.IsBookmarked)
	assert.Equal(t, &folder, owner.FolderId)

	public := m.Note(note, author, access.ViewPublic, true)
	assert.False(t, public.IsOwner)
	assert.True(t, public.IsBookmarked)
	assert.Nil(t, public.FolderId)
	assert.Equal(t, note.Content, public.Content)

	anonymous := m.Note(note, author, access.ViewAnonymous, true)
	assert.False(t, anonymous.IsBookmarked, "anonymous viewers never carry bookmark state")
	assert.False(t, anonymous.IsOwner)
}

func TestNoteSummaryProjection(t *testing.T) {
	note := &entity.Note{Id: uuid.New(), Title: "t", Content: "<p>hello <b>world</b></p>", AuthorId: uuid.New(), IsPublic: true}
	m := NewResponseMapper()

	s := m.NoteSummary(note, dto.AuthorSummary{}, access.ViewPublic, true)
	assert.Equal(t, "hello world", s.Excerpt)
	assert.True(t, s.IsBookmarked)

	s = m.NoteSummary(note, dto.AuthorSummary{}, access.ViewAnonymous, true)
	assert.False(t, s.IsBookmarked)
}

func TestAuthorFallback(t *testing.T) {
	assert.Equal(t, "Unknown", NewResponseMapper().Author(nil).Name)
}
