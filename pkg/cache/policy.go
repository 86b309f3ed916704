package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	Anonymous = "anonymous"

	notePrefix = "note:"
	feedPrefix = "feed:"
)

// Policy fixes key layout and lifetimes for everything the service memoizes.
//
// A single note is cached under at most two keys: the author's own view and
// the shared view served to everyone else. Per-viewer state such as
// isBookmarked is never part of a cached value, so arbitrary viewer ids never
// appear in keys and invalidation only ever touches those two.
type Policy struct {
	NoteTTL time.Duration
	FeedTTL time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		NoteTTL: 2 * time.Minute,
		FeedTTL: 30 * time.Second,
	}
}

// NoteKey is the key for viewer's copy of a note; nil viewer means the shared copy.
func NoteKey(noteID uuid.UUID, viewer *uuid.UUID) string {
	if viewer == nil {
		return notePrefix + noteID.String() + ":" + Anonymous
	}
	return notePrefix + noteID.String() + ":" + viewer.String()
}

// NoteLookupKeys lists the keys to try, most specific first.
func NoteLookupKeys(noteID uuid.UUID, caller *uuid.UUID) []string {
	if caller == nil {
		return []string{NoteKey(noteID, nil)}
	}
	return []string{NoteKey(noteID, caller), NoteKey(noteID, nil)}
}

// NoteInvalidationKeys lists every key a note can live under.
func NoteInvalidationKeys(noteID, authorID uuid.UUID) []string {
	return []string{NoteKey(noteID, &authorID), NoteKey(noteID, nil)}
}

func ExploreKey(notesLimit, foldersLimit int) string {
	return fmt.Sprintf("%sexplore:%d:%d", feedPrefix, notesLimit, foldersLimit)
}

func PublicNotesKey(limit int) string {
	return fmt.Sprintf("%spublic-notes:%d", feedPrefix, limit)
}

// InvalidateNote purges both copies of a note. Called synchronously after every note mutation.
func (c *Cache) InvalidateNote(ctx context.Context, noteID, authorID uuid.UUID) {
	c.Delete(ctx, NoteInvalidationKeys(noteID, authorID)...)
}

// InvalidateFeeds drops every aggregate listing. Feeds also expire on their own TTL.
func (c *Cache) InvalidateFeeds(ctx context.Context) {
	c.DeletePrefix(ctx, feedPrefix)
}
