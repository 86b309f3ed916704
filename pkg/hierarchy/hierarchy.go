// Package hierarchy walks the folder tree: breadcrumbs upward, subtrees downward.
// Every walk tracks visited ids so a corrupted parent chain cannot loop forever.
package hierarchy

import (
	"context"

	"noter-be/internal/pkg/apperror"

	"github.com/google/uuid"
)

// MaxDepth bounds the breadcrumb chain returned to clients.
const MaxDepth = 64

type Node struct {
	ID       uuid.UUID
	Name     string
	IsPublic bool
	ParentID *uuid.UUID
}

type Crumb struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	IsPublic bool      `json:"-"`
}

// Tree is the read side of the folder store the walks need.
type Tree interface {
	// Node returns nil, nil when the id does not resolve.
	Node(ctx context.Context, id uuid.UUID) (*Node, error)
	// Children returns the ids of the direct subfolders of all given parents.
	Children(ctx context.Context, parentIDs []uuid.UUID) ([]uuid.UUID, error)
}

// Breadcrumbs returns the chain from the root ancestor down to folderID inclusive.
//
// On a cycle, a dangling parent or a chain deeper than MaxDepth it returns the
// chain collected so far together with an Integrity error, so callers can log
// and degrade instead of failing.
func Breadcrumbs(ctx context.Context, tree Tree, folderID uuid.UUID) ([]Crumb, error) {
	var reversed []Crumb
	seen := make(map[uuid.UUID]struct{}, 8)

	current := &folderID
	for current != nil {
		if _, ok := seen[*current]; ok {
			return reverse(reversed), apperror.Integrity("cyclic folder ancestry at %s", *current)
		}
		if len(reversed) >= MaxDepth {
			return reverse(reversed), apperror.Integrity("folder ancestry deeper than %d", MaxDepth)
		}
		seen[*current] = struct{}{}

		node, err := tree.Node(ctx, *current)
		if err != nil {
			return nil, err
		}
		if node == nil {
			if len(reversed) == 0 {
				return nil, apperror.NotFound("Folder not found")
			}
			return reverse(reversed), apperror.Integrity("folder %s references missing parent", reversed[len(reversed)-1].ID)
		}

		reversed = append(reversed, Crumb{ID: node.ID, Name: node.Name, IsPublic: node.IsPublic})
		current = node.ParentID
	}

	return reverse(reversed), nil
}

// VisibleTail drops every ancestor up to and including the nearest private
// one, so a non-owner never learns the names of private ancestors.
// The last crumb, the folder being viewed, is always kept.
func VisibleTail(crumbs []Crumb) []Crumb {
	if len(crumbs) == 0 {
		return crumbs
	}
	start := 0
	for i := len(crumbs) - 2; i >= 0; i-- {
		if !crumbs[i].IsPublic {
			start = i + 1
			break
		}
	}
	return crumbs[start:]
}

// IsSelfOrDescendant reports whether candidate is folderID itself or lies below it.
// Used to reject moves that would create a cycle. Depth is not limited; a
// repeated id in candidate's ancestry is reported as an Integrity error.
func IsSelfOrDescendant(ctx context.Context, tree Tree, folderID, candidate uuid.UUID) (bool, error) {
	seen := make(map[uuid.UUID]struct{}, 8)
	current := &candidate
	for current != nil {
		if *current == folderID {
			return true, nil
		}
		if _, ok := seen[*current]; ok {
			return false, apperror.Integrity("cyclic folder ancestry at %s", *current)
		}
		seen[*current] = struct{}{}

		node, err := tree.Node(ctx, *current)
		if err != nil {
			return false, err
		}
		if node == nil {
			return false, nil
		}
		current = node.ParentID
	}
	return false, nil
}

// Subtree collects rootID and every folder below it, breadth first, at any depth.
// Ids already visited are skipped, which also stops cycles.
func Subtree(ctx context.Context, tree Tree, rootID uuid.UUID) ([]uuid.UUID, error) {
	all := []uuid.UUID{rootID}
	seen := map[uuid.UUID]struct{}{rootID: {}}
	frontier := []uuid.UUID{rootID}

	for len(frontier) > 0 {
		children, err := tree.Children(ctx, frontier)
		if err != nil {
			return nil, err
		}

		var next []uuid.UUID
		for _, id := range children {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			all = append(all, id)
			next = append(next, id)
		}
		frontier = next
	}

	return all, nil
}

func reverse(crumbs []Crumb) []Crumb {
	out := make([]Crumb, len(crumbs))
	for i, c := range crumbs {
		out[len(crumbs)-1-i] = c
	}
	return out
}
