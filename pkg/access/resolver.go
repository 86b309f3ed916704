// Package access decides who may read, enumerate or change notes and folders.
//
// Ownership is exclusive: only the author mutates a resource. Non-owners,
// anonymous callers included, only ever see public rows.
package access

import (
	"noter-be/internal/entity"
	"noter-be/internal/pkg/apperror"

	"github.com/google/uuid"
)

type Kind string

const (
	KindNote   Kind = "note"
	KindFolder Kind = "folder"
)

type Operation int

const (
	Read Operation = iota
	List
	Mutate
)

// View is the response variant a caller is entitled to.
type View int

const (
	ViewAnonymous View = iota
	ViewPublic
	ViewOwner
)

func (v View) String() string {
	switch v {
	case ViewOwner:
		return "owner"
	case ViewPublic:
		return "public"
	default:
		return "anonymous"
	}
}

// Resource is the minimal projection of a note or folder needed for a decision.
type Resource struct {
	Kind     Kind
	ID       uuid.UUID
	AuthorID uuid.UUID
	IsPublic bool
}

// Decision is the outcome of an allowed operation.
type Decision struct {
	View View
	// PublicOnly is set when enumerations under the resource must be restricted to public rows.
	PublicOnly bool
}

func (d Decision) IsOwner() bool {
	return d.View == ViewOwner
}

// Note returns nil for a nil note so a failed lookup flows straight into Resolve.
func Note(n *entity.Note) *Resource {
	if n == nil {
		return nil
	}
	return &Resource{Kind: KindNote, ID: n.Id, AuthorID: n.AuthorId, IsPublic: n.IsPublic}
}

func Folder(f *entity.Folder) *Resource {
	if f == nil {
		return nil
	}
	return &Resource{Kind: KindFolder, ID: f.Id, AuthorID: f.AuthorId, IsPublic: f.IsPublic}
}

type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve checks existence first, then identity, then ownership or visibility.
// kind is only used to word the error when res is nil.
func (r *Resolver) Resolve(kind Kind, res *Resource, caller *uuid.UUID, op Operation) (Decision, error) {
	if res == nil {
		return Decision{}, apperror.NotFound("%s not found", label(kind))
	}

	view := ViewFor(res.AuthorID, caller)

	switch op {
	case Mutate:
		if caller == nil {
			return Decision{}, apperror.Unauthenticated("You must be logged in to modify this %s", res.Kind)
		}
		if view != ViewOwner {
			return Decision{}, apperror.Forbidden("You do not have permission to modify this %s", res.Kind)
		}
		return Decision{View: ViewOwner}, nil

	case Read, List:
		if view != ViewOwner && !res.IsPublic {
			return Decision{}, apperror.Forbidden("You do not have permission to view this %s", res.Kind)
		}
		return Decision{View: view, PublicOnly: view != ViewOwner}, nil
	}

	return Decision{}, apperror.Forbidden("Unsupported operation")
}

// ResolveContainer validates a parent folder that a note or subfolder is being filed into.
// Being public does not make a folder writable by others.
func (r *Resolver) ResolveContainer(parent *Resource, caller *uuid.UUID) error {
	if parent == nil {
		return apperror.NotFound("Folder not found")
	}
	if caller == nil {
		return apperror.Unauthenticated("You must be logged in to add content to a folder")
	}
	if parent.AuthorID != *caller {
		return apperror.Forbidden("You do not have permission to add content to this folder")
	}
	return nil
}

// Scope decides how an enumeration of ownerID's content is filtered for caller.
func Scope(ownerID uuid.UUID, caller *uuid.UUID) Decision {
	view := ViewFor(ownerID, caller)
	return Decision{View: view, PublicOnly: view != ViewOwner}
}

func ViewFor(authorID uuid.UUID, caller *uuid.UUID) View {
	switch {
	case caller == nil:
		return ViewAnonymous
	case *caller == authorID:
		return ViewOwner
	default:
		return ViewPublic
	}
}

func label(kind Kind) string {
	switch kind {
	case KindNote:
		return "Note"
	case KindFolder:
		return "Folder"
	default:
		return "Resource"
	}
}
