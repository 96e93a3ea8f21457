package batch

import (
	"fmt"
	"log/slog"

	"github.com/gridwell/listbind/view"
)

// Item is an opaque reference to a persistence-layer object. The engine
// never inspects it; it is borrowed for the duration of one callback and
// handed to the caller's cell configurator. It must not be retained past
// transaction completion, since the source may delete the underlying
// record at any time.
type Item any

// ChangeKind is the kind of a single change notification.
type ChangeKind int

const (
	// ChangeInsert carries the new position only.
	ChangeInsert ChangeKind = iota + 1
	// ChangeDelete carries the old position only.
	ChangeDelete
	// ChangeUpdate carries the position of the changed item.
	ChangeUpdate
	// ChangeMove carries both the old and the new position.
	ChangeMove
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	case ChangeUpdate:
		return "update"
	case ChangeMove:
		return "move"
	default:
		return fmt.Sprintf("ChangeKind(%d)", int(k))
	}
}

// Scope distinguishes section-level from object-level changes.
type Scope int

const (
	ScopeSection Scope = iota + 1
	ScopeObject
)

// ScopedChange is one classified change notification. It is transient:
// owned by the coordinator's queues from enqueue until drained.
type ScopedChange struct {
	Scope Scope
	Kind  ChangeKind

	// SectionIndex is set for section-scoped changes.
	SectionIndex int

	// Item, OldPath and NewPath are set for object-scoped changes, with
	// path presence governed by Kind: insert→NewPath, delete→OldPath,
	// update→OldPath, move→both.
	Item    Item
	OldPath *view.IndexPath
	NewPath *view.IndexPath
}

// ClassifySection maps a raw section notification into a ScopedChange.
// Only insert and delete are meaningful at section level; update and move
// are explicitly ignored (ok=false, nothing to enqueue).
//
// An unrecognized kind panics: the notification source's contract is
// closed, and applying a misinterpreted mutation would silently
// desynchronize the view from the model.
func ClassifySection(index int, kind ChangeKind) (ch ScopedChange, ok bool) {
	switch kind {
	case ChangeInsert, ChangeDelete:
		return ScopedChange{
			Scope:        ScopeSection,
			Kind:         kind,
			SectionIndex: index,
		}, true
	case ChangeUpdate, ChangeMove:
		return ScopedChange{}, false
	default:
		panic(fmt.Sprintf("batch: unknown section change kind %d", int(kind)))
	}
}

// ClassifyObject maps a raw object notification into a ScopedChange.
//
// A missing required path is a recoverable condition: the change is
// dropped with a log line (ok=false) and the next full refresh cycle is
// expected to supersede it. An unrecognized kind panics, as for sections.
func ClassifyObject(item Item, oldPath *view.IndexPath, kind ChangeKind, newPath *view.IndexPath) (ch ScopedChange, ok bool) {
	switch kind {
	case ChangeInsert:
		if newPath == nil {
			slog.Warn("dropping object insert with no new index path")
			return ScopedChange{}, false
		}
	case ChangeDelete:
		if oldPath == nil {
			slog.Warn("dropping object delete with no old index path")
			return ScopedChange{}, false
		}
	case ChangeUpdate:
		if oldPath == nil {
			slog.Warn("dropping object update with no index path")
			return ScopedChange{}, false
		}
	case ChangeMove:
		if oldPath == nil || newPath == nil {
			slog.Warn("dropping object move with missing index path",
				"have_old", oldPath != nil,
				"have_new", newPath != nil,
			)
			return ScopedChange{}, false
		}
	default:
		panic(fmt.Sprintf("batch: unknown object change kind %d", int(kind)))
	}

	return ScopedChange{
		Scope:   ScopeObject,
		Kind:    kind,
		Item:    item,
		OldPath: oldPath,
		NewPath: newPath,
	}, true
}
