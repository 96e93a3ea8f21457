// Package results turns successive fetches of the record store into
// change notifications. A Controller holds the last fetched sectioned
// snapshot; each Refresh re-queries, diffs against the snapshot, and
// delivers the differences to its delegate inside one
// willChange/didChange bracket.
//
// Old index paths are relative to the previous snapshot, new index paths
// to the fresh one; the batching side relies on that when it replays the
// bracket as a single view transaction.
//
// The diff is position-based: a record whose index path shifted because an
// earlier record was inserted or deleted is reported as a move, not
// silently implied. That over-specifies the change set, but replayed as
// delete-at-old + insert-at-new pairs it reconstructs the new layout
// exactly, and it keeps transcripts deterministic.
package results

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/gridwell/listbind"
	"github.com/gridwell/listbind/batch"
	"github.com/gridwell/listbind/internal/store"
	"github.com/gridwell/listbind/view"
)

// Section is one group of records sharing a section name, in display
// order.
type Section struct {
	Name    string
	Records []store.Record
}

// Controller fetches sectioned snapshots and reports snapshot-to-snapshot
// differences to a delegate.
//
// Not safe for concurrent use: Fetch and Refresh are expected to be
// driven from a single producer goroutine, matching the one-producer
// contract of the binding.
type Controller struct {
	store    *store.Store
	delegate listbind.Delegate
	coll     *collate.Collator
	current  []Section
}

// Option configures a Controller.
type Option func(*Controller)

// WithLanguage sets the language used for section-name collation.
// Defaults to English.
func WithLanguage(tag language.Tag) Option {
	return func(c *Controller) {
		c.coll = collate.New(tag)
	}
}

// New creates a controller over st with an empty snapshot.
func New(st *store.Store, opts ...Option) *Controller {
	c := &Controller{
		store: st,
		coll:  collate.New(language.English),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetDelegate registers the notification consumer. A nil delegate is
// allowed; Refresh then just advances the snapshot.
func (c *Controller) SetDelegate(d listbind.Delegate) {
	c.delegate = d
}

// Sections returns the current snapshot.
func (c *Controller) Sections() []Section {
	return c.current
}

// Fetch loads the snapshot without delivering notifications. Call once
// after seeding, before wiring the delegate, so the initial population
// does not replay as one giant bracket.
func (c *Controller) Fetch(ctx context.Context) error {
	snap, err := c.fetch(ctx)
	if err != nil {
		return err
	}
	c.current = snap
	return nil
}

// Refresh re-fetches, diffs against the previous snapshot, and delivers
// the differences to the delegate inside one bracket.
func (c *Controller) Refresh(ctx context.Context) error {
	snap, err := c.fetch(ctx)
	if err != nil {
		return err
	}
	prev := c.current
	c.current = snap

	if c.delegate == nil {
		return nil
	}
	c.deliver(prev, snap)
	return nil
}

func (c *Controller) fetch(ctx context.Context) ([]Section, error) {
	records, err := c.store.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}

	bySection := map[string][]store.Record{}
	var names []string
	for _, r := range records {
		if _, seen := bySection[r.Section]; !seen {
			names = append(names, r.Section)
		}
		bySection[r.Section] = append(bySection[r.Section], r)
	}
	sort.Slice(names, func(i, j int) bool {
		return c.coll.CompareString(names[i], names[j]) < 0
	})

	sections := make([]Section, 0, len(names))
	for _, name := range names {
		sections = append(sections, Section{Name: name, Records: bySection[name]})
	}
	return sections, nil
}

// pathIndex maps record IDs and section names to their positions within
// one snapshot.
type pathIndex struct {
	sections map[string]int
	paths    map[string]view.IndexPath
	records  map[string]store.Record
}

func indexSnapshot(sections []Section) pathIndex {
	idx := pathIndex{
		sections: map[string]int{},
		paths:    map[string]view.IndexPath{},
		records:  map[string]store.Record{},
	}
	for si, sec := range sections {
		idx.sections[sec.Name] = si
		for ri, r := range sec.Records {
			idx.paths[r.ID] = view.IndexPath{Section: si, Item: ri}
			idx.records[r.ID] = r
		}
	}
	return idx
}

// deliver walks the two snapshots and reports each difference once:
// object deletes in previous-snapshot order, then inserts, moves and
// updates in new-snapshot order, then section deletes and inserts. The
// order is deterministic so scripted runs produce stable transcripts;
// the consumer only requires that everything lands within one bracket.
func (c *Controller) deliver(prev, next []Section) {
	oldIdx := indexSnapshot(prev)
	newIdx := indexSnapshot(next)
	d := c.delegate

	d.WillChangeContent()

	for _, sec := range prev {
		for _, r := range sec.Records {
			if _, alive := newIdx.paths[r.ID]; !alive {
				oldPath := oldIdx.paths[r.ID]
				d.DidChangeObject(r, &oldPath, batch.ChangeDelete, nil)
			}
		}
	}

	for _, sec := range next {
		for _, r := range sec.Records {
			newPath := newIdx.paths[r.ID]
			oldPath, existed := oldIdx.paths[r.ID]
			switch {
			case !existed:
				d.DidChangeObject(r, nil, batch.ChangeInsert, &newPath)
			case oldPath != newPath:
				d.DidChangeObject(r, &oldPath, batch.ChangeMove, &newPath)
			case contentChanged(oldIdx.records[r.ID], r):
				d.DidChangeObject(r, &oldPath, batch.ChangeUpdate, nil)
			}
		}
	}

	for _, sec := range prev {
		if _, alive := newIdx.sections[sec.Name]; !alive {
			d.DidChangeSection(oldIdx.sections[sec.Name], batch.ChangeDelete)
		}
	}
	for _, sec := range next {
		if _, existed := oldIdx.sections[sec.Name]; !existed {
			d.DidChangeSection(newIdx.sections[sec.Name], batch.ChangeInsert)
		}
	}

	d.DidChangeContent()
	slog.Debug("snapshot refreshed",
		"sections", len(next),
		"previous_sections", len(prev),
	)
}

func contentChanged(prev, cur store.Record) bool {
	return prev.Title != cur.Title || prev.Body != cur.Body
}
