package scenario

import (
	"context"
	"fmt"

	"github.com/gridwell/listbind"
	"github.com/gridwell/listbind/batch"
	"github.com/gridwell/listbind/internal/results"
	"github.com/gridwell/listbind/internal/store"
	"github.com/gridwell/listbind/view"
)

// StepError reports which step of a scenario failed.
type StepError struct {
	Index int
	Op    string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Op, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Result is the outcome of a scenario run.
type Result struct {
	// Transcript is the view transcript, one line per widget call.
	Transcript []string

	// Sections is the controller's final snapshot.
	Sections []results.Section
}

// labelCell is the scripted on-screen cell type. The configurator only
// accepts this type; anything else exercises the wrong-cell-type skip
// path.
type labelCell struct {
	title string
}

// Run executes sc against an open store: seeds records, primes the
// controller, wires the provider's delegate, then applies the steps in
// order. The store is mutated but not closed.
func Run(ctx context.Context, sc *Scenario, st *store.Store) (*Result, error) {
	for _, spec := range sc.Seed {
		if _, err := st.InsertRecord(ctx, store.Record{
			Section: spec.Section,
			Title:   spec.Title,
			Rank:    spec.Rank,
			Body:    spec.Body,
		}); err != nil {
			return nil, fmt.Errorf("seed %q: %w", spec.Title, err)
		}
	}

	tv := view.NewTranscript()
	tv.SetMoveable(sc.Moveable)
	handle := view.NewHandle(tv)

	provider := listbind.New(listbind.Config{
		View:      handle,
		Configure: makeConfigure(tv),
	})

	ctrl := results.New(st)
	// Prime before wiring the delegate so the initial population does not
	// replay as one giant bracket.
	if err := ctrl.Fetch(ctx); err != nil {
		return nil, fmt.Errorf("prime snapshot: %w", err)
	}
	ctrl.SetDelegate(provider.Delegate())
	syncCells(tv, ctrl.Sections())

	for i, step := range sc.Steps {
		if err := applyStep(ctx, step, st, ctrl, provider, tv); err != nil {
			return nil, &StepError{Index: i, Op: step.Op, Err: err}
		}
	}

	return &Result{
		Transcript: tv.Lines(),
		Sections:   ctrl.Sections(),
	}, nil
}

func applyStep(ctx context.Context, step Step, st *store.Store, ctrl *results.Controller, provider *listbind.Provider, tv *view.Transcript) error {
	switch step.Op {
	case "insert":
		_, err := st.InsertRecord(ctx, store.Record{
			Section: step.Section,
			Title:   step.Title,
			Rank:    step.Rank,
			Body:    step.Body,
		})
		return err

	case "update":
		r, err := st.FindByTitle(ctx, step.Title)
		if err != nil {
			return err
		}
		return st.UpdateRecord(ctx, r.ID, r.Title, step.Body)

	case "move":
		r, err := st.FindByTitle(ctx, step.Title)
		if err != nil {
			return err
		}
		return st.MoveRecord(ctx, r.ID, step.Section, step.Rank)

	case "delete":
		r, err := st.FindByTitle(ctx, step.Title)
		if err != nil {
			return err
		}
		return st.DeleteRecord(ctx, r.ID)

	case "refresh":
		if err := ctrl.Refresh(ctx); err != nil {
			return err
		}
		syncCells(tv, ctrl.Sections())
		return nil

	case "pause":
		provider.Pause()
		return nil

	case "resume":
		provider.Resume()
		syncCells(tv, ctrl.Sections())
		return nil

	default:
		// The CUE schema rejects unknown ops before we get here.
		return fmt.Errorf("unknown op %q", step.Op)
	}
}

// syncCells scripts one on-screen cell per snapshot path, so update
// thunks find a cell of the expected type at apply time.
func syncCells(tv *view.Transcript, sections []results.Section) {
	for si, sec := range sections {
		for ri, r := range sec.Records {
			tv.SetCell(view.IndexPath{Section: si, Item: ri}, &labelCell{title: r.Title})
		}
	}
}

func makeConfigure(tv *view.Transcript) batch.ConfigureFunc {
	return func(cell view.Cell, item batch.Item, path view.IndexPath) bool {
		lc, ok := cell.(*labelCell)
		if !ok {
			return false
		}
		rec, ok := item.(store.Record)
		if !ok {
			return false
		}
		lc.title = rec.Title
		tv.Note(fmt.Sprintf("configure cell %s title=%q", path, rec.Title))
		return true
	}
}
