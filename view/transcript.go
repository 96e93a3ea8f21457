package view

import (
	"fmt"
	"sync"
)

// Transcript is a ListView that records every call as one line, in call
// order. It backs the CLI demo output and the package tests: a scenario is
// run against a Transcript and the resulting lines are compared against a
// golden file.
//
// Cells returns whatever the caller scripted via SetCell, so update-path
// behavior (missing cell, wrong cell type) can be exercised without a real
// widget.
type Transcript struct {
	mu       sync.Mutex
	lines    []string
	cells    map[IndexPath]Cell
	moveable bool

	// batchDepth tracks nesting so mutations issued outside PerformBatch
	// can be flagged in the transcript.
	batchDepth int
}

// NewTranscript returns an empty transcript view.
func NewTranscript() *Transcript {
	return &Transcript{cells: map[IndexPath]Cell{}}
}

// SetMoveable scripts the SupportsMove probe.
func (t *Transcript) SetMoveable(moveable bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.moveable = moveable
}

// SetCell scripts the cell returned by CellAt(path). A nil cell simulates
// an item that is not on screen.
func (t *Transcript) SetCell(path IndexPath, c Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if c == nil {
		delete(t.cells, path)
		return
	}
	t.cells[path] = c
}

// Note appends a caller-supplied line, e.g. from a cell configurator that
// wants configure calls to show up in the transcript.
func (t *Transcript) Note(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = append(t.lines, line)
}

// Lines returns a copy of the recorded transcript.
func (t *Transcript) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}

func (t *Transcript) record(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	line := fmt.Sprintf(format, args...)
	if t.batchDepth == 0 {
		line += " [outside batch]"
	}
	t.lines = append(t.lines, line)
}

// ListView implementation.

func (t *Transcript) PerformBatch(updates func(), completion func()) {
	t.mu.Lock()
	t.lines = append(t.lines, "begin batch")
	t.batchDepth++
	t.mu.Unlock()

	updates()

	t.mu.Lock()
	t.batchDepth--
	t.lines = append(t.lines, "end batch")
	t.mu.Unlock()

	completion()
}

func (t *Transcript) InsertItems(paths []IndexPath) {
	t.record("insert items %v", paths)
}

func (t *Transcript) DeleteItems(paths []IndexPath) {
	t.record("delete items %v", paths)
}

func (t *Transcript) InsertSections(indices []int) {
	t.record("insert sections %v", indices)
}

func (t *Transcript) DeleteSections(indices []int) {
	t.record("delete sections %v", indices)
}

func (t *Transcript) CellAt(path IndexPath) Cell {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cells[path]
}

func (t *Transcript) ReloadSupplementary() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = append(t.lines, "reload supplementary")
}

func (t *Transcript) SupportsMove() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.moveable
}
