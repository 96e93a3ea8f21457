// Package batch is the change-batching engine: it buffers an unordered
// stream of insert/delete/update/move notifications in ordering-preserving
// queues and replays them inside a single atomic view transaction.
//
// ARCHITECTURE:
//
// Two queues, one drain:
// Object-level and section-level mutations accumulate in separate FIFO
// queues while a notification bracket is open. On the bracket's close
// signal the Coordinator opens one batched view transaction and drains the
// object queue completely, then the section queue completely. Object
// mutations go first because their index paths are only meaningful
// relative to the section structure before the section changes apply;
// the widget's own index-shifting semantics take care of the rest.
//
// FIFO within a queue is a hard invariant: later insert/delete indices
// from the notification source are computed assuming earlier ones have
// already been applied. Reordering corrupts index-path validity.
//
// Failure policy:
// Missing index paths are dropped with a log line, stale or wrong-typed
// cells are skipped, and a released target view turns every pending thunk
// into a no-op. None of these surface to the caller; the next full
// notification cycle supersedes anything dropped. An unrecognized change
// kind panics: applying a wrong mutation would silently desynchronize the
// view from the model, and there is no safe recovery from that.
package batch
