// Package store is the SQLite-backed record store that plays the
// persistence side of the binding: scenarios and the CLI mutate records
// here, and the results controller diffs successive fetches into change
// notifications.
//
// The store is plain CRUD over one table. It knows nothing about views,
// sections-as-UI-structure, or change brackets; section membership is just
// a column that the results controller groups by.
package store
