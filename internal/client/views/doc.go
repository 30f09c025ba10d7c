// Package views holds the role-independent machinery behind every
// dashboard: the page router, reference data caches feeding selects, the
// schema-driven CRUD panel, the mutating action handler, input sanitizers
// and form validation.
//
// Views never print anything themselves. They push typed states (a View
// for list areas, a Status for action areas, a Form for edit pages) to a
// Renderer, which the terminal client implements.
//
// Concurrency: the REPL drives views from a single goroutine, while delayed
// refreshes fire on timer goroutines through a Scheduler. All shared state
// is guarded by mutexes, and loads carry a generation token so that a
// response which was overtaken by a newer load is dropped.
package views
