// Package tui is the interactive terminal front-end of the launcher.
//
// The model never owns launcher data: instances and accounts are read from
// their registries, settings from the settings store, and UI ephemera (theme,
// sidebar, tabs, selected instance) from the session manager. Every mutation
// runs as a tea.Cmd against the registries, which refresh themselves; the
// model only reacts to the resulting messages.
//
// Layout:
//
//	┌ breadcrumbs ────────────────────────────── account · theme ┐
//	│ sidebar │ page (instances, accounts, settings, activity)   │
//	│         │                                  toasts          │
//	└ status bar ────────────────────────────────────────────────┘
//
// Key handling goes through the keybinds registry. Each page has its own
// context, list movement comes from the shared viewer context, and the global
// context is consulted last.
package tui
