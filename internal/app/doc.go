// Package app is the composition root for appdeck.
//
// # Overview
//
// Run loads configuration, opens the log file, builds the catalog client and
// the fetch controller, and then either prints one result (--once) or starts
// the TUI next to the background refresher.
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()          Read ~/.config/appdeck/config.toml
//	       ├─────> logging.New()          logrus to the log file
//	       ├─────> catalog.NewClient()    HTTP client for the apps endpoint
//	       ├─────> fetch.New()            Controller, first fetch starts here
//	       ├─────> RunRefresher()         Optional periodic Fetch
//	       └─────> ui.Run()               TUI (blocks)
//
// # Error Handling
//
// Configuration, logging and client setup errors are returned from Run. Fetch
// failures are never returned in interactive mode; they land in the store and
// the UI shows them. In --once mode a failed fetch is returned as *FetchError
// carrying the same message.
//
// # Lifecycle
//
// Quitting the UI cancels the shared context, which stops the refresher and
// cancels any fetch in flight. The controller is closed before Run returns so
// no late result reaches the store.
package app
