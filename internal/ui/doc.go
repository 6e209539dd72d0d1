// Package ui renders the appdeck terminal interface with Bubble Tea.
//
// The model subscribes to the state store and re-renders on every published
// snapshot. The apps view follows a fixed precedence: a pending fetch shows
// the loading indicator, a failure shows the message with a retry hint, an
// empty list shows "No apps found", and otherwise one card per record is
// drawn. Pressing r asks the fetch controller for a new fetch; the controller
// owns cancellation of any fetch already in flight.
//
// The log view tails the appdeck log file through the logtail package and
// colours each line by level.
package ui
