// Package console renders an analysis session in a terminal.
//
// Terminal implements session.View and session.Navigator: progress is
// printed as one line per change, notifications and errors carry a level
// icon, and navigation prints the results URL.
package console
