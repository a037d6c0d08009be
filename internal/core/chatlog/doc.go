// Package chatlog turns a plain-text chat export into an ordered stream of raw message fields
//
// Stages, leaves first
//   - Filter drops operational notices (encryption banners and friends)
//   - Grammar recognizes one message header per line; each supported export shape is its own variant
//   - Scanner walks the lines, folds continuation lines into the open message and yields Fields lazily
//   - Chrono resolves the date and time tokens of a Fields value
//
// Nothing here logs or returns errors for malformed input. Unrecognized lines are dropped
package chatlog
