// Package discover lists a directory for convertible audio files.
//
// Only direct children are considered; subdirectories are never entered.
// A file qualifies when its lowercase extension is one of the input formats
// defined in internal/media/audio.
package discover
