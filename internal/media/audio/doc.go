// Package audio defines the audio formats audioconv recognizes.
//
// Input formats are the source extensions eligible for conversion; target
// formats are the containers a batch may be converted into. Both sets are
// fixed and matched case-insensitively against bare extensions (no dot).
//
// Primary entry points:
//   - IsInputFormat: reports whether an extension is convertible
//   - ParseTarget: validates a user-supplied target format
package audio
