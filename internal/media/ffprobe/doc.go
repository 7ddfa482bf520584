// Package ffprobe runs ffprobe against a converted file and decodes its JSON
// report.
//
// Inspect is the entry point. Result helpers answer the questions output
// verification asks: does the file carry an audio stream, what codec and
// sample rate does it have, and how long is it.
package ffprobe
