// Package batch fans conversion tasks out to a bounded pool of workers and
// collects their results.
//
// A Dispatcher owns one run: it builds exactly one task per input file,
// starts at most Workers conversions at a time, and funnels every result
// through a single collector that advances progress, logs failures, and
// fills in the Summary. A failing task never stops the batch. Job wraps the
// dispatcher with the fatal setup steps (output directory, lock, discovery)
// and the optional history record.
package batch
