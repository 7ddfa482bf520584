// Package services defines shared utilities consumed by the discovery,
// conversion, and batch packages.
//
// Key responsibilities:
//   - Context helpers that stamp the batch run ID and the input file being
//     converted for logging and history records.
//   - Structured error markers plus the Wrap helper that classify failures
//     as fatal (directory level) or isolated to a single file.
package services
