// Package tasks runs long board operations with progress reporting.
//
// # Bulk Export
//
// [BulkExport] renders one board into every requested format using a small worker pool:
//
//  1. One job per format is queued
//  2. Workers render and write "board.<ext>" into the output directory
//  3. Results are collected and an export_manifest.json summarizing them is written
//
// A failed format does not stop the others; it is recorded in the result and the manifest.
//
// # Progress Reporting
//
// Operations accept a send-only [ProgressUpdate] channel, which may be nil.
// Updates use select with default to prevent blocking.
package tasks
