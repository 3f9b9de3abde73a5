// Package logtail reads the end of reel's own log file for the in-app log
// viewer.
//
// Read keeps only the last N lines in a ring while scanning, so memory stays
// bounded regardless of file size. ReadEntries additionally decodes each
// zerolog JSON line into an Entry with level, time, message and the remaining
// fields; lines that are not JSON (a panic trace, say) are kept verbatim.
//
//	entries, err := logtail.ReadEntries(cfg.LogPath, 400)
package logtail
