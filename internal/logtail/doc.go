// Package logtail reads the tail of the application log for the in-app log view.
//
// Read extracts the last N lines by reading backwards from the end of the file
// in fixed blocks, so a large rotated log costs only the bytes of its tail. A
// missing file yields no lines and no error.
//
// Parse decodes lines written by logrus' TextFormatter with go-logfmt and
// splits them into time, level, message and remaining fields. Lines in any other shape are returned with
// only Raw set, so the view can still show them. Styling is left to the ui
// package.
package logtail
