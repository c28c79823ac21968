// Package site regenerates the static browsing artifacts from the event
// mapping: the events listing page, the gallery viewer page and stylesheet,
// a standalone JSON copy of the mapping, and the gallery script whose
// embedded mapping constant is patched in place when the script already
// exists on disk.
package site
