// Package ingest orchestrates the submission-to-site pass: parse an issue
// form body, enumerate the hosted media, persist the event record, and
// regenerate the static artifacts.
package ingest
