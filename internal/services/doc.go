// Package services defines the error taxonomy shared by the ingestion and
// regeneration pipelines.
//
// Failures are tagged with sentinel markers (configuration, validation,
// lookup, store corruption) so callers can classify them with errors.Is
// without string matching. All tagged failures abort the process; the only
// degraded-but-continuing condition in the system is a missing patch target,
// which is signalled out of band rather than as an error.
package services
