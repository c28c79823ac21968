// Package submission extracts structured event fields from the
// semi-structured issue-form text that triggers an ingestion run.
//
// The form renders each answer under a "### <Label>" heading; unanswered
// optional fields arrive as "_No response_" placeholders that must not be
// mistaken for literal values.
package submission
