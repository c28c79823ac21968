package ingest

import (
	"context"
	"log/slog"
	"strconv"

	"gallerysync/internal/cloudinary"
	"gallerysync/internal/logging"
	"gallerysync/internal/mapping"
	"gallerysync/internal/site"
	"gallerysync/internal/submission"
)

// MediaLookup enumerates hosted media for one event folder.
type MediaLookup interface {
	ListFolder(ctx context.Context, folder string) ([]string, string, error)
}

// SiteRenderer regenerates the static artifacts from the full mapping.
type SiteRenderer interface {
	RenderAll(events []mapping.Event) (site.Summary, error)
}

// Result describes one completed ingestion.
type Result struct {
	Event       mapping.Event
	MediaCount  int
	TotalEvents int
	Site        site.Summary
}

// Pipeline runs a submission through parse, media lookup, persistence, and
// site regeneration as one pass.
type Pipeline struct {
	cloudName string
	store     *mapping.Store
	lookup    MediaLookup
	renderer  SiteRenderer
	logger    *slog.Logger
}

// New assembles a pipeline. cloudName is used only to derive the stored
// delivery folder URL.
func New(cloudName string, store *mapping.Store, lookup MediaLookup, renderer SiteRenderer, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		cloudName: cloudName,
		store:     store,
		lookup:    lookup,
		renderer:  renderer,
		logger:    logging.WithComponent(logger, "ingest"),
	}
}

// Run processes one submission body end to end. replace allows an existing
// record for the same folder to be superseded instead of rejected. The store
// is only written after the media lookup succeeds, so a failed lookup leaves
// everything untouched.
func (p *Pipeline) Run(ctx context.Context, body string, replace bool) (Result, error) {
	sub, err := submission.Parse(body)
	if err != nil {
		return Result{}, err
	}
	p.logger.Info("submission parsed", logging.Args(
		logging.String(logging.FieldEvent, sub.Name),
		logging.String(logging.FieldFolder, sub.Folder),
	)...)

	urls, folderPath, err := p.lookup.ListFolder(ctx, sub.Folder)
	if err != nil {
		return Result{}, err
	}
	p.logger.Info("media enumerated", logging.Args(
		logging.String(logging.FieldFolder, folderPath),
		logging.Int(logging.FieldCount, len(urls)),
	)...)

	// The declared count on the form is advisory only; the hosted folder is
	// authoritative. A mismatch usually means an upload is still in flight.
	if declared, convErr := strconv.Atoi(sub.PhotoCount); convErr == nil && declared != len(urls) {
		p.logger.Warn("declared photo count differs from hosted media", logging.Args(
			logging.String(logging.FieldFolder, sub.Folder),
			logging.Int("declared", declared),
			logging.Int(logging.FieldCount, len(urls)),
		)...)
	}

	event, err := mapping.NewEvent(
		sub.Name, sub.Date, sub.Folder,
		cloudinary.FolderURL(p.cloudName, folderPath),
		urls, sub.VideoLinks,
	)
	if err != nil {
		return Result{}, err
	}

	all, err := p.store.Put(ctx, event, replace)
	if err != nil {
		return Result{}, err
	}

	summary, err := p.renderer.RenderAll(all)
	if err != nil {
		return Result{}, err
	}

	p.logger.Info("event ingested", logging.Args(
		logging.String(logging.FieldEvent, event.Name),
		logging.String(logging.FieldFolder, event.Folder),
		logging.Int(logging.FieldCount, event.PhotoCount),
	)...)
	return Result{
		Event:       event,
		MediaCount:  len(urls),
		TotalEvents: len(all),
		Site:        summary,
	}, nil
}
