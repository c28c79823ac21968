package site

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	texttemplate "text/template"

	"gallerysync/internal/fileutil"
	"gallerysync/internal/logging"
	"gallerysync/internal/mapping"
)

//go:embed assets
var assets embed.FS

// Rendered artifact file names, fixed by the deployed site layout.
const (
	EventsFile     = "events.html"
	BackupFile     = "events-backup.html"
	GalleryHTML    = "gallery.html"
	GalleryCSS     = "gallery.css"
	GalleryScript  = "gallery.js"
	MappingData    = "events.json"
	thumbTransform = "w_400,h_300,c_fill,q_auto,f_auto/"
)

var (
	eventsTemplate  = htmltemplate.Must(htmltemplate.ParseFS(assets, "assets/events.html.tmpl"))
	galleryTemplate = texttemplate.Must(texttemplate.ParseFS(assets, "assets/gallery.js.tmpl"))
)

// Options configure a Renderer.
type Options struct {
	Dir       string
	CloudName string
	Title     string
	Subtitle  string
}

// Summary reports what a regeneration pass produced.
type Summary struct {
	Cards           int
	BackupCreated   bool
	ScriptPatched   bool
	ScriptCreated   bool
	PatchTargetMiss bool
}

// Renderer regenerates the static browsing artifacts from the mapping.
type Renderer struct {
	opts   Options
	logger *slog.Logger
}

// NewRenderer builds a renderer writing into opts.Dir.
func NewRenderer(opts Options, logger *slog.Logger) *Renderer {
	return &Renderer{
		opts:   opts,
		logger: logging.WithComponent(logger, "site"),
	}
}

type card struct {
	Link         string
	ThumbnailURL string
	Name         string
	DateLabel    string
	PhotoCount   int
}

type listingData struct {
	Title    string
	Subtitle string
	Cards    []card
}

// RenderAll regenerates every artifact: the events listing (with a backup of
// the previous one), the static gallery page and stylesheet, the standalone
// mapping data file, and the embedded mapping constant in the gallery script.
// The input order is not trusted; events are re-sorted newest first.
func (r *Renderer) RenderAll(events []mapping.Event) (Summary, error) {
	var summary Summary

	sorted := make([]mapping.Event, len(events))
	copy(sorted, events)
	mapping.SortByDateDesc(sorted)

	if err := os.MkdirAll(r.opts.Dir, 0o755); err != nil {
		return summary, fmt.Errorf("create site directory: %w", err)
	}

	backedUp, err := r.backupListing()
	if err != nil {
		return summary, err
	}
	summary.BackupCreated = backedUp

	cards := buildCards(sorted)
	summary.Cards = len(cards)
	if err := r.renderListing(cards); err != nil {
		return summary, err
	}

	if err := r.writeAsset("assets/gallery.html", GalleryHTML); err != nil {
		return summary, err
	}
	if err := r.writeAsset("assets/gallery.css", GalleryCSS); err != nil {
		return summary, err
	}

	if err := r.writeMappingData(sorted); err != nil {
		return summary, err
	}

	patched, created, missed, err := r.updateGalleryScript(sorted)
	if err != nil {
		return summary, err
	}
	summary.ScriptPatched = patched
	summary.ScriptCreated = created
	summary.PatchTargetMiss = missed

	r.logger.Info("site regenerated", logging.Args(
		logging.Int(logging.FieldCount, summary.Cards),
		logging.String(logging.FieldPath, r.opts.Dir),
	)...)
	return summary, nil
}

func buildCards(events []mapping.Event) []card {
	cards := make([]card, 0, len(events))
	for _, ev := range events {
		// Unreachable for records created by this system, but persisted data
		// is not trusted at render time.
		if ev.PhotoCount <= 0 || len(ev.PhotoURLs) == 0 {
			continue
		}
		cards = append(cards, card{
			Link:         viewerLink(ev),
			ThumbnailURL: ThumbnailURL(ev.PhotoURLs[0]),
			Name:         ev.Name,
			DateLabel:    mapping.DisplayDate(ev.Date),
			PhotoCount:   ev.PhotoCount,
		})
	}
	return cards
}

// ThumbnailURL rewrites a delivery URL with the listing thumbnail transform.
func ThumbnailURL(photoURL string) string {
	return strings.Replace(photoURL, "/upload/", "/upload/"+thumbTransform, 1)
}

// viewerLink builds the per-event gallery link. Values are percent-encoded so
// names with reserved characters cannot corrupt the query string.
func viewerLink(ev mapping.Event) string {
	query := url.Values{}
	query.Set("folder", ev.Folder)
	query.Set("name", ev.Name)
	query.Set("date", ev.Date)
	return GalleryHTML + "?" + query.Encode()
}

func (r *Renderer) backupListing() (bool, error) {
	listing := filepath.Join(r.opts.Dir, EventsFile)
	if _, err := os.Stat(listing); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", listing, err)
	}
	backup := filepath.Join(r.opts.Dir, BackupFile)
	if err := fileutil.CopyFile(listing, backup); err != nil {
		return false, fmt.Errorf("back up listing: %w", err)
	}
	return true, nil
}

func (r *Renderer) renderListing(cards []card) error {
	var buf bytes.Buffer
	data := listingData{
		Title:    r.opts.Title,
		Subtitle: r.opts.Subtitle,
		Cards:    cards,
	}
	if err := eventsTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("render listing: %w", err)
	}
	path := filepath.Join(r.opts.Dir, EventsFile)
	if err := fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write listing: %w", err)
	}
	return nil
}

func (r *Renderer) writeAsset(assetPath, name string) error {
	data, err := assets.ReadFile(assetPath)
	if err != nil {
		return fmt.Errorf("read embedded asset %s: %w", assetPath, err)
	}
	path := filepath.Join(r.opts.Dir, name)
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (r *Renderer) writeMappingData(events []mapping.Event) error {
	data, err := mapping.EncodeIndented(events)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	path := filepath.Join(r.opts.Dir, MappingData)
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", MappingData, err)
	}
	return nil
}

func (r *Renderer) updateGalleryScript(events []mapping.Event) (patched, created, missed bool, err error) {
	path := filepath.Join(r.opts.Dir, GalleryScript)

	content, readErr := os.ReadFile(path)
	if readErr != nil {
		if !errors.Is(readErr, fs.ErrNotExist) {
			return false, false, false, fmt.Errorf("read %s: %w", GalleryScript, readErr)
		}
		if err := r.createGalleryScript(events, path); err != nil {
			return false, false, false, err
		}
		return false, true, false, nil
	}

	updated, found, err := PatchEventMapping(content, events)
	if err != nil {
		return false, false, false, err
	}
	if !found {
		r.logger.Warn("mapping constant not found; script left untouched and may be stale",
			logging.Args(logging.String(logging.FieldPath, path))...)
		return false, false, true, nil
	}
	if err := fileutil.WriteFileAtomic(path, updated, 0o644); err != nil {
		return false, false, false, fmt.Errorf("write %s: %w", GalleryScript, err)
	}
	return true, false, false, nil
}

func (r *Renderer) createGalleryScript(events []mapping.Event, path string) error {
	serialized, err := mapping.EncodeIndented(events)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	data := struct {
		CloudName string
		Mapping   string
	}{
		CloudName: r.opts.CloudName,
		Mapping:   string(serialized),
	}
	if err := galleryTemplate.Execute(&buf, data); err != nil {
		return fmt.Errorf("render %s: %w", GalleryScript, err)
	}
	if err := fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", GalleryScript, err)
	}
	return nil
}
