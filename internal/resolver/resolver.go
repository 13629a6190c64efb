package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/MrSnakeDoc/mcversion/internal/archive"
	"github.com/MrSnakeDoc/mcversion/internal/errs"
	"github.com/MrSnakeDoc/mcversion/internal/logger"
	"github.com/MrSnakeDoc/mcversion/internal/models"
	"github.com/MrSnakeDoc/mcversion/internal/utils"
)

const (
	UnknownJavaVersion     = "unknown"
	NoResourcePackVersion  = "Not available"
	NoUpdateTitle          = "No update title available"
	NoServerJar            = "Server jar not available"
	InvalidDate            = "Invalid Date"
	localeTimeLayout       = "1/2/2006, 3:04:05 PM"
	defaultMaxArchiveBytes = 256 << 20
)

type ManifestSource interface {
	Lookup(ctx context.Context, id string) (models.ManifestEntry, bool, error)
	IDs(ctx context.Context) ([]string, error)
}

type Fetcher interface {
	GetJSON(ctx context.Context, url string, v any) error
	GetBytes(ctx context.Context, url string, limit int64) ([]byte, error)
}

// PageSource yields the wiki fields for a version. It must not fail.
type PageSource interface {
	URL(versionID string) string
	Lookup(ctx context.Context, versionID string) models.ReferencePageInfo
}

type Resolver struct {
	manifest        ManifestSource
	fetcher         Fetcher
	pages           PageSource
	maxArchiveBytes int64
	location        *time.Location
}

type Options struct {
	MaxArchiveBytes int64
	Location        *time.Location
}

func New(manifest ManifestSource, fetcher Fetcher, pages PageSource, opts Options) *Resolver {
	if opts.MaxArchiveBytes <= 0 {
		opts.MaxArchiveBytes = defaultMaxArchiveBytes
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Resolver{
		manifest:        manifest,
		fetcher:         fetcher,
		pages:           pages,
		maxArchiveBytes: opts.MaxArchiveBytes,
		location:        opts.Location,
	}
}

// Versions lists every known id in manifest order.
func (r *Resolver) Versions(ctx context.Context) ([]string, error) {
	return r.manifest.IDs(ctx)
}

// Resolve builds the consolidated record for one version id. The stages run
// strictly in order; manifest, detail and archive failures abort the whole
// resolution, the wiki stage only ever degrades.
func (r *Resolver) Resolve(ctx context.Context, versionID string) (models.ResolvedVersionRecord, error) {
	start := time.Now()

	entry, err := r.lookupStage(ctx, versionID)
	if err != nil {
		return models.ResolvedVersionRecord{}, err
	}

	detail, err := r.detailStage(ctx, entry)
	if err != nil {
		return models.ResolvedVersionRecord{}, err
	}

	packed, err := r.archiveStage(ctx, detail)
	if err != nil {
		return models.ResolvedVersionRecord{}, err
	}

	page := r.referenceStage(ctx, packed)

	record := r.merge(page)
	logger.Debug("resolved %s in %s", versionID, time.Since(start).Truncate(time.Millisecond))
	return record, nil
}

// ---- stages ----

type detailResult struct {
	entry       models.ManifestEntry
	javaVersion string
	clientURL   string
	clientSHA1  string
	serverURL   string
	releaseTime string
}

type archiveResult struct {
	detailResult
	datapackVersion *int
}

type pageResult struct {
	archiveResult
	page    models.ReferencePageInfo
	wikiURL string
}

func (r *Resolver) lookupStage(ctx context.Context, versionID string) (models.ManifestEntry, error) {
	entry, ok, err := r.manifest.Lookup(ctx, versionID)
	if err != nil {
		return models.ManifestEntry{}, err
	}
	if !ok {
		return models.ManifestEntry{}, errs.New(errs.VersionNotFound)
	}
	return entry, nil
}

func (r *Resolver) detailStage(ctx context.Context, entry models.ManifestEntry) (detailResult, error) {
	var doc models.VersionDetail
	if err := r.fetcher.GetJSON(ctx, entry.URL, &doc); err != nil {
		return detailResult{}, fmt.Errorf("version %s: %w", entry.ID, err)
	}

	res := detailResult{
		entry:       entry,
		javaVersion: javaVersion(doc),
		releaseTime: doc.ReleaseTime,
	}
	if doc.Downloads.Client != nil {
		res.clientURL = doc.Downloads.Client.URL
		res.clientSHA1 = doc.Downloads.Client.SHA1
	}
	if doc.Downloads.Server != nil {
		res.serverURL = doc.Downloads.Server.URL
	}

	if res.clientURL == "" {
		return detailResult{}, errs.New(errs.ClientJarMissing)
	}
	return res, nil
}

func (r *Resolver) archiveStage(ctx context.Context, in detailResult) (archiveResult, error) {
	data, err := r.fetcher.GetBytes(ctx, in.clientURL, r.maxArchiveBytes)
	if err != nil {
		return archiveResult{}, fmt.Errorf("client jar for %s: %w", in.entry.ID, err)
	}

	// A mismatch is reported but not fatal; the jar is still read.
	if err := utils.VerifySHA1(data, in.clientSHA1); err != nil {
		logger.Warn("client jar for %s: %v", in.entry.ID, err)
	}

	format, err := archive.ExtractPackFormat(data)
	if err != nil {
		return archiveResult{}, fmt.Errorf("client jar for %s: %w", in.entry.ID, err)
	}
	return archiveResult{detailResult: in, datapackVersion: format}, nil
}

func (r *Resolver) referenceStage(ctx context.Context, in archiveResult) pageResult {
	return pageResult{
		archiveResult: in,
		page:          r.pages.Lookup(ctx, in.entry.ID),
		wikiURL:       r.pages.URL(in.entry.ID),
	}
}

func (r *Resolver) merge(in pageResult) models.ResolvedVersionRecord {
	return models.ResolvedVersionRecord{
		ID:                   in.entry.ID,
		Type:                 in.entry.Type,
		JavaVersion:          in.javaVersion,
		DatapackVersion:      in.datapackVersion,
		ResourcePackVersion:  orDefault(derefString(in.page.ResourcePackFormat), NoResourcePackVersion),
		UpdateTitle:          orDefault(in.page.Title, NoUpdateTitle),
		ReleaseTime:          in.releaseTime,
		ReleaseTimeFormatted: FormatReleaseTime(in.releaseTime, r.location),
		ClientURL:            in.clientURL,
		ServerURL:            orDefault(in.serverURL, NoServerJar),
		WikiURL:              in.wikiURL,
	}
}

// ---- helpers ----

// javaVersion renders javaVersion.majorVersion; a missing object, a missing
// field or a zero value all read as "unknown".
func javaVersion(doc models.VersionDetail) string {
	if doc.JavaVersion == nil {
		return UnknownJavaVersion
	}
	return renderMajorVersion(doc.JavaVersion.MajorVersion)
}

// renderMajorVersion prints numbers, non-empty strings and true as text.
// Zero, empty strings, false, null and objects read as "unknown".
func renderMajorVersion(raw json.RawMessage) string {
	if len(raw) == 0 {
		return UnknownJavaVersion
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return UnknownJavaVersion
	}

	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		if err != nil || f == 0 {
			return UnknownJavaVersion
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	case string:
		return orDefault(t, UnknownJavaVersion)
	case bool:
		if t {
			return "true"
		}
	}
	return UnknownJavaVersion
}

// FormatReleaseTime renders an upstream timestamp the way an en-US locale
// prints a date-time, in loc.
func FormatReleaseTime(raw string, loc *time.Location) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return InvalidDate
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(localeTimeLayout)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
