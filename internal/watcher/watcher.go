package watcher

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/MrSnakeDoc/mcversion/internal/logger"
	"github.com/MrSnakeDoc/mcversion/internal/models"
	"github.com/MrSnakeDoc/mcversion/internal/utils"
	"github.com/MrSnakeDoc/mcversion/internal/utils/pathutils"
)

const (
	releaseArticleURL  = "https://www.minecraft.net/en-us/article/minecraft-java-edition-%s"
	snapshotArticleURL = "https://www.minecraft.net/en-us/article/minecraft-snapshot-%s"
	defaultType        = "release"
)

// Source is the version server the watcher polls.
type Source interface {
	Versions(ctx context.Context) ([]string, error)
	VersionType(ctx context.Context, id string) (string, error)
}

type Announcer interface {
	Announce(a models.Announcement)
}

type Watcher struct {
	source    Source
	announcer Announcer
	statePath string
	interval  time.Duration

	mu    sync.Mutex
	known map[string]struct{}
	// set when no baseline could be recorded yet; the next successful
	// listing becomes the baseline instead of being announced
	pendingBaseline bool
}

type Options struct {
	StatePath string
	Interval  time.Duration
}

func New(source Source, announcer Announcer, opts Options) *Watcher {
	if opts.Interval <= 0 {
		opts.Interval = time.Minute
	}
	return &Watcher{
		source:    source,
		announcer: announcer,
		statePath: opts.StatePath,
		interval:  opts.Interval,
	}
}

// Init loads the known ids from the state file. Without a state file the
// current server listing becomes the baseline and nothing is announced. If
// the server cannot be reached, no file is written and the first successful
// poll records the baseline instead.
func (w *Watcher) Init(ctx context.Context) ([]string, error) {
	lines, exists, err := utils.ReadLines(w.statePath)
	if err != nil {
		return nil, err
	}

	pending := false
	if !exists {
		logger.Info("%s not found. Initializing with current versions...", pathutils.ToHomePathFormat(w.statePath))
		ids, ok := w.fetch(ctx)
		if ok {
			lines = sortedKeys(utils.SetOf(ids))
			if err := w.writeBaseline(lines); err != nil {
				return nil, err
			}
		} else {
			logger.Warn("Server unreachable, the baseline will be recorded on the next successful poll.")
			pending = true
		}
	}

	w.mu.Lock()
	w.known = utils.SetOf(lines)
	w.pendingBaseline = pending
	known := sortedKeys(w.known)
	w.mu.Unlock()
	return known, nil
}

func (w *Watcher) writeBaseline(ids []string) error {
	if err := utils.WriteLines(w.statePath, ids); err != nil {
		return fmt.Errorf("failed to initialize %s: %w", w.statePath, err)
	}
	logger.Success("Initialized known versions file.")
	return nil
}

// Poll announces every id the server lists that is not known yet, then
// records them. A failed listing yields no announcements.
func (w *Watcher) Poll(ctx context.Context) ([]models.Announcement, error) {
	current, ok := w.fetch(ctx)
	if !ok {
		return nil, nil
	}

	w.mu.Lock()
	if w.pendingBaseline {
		baseline := sortedKeys(utils.SetOf(current))
		if err := w.writeBaseline(baseline); err != nil {
			w.mu.Unlock()
			return nil, err
		}
		w.known = utils.SetOf(baseline)
		w.pendingBaseline = false
		w.mu.Unlock()
		return nil, nil
	}
	if w.known == nil {
		w.known = map[string]struct{}{}
	}
	fresh := utils.Filter(current, func(id string) bool {
		_, ok := w.known[id]
		return !ok
	})
	w.mu.Unlock()

	fresh = sortedKeys(utils.SetOf(fresh))
	if len(fresh) == 0 {
		return nil, nil
	}

	out := make([]models.Announcement, 0, len(fresh))
	for _, id := range fresh {
		logger.Success("New version found: %s", id)
		a := w.describe(ctx, id)
		if w.announcer != nil {
			w.announcer.Announce(a)
		}
		out = append(out, a)
	}

	if err := utils.AppendLines(w.statePath, fresh); err != nil {
		return out, fmt.Errorf("failed to record new versions: %w", err)
	}

	w.mu.Lock()
	for _, id := range fresh {
		w.known[id] = struct{}{}
	}
	w.mu.Unlock()
	return out, nil
}

// Run initializes, prints the known ids and polls every interval until ctx
// is done.
func (w *Watcher) Run(ctx context.Context) error {
	known, err := w.Init(ctx)
	if err != nil {
		return err
	}

	logger.Info("Watching for new versions. Currently known: %d", len(known))
	for _, id := range known {
		logger.Debug(" - %s", id)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := w.Poll(ctx); err != nil {
				logger.LogError("%v", err)
			}
		}
	}
}

func (w *Watcher) fetch(ctx context.Context) ([]string, bool) {
	ids, err := w.source.Versions(ctx)
	if err != nil {
		logger.Warn("Failed to fetch versions: %v", err)
		return nil, false
	}
	return ids, true
}

func (w *Watcher) describe(ctx context.Context, id string) models.Announcement {
	typ, err := w.source.VersionType(ctx, id)
	if err != nil {
		logger.Warn("Failed to fetch details for version %s: %v", id, err)
		return models.Announcement{ID: id}
	}
	if typ == "" {
		typ = defaultType
	}
	return models.Announcement{ID: id, Type: typ, ArticleURL: ArticleURL(id, typ)}
}

// ArticleURL points at the minecraft.net announcement for a version.
func ArticleURL(id, versionType string) string {
	if versionType == "release" {
		return fmt.Sprintf(releaseArticleURL, strings.ReplaceAll(id, ".", "-"))
	}
	return fmt.Sprintf(snapshotArticleURL, id)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
