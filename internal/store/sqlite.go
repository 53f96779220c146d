package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/lectern-reader/lectern/internal/canon"
	"github.com/lectern-reader/lectern/internal/model"
	"github.com/lectern-reader/lectern/internal/query"
	"github.com/lectern-reader/lectern/internal/sqlutil"
)

// LibrarySource is the source name the local library reports in results.
const LibrarySource = "library"

// Library is the sqlite-backed local event store: the events a reading
// client has synced to disk. It implements Store.
type Library struct {
	db   *sql.DB
	path string
}

const librarySchema = `
CREATE TABLE IF NOT EXISTS events (
	id         TEXT PRIMARY KEY,
	author_key TEXT NOT NULL DEFAULT '',
	kind       INTEGER NOT NULL,
	content    TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS tags (
	event_id TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
	name     TEXT NOT NULL,
	value    TEXT NOT NULL,
	norm     TEXT NOT NULL,
	pos      INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_events_kind ON events(kind);
CREATE INDEX IF NOT EXISTS idx_tags_event ON tags(event_id, pos);
CREATE INDEX IF NOT EXISTS idx_tags_lookup ON tags(name, norm);
`

// OpenLibrary opens or creates the library database at the given path,
// creating parent directories as needed.
func OpenLibrary(path string) (*Library, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create library directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open library: %w", err)
	}
	if _, err := db.Exec(librarySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize library schema: %w", err)
	}
	return &Library{db: db, path: path}, nil
}

// Close closes the underlying database.
func (l *Library) Close() error {
	return l.db.Close()
}

// Path returns the database file path.
func (l *Library) Path() string {
	return l.path
}

// normTagValue is the stored comparison form of a tag value. Title and
// collection tags get the canon normalization the query compiler applies on
// its side; version tags compare case-insensitively; everything else is
// exact.
func normTagValue(name, value string) string {
	switch name {
	case model.TagTitle:
		return canon.NormalizeTitle(value)
	case model.TagCollection:
		return canon.Slug(value)
	case model.TagVersion:
		return strings.ToLower(value)
	default:
		return value
	}
}

// ImportEvents inserts events into the library, skipping ids already
// present. Returns the number of newly stored events.
func (l *Library) ImportEvents(events []model.ContentEvent) (int, error) {
	tx, err := l.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin import: %w", err)
	}
	defer tx.Rollback()

	stored := 0
	for _, ev := range events {
		if ev.ID == "" {
			continue
		}
		res, err := tx.Exec(
			`INSERT OR IGNORE INTO events (id, author_key, kind, content, created_at) VALUES (?, ?, ?, ?, ?)`,
			ev.ID, ev.AuthorKey, ev.Kind, ev.Content, ev.CreatedAt,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to store event %s: %w", ev.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		if n == 0 {
			continue // already in the library
		}
		stored++
		for pos, tag := range ev.Tags {
			if _, err := tx.Exec(
				`INSERT INTO tags (event_id, name, value, norm, pos) VALUES (?, ?, ?, ?, ?)`,
				ev.ID, tag.Name, tag.Value, normTagValue(tag.Name, tag.Value), pos,
			); err != nil {
				return 0, fmt.Errorf("failed to store tags for %s: %w", ev.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}
	return stored, nil
}

// CountEvents returns the number of events in the library.
func (l *Library) CountEvents() (int, error) {
	var n int
	err := l.db.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&n)
	return n, err
}

// Query runs each filter against the library and merges the results,
// deduplicated by event id. Result order is storage order, which callers
// must treat as arbitrary.
func (l *Library) Query(ctx context.Context, filters []query.Filter, opts QueryOptions) (QueryResult, error) {
	seen := make(map[string]struct{})
	var result QueryResult

	for _, f := range filters {
		events, err := l.queryOne(ctx, f)
		if err != nil {
			return QueryResult{}, err
		}
		for _, ev := range events {
			if _, ok := seen[ev.ID]; ok {
				continue
			}
			seen[ev.ID] = struct{}{}
			result.Events = append(result.Events, ev)
		}
	}

	if len(result.Events) > 0 {
		result.Sources = []string{LibrarySource}
	}
	return result, nil
}

func (l *Library) queryOne(ctx context.Context, f query.Filter) ([]model.ContentEvent, error) {
	var sb strings.Builder
	var args []any

	sb.WriteString(`SELECT e.id, e.author_key, e.kind, e.content, e.created_at FROM events e WHERE 1=1`)
	if f.Kind != 0 {
		sb.WriteString(` AND e.kind = ?`)
		args = append(args, f.Kind)
	}

	appendTagConstraint := func(name, norm string) {
		sb.WriteString(` AND EXISTS (SELECT 1 FROM tags t WHERE t.event_id = e.id AND t.name = ? AND t.norm = ?)`)
		args = append(args, name, norm)
	}
	if f.Collection != "" {
		appendTagConstraint(model.TagCollection, f.Collection)
	}
	if f.Title != "" {
		appendTagConstraint(model.TagTitle, f.Title)
	}
	if f.Chapter != "" {
		appendTagConstraint(model.TagChapter, f.Chapter)
	}
	if f.Version != "" {
		appendTagConstraint(model.TagVersion, strings.ToLower(f.Version))
	}
	if len(f.SectionValues) > 0 {
		in, inArgs := sqlutil.InClauseArgs(f.SectionValues)
		sb.WriteString(fmt.Sprintf(
			` AND EXISTS (SELECT 1 FROM tags t WHERE t.event_id = e.id AND t.name = ? AND t.value IN (%s))`, in))
		args = append(args, model.TagSection)
		args = append(args, inArgs...)
	}
	sb.WriteString(` ORDER BY e.created_at, e.id`)
	if f.Limit > 0 {
		sb.WriteString(` LIMIT ?`)
		args = append(args, f.Limit)
	}

	rows, err := l.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("library query failed: %w", err)
	}
	defer rows.Close()

	var events []model.ContentEvent
	var ids []string
	byID := make(map[string]int)
	for rows.Next() {
		var ev model.ContentEvent
		if err := rows.Scan(&ev.ID, &ev.AuthorKey, &ev.Kind, &ev.Content, &ev.CreatedAt); err != nil {
			return nil, err
		}
		byID[ev.ID] = len(events)
		ids = append(ids, ev.ID)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}

	if err := l.attachTags(ctx, events, ids, byID); err != nil {
		return nil, err
	}
	return events, nil
}

// attachTags loads tags for the given events in one query, preserving the
// published tag order via the pos column.
func (l *Library) attachTags(ctx context.Context, events []model.ContentEvent, ids []string, byID map[string]int) error {
	in, args := sqlutil.InClauseArgs(ids)
	rows, err := l.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT event_id, name, value FROM tags WHERE event_id IN (%s) ORDER BY event_id, pos`, in),
		args...)
	if err != nil {
		return fmt.Errorf("failed to load tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var eventID string
		var tag model.Tag
		if err := rows.Scan(&eventID, &tag.Name, &tag.Value); err != nil {
			return err
		}
		i := byID[eventID]
		events[i].Tags = append(events[i].Tags, tag)
	}
	return rows.Err()
}
