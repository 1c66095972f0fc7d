package platform

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"strconv"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/blackwell-systems/gamedock/internal/catalog"
)

const (
	itchProtocol = "itch://"
	itchCave     = itchProtocol + "caves/" // itch://caves/<caveid>/launch
	itchGame     = itchProtocol + "games/" // itch://games/<gameid>
	itchLibrary  = itchProtocol + "library"
)

// Itch reads the butler database kept by the itch app.
type Itch struct {
	run Runner
}

// NewItch returns the itch handler.
func NewItch(run Runner) *Itch { return &Itch{run: run} }

func (i *Itch) Platform() catalog.Platform { return catalog.Itch }

// Installed games come from caves; games that are only owned come from
// download keys.
const itchQuery = `
SELECT g.id, g.title, COALESCE(g.cover_url, ''), COALESCE(c.id, '')
FROM games g
LEFT JOIN caves c ON c.game_id = g.id
WHERE c.id IS NOT NULL
   OR g.id IN (SELECT game_id FROM download_keys)
ORDER BY g.title`

// Scan opens butler.db read-only and lists owned and installed games.
func (i *Itch) Scan(ctx context.Context, opts Options) ([]catalog.Record, error) {
	if opts.ItchDB == "" {
		return nil, nil
	}
	if _, err := os.Stat(opts.ItchDB); err != nil {
		opts.logger().Debug("itch database not found", "path", opts.ItchDB)
		return nil, nil
	}

	db, err := sql.Open("sqlite", opts.ItchDB)
	if err != nil {
		return nil, fmt.Errorf("open itch database: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, itchQuery)
	if err != nil {
		return nil, fmt.Errorf("query itch database: %w", err)
	}
	defer rows.Close()

	seen := map[int64]bool{}
	var out []catalog.Record
	for rows.Next() {
		var (
			gameID int64
			title  string
			cover  string
			caveID string
		)
		if err := rows.Scan(&gameID, &title, &cover, &caveID); err != nil {
			return nil, fmt.Errorf("scan itch row: %w", err)
		}
		if seen[gameID] {
			continue
		}
		seen[gameID] = true

		id := strconv.FormatInt(gameID, 10)
		rec := catalog.Record{
			ID:       id,
			Title:    title,
			IconURL:  cover,
			Platform: catalog.Itch.String(),
		}
		if caveID != "" {
			rec.Installed = true
			rec.LaunchURL = itchCave + url.PathEscape(caveID) + "/launch"
			rec.Launch = caveID
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read itch rows: %w", err)
	}
	return out, nil
}

func (i *Itch) Launch(g *catalog.Game) error {
	if g.LaunchURL() == "" {
		return ErrNoLaunchCommand
	}
	return i.run.Open(g.LaunchURL())
}

func (i *Itch) Install(g *catalog.Game) error  { return i.run.Open(itchGame + g.ID()) }
func (i *Itch) Uninstall(*catalog.Game) error  { return ErrUnsupported }
func (i *Itch) IconURL(g *catalog.Game) string { return g.IconURL() }
func (i *Itch) OpenClient() error              { return i.run.Open(itchLibrary) }
