package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/reframe/internal/table"
	"github.com/roach88/reframe/internal/variant"
)

// ErrNotFound indicates no snapshot exists under the requested name.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot describes a stored row without its payload.
type Snapshot struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	VariantTag  variant.Tag `json:"variant_tag"`
	Fingerprint string      `json:"fingerprint"`
}

// Load returns the latest snapshot under name, revalidated against the
// registry. The stored tag is a claim, not a fact: the payload runs
// through Reconstruct, so a tag whose variant no longer holds (or is no
// longer registered) comes back demoted to base.
func (c *Catalog) Load(ctx context.Context, name string, reg *variant.Registry) (*variant.Instance, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT variant_tag, meta, payload
		FROM snapshots
		WHERE name = ?
		ORDER BY created_seq DESC
		LIMIT 1
	`, name)

	var tag, metaJSON, payloadJSON string
	if err := row.Scan(&tag, &metaJSON, &payloadJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("load snapshot %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("load snapshot %q: %w", name, err)
	}

	payload, err := table.Unmarshal([]byte(payloadJSON))
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", name, err)
	}

	v, ok := reg.Lookup(variant.Tag(tag))
	if !ok {
		// Unknown tag: the definition was removed since the save.
		return variant.NewBase(payload), nil
	}
	var meta variant.Meta
	if err := json.Unmarshal([]byte(metaJSON), &meta); err != nil {
		return nil, fmt.Errorf("load snapshot %q: decode meta: %w", name, err)
	}
	return variant.Reconstruct(payload, &variant.Instance{Table: payload, Variant: v, Meta: meta}), nil
}

// List returns the latest snapshot row per name, ordered by name.
func (c *Catalog) List(ctx context.Context) ([]Snapshot, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT s.id, s.name, s.variant_tag, s.fingerprint
		FROM snapshots s
		JOIN (
			SELECT name, MAX(created_seq) AS seq
			FROM snapshots
			GROUP BY name
		) latest ON latest.name = s.name AND latest.seq = s.created_seq
		ORDER BY s.name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var s Snapshot
		var tag string
		if err := rows.Scan(&s.ID, &s.Name, &tag, &s.Fingerprint); err != nil {
			return nil, fmt.Errorf("list snapshots: %w", err)
		}
		s.VariantTag = variant.Tag(tag)
		out = append(out, s)
	}
	return out, rows.Err()
}
