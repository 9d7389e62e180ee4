package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/reframe/internal/table"
	"github.com/roach88/reframe/internal/variant"
)

// Save records a snapshot of an instance under a logical name and returns
// the snapshot ID (UUIDv7, so IDs sort by creation time). Saving an
// existing name supersedes the earlier snapshot; Load returns the latest.
func (c *Catalog) Save(ctx context.Context, name string, inst *variant.Instance) (string, error) {
	if name == "" {
		return "", fmt.Errorf("save snapshot: empty name")
	}
	if inst == nil || inst.Table == nil {
		return "", fmt.Errorf("save snapshot %q: nil instance", name)
	}

	payload, err := json.Marshal(table.ToDoc(inst.Table))
	if err != nil {
		return "", fmt.Errorf("save snapshot %q: marshal payload: %w", name, err)
	}
	meta, err := json.Marshal(inst.Meta)
	if err != nil {
		return "", fmt.Errorf("save snapshot %q: marshal meta: %w", name, err)
	}
	fingerprint, err := table.Fingerprint(inst.Table)
	if err != nil {
		return "", fmt.Errorf("save snapshot %q: %w", name, err)
	}

	id := uuid.Must(uuid.NewV7()).String()
	_, err = c.db.ExecContext(ctx, `
		INSERT INTO snapshots (id, name, variant_tag, meta, payload, fingerprint, created_seq)
		VALUES (?, ?, ?, ?, ?, ?,
			COALESCE((SELECT MAX(created_seq) FROM snapshots), 0) + 1)
	`,
		id,
		name,
		string(inst.Tag()),
		string(meta),
		string(payload),
		fingerprint,
	)
	if err != nil {
		return "", fmt.Errorf("save snapshot %q: %w", name, err)
	}
	return id, nil
}
