package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Fukolomka/Sitea/internal/domain"
	"github.com/Fukolomka/Sitea/internal/repository"
)

// CatalogRepository implements repository.Catalog for PostgreSQL
type CatalogRepository struct {
	db *pgxpool.Pool
}

var _ repository.Catalog = (*CatalogRepository)(nil)

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListActiveCases returns active cases with their entries, newest first.
func (r *CatalogRepository) ListActiveCases(ctx context.Context) ([]domain.Case, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+caseColumns+`
		FROM cases
		WHERE is_active
		ORDER BY created_at DESC, name
	`)
	if err != nil {
		return nil, wrap(ErrMsgFailedToListCases, err)
	}
	cases, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Case, error) {
		c, err := scanCase(row)
		if err != nil {
			return domain.Case{}, err
		}
		return *c, nil
	})
	if err != nil {
		return nil, wrap(ErrMsgFailedToListCases, err)
	}
	if len(cases) == 0 {
		return cases, nil
	}

	ids := make([]string, len(cases))
	for i, c := range cases {
		ids[i] = c.ID
	}
	byCase, err := caseItems(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}
	for i := range cases {
		cases[i].Items = byCase[cases[i].ID]
	}
	return cases, nil
}

// GetActiveCase returns one active case with its entries in catalog order.
func (r *CatalogRepository) GetActiveCase(ctx context.Context, caseID string) (*domain.Case, error) {
	return getActiveCase(ctx, r.db, caseID)
}

func getActiveCase(ctx context.Context, q querier, caseID string) (*domain.Case, error) {
	if !validID(caseID) {
		return nil, domain.ErrCaseNotFound
	}
	c, err := scanCase(q.QueryRow(ctx, `
		SELECT `+caseColumns+`
		FROM cases
		WHERE case_id = $1 AND is_active
	`, caseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCaseNotFound
		}
		return nil, wrap(ErrMsgFailedToGetCase, err)
	}

	byCase, err := caseItems(ctx, q, []string{c.ID})
	if err != nil {
		return nil, err
	}
	c.Items = byCase[c.ID]
	return c, nil
}

func caseItems(ctx context.Context, q querier, caseIDs []string) (map[string][]domain.CaseItem, error) {
	rows, err := q.Query(ctx, `
		SELECT ci.case_item_id::text, ci.case_id::text, ci.weight, `+itemColumns+`
		FROM case_items ci
		JOIN items i ON i.item_id = ci.item_id
		WHERE ci.case_id = ANY($1::uuid[])
		ORDER BY ci.case_id, ci.position, ci.case_item_id
	`, caseIDs)
	if err != nil {
		return nil, wrap(ErrMsgFailedToGetCaseItems, err)
	}
	defer rows.Close()

	out := make(map[string][]domain.CaseItem, len(caseIDs))
	for rows.Next() {
		var ci domain.CaseItem
		dest := append([]any{&ci.ID, &ci.CaseID, &ci.Weight}, itemDest(&ci.Item)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, wrap(ErrMsgFailedToScanRow, err)
		}
		ci.ItemID = ci.Item.ID
		out[ci.CaseID] = append(out[ci.CaseID], ci)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(ErrMsgFailedToIterateRows, err)
	}
	return out, nil
}

// UpsertItem inserts or updates an item keyed by name, filling ID and timestamps.
func (r *CatalogRepository) UpsertItem(ctx context.Context, item *domain.Item) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO items (name, description, image, rarity, item_type, price, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (name) DO UPDATE
		SET description = EXCLUDED.description,
		    image = EXCLUDED.image,
		    rarity = EXCLUDED.rarity,
		    item_type = EXCLUDED.item_type,
		    price = EXCLUDED.price,
		    is_active = EXCLUDED.is_active,
		    updated_at = NOW()
		RETURNING item_id::text, created_at, updated_at
	`, item.Name, item.Description, item.Image, item.Rarity, item.Type, item.Price, item.IsActive,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return wrap(ErrMsgFailedToUpsertItem, err)
	}
	return nil
}

// UpsertCase inserts or updates a case keyed by name and replaces its
// entries. Entry order is kept as catalog order.
func (r *CatalogRepository) UpsertCase(ctx context.Context, c *domain.Case) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return wrap(ErrMsgFailedToBeginTransaction, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO cases (name, description, image, price, is_active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO UPDATE
		SET description = EXCLUDED.description,
		    image = EXCLUDED.image,
		    price = EXCLUDED.price,
		    is_active = EXCLUDED.is_active,
		    updated_at = NOW()
		RETURNING case_id::text, created_at, updated_at
	`, c.Name, c.Description, c.Image, c.Price, c.IsActive).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return wrap(ErrMsgFailedToUpsertCase, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM case_items WHERE case_id = $1`, c.ID); err != nil {
		return wrap(ErrMsgFailedToReplaceItems, err)
	}

	batch := &pgx.Batch{}
	for pos, ci := range c.Items {
		itemID := ci.ItemID
		if itemID == "" {
			itemID = ci.Item.ID
		}
		if !validID(itemID) {
			return fmt.Errorf("%w: %q", domain.ErrItemNotFound, itemID)
		}
		batch.Queue(`
			INSERT INTO case_items (case_id, item_id, weight, position)
			VALUES ($1, $2, $3, $4)
			RETURNING case_item_id::text
		`, c.ID, itemID, ci.Weight, pos).QueryRow(func(row pgx.Row) error {
			c.Items[pos].CaseID = c.ID
			c.Items[pos].ItemID = itemID
			return row.Scan(&c.Items[pos].ID)
		})
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return wrap(ErrMsgFailedToReplaceItems, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return wrap(ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}
