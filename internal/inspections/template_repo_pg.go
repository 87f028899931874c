package inspections

import (
	"context"
	"database/sql"
	"errors"

	"healthoffice-backend/internal/shared/storage/db"
)

// TemplatePGRepo implements TemplateRepo using Postgres.
type TemplatePGRepo struct {
	DB *sql.DB
}

func (r *TemplatePGRepo) q(ctx context.Context) db.Querier {
	return db.QuerierFrom(ctx, r.DB)
}

// Create inserts a template together with its items.
func (r *TemplatePGRepo) Create(ctx context.Context, t Template) error {
	return db.RunInTx(ctx, r.DB, func(ctx context.Context) error {
		const head = `INSERT INTO inspection_templates (id, name, facility_type, created_at) VALUES ($1, $2, $3, now())`
		if _, err := r.q(ctx).ExecContext(ctx, head, t.ID, t.Name, t.FacilityType); err != nil {
			return err
		}
		const item = `
INSERT INTO inspection_template_items (id, template_id, criterion_code, description, max_score, item_order)
VALUES ($1, $2, $3, $4, $5, $6)`
		for _, it := range t.Items {
			if _, err := r.q(ctx).ExecContext(ctx, item, it.ID, t.ID, it.CriterionCode, it.Description, it.MaxScore, it.ItemOrder); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID returns a template with its items ordered by item_order.
func (r *TemplatePGRepo) GetByID(ctx context.Context, templateID string) (Template, error) {
	return r.getOne(ctx, `id`, templateID)
}

// GetByFacilityType returns the template for a facility type.
func (r *TemplatePGRepo) GetByFacilityType(ctx context.Context, facilityType string) (Template, error) {
	return r.getOne(ctx, `facility_type`, facilityType)
}

func (r *TemplatePGRepo) getOne(ctx context.Context, column, value string) (Template, error) {
	query := `SELECT id, name, facility_type, created_at FROM inspection_templates WHERE ` + column + ` = $1 LIMIT 1`
	var t Template
	err := r.q(ctx).QueryRowContext(ctx, query, value).Scan(&t.ID, &t.Name, &t.FacilityType, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Template{}, ErrTemplateNotFound
		}
		return Template{}, err
	}
	items, err := r.itemsOf(ctx, t.ID)
	if err != nil {
		return Template{}, err
	}
	t.Items = items
	return t, nil
}

// List returns all templates with their items.
func (r *TemplatePGRepo) List(ctx context.Context) ([]Template, error) {
	rows, err := r.q(ctx).QueryContext(ctx, `SELECT id, name, facility_type, created_at FROM inspection_templates ORDER BY facility_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Template
	for rows.Next() {
		var t Template
		if err := rows.Scan(&t.ID, &t.Name, &t.FacilityType, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		items, err := r.itemsOf(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

// Delete removes a template; items cascade at the database level.
func (r *TemplatePGRepo) Delete(ctx context.Context, templateID string) error {
	res, err := r.q(ctx).ExecContext(ctx, `DELETE FROM inspection_templates WHERE id = $1`, templateID)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func (r *TemplatePGRepo) itemsOf(ctx context.Context, templateID string) ([]TemplateItem, error) {
	const query = `
SELECT id, template_id, criterion_code, description, max_score, item_order
FROM inspection_template_items WHERE template_id = $1 ORDER BY item_order`
	rows, err := r.q(ctx).QueryContext(ctx, query, templateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []TemplateItem
	for rows.Next() {
		var it TemplateItem
		if err := rows.Scan(&it.ID, &it.TemplateID, &it.CriterionCode, &it.Description, &it.MaxScore, &it.ItemOrder); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

var _ TemplateRepo = (*TemplatePGRepo)(nil)
