package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/outvoice/internal/model"
)

type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

type templateRow struct {
	ID          uuid.UUID
	Name        string
	Description string
	Category    string
	Sections    []byte
	IsPremium   bool
	CreatedAt   time.Time
}

func (r *TemplateRepository) Get(ctx context.Context, id uuid.UUID) (*model.Template, error) {
	var row templateRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, description, category, sections, is_premium, created_at
		FROM templates
		WHERE id = ?
	`, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return rowToTemplate(row)
}

func (r *TemplateRepository) List(ctx context.Context) ([]model.Template, error) {
	var rows []templateRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, description, category, sections, is_premium, created_at
		FROM templates
		ORDER BY name ASC
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	templates := make([]model.Template, 0, len(rows))
	for _, row := range rows {
		template, err := rowToTemplate(row)
		if err != nil {
			return nil, err
		}
		templates = append(templates, *template)
	}
	return templates, nil
}

func (r *TemplateRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM templates`).Scan(&count).Error
	return count, err
}

func (r *TemplateRepository) Save(ctx context.Context, template *model.Template) error {
	sections, err := json.Marshal(template.Sections)
	if err != nil {
		return fmt.Errorf("encode sections: %w", err)
	}

	return r.db.WithContext(ctx).Exec(`
		INSERT INTO templates (id, name, description, category, sections, is_premium, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			sections = EXCLUDED.sections,
			is_premium = EXCLUDED.is_premium
	`,
		template.ID, template.Name, template.Description, string(template.Category),
		string(sections), template.IsPremium, template.CreatedAt,
	).Error
}

func rowToTemplate(row templateRow) (*model.Template, error) {
	template := &model.Template{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Category:    model.TemplateCategory(row.Category),
		IsPremium:   row.IsPremium,
		CreatedAt:   row.CreatedAt,
	}
	if len(row.Sections) > 0 {
		if err := json.Unmarshal(row.Sections, &template.Sections); err != nil {
			return nil, fmt.Errorf("decode sections: %w", err)
		}
	}
	return template, nil
}
