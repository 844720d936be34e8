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

type ProposalRepository struct {
	db *gorm.DB
}

func NewProposalRepository(db *gorm.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

type proposalRow struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	TemplateID     *uuid.UUID
	Title          string
	Sections       []byte
	Orientation    string
	TitlePageStyle []byte
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

const proposalColumns = `
	id, user_id, template_id, title, sections, orientation,
	title_page_style, status, created_at, updated_at
`

func (r *ProposalRepository) Get(ctx context.Context, id uuid.UUID) (*model.Proposal, error) {
	var row proposalRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+proposalColumns+`
		FROM proposals
		WHERE id = ?
	`, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return rowToProposal(row)
}

func (r *ProposalRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Proposal, error) {
	var rows []proposalRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+proposalColumns+`
		FROM proposals
		WHERE user_id = ?
		ORDER BY updated_at DESC
	`, userID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	proposals := make([]model.Proposal, 0, len(rows))
	for _, row := range rows {
		proposal, err := rowToProposal(row)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, *proposal)
	}
	return proposals, nil
}

// Save upserts the proposal by id.
func (r *ProposalRepository) Save(ctx context.Context, proposal *model.Proposal) error {
	sections, err := json.Marshal(proposal.Sections)
	if err != nil {
		return fmt.Errorf("encode sections: %w", err)
	}
	style, err := json.Marshal(proposal.TitlePageStyle)
	if err != nil {
		return fmt.Errorf("encode title page style: %w", err)
	}

	return r.db.WithContext(ctx).Exec(`
		INSERT INTO proposals (
			id, user_id, template_id, title, sections, orientation,
			title_page_style, status, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			sections = EXCLUDED.sections,
			orientation = EXCLUDED.orientation,
			title_page_style = EXCLUDED.title_page_style,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
	`,
		proposal.ID, proposal.UserID, proposal.TemplateID, proposal.Title,
		string(sections), string(proposal.Orientation), string(style),
		string(proposal.Status), proposal.CreatedAt, proposal.UpdatedAt,
	).Error
}

func (r *ProposalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM proposals WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func rowToProposal(row proposalRow) (*model.Proposal, error) {
	proposal := &model.Proposal{
		ID:          row.ID,
		UserID:      row.UserID,
		TemplateID:  row.TemplateID,
		Title:       row.Title,
		Orientation: model.Orientation(row.Orientation),
		Status:      model.ProposalStatus(row.Status),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if len(row.Sections) > 0 {
		if err := json.Unmarshal(row.Sections, &proposal.Sections); err != nil {
			return nil, fmt.Errorf("decode sections: %w", err)
		}
	}
	if len(row.TitlePageStyle) > 0 {
		if err := json.Unmarshal(row.TitlePageStyle, &proposal.TitlePageStyle); err != nil {
			return nil, fmt.Errorf("decode title page style: %w", err)
		}
	}
	return proposal, nil
}
