package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nurpe/outvoice/internal/model"
	"github.com/nurpe/outvoice/internal/pricing"
	"github.com/nurpe/outvoice/internal/repository"
)

type ProposalService struct {
	proposals *repository.ProposalRepository
	templates *repository.TemplateRepository
	log       zerolog.Logger
}

func NewProposalService(proposals *repository.ProposalRepository, templates *repository.TemplateRepository, log zerolog.Logger) *ProposalService {
	return &ProposalService{proposals: proposals, templates: templates, log: log}
}

type CreateProposalInput struct {
	Title          string
	TemplateID     *uuid.UUID
	Orientation    model.Orientation
	TitlePageStyle *model.TitlePageStyle
}

func (s *ProposalService) Create(ctx context.Context, principal model.Principal, input CreateProposalInput) (*model.Proposal, error) {
	if principal.IsZero() {
		return nil, ErrPermissionDenied
	}
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	orientation := input.Orientation
	if orientation == "" {
		orientation = model.OrientationPortrait
	}
	style := model.TitlePageStyle{Theme: model.TitleThemeLight, Layout: model.TitleLayoutCentered}
	if input.TitlePageStyle != nil {
		style = *input.TitlePageStyle
	}

	var sections []model.ProposalSection
	if input.TemplateID != nil {
		template, err := s.templates.Get(ctx, *input.TemplateID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: template", ErrNotFound)
			}
			return nil, err
		}
		sections = sectionsFromTemplate(template)
	}

	now := time.Now().UTC()
	proposal := &model.Proposal{
		ID:             uuid.New(),
		UserID:         principal.UserID,
		Title:          input.Title,
		TemplateID:     input.TemplateID,
		Sections:       sections,
		Orientation:    orientation,
		TitlePageStyle: style,
		Status:         model.ProposalStatusDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	recomputePricing(proposal)

	if err := s.proposals.Save(ctx, proposal); err != nil {
		return nil, fmt.Errorf("save proposal: %w", err)
	}

	s.log.Info().Str("proposal_id", proposal.ID.String()).Msg("proposal created")
	return proposal, nil
}

func (s *ProposalService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Proposal, error) {
	proposal, err := s.proposals.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !principal.Owns(proposal.UserID) {
		return nil, ErrPermissionDenied
	}
	return proposal, nil
}

func (s *ProposalService) List(ctx context.Context, principal model.Principal) ([]model.Proposal, error) {
	if principal.IsZero() {
		return nil, ErrPermissionDenied
	}
	return s.proposals.ListByUser(ctx, principal.UserID)
}

type UpdateProposalInput struct {
	Title          *string
	Sections       []model.ProposalSection
	Orientation    *model.Orientation
	TitlePageStyle *model.TitlePageStyle
	Status         *model.ProposalStatus
}

// Update applies a partial update. Structured pricing sections are always
// recalculated before the proposal is persisted, so stored subtotals and
// totals never drift from their items.
func (s *ProposalService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input UpdateProposalInput) (*model.Proposal, error) {
	proposal, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		proposal.Title = *input.Title
	}
	if input.Sections != nil {
		proposal.Sections = input.Sections
	}
	if input.Orientation != nil {
		proposal.Orientation = *input.Orientation
	}
	if input.TitlePageStyle != nil {
		proposal.TitlePageStyle = *input.TitlePageStyle
	}
	if input.Status != nil {
		if !validStatus(*input.Status) {
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		proposal.Status = *input.Status
	}

	recomputePricing(proposal)
	proposal.UpdatedAt = time.Now().UTC()

	if err := s.proposals.Save(ctx, proposal); err != nil {
		return nil, fmt.Errorf("save proposal: %w", err)
	}
	return proposal, nil
}

func (s *ProposalService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if _, err := s.Get(ctx, principal, id); err != nil {
		return err
	}
	if err := s.proposals.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.log.Info().Str("proposal_id", id.String()).Msg("proposal deleted")
	return nil
}

// ToggleSectionMode switches a section between structured pricing mode and
// free text. The pricing payload is stashed in SavedPricingData on the way
// out and restored on the way back in, so toggling round-trips without data
// loss.
func (s *ProposalService) ToggleSectionMode(ctx context.Context, principal model.Principal, proposalID, sectionID uuid.UUID) (*model.Proposal, error) {
	proposal, err := s.Get(ctx, principal, proposalID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range proposal.Sections {
		section := &proposal.Sections[i]
		if section.ID != sectionID {
			continue
		}
		found = true

		if section.PricingData != nil {
			section.SavedPricingData = section.PricingData
			section.PricingData = nil
			break
		}

		section.Type = model.SectionTypePricing
		if section.SavedPricingData != nil {
			section.PricingData = section.SavedPricingData
			section.SavedPricingData = nil
		} else {
			section.PricingData = &model.PricingSectionData{Currency: "USD"}
		}
		break
	}
	if !found {
		return nil, fmt.Errorf("%w: section", ErrNotFound)
	}

	recomputePricing(proposal)
	proposal.UpdatedAt = time.Now().UTC()

	if err := s.proposals.Save(ctx, proposal); err != nil {
		return nil, fmt.Errorf("save proposal: %w", err)
	}
	return proposal, nil
}

func sectionsFromTemplate(template *model.Template) []model.ProposalSection {
	sections := make([]model.ProposalSection, 0, len(template.Sections))
	for _, ts := range template.Sections {
		section := model.ProposalSection{
			ID:      uuid.New(),
			Type:    ts.Type,
			Title:   ts.Title,
			Content: ts.DefaultContent,
			Order:   ts.Order,
		}
		if ts.Type == model.SectionTypePricing {
			section.PricingData = &model.PricingSectionData{Currency: "USD"}
		}
		sections = append(sections, section)
	}
	return sections
}

func recomputePricing(proposal *model.Proposal) {
	for i := range proposal.Sections {
		section := &proposal.Sections[i]
		if section.Type == model.SectionTypePricing && section.PricingData != nil {
			data := pricing.ComputeSectionTotals(*section.PricingData)
			section.PricingData = &data
		}
	}
}

func validStatus(status model.ProposalStatus) bool {
	switch status {
	case model.ProposalStatusDraft, model.ProposalStatusSent,
		model.ProposalStatusAccepted, model.ProposalStatusRejected:
		return true
	}
	return false
}
