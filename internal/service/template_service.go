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
	"github.com/nurpe/outvoice/internal/repository"
)

type TemplateService struct {
	templates *repository.TemplateRepository
	log       zerolog.Logger
}

func NewTemplateService(templates *repository.TemplateRepository, log zerolog.Logger) *TemplateService {
	return &TemplateService{templates: templates, log: log}
}

func (s *TemplateService) List(ctx context.Context) ([]model.Template, error) {
	return s.templates.List(ctx)
}

func (s *TemplateService) Get(ctx context.Context, id uuid.UUID) (*model.Template, error) {
	template, err := s.templates.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return template, nil
}

// Seed installs the built-in templates when the catalog is empty. Existing
// templates are never touched.
func (s *TemplateService) Seed(ctx context.Context) error {
	count, err := s.templates.Count(ctx)
	if err != nil {
		return fmt.Errorf("count templates: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, template := range defaultTemplates() {
		if err := s.templates.Save(ctx, &template); err != nil {
			return fmt.Errorf("seed template %q: %w", template.Name, err)
		}
	}
	s.log.Info().Msg("default templates seeded")
	return nil
}

func defaultTemplates() []model.Template {
	now := time.Now().UTC()

	section := func(order int, sectionType model.SectionType, title, content string) model.TemplateSection {
		return model.TemplateSection{
			ID:             uuid.New(),
			Type:           sectionType,
			Title:          title,
			DefaultContent: content,
			Order:          order,
			IsRequired:     order == 0,
		}
	}

	return []model.Template{
		{
			ID:          uuid.New(),
			Name:        "Consulting Proposal",
			Description: "A structured engagement proposal with scope, timeline and pricing.",
			Category:    model.TemplateCategoryConsulting,
			CreatedAt:   now,
			Sections: []model.TemplateSection{
				section(0, model.SectionTypeHero, "Executive Summary", "<p>Describe the engagement and the outcome your client can expect.</p>"),
				section(1, model.SectionTypeServices, "Scope of Work", "<h3>Deliverables</h3><p>List the concrete deliverables here.</p>"),
				section(2, model.SectionTypeTimeline, "Timeline", "<p>Outline the project phases and milestones.</p>"),
				section(3, model.SectionTypePricing, "Investment", ""),
				section(4, model.SectionTypeContact, "Next Steps", "<p>How to accept this proposal and get started.</p>"),
			},
		},
		{
			ID:          uuid.New(),
			Name:        "Web Design Proposal",
			Description: "Pitch a website or product design project.",
			Category:    model.TemplateCategoryDesign,
			CreatedAt:   now,
			Sections: []model.TemplateSection{
				section(0, model.SectionTypeHeader, "Introduction", "<p>Introduce your studio and your approach.</p>"),
				section(1, model.SectionTypeAbout, "About Us", "<p>Who we are and the work we are proud of.</p>"),
				section(2, model.SectionTypeServices, "What We Will Build", "<p>Describe the pages, flows and features.</p>"),
				section(3, model.SectionTypePricing, "Pricing", ""),
				section(4, model.SectionTypeTestimonials, "What Clients Say", "<blockquote>Add a client quote here.</blockquote>"),
			},
		},
		{
			ID:          uuid.New(),
			Name:        "Marketing Campaign",
			Description: "A campaign plan with goals, channels and budget.",
			Category:    model.TemplateCategoryMarketing,
			CreatedAt:   now,
			Sections: []model.TemplateSection{
				section(0, model.SectionTypeHero, "Campaign Overview", "<p>State the campaign goal and the audience.</p>"),
				section(1, model.SectionTypeServices, "Channels", "<ul><li>Search</li><li>Social</li><li>Email</li></ul>"),
				section(2, model.SectionTypePricing, "Budget", ""),
			},
		},
		{
			ID:          uuid.New(),
			Name:        "Blank Proposal",
			Description: "Start from scratch with a single custom section.",
			Category:    model.TemplateCategoryGeneral,
			CreatedAt:   now,
			Sections: []model.TemplateSection{
				section(0, model.SectionTypeCustom, "New Section", ""),
			},
		},
	}
}
