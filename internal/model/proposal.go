package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type ProposalStatus string

const (
	ProposalStatusDraft    ProposalStatus = "draft"
	ProposalStatusSent     ProposalStatus = "sent"
	ProposalStatusAccepted ProposalStatus = "accepted"
	ProposalStatusRejected ProposalStatus = "rejected"
)

type SectionType string

const (
	SectionTypeHeader       SectionType = "header"
	SectionTypeHero         SectionType = "hero"
	SectionTypeServices     SectionType = "services"
	SectionTypePricing      SectionType = "pricing"
	SectionTypeTestimonials SectionType = "testimonials"
	SectionTypeTimeline     SectionType = "timeline"
	SectionTypeAbout        SectionType = "about"
	SectionTypeContact      SectionType = "contact"
	SectionTypeCustom       SectionType = "custom"
)

type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

type TitlePageTheme string

const (
	TitleThemeLight TitlePageTheme = "light"
	TitleThemeDark  TitlePageTheme = "dark"
)

type TitlePageLayout string

const (
	TitleLayoutCentered    TitlePageLayout = "centered"
	TitleLayoutLeftAligned TitlePageLayout = "left-aligned"
	TitleLayoutSplit       TitlePageLayout = "split"
)

type TitlePageStyle struct {
	Theme   TitlePageTheme  `json:"theme"`
	Layout  TitlePageLayout `json:"layout"`
	LogoURL string          `json:"logoUrl,omitempty"`
}

// ProposalSection is one content block of a proposal. A section is in
// structured pricing mode iff Type == pricing and PricingData is set;
// otherwise Content holds free HTML text. SavedPricingData keeps the pricing
// payload of a pricing section that was toggled back to free text, so the
// mode switch round-trips without data loss.
type ProposalSection struct {
	ID               uuid.UUID           `json:"id"`
	Type             SectionType         `json:"type"`
	Title            string              `json:"title"`
	Content          string              `json:"content"`
	Order            int                 `json:"order"`
	PricingData      *PricingSectionData `json:"pricingData,omitempty"`
	SavedPricingData *PricingSectionData `json:"savedPricingData,omitempty"`
}

// Proposal is the document a user builds and exports. Rendering order of
// Sections is governed by each section's Order field, not slice position.
type Proposal struct {
	ID             uuid.UUID         `json:"id"`
	UserID         uuid.UUID         `json:"userId"`
	Title          string            `json:"title"`
	TemplateID     *uuid.UUID        `json:"templateId,omitempty"`
	Sections       []ProposalSection `json:"sections"`
	Orientation    Orientation       `json:"orientation"`
	TitlePageStyle TitlePageStyle    `json:"titlePageStyle"`
	Status         ProposalStatus    `json:"status"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// SortedSections returns the sections in rendering order (ascending Order).
func (p *Proposal) SortedSections() []ProposalSection {
	sections := make([]ProposalSection, len(p.Sections))
	copy(sections, p.Sections)
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Order < sections[j].Order
	})
	return sections
}
