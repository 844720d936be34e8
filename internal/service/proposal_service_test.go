package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/outvoice/internal/model"
)

func f(v float64) *float64 { return &v }

func TestSectionsFromTemplate(t *testing.T) {
	template := &model.Template{
		Name: "Consulting Proposal",
		Sections: []model.TemplateSection{
			{ID: uuid.New(), Type: model.SectionTypeHero, Title: "Summary", DefaultContent: "<p>Intro</p>", Order: 0},
			{ID: uuid.New(), Type: model.SectionTypePricing, Title: "Investment", Order: 1},
		},
	}

	sections := sectionsFromTemplate(template)
	require.Len(t, sections, 2)

	assert.Equal(t, "Summary", sections[0].Title)
	assert.Equal(t, "<p>Intro</p>", sections[0].Content)
	assert.Nil(t, sections[0].PricingData)

	// Pricing sections start with empty structured data, not the template's.
	require.NotNil(t, sections[1].PricingData)
	assert.Equal(t, "USD", sections[1].PricingData.Currency)
	assert.Empty(t, sections[1].PricingData.Items)

	// Fresh section IDs, not the template's.
	assert.NotEqual(t, template.Sections[0].ID, sections[0].ID)
}

func TestRecomputePricing(t *testing.T) {
	proposal := &model.Proposal{
		Sections: []model.ProposalSection{
			{
				Type: model.SectionTypePricing,
				PricingData: &model.PricingSectionData{
					Currency: "USD",
					Items: []model.PricingItem{
						{Description: "Design", Quantity: 2, UnitPrice: 500},
					},
					DiscountPercentage: f(10),
				},
			},
			{Type: model.SectionTypeCustom, Content: "hello"},
		},
	}

	recomputePricing(proposal)

	data := proposal.Sections[0].PricingData
	require.NotNil(t, data)
	assert.Equal(t, 1000.0, data.Subtotal)
	require.NotNil(t, data.DiscountAmount)
	assert.Equal(t, 100.0, *data.DiscountAmount)
	assert.Equal(t, 900.0, data.Total)
}

func TestValidStatus(t *testing.T) {
	assert.True(t, validStatus(model.ProposalStatusDraft))
	assert.True(t, validStatus(model.ProposalStatusSent))
	assert.True(t, validStatus(model.ProposalStatusAccepted))
	assert.True(t, validStatus(model.ProposalStatusRejected))
	assert.False(t, validStatus(model.ProposalStatus("archived")))
	assert.False(t, validStatus(model.ProposalStatus("")))
}
