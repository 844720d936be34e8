package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/outvoice/internal/layout"
	"github.com/nurpe/outvoice/internal/model"
)

func TestGenerateProducesPDFBytes(t *testing.T) {
	proposal := model.Proposal{
		Title:       "Engagement Proposal",
		Orientation: model.OrientationPortrait,
		TitlePageStyle: model.TitlePageStyle{
			Theme:  model.TitleThemeDark,
			Layout: model.TitleLayoutSplit,
		},
		CreatedAt: time.Date(2024, time.May, 5, 0, 0, 0, 0, time.UTC),
		Sections: []model.ProposalSection{
			{Type: model.SectionTypeAbout, Title: "About", Content: "<p>We are a small team.</p>", Order: 0},
		},
	}

	geom := layout.NewGeometry(layout.FormatA4, proposal.Orientation)
	doc := layout.NewEngine(geom).Layout(proposal)

	content, err := NewGenerator().Generate(doc)
	require.NoError(t, err)
	require.NotEmpty(t, content)
	assert.Equal(t, "%PDF-", string(content[:5]))
}

func TestGenerateEmptyDocument(t *testing.T) {
	doc := layout.Document{
		Geometry: layout.NewGeometry(layout.FormatLetter, model.OrientationLandscape),
		Pages:    []layout.Page{{}},
	}

	content, err := NewGenerator().Generate(doc)
	require.NoError(t, err)
	assert.NotEmpty(t, content)
}
