package layout

import "github.com/nurpe/outvoice/internal/model"

// titlePage renders the cover page. The page is always isolated: section
// content never shares it. Styling is a small state machine over
// (theme, layout); every combination yields a distinct, deterministic op
// set for the same title and date.
func (e *Engine) titlePage(b *builder, proposal model.Proposal) {
	style := proposal.TitlePageStyle
	if style.Theme == "" {
		style.Theme = model.TitleThemeLight
	}
	if style.Layout == "" {
		style.Layout = model.TitleLayoutCentered
	}
	dark := style.Theme == model.TitleThemeDark

	geom := e.geom
	lh := geom.LineHeight
	margin := geom.Margin
	maxWidth := geom.ContentWidth()
	centerX := geom.PageWidth / 2
	centerY := geom.PageHeight / 2

	background := colorWhite
	if dark {
		background = Color{23, 23, 23}
	}
	b.rect(0, 0, geom.PageWidth, geom.PageHeight, background)

	titleColor := colorBlack
	dateColor := colorGray
	if dark {
		titleColor = colorWhite
		dateColor = Color{200, 200, 200}
	}

	dateStr := proposal.CreatedAt.Format("January 2, 2006")

	switch style.Layout {
	case model.TitleLayoutSplit:
		y := margin + 40
		for _, line := range wrapText(proposal.Title, 36, maxWidth) {
			b.text(line, margin, y, 36, StyleBold, titleColor, AlignLeft)
			y += lh * 1.2
		}
		y += lh
		b.text(dateStr, margin, y, 14, StyleNormal, dateColor, AlignLeft)

		y = geom.PageHeight - margin - 30
		if style.LogoURL != "" {
			// Logo slot above the rule; image drawing is left to the host.
			y -= 15
		}
		ruleColor := Color{200, 200, 200}
		captionColor := Color{120, 120, 120}
		if dark {
			ruleColor = Color{100, 100, 100}
			captionColor = Color{150, 150, 150}
		}
		b.line(margin, y-10, geom.PageWidth-margin, y-10, 0.5, ruleColor)
		b.text("Proposal Document", centerX, y, 10, StyleNormal, captionColor, AlignCenter)

	case model.TitleLayoutLeftAligned:
		y := centerY - 30
		b.rect(margin, y-5, 16, 2, colorAccent)

		y += 20
		for _, line := range wrapText(proposal.Title, 36, maxWidth) {
			b.text(line, margin, y, 36, StyleBold, titleColor, AlignLeft)
			y += lh * 1.2
		}
		y += lh
		b.text(dateStr, margin, y, 14, StyleNormal, dateColor, AlignLeft)

	default: // centered
		y := centerY - 40
		for _, line := range wrapText(proposal.Title, 42, maxWidth) {
			b.text(line, centerX, y, 42, StyleBold, titleColor, AlignCenter)
			y += lh * 1.3
		}
		y += lh
		b.text(dateStr, centerX, y, 16, StyleNormal, dateColor, AlignCenter)
	}
}
