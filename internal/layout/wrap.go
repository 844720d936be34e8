package layout

import "strings"

// Point-to-millimetre conversion for font sizes.
const ptToMM = 25.4 / 72

// textWidth estimates the rendered width of a string in millimetres for a
// Helvetica-class font at the given point size. The estimate only needs to
// be deterministic and roughly proportional; exact glyph metrics belong to
// the PDF backend.
func textWidth(s string, size float64) float64 {
	var units float64
	for _, r := range s {
		units += runeFactor(r)
	}
	return units * size * ptToMM
}

func runeFactor(r rune) float64 {
	switch {
	case strings.ContainsRune("iljt.,;:!'|()[]\" ", r):
		return 0.35
	case strings.ContainsRune("mwMW@", r):
		return 0.78
	case r >= 'A' && r <= 'Z':
		return 0.68
	default:
		return 0.52
	}
}

// wrapText splits text into lines that fit maxWidth at the given font size.
// Wrapping is greedy on spaces; a single word wider than the line is split
// mid-word rather than allowed to overflow.
func wrapText(text string, size, maxWidth float64) []string {
	if text == "" {
		return nil
	}

	var lines []string
	var current string
	for _, word := range strings.Fields(text) {
		for textWidth(word, size) > maxWidth {
			// Hard-split an oversized word at the last rune that still fits.
			runes := []rune(word)
			cut := 1
			for i := 2; i <= len(runes); i++ {
				if textWidth(string(runes[:i]), size) > maxWidth {
					break
				}
				cut = i
			}
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			lines = append(lines, string(runes[:cut]))
			word = string(runes[cut:])
			if word == "" {
				break
			}
		}
		if word == "" {
			continue
		}
		if current == "" {
			current = word
		} else if textWidth(current+" "+word, size) <= maxWidth {
			current += " " + word
		} else {
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}
