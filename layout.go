package pdf2text

import (
	"math"
	"sort"
	"strings"
)

// ruleThickness is the max extent in points below which a rectangle is
// treated as a drawn rule (fraction bar, table line) rather than a box.
const ruleThickness = 2.0

// isRule reports whether the rectangle is thin enough to be a rule.
func isRule(r Rect) bool {
	return r.Width() <= ruleThickness || r.Height() <= ruleThickness
}

// textLine is one assembled line of text in viewed page coordinates.
type textLine struct {
	x, y      float64 // left edge and baseline of the first fragment
	fontSize  float64 // largest fragment size on the line
	fontName  string  // first fragment's font
	text      string  // assembled text with word spacing
	fragments []TextFragment
}

// normalizePage maps page content into the viewed frame: fragment and rect
// coordinates are rotated by the page's effective rotation, and the page
// dimensions are swapped for quarter turns.
func normalizePage(page PageContent) PageContent {
	switch page.Rotation {
	case 90, 180, 270:
	default:
		return page
	}

	out := page
	out.Texts = make([]TextFragment, len(page.Texts))
	for i, f := range page.Texts {
		f.X, f.Y = rotatePoint(f.X, f.Y, page.Width, page.Height, page.Rotation)
		out.Texts[i] = f
	}
	out.Rects = make([]Rect, len(page.Rects))
	for i, r := range page.Rects {
		x0, y0 := rotatePoint(r.X0, r.Y0, page.Width, page.Height, page.Rotation)
		x1, y1 := rotatePoint(r.X1, r.Y1, page.Width, page.Height, page.Rotation)
		out.Rects[i] = Rect{
			X0: math.Min(x0, x1), Y0: math.Min(y0, y1),
			X1: math.Max(x0, x1), Y1: math.Max(y0, y1),
		}
	}
	if page.Rotation == 90 || page.Rotation == 270 {
		out.Width, out.Height = page.Height, page.Width
	}
	return out
}

// rotatePoint maps a point from content space into the viewed frame of a
// page rotated clockwise by deg.
func rotatePoint(x, y, w, h float64, deg int) (float64, float64) {
	switch deg {
	case 90:
		return y, w - x
	case 180:
		return w - x, h - y
	case 270:
		return h - y, x
	default:
		return x, y
	}
}

// assembleLines groups a page's text fragments into reading-order lines.
// The page must already be normalized. A nil params keeps content-stream
// order, breaking lines only when the baseline moves.
func assembleLines(page PageContent, params *LayoutParams) []textLine {
	if len(page.Texts) == 0 {
		return nil
	}
	if params == nil {
		return streamOrderLines(page.Texts)
	}
	if params.DetectVertical && mostlyVertical(page.Texts) {
		return verticalLines(page.Texts, params)
	}
	return horizontalLines(page.Texts, params)
}

// streamOrderLines emits fragments exactly as the content stream orders them.
func streamOrderLines(frags []TextFragment) []textLine {
	var lines []textLine
	start := 0
	for i := 1; i <= len(frags); i++ {
		if i < len(frags) && math.Abs(frags[i].Y-frags[start].Y) <= 0.1 {
			continue
		}
		piece := frags[start:i]
		lines = append(lines, newTextLine(piece, concatText(piece)))
		start = i
	}
	return lines
}

// horizontalLines clusters fragments into rows by baseline proximity, splits
// rows at char-margin gaps, and orders the result by the boxes-flow key.
func horizontalLines(frags []TextFragment, params *LayoutParams) []textLine {
	sorted := make([]TextFragment, len(frags))
	copy(sorted, frags)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var rows [][]TextFragment
	for _, f := range sorted {
		if n := len(rows); n > 0 {
			row := rows[n-1]
			if math.Abs(f.Y-row[0].Y) <= params.LineMargin*effSize(maxSize(row)) {
				rows[n-1] = append(row, f)
				continue
			}
		}
		rows = append(rows, []TextFragment{f})
	}

	var lines []textLine
	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
		for _, piece := range splitAtGaps(row, params.CharMargin) {
			lines = append(lines, newTextLine(piece, spacedText(piece, params.WordMargin)))
		}
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return flowKey(lines[i], params.BoxesFlow) < flowKey(lines[j], params.BoxesFlow)
	})
	return lines
}

// verticalLines clusters fragments into columns read top to bottom, with
// columns ordered right to left.
func verticalLines(frags []TextFragment, params *LayoutParams) []textLine {
	sorted := make([]TextFragment, len(frags))
	copy(sorted, frags)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X > sorted[j].X
		}
		return sorted[i].Y > sorted[j].Y
	})

	var cols [][]TextFragment
	for _, f := range sorted {
		if n := len(cols); n > 0 {
			col := cols[n-1]
			if math.Abs(f.X-col[0].X) <= params.LineMargin*effSize(maxSize(col)) {
				cols[n-1] = append(col, f)
				continue
			}
		}
		cols = append(cols, []TextFragment{f})
	}

	var lines []textLine
	for _, col := range cols {
		sort.SliceStable(col, func(i, j int) bool { return col[i].Y > col[j].Y })
		lines = append(lines, newTextLine(col, downwardText(col, params.WordMargin)))
	}
	return lines
}

// flowKey weights horizontal against vertical position for reading order.
// Flow -1 reads strictly left to right, 1 strictly top to bottom.
func flowKey(l textLine, flow float64) float64 {
	return (1-flow)*l.x - (1+flow)*l.y
}

// splitAtGaps cuts a row into separate lines where the horizontal gap
// exceeds the char margin, keeping column text apart.
func splitAtGaps(row []TextFragment, charMargin float64) [][]TextFragment {
	var pieces [][]TextFragment
	start := 0
	for i := 1; i < len(row); i++ {
		prev := row[i-1]
		if row[i].X-(prev.X+prev.W) > charMargin*effSize(prev.FontSize) {
			pieces = append(pieces, row[start:i])
			start = i
		}
	}
	return append(pieces, row[start:])
}

// spacedText joins fragment texts left to right, inserting a space wherever
// the glyph gap exceeds the word margin.
func spacedText(frags []TextFragment, wordMargin float64) string {
	var b strings.Builder
	var prevEnd float64
	for i, f := range frags {
		if i > 0 && f.X-prevEnd > wordMargin*effSize(f.FontSize) {
			b.WriteByte(' ')
		}
		b.WriteString(f.Text)
		prevEnd = f.X + f.W
	}
	return b.String()
}

// downwardText joins fragment texts top to bottom, inserting a space
// wherever the vertical gap exceeds the word margin.
func downwardText(frags []TextFragment, wordMargin float64) string {
	var b strings.Builder
	for i, f := range frags {
		if i > 0 {
			prev := frags[i-1]
			if prev.Y-f.Y-effSize(f.FontSize) > wordMargin*effSize(f.FontSize) {
				b.WriteByte(' ')
			}
		}
		b.WriteString(f.Text)
	}
	return b.String()
}

// concatText joins fragment texts with no spacing decisions.
func concatText(frags []TextFragment) string {
	var b strings.Builder
	for _, f := range frags {
		b.WriteString(f.Text)
	}
	return b.String()
}

// mostlyVertical reports whether consecutive fragments advance vertically
// more often than horizontally.
func mostlyVertical(frags []TextFragment) bool {
	if len(frags) < 2 {
		return false
	}
	var vertical int
	for i := 1; i < len(frags); i++ {
		dx := math.Abs(frags[i].X - frags[i-1].X)
		dy := math.Abs(frags[i].Y - frags[i-1].Y)
		if dy > dx {
			vertical++
		}
	}
	return vertical*2 > len(frags)-1
}

// newTextLine builds a line from reading-order fragments and their text.
func newTextLine(frags []TextFragment, text string) textLine {
	line := textLine{
		x:         frags[0].X,
		y:         frags[0].Y,
		fontName:  frags[0].Font,
		text:      text,
		fragments: frags,
	}
	line.fontSize = maxSize(frags)
	return line
}

// maxSize returns the largest font size among fragments.
func maxSize(frags []TextFragment) float64 {
	var size float64
	for _, f := range frags {
		if f.FontSize > size {
			size = f.FontSize
		}
	}
	return size
}

// effSize substitutes a nominal body size for fragments that carry none.
func effSize(size float64) float64 {
	if size <= 0 {
		return 12
	}
	return size
}
