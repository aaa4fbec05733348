package tui

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/ftl/signalatlas/core"
	"github.com/ftl/signalatlas/core/layout"
	"github.com/ftl/signalatlas/core/panorama"
)

// maxLanes limits the rows used for detailed band strips.
const maxLanes = 6

type rowKind int

const (
	markerRow rowKind = iota
	allocationRow
	bandRow
	laneRow
	axisRow
	tickRow
)

type row struct {
	kind rowKind
	lane int
}

// logicalY of the row, used to map mouse positions into the frame geometry.
func (r row) logicalY() core.Px {
	switch r.kind {
	case markerRow:
		return panorama.MarkerLabelY
	case allocationRow:
		return panorama.AllocationY + panorama.AllocationHeight - 10
	case bandRow:
		return panorama.BandY + panorama.BandHeight - 1
	case laneRow:
		options := layout.DetailedBandStrips
		return options.BaseY + core.Px(r.lane)*options.RowHeight + options.BarHeight/2
	default:
		return core.DefaultGeometry.Bottom()
	}
}

// rows of the spectrum for the given frame, from top to bottom.
func rows(frame core.Panorama) []row {
	result := []row{{kind: markerRow}, {kind: allocationRow}, {kind: bandRow}}
	for lane := 0; lane < laneCount(frame); lane++ {
		result = append(result, row{kind: laneRow, lane: lane})
	}
	return append(result, row{kind: axisRow}, row{kind: tickRow})
}

func laneCount(frame core.Panorama) int {
	result := 0
	for _, d := range frame.DetailedBands {
		if d.Opacity > 0 && d.Lane < maxLanes {
			result = max(result, d.Lane+1)
		}
	}
	return result
}

// columns maps terminal columns onto the axis of the frame geometry.
type columns struct {
	count int
	left  core.Px
	width core.Px
}

func newColumns(g core.Geometry, count int) columns {
	return columns{count: max(1, count), left: g.Left(), width: g.InnerWidth()}
}

// toPx returns the logical x at the center of the given column.
func (c columns) toPx(col int) core.Px {
	return c.left + (core.Px(col)+0.5)*c.width/core.Px(c.count)
}

// toCol returns the column that contains the given logical x, it may be outside of [0, count).
func (c columns) toCol(x core.Px) int {
	return int(math.Floor(float64((x - c.left) * core.Px(c.count) / c.width)))
}

// toDistance converts a distance in columns into logical pixels.
func (c columns) toDistance(cols int) core.Px {
	return core.Px(cols) * c.width / core.Px(c.count)
}

type cell struct {
	r      rune
	fg, bg core.Color
}

type line []cell

func newLine(width int) line {
	result := make(line, width)
	for i := range result {
		result[i] = cell{r: ' ', bg: background}
	}
	return result
}

// fill the columns covered by x with the given color.
func (l line) fill(c columns, x core.PxRange, color core.Color) {
	from := max(0, c.toCol(x.From))
	to := min(len(l)-1, c.toCol(x.To))
	for i := from; i <= to; i++ {
		l[i].bg = color
	}
}

// write the text centered around the given column, clipped to the given range of columns.
func (l line) write(center int, text string, fg core.Color, from, to int) {
	n := utf8.RuneCountInString(text)
	start := center - n/2
	i := 0
	for _, r := range text {
		col := start + i
		i++
		if col < max(0, from) || col > min(len(l)-1, to) {
			continue
		}
		l[col].r = r
		l[col].fg = fg
	}
}

// fits reports if the text fits into the given columns without touching other text.
func (l line) fits(center int, text string, from, to int) bool {
	n := utf8.RuneCountInString(text)
	start := center - n/2
	if start < max(0, from) || start+n-1 > min(len(l)-1, to) {
		return false
	}
	for col := start; col < start+n; col++ {
		if l[col].r != ' ' {
			return false
		}
	}
	return true
}

func (l line) render() string {
	var b strings.Builder
	var run strings.Builder
	flush := func(fg, bg core.Color) {
		if run.Len() == 0 {
			return
		}
		style := lipgloss.NewStyle().Background(lipgloss.Color(string(bg)))
		if fg != "" {
			style = style.Foreground(lipgloss.Color(string(fg)))
		}
		b.WriteString(style.Render(run.String()))
		run.Reset()
	}
	for i, c := range l {
		if i > 0 && (c.fg != l[i-1].fg || c.bg != l[i-1].bg) {
			flush(l[i-1].fg, l[i-1].bg)
		}
		run.WriteRune(c.r)
	}
	if len(l) > 0 {
		flush(l[len(l)-1].fg, l[len(l)-1].bg)
	}
	return b.String()
}

func (l line) String() string {
	var b strings.Builder
	for _, c := range l {
		b.WriteRune(c.r)
	}
	return b.String()
}

// spectrum renders the frame into lines of the given width.
func spectrum(frame core.Panorama, width int) []line {
	c := newColumns(frame.Geometry, width)
	spectrumRows := rows(frame)
	result := make([]line, len(spectrumRows))
	for i, r := range spectrumRows {
		l := newLine(width)
		switch r.kind {
		case markerRow:
			drawMarkerLabel(l, c, frame.Marker)
		case allocationRow:
			drawAllocations(l, c, frame.Allocations)
		case bandRow:
			drawBands(l, c, frame.Bands)
		case laneRow:
			drawLane(l, c, frame.DetailedBands, r.lane)
		case axisRow:
			drawAxis(l, c, frame.FrequencyScale)
		case tickRow:
			drawTickLabels(l, c, frame.FrequencyScale)
		}
		if r.kind != markerRow && r.kind != tickRow {
			drawMarkerLine(l, c, frame.Marker)
		}
		result[i] = l
	}
	return result
}

func drawMarkerLabel(l line, c columns, m core.Marker) {
	if !m.Visible {
		return
	}
	l.write(c.toCol(m.X), m.Label, m.Color, 0, len(l)-1)
}

func drawMarkerLine(l line, c columns, m core.Marker) {
	if !m.Visible {
		return
	}
	col := c.toCol(m.X)
	if col < 0 || col >= len(l) {
		return
	}
	l[col].r = '│'
	l[col].fg = m.Color
}

func drawAllocations(l line, c columns, allocations []core.AllocationMark) {
	// wide allocations first, so the narrow ones stay visible
	order := make([]int, 0, len(allocations))
	for i, a := range allocations {
		if a.Opacity > 0 {
			order = append(order, i)
		}
	}
	sortByWidth(order, func(i int) core.Px { return allocations[i].X.Width() })
	for _, i := range order {
		a := allocations[i]
		l.fill(c, a.X, blend(a.Color, 0.35))
	}
	for _, i := range order {
		a := allocations[i]
		from, to := c.toCol(a.X.From), c.toCol(a.X.To)
		if a.Label.Visible && l.fits(c.toCol(a.Label.X), a.Label.Text, from, to) {
			l.write(c.toCol(a.Label.X), a.Label.Text, baseColor, from, to)
		}
	}
}

func drawBands(l line, c columns, bands []core.BandMark) {
	order := make([]int, 0, len(bands))
	for i, b := range bands {
		if b.Opacity > 0 {
			order = append(order, i)
		}
	}
	sortByWidth(order, func(i int) core.Px { return bands[i].X.Width() })
	for _, i := range order {
		b := bands[i]
		l.fill(c, b.X, blend(b.Color, 0.6*b.Opacity))
	}
	for _, i := range order {
		b := bands[i]
		from, to := c.toCol(b.X.From), c.toCol(b.X.To)
		if b.Label.Visible && l.fits(c.toCol(b.Label.X), b.Label.Text, from, to) {
			l.write(c.toCol(b.Label.X), b.Label.Text, "#f2f2f2", from, to)
		}
	}
}

func drawLane(l line, c columns, detailed []core.DetailedBandMark, lane int) {
	for _, d := range detailed {
		if d.Opacity == 0 || d.Lane != lane {
			continue
		}
		l.fill(c, d.X, blend(d.Color, d.Opacity))
	}
	for _, d := range detailed {
		if d.Opacity == 0 || d.Lane != lane || !d.Label.Visible {
			continue
		}
		from, to := c.toCol(d.X.From), c.toCol(d.X.To)
		text := d.Label.Text
		if !l.fits(c.toCol(d.X.Center()), text, from, to) {
			continue
		}
		l.write(c.toCol(d.X.Center()), text, "#000", from, to)
	}
}

func drawAxis(l line, c columns, scale []core.FrequencyMark) {
	for i := range l {
		l[i].r = '─'
		l[i].fg = axisColor
	}
	for _, mark := range scale {
		col := c.toCol(mark.X)
		if col >= 0 && col < len(l) {
			l[col].r = '┬'
		}
	}
}

func drawTickLabels(l line, c columns, scale []core.FrequencyMark) {
	for _, mark := range scale {
		col := c.toCol(mark.X)
		if col < 0 || col >= len(l) {
			continue
		}
		if l.fits(col, " "+mark.Label+" ", 0, len(l)-1) {
			l.write(col, mark.Label, axisColor, 0, len(l)-1)
		}
	}
}

const (
	baseColor core.Color = "#e6e6e6"
	axisColor core.Color = "#cccccc"
)

// sortByWidth sorts the indexes by descending width, keeping the table order for equal widths.
func sortByWidth(indexes []int, width func(int) core.Px) {
	sort.SliceStable(indexes, func(i, j int) bool {
		return width(indexes[i]) > width(indexes[j])
	})
}
