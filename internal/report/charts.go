package report

import (
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/fr4nk3nst1ner/vacancysleuth/internal/utils"
)

type rgb struct{ r, g, b int }

var palette = []rgb{
	{31, 119, 180}, {255, 127, 14}, {44, 160, 44}, {214, 39, 40}, {148, 103, 189},
	{140, 86, 75}, {227, 119, 194}, {127, 127, 127}, {188, 189, 34}, {23, 190, 207},
	{174, 199, 232},
}

func (c rgb) fill(pdf *fpdf.Fpdf) { pdf.SetFillColor(c.r, c.g, c.b) }

// box is a chart cell on the page, in millimetres
type box struct{ x, y, w, h float64 }

const (
	chartTitleHeight = 8
	axisGutter       = 14
	tickCount        = 4
)

func (d *pdfDoc) chartTitle(b box, title string) {
	d.pdf.SetFont(d.family, "B", 9)
	d.pdf.SetXY(b.x, b.y)
	d.pdf.CellFormat(b.w, chartTitleHeight, d.tr(title), "", 0, "C", false, 0, "")
}

// valueAxis draws gridlines with tick labels along a vertical value axis
func (d *pdfDoc) valueAxis(plot box, max float64) {
	d.pdf.SetFont(d.family, "", 6)
	d.pdf.SetDrawColor(220, 220, 220)
	for i := 0; i <= tickCount; i++ {
		v := max * float64(i) / tickCount
		y := plot.y + plot.h - plot.h*float64(i)/tickCount
		d.pdf.Line(plot.x, y, plot.x+plot.w, y)
		label := utils.FormatNumber(int64(math.Round(v)))
		d.pdf.Text(plot.x-d.pdf.GetStringWidth(label)-1, y+1, label)
	}
	d.pdf.SetDrawColor(0, 0, 0)
	d.pdf.Line(plot.x, plot.y+plot.h, plot.x+plot.w, plot.y+plot.h)
}

func (d *pdfDoc) legend(x, y float64, labels []string) {
	d.pdf.SetFont(d.family, "", 6)
	for i, label := range labels {
		palette[i%len(palette)].fill(d.pdf)
		d.pdf.Rect(x, y+float64(i)*4, 3, 3, "F")
		d.pdf.Text(x+4, y+float64(i)*4+2.5, d.tr(utils.TruncateString(label, 40)))
	}
}

// groupedBars draws two bar series side by side for every label
func (d *pdfDoc) groupedBars(b box, title string, labels []string, series [2][]int64, names [2]string) {
	d.chartTitle(b, title)
	d.legend(b.x+axisGutter+2, b.y+chartTitleHeight, names[:])

	plot := box{
		x: b.x + axisGutter,
		y: b.y + chartTitleHeight + 10,
		w: b.w - axisGutter - 2,
		h: b.h - chartTitleHeight - 10 - axisGutter,
	}
	max := float64(1)
	for _, s := range series {
		for _, v := range s {
			max = math.Max(max, float64(v))
		}
	}
	d.valueAxis(plot, max)
	if len(labels) == 0 {
		return
	}

	slot := plot.w / float64(len(labels))
	width := slot * 0.4
	base := plot.y + plot.h
	d.pdf.SetFont(d.family, "", 6)
	for i, label := range labels {
		left := plot.x + slot*float64(i) + slot*0.1
		for k, s := range series {
			h := plot.h * float64(s[i]) / max
			palette[k].fill(d.pdf)
			d.pdf.Rect(left+width*float64(k), base-h, width, h, "F")
		}

		// labels read bottom to top and end at the axis
		cx := plot.x + slot*(float64(i)+0.5) + 1
		cy := base + d.pdf.GetStringWidth(label) + 1
		d.pdf.TransformBegin()
		d.pdf.TransformRotate(90, cx, cy)
		d.pdf.Text(cx, cy, label)
		d.pdf.TransformEnd()
	}
}

// horizontalBars draws one bar per label, the first label on top
func (d *pdfDoc) horizontalBars(b box, title string, labels []string, values []int64) {
	d.chartTitle(b, title)

	const labelWidth = 24
	plot := box{
		x: b.x + labelWidth,
		y: b.y + chartTitleHeight + 2,
		w: b.w - labelWidth - 4,
		h: b.h - chartTitleHeight - 2 - axisGutter,
	}
	max := float64(1)
	for _, v := range values {
		max = math.Max(max, float64(v))
	}

	d.pdf.SetFont(d.family, "", 6)
	d.pdf.SetDrawColor(220, 220, 220)
	for i := 0; i <= tickCount; i++ {
		x := plot.x + plot.w*float64(i)/tickCount
		d.pdf.Line(x, plot.y, x, plot.y+plot.h)
		label := utils.FormatNumber(int64(math.Round(max * float64(i) / tickCount)))
		d.pdf.Text(x-d.pdf.GetStringWidth(label)/2, plot.y+plot.h+4, label)
	}
	d.pdf.SetDrawColor(0, 0, 0)
	d.pdf.Line(plot.x, plot.y, plot.x, plot.y+plot.h)
	if len(labels) == 0 {
		return
	}

	slot := plot.h / float64(len(labels))
	palette[0].fill(d.pdf)
	for i, label := range labels {
		top := plot.y + slot*float64(i)
		w := plot.w * float64(values[i]) / max
		d.pdf.Rect(plot.x, top+slot*0.15, w, slot*0.7, "F")

		text := d.tr(utils.TruncateString(label, 18))
		d.pdf.Text(plot.x-d.pdf.GetStringWidth(text)-1, top+slot/2+1, text)
	}
}

// pie draws one slice per value, starting at twelve o'clock and going clockwise
func (d *pdfDoc) pie(b box, title string, labels []string, values []float64) {
	d.chartTitle(b, title)

	radius := math.Min(b.w*0.3, (b.h-chartTitleHeight)/2-4)
	cx := b.x + radius + 4
	cy := b.y + chartTitleHeight + (b.h-chartTitleHeight)/2

	start := -math.Pi / 2
	for i, v := range values {
		sweep := 2 * math.Pi * v
		if sweep <= 0 {
			continue
		}
		points := []fpdf.PointType{{X: cx, Y: cy}}
		steps := int(math.Ceil(sweep/(math.Pi/90))) + 1
		for k := 0; k <= steps; k++ {
			a := start + sweep*float64(k)/float64(steps)
			points = append(points, fpdf.PointType{X: cx + radius*math.Cos(a), Y: cy + radius*math.Sin(a)})
		}
		palette[i%len(palette)].fill(d.pdf)
		d.pdf.Polygon(points, "F")
		start += sweep
	}

	entries := make([]string, len(labels))
	for i, label := range labels {
		entries[i] = utils.TruncateString(label, 22) + " " + utils.FormatPercent(values[i])
	}
	d.legend(cx+radius+4, b.y+chartTitleHeight+2, entries)
}
