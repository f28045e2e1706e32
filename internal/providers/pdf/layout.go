package pdf

// Layout fixes the invoice page geometry in PDF points. Vertical positions
// are measured bottom-up, matching the page coordinate space, so the cursor
// moves monotonically downward as rows are drawn.
type Layout struct {
	StartX       float64
	RowHeight    float64
	FontSize     float64
	BottomMargin float64
	// TopMargin is where the cursor restarts on overflow pages.
	TopMargin float64
	// FirstPageY is where the cursor starts on the letterhead page.
	FirstPageY float64

	DisclaimerSize    float64
	DisclaimerLeading float64
}

// DefaultLayout matches the letterhead the shop prints on.
func DefaultLayout() Layout {
	return Layout{
		StartX:            200,
		RowHeight:         20,
		FontSize:          10,
		BottomMargin:      50,
		TopMargin:         600,
		FirstPageY:        600,
		DisclaimerSize:    9,
		DisclaimerLeading: 15,
	}
}

// table is one fixed-schema block: a header row followed by data rows, with
// column x-offsets accumulated left-to-right from Layout.StartX.
type table struct {
	headers []string
	widths  []float64
	rows    [][]string
}

// cursor owns the vertical position and the active page. It is the only
// mutable state of a render and must not be shared across renders.
type cursor struct {
	w pageWriter
	l Layout
	y float64
}

// breakIfNeeded clones a fresh template page and resets the cursor when the
// next row would fall below the bottom margin. Reports whether a break
// happened so table walks can redraw their header.
func (c *cursor) breakIfNeeded() (bool, error) {
	if c.y >= c.l.BottomMargin {
		return false, nil
	}
	if err := c.w.AddPage(); err != nil {
		return false, err
	}
	c.y = c.l.TopMargin
	return true, nil
}

func (c *cursor) drawRow(widths []float64, cells []string) {
	x := c.l.StartX
	for i, cell := range cells {
		c.w.Cell(x, c.y, widths[i], cell)
		x += widths[i]
	}
}

// drawTable walks one table as a linear sequence of row draws, checking for
// a page break before every row. A break mid-table redraws the header at the
// top of the new page before data rows resume.
func drawTable(c *cursor, t table) error {
	if _, err := c.breakIfNeeded(); err != nil {
		return err
	}
	c.drawRow(t.widths, t.headers)
	c.y -= c.l.RowHeight

	for _, row := range t.rows {
		broke, err := c.breakIfNeeded()
		if err != nil {
			return err
		}
		if broke {
			c.drawRow(t.widths, t.headers)
			c.y -= c.l.RowHeight
		}
		c.drawRow(t.widths, row)
		c.y -= c.l.RowHeight
	}
	return nil
}

func drawDisclaimers(c *cursor, lines []string) error {
	if _, err := c.breakIfNeeded(); err != nil {
		return err
	}
	for _, line := range lines {
		c.w.Text(c.l.StartX, c.y, c.l.DisclaimerSize, line)
		c.y -= c.l.DisclaimerLeading
	}
	return nil
}
