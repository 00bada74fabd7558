package markup

import "strconv"

// Entry is one numbered figure or table, recorded in document order.
type Entry struct {
	Kind    string // block kind, or components.KindFigure / KindTable
	Number  string
	Caption string
	ID      string
}

// Counter numbers figures and keeps the document's figure and table lists.
type Counter struct {
	last    int
	Figures []Entry
	Tables  []Entry
}

// Next returns the next automatic figure number.
func (c *Counter) Next() string {
	c.last++
	return strconv.Itoa(c.last)
}

// Observe records an explicit figure number. A numeric value moves the
// counter forward so later automatic numbers do not repeat it.
func (c *Counter) Observe(number string) {
	if n, err := strconv.Atoi(number); err == nil && n > c.last {
		c.last = n
	}
}
