package table

import (
	"strconv"
	"strings"
	"time"
)

// CellType defines the logical type of a single cell
type CellType string

const (
	CellNull     CellType = "null"
	CellNumber   CellType = "number"
	CellText     CellType = "text"
	CellDateTime CellType = "datetime"
)

// Cell is one value in a column. The zero Cell is null.
type Cell struct {
	Type   CellType  `json:"type"`
	Number float64   `json:"number,omitempty"`
	Text   string    `json:"text,omitempty"`
	Time   time.Time `json:"time,omitempty"`
}

// NewNullCell creates a missing value
func NewNullCell() Cell {
	return Cell{Type: CellNull}
}

// NewNumberCell creates a numeric value
func NewNumberCell(n float64) Cell {
	return Cell{Type: CellNumber, Number: n}
}

// NewTextCell creates a text value
func NewTextCell(s string) Cell {
	return Cell{Type: CellText, Text: s}
}

// NewDateTimeCell creates a date/time value
func NewDateTimeCell(t time.Time) Cell {
	return Cell{Type: CellDateTime, Time: t}
}

// IsNull reports whether the cell is missing
func (c Cell) IsNull() bool {
	return c.Type == "" || c.Type == CellNull
}

func (c Cell) kind() CellType {
	if c.IsNull() {
		return CellNull
	}
	return c.Type
}

// Equal compares two cells by type and value; null equals null.
func (c Cell) Equal(other Cell) bool {
	if c.kind() != other.kind() {
		return false
	}
	switch c.kind() {
	case CellNumber:
		return c.Number == other.Number
	case CellText:
		return c.Text == other.Text
	case CellDateTime:
		return c.Time.Equal(other.Time)
	}
	return true
}

var typeOrder = map[CellType]int{
	CellNull:     0,
	CellNumber:   1,
	CellDateTime: 2,
	CellText:     3,
}

// Less orders cells: null < number < datetime < text, then by value.
func (c Cell) Less(other Cell) bool {
	a, b := c.kind(), other.kind()
	if a != b {
		return typeOrder[a] < typeOrder[b]
	}
	switch a {
	case CellNumber:
		return c.Number < other.Number
	case CellText:
		return c.Text < other.Text
	case CellDateTime:
		return c.Time.Before(other.Time)
	}
	return false
}

// Key returns a string that is identical for equal cells
func (c Cell) Key() string {
	switch c.kind() {
	case CellNumber:
		return "n:" + FormatNumber(c.Number)
	case CellText:
		return "s:" + c.Text
	case CellDateTime:
		return "t:" + strconv.FormatInt(c.Time.UnixNano(), 10)
	}
	return "0"
}

// String returns the human-readable form used in logs
func (c Cell) String() string {
	switch c.kind() {
	case CellNumber:
		return FormatNumber(c.Number)
	case CellText:
		return c.Text
	case CellDateTime:
		return c.Time.UTC().Format(DateTimeLayout)
	}
	return "<null>"
}

// Layouts used when a datetime cell is serialized as text
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// FormatNumber renders a number in its shortest exact decimal form
func FormatNumber(n float64) string {
	s := strconv.FormatFloat(n, 'f', -1, 64)
	if s == "-0" {
		return "0"
	}
	return s
}

// DateLayoutFor picks the date-only layout when every non-null datetime
// cell sits exactly at midnight UTC.
func DateLayoutFor(cells []Cell) string {
	for _, c := range cells {
		if c.kind() != CellDateTime {
			continue
		}
		ts := c.Time.UTC()
		h, m, s := ts.Clock()
		if h != 0 || m != 0 || s != 0 || ts.Nanosecond() != 0 {
			return DateTimeLayout
		}
	}
	return DateLayout
}

// Format renders the cell for a text-based file, using layout for datetimes
// converted to UTC. Null renders as the empty string.
func (c Cell) Format(layout string) string {
	switch c.kind() {
	case CellNumber:
		return FormatNumber(c.Number)
	case CellText:
		return c.Text
	case CellDateTime:
		return c.Time.UTC().Format(layout)
	}
	return ""
}

// rowKey length-prefixes each cell key so distinct rows never collide
func rowKey(cells []Cell) string {
	var b strings.Builder
	for i, c := range cells {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		key := c.Key()
		b.WriteString(strconv.Itoa(len(key)))
		b.WriteByte(':')
		b.WriteString(key)
	}
	return b.String()
}
