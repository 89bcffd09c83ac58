package printer

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ESC/POS control bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

const (
	FontNormal = 0x00
	FontDouble = 0x11 // double width and height
	FontWide   = 0x10
)

// Paper widths in characters
const (
	Width58mm = 32
	Width80mm = 48
)

// Document accumulates an ESC/POS byte stream. Methods chain.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument starts a document for paper that fits width characters per
// line. Non-positive widths fall back to 58mm paper.
func NewDocument(width int) *Document {
	if width <= 0 {
		width = Width58mm
	}
	d := &Document{width: width}
	d.Init()
	return d
}

// Width is the number of characters per line
func (d *Document) Width() int {
	return d.width
}

// Init emits ESC @
func (d *Document) Init() *Document {
	d.buf.Write([]byte{ESC, '@'})
	return d
}

func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Text writes s, wrapped at the paper width, and ends the line
func (d *Document) Text(s string) *Document {
	for _, line := range wrap(s, d.width) {
		d.buf.WriteString(line)
		d.buf.WriteByte(LF)
	}
	return d
}

// Separator fills one line with char
func (d *Document) Separator(char byte) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(LF)
	return d
}

// KeyValue prints key on the left and value flush right
func (d *Document) KeyValue(key, value string) *Document {
	d.row(key, value)
	return d
}

// ItemLine prints a product on its own line followed by
// "<qty> <unit> x <price>" and the line total flush right.
func (d *Document) ItemLine(name string, qty int, unit, price, total string) *Document {
	d.Text(name)
	detail := "  " + strconv.Itoa(qty)
	if unit != "" {
		detail += " " + unit
	}
	detail += " x " + price
	d.row(detail, total)
	return d
}

func (d *Document) row(left, right string) {
	rightLen := utf8.RuneCountInString(right)
	maxLeft := d.width - rightLen - 1
	if maxLeft < 1 {
		maxLeft = 1
	}
	left = truncate(left, maxLeft)
	spaces := d.width - utf8.RuneCountInString(left) - rightLen
	if spaces < 1 {
		spaces = 1
	}
	d.buf.WriteString(left)
	d.buf.WriteString(strings.Repeat(" ", spaces))
	d.buf.WriteString(right)
	d.buf.WriteByte(LF)
}

func (d *Document) Cut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x00})
	return d
}

func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the accumulated stream
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}

func wrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	current := ""
	for _, w := range words {
		for utf8.RuneCountInString(w) > width {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			r := []rune(w)
			lines = append(lines, string(r[:width]))
			w = string(r[width:])
		}
		switch {
		case current == "":
			current = w
		case utf8.RuneCountInString(current)+1+utf8.RuneCountInString(w) <= width:
			current += " " + w
		default:
			lines = append(lines, current)
			current = w
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
