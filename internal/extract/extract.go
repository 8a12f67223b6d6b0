// Package extract turns the router interface addresses page into
// (router name, interface record) pairs by positional column mapping.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"ifreport/internal/models"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultMarkerClass is the class carried by the table's header row.
const DefaultMarkerClass = "hlBG"

// Column positions of a data row.
const (
	colRouter = iota
	colInterface
	colUnit
	colIPv4
	colIPv6
	colDescription

	rowCells // cells a data row must have
)

var (
	// ErrStructureNotFound is returned when no header marker row exists.
	ErrStructureNotFound = errors.New("extract: table header marker not found")

	// ErrMalformedRow is matched by every *MalformedRowError.
	ErrMalformedRow = errors.New("extract: malformed row")
)

// MalformedRowError reports a data row with fewer cells than the column map.
type MalformedRowError struct {
	Row   int // position within the table, header is 0
	Cells int
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("extract: row %d has %d cells, want at least %d", e.Row, e.Cells, rowCells)
}

func (e *MalformedRowError) Is(target error) bool {
	return target == ErrMalformedRow
}

// Options configures an Extractor.
type Options struct {
	MarkerClass string // empty means DefaultMarkerClass

	// SkipMalformed drops short rows instead of failing the extraction.
	SkipMalformed bool
	// OnSkip, when set, is called for each dropped row.
	OnSkip func(row, cells int)
}

type Extractor struct {
	opts Options
}

func New(opts Options) *Extractor {
	if opts.MarkerClass == "" {
		opts.MarkerClass = DefaultMarkerClass
	}
	return &Extractor{opts: opts}
}

// Extract runs an Extractor with default options.
func Extract(htmlText string) ([]models.RouterInterface, error) {
	return New(Options{}).Extract(htmlText)
}

// Extract locates the marker row, takes its parent as the table and maps
// every row after the first one to a pair, in document order.
func (x *Extractor) Extract(htmlText string) ([]models.RouterInterface, error) {
	doc, err := html.Parse(strings.NewReader(htmlText))
	if err != nil {
		return nil, fmt.Errorf("extract: parse html: %w", err)
	}

	marker := findMarkerRow(doc, x.opts.MarkerClass)
	if marker == nil || marker.Parent == nil {
		return nil, fmt.Errorf("%w: no <tr class=%q>", ErrStructureNotFound, x.opts.MarkerClass)
	}

	rows := childElements(marker.Parent, atom.Tr)
	out := make([]models.RouterInterface, 0, len(rows))
	for i, tr := range rows {
		if i == 0 { // header
			continue
		}
		pair, err := mapRow(i, rowText(tr))
		if err != nil {
			if x.opts.SkipMalformed {
				if x.opts.OnSkip != nil {
					var mre *MalformedRowError
					if errors.As(err, &mre) {
						x.opts.OnSkip(mre.Row, mre.Cells)
					}
				}
				continue
			}
			return nil, err
		}
		out = append(out, pair)
	}
	return out, nil
}

// mapRow applies the fixed column map to one data row's cell texts.
func mapRow(row int, cells []string) (models.RouterInterface, error) {
	if len(cells) < rowCells {
		return models.RouterInterface{}, &MalformedRowError{Row: row, Cells: len(cells)}
	}
	return models.RouterInterface{
		RouterName: cells[colRouter],
		Record: models.InterfaceRecord{
			Interface:   cells[colInterface] + "." + cells[colUnit],
			IPv4Addr:    cells[colIPv4],
			IPv6Addr:    cells[colIPv6],
			Description: cells[colDescription],
		},
	}, nil
}

func findMarkerRow(doc *html.Node, class string) *html.Node {
	var found *html.Node
	walk(doc, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Tr && hasClass(n, class) {
			found = n
			return false
		}
		return true
	})
	return found
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Namespace == "" && strings.EqualFold(attr.Key, "class") {
			for _, c := range strings.Fields(attr.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

// childElements returns the direct element children of n with tag a.
func childElements(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			out = append(out, c)
		}
	}
	return out
}

// rowText returns the text of every element child of tr, in order.
func rowText(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			cells = append(cells, textContent(c))
		}
	}
	return cells
}

// htmlSpace is the ASCII whitespace HTML collapses; U+00A0 is content.
const htmlSpace = " \t\n\f\r"

// textContent concatenates all descendant text and trims HTML whitespace
// from both ends.
func textContent(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		return true
	})
	return strings.Trim(sb.String(), htmlSpace)
}

func walk(n *html.Node, fn func(*html.Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}
