package htmltable

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tobiasbuchner/StockChronicle/pkg/extract"
)

// DefaultSelector matches the constituent tables on Wikipedia index pages.
const DefaultSelector = "table.wikitable"

// Parse lifts every table matching the selector off the document, in
// document order. The first row supplies the headers; following rows
// become cell maps keyed by raw header text. Rows shorter than the
// header row leave the trailing cells empty, extra cells are dropped.
func Parse(r io.Reader, selector string) ([]extract.RawTable, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	if selector == "" {
		selector = DefaultSelector
	}

	var tables []extract.RawTable
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		tables = append(tables, parseTable(sel))
	})

	return tables, nil
}

func parseTable(sel *goquery.Selection) extract.RawTable {
	var table extract.RawTable

	rows := sel.Find("tr")
	rows.Each(func(i int, row *goquery.Selection) {
		cells := cellTexts(row)
		if len(cells) == 0 {
			return
		}

		if table.Headers == nil {
			table.Headers = cells
			return
		}

		mapped := make(map[string]string, len(table.Headers))
		for j, header := range table.Headers {
			if j < len(cells) {
				mapped[header] = cells[j]
			} else {
				mapped[header] = ""
			}
		}
		table.Rows = append(table.Rows, mapped)
	})

	return table
}

func cellTexts(row *goquery.Selection) []string {
	var cells []string
	row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		cells = append(cells, cleanText(cell.Text()))
	})
	return cells
}

// cleanText collapses whitespace and strips the footnote markers
// Wikipedia appends to header and cell text.
func cleanText(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if i := strings.Index(s, "["); i > 0 && strings.HasSuffix(s, "]") {
		s = strings.TrimSpace(s[:i])
	}
	return s
}
