package zefania

import (
	"fmt"
	"io"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Summary describes a Zefania document read back from XML.
type Summary struct {
	BibleName string
	Books     []BookSummary
}

// BookSummary holds the counts for one BIBLEBOOK element.
type BookSummary struct {
	Number   string
	Name     string
	Chapters int
	Verses   int
}

var (
	chapterCount = xpath.MustCompile("count(CHAPTER)")
	verseCount   = xpath.MustCompile("count(CHAPTER/VERS)")
)

// Inspect parses a Zefania document and counts chapters and verses per book.
func Inspect(r io.Reader) (*Summary, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}

	root := xmlquery.FindOne(doc, "/XMLBIBLE")
	if root == nil {
		return nil, fmt.Errorf("not a Zefania document: missing XMLBIBLE root")
	}

	summary := &Summary{BibleName: root.SelectAttr("biblename")}

	for _, book := range xmlquery.Find(root, "BIBLEBOOK") {
		summary.Books = append(summary.Books, BookSummary{
			Number:   book.SelectAttr("bnumber"),
			Name:     book.SelectAttr("bname"),
			Chapters: countNodes(book, chapterCount),
			Verses:   countNodes(book, verseCount),
		})
	}

	return summary, nil
}

// countNodes evaluates a count() expression relative to node.
func countNodes(node *xmlquery.Node, expr *xpath.Expr) int {
	v, ok := expr.Evaluate(xmlquery.CreateXPathNavigator(node)).(float64)
	if !ok {
		return 0
	}
	return int(v)
}

// VerseCount returns the total number of verses in the summary.
func (s *Summary) VerseCount() int {
	total := 0
	for _, b := range s.Books {
		total += b.Verses
	}
	return total
}
