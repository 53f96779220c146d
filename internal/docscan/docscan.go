// Package docscan finds citation wikilinks in markdown documents.
//
// Scanning is AST-based: the document is parsed with goldmark and code
// constructs (fenced blocks, indented blocks, inline spans) are skipped, so
// a [[citation]] quoted inside code is never treated as a reference.
package docscan

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"

	"github.com/lectern-reader/lectern/internal/citation"
	"github.com/lectern-reader/lectern/internal/model"
	"github.com/lectern-reader/lectern/internal/wikilink"
)

// Citation is one wikilink occurrence in a document.
type Citation struct {
	// Raw is the citation payload as written, before any "|".
	Raw string

	// DisplayText is the text after "|", nil when absent.
	DisplayText *string

	// Line is the 1-indexed line the wikilink starts on.
	Line int

	// Link is the parsed form. Zero when Err is set.
	Link model.Wikilink

	// Err reports a payload that scanned as a wikilink but failed to
	// parse as a citation. Callers surface these; they are not dropped.
	Err error
}

// Scan extracts all citation wikilinks from markdown content, in document
// order. Wikilinks inside code blocks and inline code spans are ignored.
func Scan(content []byte) []Citation {
	md := goldmark.New()
	doc := md.Parser().Parse(gmtext.NewReader(content))

	lineStarts := computeLineStarts(content)

	var found []Citation
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			return ast.WalkSkipChildren, nil
		}

		// Goldmark splits "[[target]]" across several Text nodes because
		// "[" opens link syntax, so text has to be reassembled per line
		// at the block level before scanning.
		switch n.(type) {
		case *ast.Paragraph, *ast.Heading, *ast.ListItem:
			for _, seg := range collectLineText(n, content, lineStarts) {
				found = append(found, scanLine(seg.text, seg.line)...)
			}
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	sort.SliceStable(found, func(i, j int) bool { return found[i].Line < found[j].Line })
	return found
}

// ScanString is Scan for callers holding a string.
func ScanString(content string) []Citation {
	return Scan([]byte(content))
}

func scanLine(line string, lineNum int) []Citation {
	var out []Citation
	for _, m := range wikilink.FindAllInLine(line) {
		c := Citation{
			Raw:         m.Citation,
			DisplayText: m.DisplayText,
			Line:        lineNum,
		}
		link, err := citation.Parse(m.Citation)
		if err != nil {
			c.Err = err
		} else {
			c.Link = link
		}
		out = append(out, c)
	}
	return out
}

// lineText is the reassembled text of one source line within a block node.
type lineText struct {
	text string
	line int // 1-indexed
}

// collectLineText gathers the text content of a block node grouped by
// source line. Inline code spans are excluded entirely, so their content
// never reaches the wikilink scanner.
func collectLineText(node ast.Node, content []byte, lineStarts []int) []lineText {
	builders := make(map[int]*strings.Builder)

	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		if _, ok := n.(*ast.CodeSpan); ok {
			return
		}
		if textNode, ok := n.(*ast.Text); ok {
			seg := textNode.Segment
			line := offsetToLine(lineStarts, seg.Start)
			b := builders[line]
			if b == nil {
				b = &strings.Builder{}
				builders[line] = b
			}
			b.Write(seg.Value(content))
		}
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			walk(child)
		}
	}
	walk(node)

	lines := make([]int, 0, len(builders))
	for line := range builders {
		lines = append(lines, line)
	}
	sort.Ints(lines)

	out := make([]lineText, 0, len(lines))
	for _, line := range lines {
		out = append(out, lineText{text: builders[line].String(), line: line + 1})
	}
	return out
}

// computeLineStarts returns the byte offset of each line start.
func computeLineStarts(content []byte) []int {
	starts := []int{0}
	for i, c := range content {
		if c == '\n' && i+1 < len(content) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// offsetToLine converts a byte offset to a 0-indexed line number.
func offsetToLine(lineStarts []int, offset int) int {
	for i := len(lineStarts) - 1; i >= 0; i-- {
		if lineStarts[i] <= offset {
			return i
		}
	}
	return 0
}
