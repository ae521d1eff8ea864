package response

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var (
	markdown     = goldmark.New()
	spaceRuns    = regexp.MustCompile(`[ \t]+`)
	bulletPrefix = regexp.MustCompile(`^[•·▪]\s*`)
)

// CleanMarkdown reduces Markdown to plain text lines. Emphasis, heading
// and link markup is dropped. With preserve set, list markers and
// paragraph breaks are kept as "- " / "N. " prefixes and blank lines;
// otherwise every non-empty line is returned bare.
func CleanMarkdown(s string, preserve bool) string {
	src := []byte(s)
	r := &mdRenderer{src: src, preserve: preserve}
	r.blocks(markdown.Parser().Parse(text.NewReader(src)))
	return normalizeLines(r.lines, preserve)
}

type mdRenderer struct {
	src      []byte
	preserve bool
	lines    []string
}

func (r *mdRenderer) blocks(parent ast.Node) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		r.block(n, "")
	}
}

func (r *mdRenderer) block(n ast.Node, prefix string) {
	if n.Type() != ast.TypeBlock {
		return
	}
	if r.preserve && n.HasBlankPreviousLines() && len(r.lines) > 0 {
		r.lines = append(r.lines, "")
	}

	switch node := n.(type) {
	case *ast.Heading, *ast.Paragraph, *ast.TextBlock:
		r.emit(prefix, r.inline(node))
	case *ast.List:
		index := node.Start
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			marker := ""
			if r.preserve {
				marker = "- "
				if node.IsOrdered() {
					marker = fmt.Sprintf("%d. ", index)
				}
			}
			index++
			for child := item.FirstChild(); child != nil; child = child.NextSibling() {
				r.block(child, marker)
				marker = ""
			}
		}
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		r.emit(prefix, r.rawLines(node))
	case *ast.HTMLBlock:
		r.emit(prefix, StripHTML(r.rawLines(node)))
	case *ast.ThematicBreak:
	default:
		r.blocks(n)
	}
}

func (r *mdRenderer) emit(prefix, body string) {
	for _, line := range strings.Split(body, "\n") {
		r.lines = append(r.lines, prefix+line)
		prefix = ""
	}
}

func (r *mdRenderer) rawLines(n ast.Node) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(r.src))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *mdRenderer) inline(n ast.Node) string {
	var b strings.Builder
	r.writeInline(&b, n)
	return b.String()
}

func (r *mdRenderer) writeInline(b *strings.Builder, parent ast.Node) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(r.src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *ast.String:
			b.Write(node.Value)
		case *ast.AutoLink:
			b.Write(node.URL(r.src))
		case *ast.RawHTML:
			var raw strings.Builder
			for i := 0; i < node.Segments.Len(); i++ {
				seg := node.Segments.At(i)
				raw.Write(seg.Value(r.src))
			}
			if strings.HasPrefix(strings.ToLower(raw.String()), "<br") {
				b.WriteByte('\n')
			}
		default:
			r.writeInline(b, n)
		}
	}
}

// normalizeLines collapses runs of spaces and trims each line. Without
// preserve, bullet glyphs and empty lines are dropped; with it, runs of
// blank lines shrink to one.
func normalizeLines(lines []string, preserve bool) string {
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(spaceRuns.ReplaceAllString(line, " "))
		if !preserve {
			line = bulletPrefix.ReplaceAllString(line, "")
		}
		if line == "" {
			if preserve && len(out) > 0 && !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
