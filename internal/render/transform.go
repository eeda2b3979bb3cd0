package render

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// headingDemoter lowers every heading one level so the metadata title keeps
// the only h1 on the page: # becomes h2, ## becomes h3, h6 stays h6.
type headingDemoter struct{}

func (headingDemoter) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && h.Level < 6 {
			h.Level++
		}
		return ast.WalkContinue, nil
	})
}
