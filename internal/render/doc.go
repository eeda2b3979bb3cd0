// Package render turns a document body into an HTML fragment.
//
// The pipeline per document:
//   - line-ending normalization
//   - math span extraction ($...$ and $$ blocks become placeholders so their
//     content survives every later pass verbatim)
//   - ==highlight== placeholders, blank-line compression
//   - footnote validation (ordinals by first reference, dangling references
//     are fatal)
//   - goldmark conversion (GFM, footnotes, chroma-backed fenced-code
//     highlighting with CSS classes, headings demoted one level)
//   - placeholder restoration (math marker elements, <mark> tags)
//   - HTML post-processing (image figures, epigraph footers, margin table
//     of contents)
//
// Rendering is a pure function of the body and the renderer configuration;
// it knows nothing about the output file tree.
package render
