package jira

import "strings"

// ADFDocument represents an Atlassian Document Format document.
// Jira Cloud API v3 requires it for comment bodies and rich text fields.
type ADFDocument struct {
	Version int       `json:"version"` // Always 1
	Type    string    `json:"type"`    // Always "doc"
	Content []ADFNode `json:"content"`
}

// ADFNode represents a node in an ADF document.
type ADFNode struct {
	Type    string         `json:"type"`
	Content []ADFNode      `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
	Marks   []ADFMark      `json:"marks,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
}

// ADFMark represents formatting applied to text.
type ADFMark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// ADF node types
const (
	ADFNodeDoc       = "doc"
	ADFNodeParagraph = "paragraph"
	ADFNodeText      = "text"
	ADFNodeHardBreak = "hardBreak"
)

// NewADFDocument creates a new empty ADF document.
func NewADFDocument() *ADFDocument {
	return &ADFDocument{
		Version: 1,
		Type:    ADFNodeDoc,
		Content: []ADFNode{},
	}
}

// TextDocument returns a document holding text as a single paragraph.
func TextDocument(text string) *ADFDocument {
	doc := NewADFDocument()
	doc.AddParagraph(text)
	return doc
}

// Validate validates the ADF document structure.
func (d *ADFDocument) Validate() error {
	if d.Version != 1 {
		return ErrADFVersionOnly
	}
	if d.Type != ADFNodeDoc {
		return ErrADFTypeInvalid
	}
	return nil
}

// AddParagraph adds a paragraph with text to the document. Empty text
// yields an empty paragraph, since ADF rejects empty text nodes.
func (d *ADFDocument) AddParagraph(text string) {
	node := ADFNode{Type: ADFNodeParagraph}
	if text != "" {
		node.Content = []ADFNode{{Type: ADFNodeText, Text: text}}
	}
	d.Content = append(d.Content, node)
}

// AddLines adds one paragraph whose lines are separated by hard breaks.
func (d *ADFDocument) AddLines(text string) {
	lines := strings.Split(text, "\n")
	node := ADFNode{Type: ADFNodeParagraph}
	for i, line := range lines {
		if i > 0 {
			node.Content = append(node.Content, ADFNode{Type: ADFNodeHardBreak})
		}
		if line != "" {
			node.Content = append(node.Content, ADFNode{Type: ADFNodeText, Text: line})
		}
	}
	d.Content = append(d.Content, node)
}

// PlainText concatenates the document's text nodes, one line per paragraph
// and hard break.
func (d *ADFDocument) PlainText() string {
	var b strings.Builder
	for i, block := range d.Content {
		if i > 0 {
			b.WriteByte('\n')
		}
		writeText(&b, block)
	}
	return b.String()
}

func writeText(b *strings.Builder, node ADFNode) {
	switch node.Type {
	case ADFNodeText:
		b.WriteString(node.Text)
	case ADFNodeHardBreak:
		b.WriteByte('\n')
	}
	for _, child := range node.Content {
		writeText(b, child)
	}
}
