// =============================================================================
// CSV to Zefania Converter - XML Writer Module
// =============================================================================
//
// This module renders a zefania.Document as Zefania XML.
//
// XML STRUCTURE:
//
//   <?xml version="1.0" encoding="UTF-8"?>
//   <XMLBIBLE xmlns:xsi="..." xsi:noNamespaceSchemaLocation="zef2005.xsd"
//             biblename="kjv" status="v" version="2.0.1.18" type="x-bible" revision="0">
//     <BIBLEBOOK bnumber="1" bname="Genesis" bsname="B1">
//       <CHAPTER cnumber="1">
//         <VERS vnumber="1">In the beginning</VERS>
//         <VERS vnumber="2"/>                          <!-- empty verse -->
//       </CHAPTER>
//     </BIBLEBOOK>
//   </XMLBIBLE>
//
// FORMATTING:
//   - Two spaces per nesting level
//   - Containers put each child on its own indented line
//   - Leaves keep their text on one line, untouched
//   - Root attributes are always written in the order shown above
//
// =============================================================================

package xmlwriter

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/ginjaninja78/csv2zefania/internal/zefania"
)

// =============================================================================
// XML GENERATION OPTIONS
// =============================================================================

// GenerateOptions contains options for XML generation.
type GenerateOptions struct {
	// Indent is the string used for indentation.
	// Default: "  " (two spaces)
	Indent string

	// IncludeXMLDeclaration determines whether to include the XML declaration.
	// Default: true
	IncludeXMLDeclaration bool

	// XMLVersion is the XML version for the declaration.
	// Default: "1.0"
	XMLVersion string

	// Encoding is the encoding for the XML declaration.
	// Default: "UTF-8"
	Encoding string
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Indent:                "  ",
		IncludeXMLDeclaration: true,
		XMLVersion:            "1.0",
		Encoding:              "UTF-8",
	}
}

// =============================================================================
// XML GENERATION FUNCTIONS
// =============================================================================

// Generate renders the document with the default options.
//
// PARAMETERS:
//   - doc: The completed Zefania tree.
//
// RETURNS:
//   - The XML document as a byte slice.
//   - An error if generation fails.
func Generate(doc *zefania.Document) ([]byte, error) {
	return GenerateWithOptions(doc, DefaultGenerateOptions())
}

// GenerateWithOptions renders the document with custom options.
func GenerateWithOptions(doc *zefania.Document, options GenerateOptions) ([]byte, error) {
	var buffer bytes.Buffer
	if err := Write(&buffer, doc, options); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// Write renders the document to w.
func Write(w io.Writer, doc *zefania.Document, options GenerateOptions) error {
	if doc == nil {
		return fmt.Errorf("no document to write")
	}

	var buffer bytes.Buffer

	// Write XML declaration if requested.
	if options.IncludeXMLDeclaration {
		buffer.WriteString(fmt.Sprintf("<?xml version=\"%s\" encoding=\"%s\"?>\n",
			options.XMLVersion, options.Encoding))
	}

	writeElement(&buffer, buildDocument(doc), options.Indent, 0)

	if _, err := w.Write(buffer.Bytes()); err != nil {
		return fmt.Errorf("failed to write XML: %w", err)
	}
	return nil
}

// =============================================================================
// XML DOCUMENT BUILDING
// =============================================================================

// XMLElement represents a generic XML element. An element has either text
// or children, never both.
type XMLElement struct {
	XMLName    xml.Name
	Attributes []xml.Attr
	Value      string
	Children   []XMLElement
}

// buildDocument converts the tree into elements.
func buildDocument(doc *zefania.Document) XMLElement {
	meta := doc.Metadata

	root := XMLElement{
		XMLName: xml.Name{Local: "XMLBIBLE"},
		Attributes: []xml.Attr{
			attr("xmlns:xsi", zefania.SchemaInstanceNS),
			attr("xsi:noNamespaceSchemaLocation", meta.SchemaLocation),
			attr("biblename", meta.BibleName),
			attr("status", meta.Status),
			attr("version", meta.Version),
			attr("type", meta.Type),
			attr("revision", meta.Revision),
		},
	}

	for _, book := range doc.Books {
		root.Children = append(root.Children, buildBookElement(book))
	}

	return root
}

// buildBookElement constructs a BIBLEBOOK element.
//
// STRUCTURE:
//   <BIBLEBOOK bnumber="1" bname="Genesis" bsname="B1">
//     <CHAPTER cnumber="1">...</CHAPTER>
//   </BIBLEBOOK>
func buildBookElement(book *zefania.Book) XMLElement {
	element := XMLElement{
		XMLName: xml.Name{Local: "BIBLEBOOK"},
		Attributes: []xml.Attr{
			attr("bnumber", book.Number),
			attr("bname", book.Name),
			attr("bsname", book.ShortName),
		},
	}

	for _, chapter := range book.Chapters {
		chapterElement := XMLElement{
			XMLName:    xml.Name{Local: "CHAPTER"},
			Attributes: []xml.Attr{attr("cnumber", chapter.Number)},
		}

		for _, verse := range chapter.Verses {
			chapterElement.Children = append(chapterElement.Children, XMLElement{
				XMLName:    xml.Name{Local: "VERS"},
				Attributes: []xml.Attr{attr("vnumber", verse.Number)},
				Value:      verse.Body,
			})
		}

		element.Children = append(element.Children, chapterElement)
	}

	return element
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

// writeElement writes an XML element to the buffer with indentation.
func writeElement(buffer *bytes.Buffer, element XMLElement, indent string, level int) {
	// Write indentation.
	buffer.WriteString(strings.Repeat(indent, level))

	// Write opening tag.
	buffer.WriteString("<")
	buffer.WriteString(element.XMLName.Local)

	// Write attributes.
	for _, a := range element.Attributes {
		buffer.WriteString(fmt.Sprintf(" %s=\"%s\"", a.Name.Local, EscapeAttr(a.Value)))
	}

	// Check if element has children or value.
	if len(element.Children) == 0 && element.Value == "" {
		// Self-closing tag.
		buffer.WriteString("/>\n")
		return
	}

	buffer.WriteString(">")

	// Write value or children.
	if len(element.Children) == 0 {
		// Leaf element with text value.
		buffer.WriteString(EscapeText(element.Value))
	} else {
		// Element with children.
		buffer.WriteString("\n")

		for _, child := range element.Children {
			writeElement(buffer, child, indent, level+1)
		}

		// Write indentation for closing tag.
		buffer.WriteString(strings.Repeat(indent, level))
	}

	// Write closing tag.
	buffer.WriteString("</")
	buffer.WriteString(element.XMLName.Local)
	buffer.WriteString(">\n")
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	// Literal whitespace in an attribute value is turned into spaces by
	// conforming parsers, so it is written as character references.
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\"", "&quot;",
		"\n", "&#10;", "\r", "&#13;", "\t", "&#9;")
)

// EscapeText escapes character data.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// EscapeAttr escapes a double-quoted attribute value.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}
