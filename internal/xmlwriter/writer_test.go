package xmlwriter

import (
	"bytes"
	"errors"
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/csv2zefania/internal/zefania"
)

func sampleDocument() *zefania.Document {
	return &zefania.Document{
		Metadata: zefania.DefaultMetadata("kjv"),
		Books: []*zefania.Book{
			{
				Number:    "1",
				Name:      "Genesis",
				ShortName: "B1",
				Chapters: []*zefania.Chapter{
					{Number: "1", Verses: []*zefania.Verse{
						{Number: "1", Body: "In the beginning {H7225}"},
						{Number: "2", Body: "And the earth"},
					}},
					{Number: "2", Verses: []*zefania.Verse{
						{Number: "1", Body: "Thus the heavens"},
					}},
				},
			},
		},
	}
}

func TestGenerate_ExactOutput(t *testing.T) {
	out, err := Generate(sampleDocument())
	require.NoError(t, err)

	expected := `<?xml version="1.0" encoding="UTF-8"?>
<XMLBIBLE xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:noNamespaceSchemaLocation="zef2005.xsd" biblename="kjv" status="v" version="2.0.1.18" type="x-bible" revision="0">
  <BIBLEBOOK bnumber="1" bname="Genesis" bsname="B1">
    <CHAPTER cnumber="1">
      <VERS vnumber="1">In the beginning {H7225}</VERS>
      <VERS vnumber="2">And the earth</VERS>
    </CHAPTER>
    <CHAPTER cnumber="2">
      <VERS vnumber="1">Thus the heavens</VERS>
    </CHAPTER>
  </BIBLEBOOK>
</XMLBIBLE>
`
	assert.Equal(t, expected, string(out))
}

func TestGenerate_EmptyVerseIsSelfClosing(t *testing.T) {
	doc := &zefania.Document{
		Metadata: zefania.DefaultMetadata("x"),
		Books: []*zefania.Book{{
			Number: "1", Name: "Book 1", ShortName: "B1",
			Chapters: []*zefania.Chapter{{Number: "1", Verses: []*zefania.Verse{{Number: "3"}}}},
		}},
	}

	out, err := Generate(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "      <VERS vnumber=\"3\"/>\n")
}

func TestGenerate_NoBooks(t *testing.T) {
	out, err := Generate(&zefania.Document{Metadata: zefania.DefaultMetadata("empty")})
	require.NoError(t, err)
	assert.Contains(t, string(out), `revision="0"/>`)
}

func TestGenerate_Escaping(t *testing.T) {
	doc := &zefania.Document{
		Metadata: zefania.DefaultMetadata(`a "quoted" & <odd> name`),
		Books: []*zefania.Book{{
			Number: "1", Name: `Tom & "Jerry"`, ShortName: "B1",
			Chapters: []*zefania.Chapter{{Number: "1", Verses: []*zefania.Verse{
				{Number: "1", Body: `if a < b && c > d then "yes"`},
			}}},
		}},
	}

	out, err := Generate(doc)
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, `biblename="a &quot;quoted&quot; &amp; &lt;odd&gt; name"`)
	assert.Contains(t, s, `bname="Tom &amp; &quot;Jerry&quot;"`)
	assert.Contains(t, s, `>if a &lt; b &amp;&amp; c &gt; d then "yes"</VERS>`)

	// The result must parse back to the original values.
	parsed, err := xmlquery.Parse(bytes.NewReader(out))
	require.NoError(t, err)

	root := xmlquery.FindOne(parsed, "/XMLBIBLE")
	require.NotNil(t, root)
	assert.Equal(t, `a "quoted" & <odd> name`, root.SelectAttr("biblename"))

	vers := xmlquery.FindOne(parsed, "//VERS[@vnumber='1']")
	require.NotNil(t, vers)
	assert.Equal(t, `if a < b && c > d then "yes"`, vers.InnerText())
}

func TestGenerate_OrderIsPreserved(t *testing.T) {
	doc := &zefania.Document{Metadata: zefania.DefaultMetadata("order")}
	for _, n := range []string{"2", "10", "1"} {
		doc.Books = append(doc.Books, &zefania.Book{
			Number: n, Name: zefania.DefaultBookName(n), ShortName: zefania.ShortBookName(n),
			Chapters: []*zefania.Chapter{{Number: "1", Verses: []*zefania.Verse{{Number: "1", Body: "x"}}}},
		})
	}

	out, err := Generate(doc)
	require.NoError(t, err)

	parsed, err := xmlquery.Parse(bytes.NewReader(out))
	require.NoError(t, err)

	var numbers []string
	for _, b := range xmlquery.Find(parsed, "//BIBLEBOOK") {
		numbers = append(numbers, b.SelectAttr("bnumber"))
	}
	assert.Equal(t, []string{"2", "10", "1"}, numbers)
}

func TestGenerateWithOptions_NoDeclaration(t *testing.T) {
	options := DefaultGenerateOptions()
	options.IncludeXMLDeclaration = false
	options.Indent = "\t"

	out, err := GenerateWithOptions(sampleDocument(), options)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("<XMLBIBLE ")))
	assert.Contains(t, string(out), "\n\t<BIBLEBOOK ")
}

func TestWrite_NilDocument(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, nil, DefaultGenerateOptions()))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWrite_PropagatesWriterError(t *testing.T) {
	err := Write(failingWriter{}, sampleDocument(), DefaultGenerateOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestEscape(t *testing.T) {
	assert.Equal(t, `a &amp; b &lt;c&gt; "d" 'e'`, EscapeText(`a & b <c> "d" 'e'`))
	assert.Equal(t, `a &amp; b &lt;c&gt; &quot;d&quot; 'e'`, EscapeAttr(`a & b <c> "d" 'e'`))
	assert.Equal(t, "a\nb\tc", EscapeText("a\nb\tc"))
	assert.Equal(t, "a&#10;b&#13;&#10;c&#9;d", EscapeAttr("a\nb\r\nc\td"))
}

func TestGenerate_AttributeWhitespace(t *testing.T) {
	doc := &zefania.Document{
		Metadata: zefania.DefaultMetadata("kjv"),
		Books: []*zefania.Book{{
			Number: "1", Name: "First\nBook\tof Moses", ShortName: "B1",
		}},
	}

	out, err := Generate(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), `bname="First&#10;Book&#9;of Moses"`)

	parsed, err := xmlquery.Parse(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "First\nBook\tof Moses", xmlquery.FindOne(parsed, "//BIBLEBOOK").SelectAttr("bname"))
}
