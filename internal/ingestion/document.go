package ingestion

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/fetch"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// decoder converts raw document bytes to plain text.
type decoder func(data []byte) (string, error)

var decoders = map[string]decoder{
	".pdf":  decodePDF,
	".docx": decodeDocx,
	".txt":  decodePlain,
	".md":   decodePlain,
	".html": decodeHTML,
	".htm":  decodeHTML,
}

// SupportedExtensions lists the document extensions that can be decoded.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(decoders))
	for ext := range decoders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// IsSupported reports whether the file name has a decodable extension.
func IsSupported(fileName string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(fileName))]
	return ok
}

// ExtractDocumentText reads the file at path and decodes it based on its extension.
// Unknown extensions yield *UnsupportedFormatError before the file is read.
func ExtractDocumentText(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := decoders[ext]; !ok {
		return "", &UnsupportedFormatError{Extension: ext}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", &FileReadError{Path: path, Cause: err}
	}
	return ExtractBytes(path, data)
}

// ExtractBytes decodes in-memory document content, picking the decoder from fileName's extension.
func ExtractBytes(fileName string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	decode, ok := decoders[ext]
	if !ok {
		return "", &UnsupportedFormatError{Extension: ext}
	}
	return decode(data)
}

func decodePlain(data []byte) (string, error) {
	return string(data), nil
}

func decodeHTML(data []byte) (string, error) {
	text, err := fetch.ExtractMainText(string(data), fetch.DefaultTextSelectors())
	if err != nil {
		return "", &DecodeError{Format: "html", Cause: err}
	}
	return text, nil
}

// decodePDF concatenates the plain text of every page, one page per block.
// The pdf reader panics on some malformed inputs, so panics become DecodeErrors.
func decodePDF(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &DecodeError{Format: "pdf", Cause: fmt.Errorf("%v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &DecodeError{Format: "pdf", Cause: err}
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", &DecodeError{Format: "pdf", Cause: fmt.Errorf("page %d: %w", i, err)}
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String()), nil
}

var (
	docxParagraphEndRe = regexp.MustCompile(`</w:p>|<w:br\s*/>|<w:cr\s*/>`)
	docxTabRe          = regexp.MustCompile(`<w:tab\s*/>`)
	xmlTagRe           = regexp.MustCompile(`<[^>]+>`)
)

func decodeDocx(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &DecodeError{Format: "docx", Cause: err}
	}
	defer func() { _ = doc.Close() }()

	return docxPlainText(doc.Editable().GetContent()), nil
}

// docxPlainText flattens WordprocessingML into text, one paragraph per line.
func docxPlainText(content string) string {
	content = docxParagraphEndRe.ReplaceAllString(content, "\n")
	content = docxTabRe.ReplaceAllString(content, "\t")
	content = xmlTagRe.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}
