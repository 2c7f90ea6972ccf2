// Package preview inspects a selected document locally so the operator can
// confirm the right file before submitting it.
package preview

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/claimsdesk/fnol/internal/intake"
	"github.com/claimsdesk/fnol/internal/logtail"
)

// Kind labels what the preview could make of a file.
type Kind string

const (
	KindPDF   Kind = "pdf"
	KindText  Kind = "text"
	KindOther Kind = "other"
)

// Info is the local summary of an upload.
type Info struct {
	Kind  Kind
	Pages int
	Size  int64
	Head  []string
}

// DefaultHeadLines is the number of text lines kept for display.
const DefaultHeadLines = 6

// Inspect summarizes the upload. Errors describe why no preview is possible;
// they never block submission.
func Inspect(upload *intake.Upload, maxLines int) (Info, error) {
	if upload == nil {
		return Info{}, fmt.Errorf("no upload")
	}
	if maxLines <= 0 {
		maxLines = DefaultHeadLines
	}
	info := Info{Size: upload.Size(), Kind: KindOther}

	switch {
	case isPDF(upload):
		info.Kind = KindPDF
		pages, text, err := pdfText(upload.Content)
		if err != nil {
			return info, err
		}
		info.Pages = pages
		info.Head = logtail.Head(strings.NewReader(text), maxLines)
	case isText(upload):
		info.Kind = KindText
		info.Head = logtail.Head(bytes.NewReader(upload.Content), maxLines)
	}
	return info, nil
}

func isPDF(upload *intake.Upload) bool {
	if bytes.HasPrefix(upload.Content, []byte("%PDF")) {
		return true
	}
	return strings.EqualFold(filepath.Ext(upload.Name), ".pdf")
}

func isText(upload *intake.Upload) bool {
	if strings.HasPrefix(upload.MediaType, "text/") {
		return true
	}
	return utf8.Valid(upload.Content) && !bytes.ContainsRune(upload.Content, 0)
}

func pdfText(content []byte) (pages int, text string, err error) {
	defer func() {
		// The pdf reader panics on some malformed inputs.
		if r := recover(); r != nil {
			err = fmt.Errorf("read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return 0, "", fmt.Errorf("open pdf: %w", err)
	}
	pages = reader.NumPage()

	var b strings.Builder
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(pageText)
		b.WriteString("\n")
		if strings.Count(b.String(), "\n") > DefaultHeadLines*4 {
			break
		}
	}
	return pages, b.String(), nil
}

// Summary renders a one-line description such as "PDF · 2 pages · 14.2 KiB".
func (i Info) Summary() string {
	parts := []string{}
	switch i.Kind {
	case KindPDF:
		parts = append(parts, "PDF")
		if i.Pages == 1 {
			parts = append(parts, "1 page")
		} else {
			parts = append(parts, fmt.Sprintf("%d pages", i.Pages))
		}
	case KindText:
		parts = append(parts, "Text")
	default:
		parts = append(parts, "Binary")
	}
	parts = append(parts, FormatBytes(i.Size))
	return strings.Join(parts, " · ")
}

// FormatBytes renders a byte count with binary units.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
