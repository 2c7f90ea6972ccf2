package intake

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Upload is a file chosen by the operator, held in memory until submitted.
type Upload struct {
	Name      string
	Content   []byte
	MediaType string
}

// AcceptedExtensions lists the extensions offered by the file picker. The
// filter is advisory; other files can still be submitted.
var AcceptedExtensions = []string{".pdf", ".txt"}

// Size returns the content length in bytes.
func (u *Upload) Size() int64 {
	if u == nil {
		return 0
	}
	return int64(len(u.Content))
}

// Accepted reports whether the file name carries one of AcceptedExtensions.
func (u *Upload) Accepted() bool {
	if u == nil {
		return false
	}
	ext := strings.ToLower(filepath.Ext(u.Name))
	for _, allowed := range AcceptedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// LoadUpload reads the file at path into an Upload.
func LoadUpload(path string) (*Upload, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, fmt.Errorf("path is empty")
	}
	info, err := os.Stat(trimmed)
	if err != nil {
		return nil, fmt.Errorf("stat upload: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", trimmed)
	}
	content, err := os.ReadFile(trimmed)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return NewUpload(filepath.Base(trimmed), content), nil
}

// NewUpload builds an Upload, declaring the media type from the extension
// and falling back to content sniffing.
func NewUpload(name string, content []byte) *Upload {
	return &Upload{
		Name:      name,
		Content:   content,
		MediaType: detectMediaType(name, content),
	}
}

func detectMediaType(name string, content []byte) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".txt":
		return "text/plain"
	}
	if byExt := mime.TypeByExtension(filepath.Ext(name)); byExt != "" {
		return byExt
	}
	return http.DetectContentType(content)
}
