// Package upload stores multipart file uploads and classifies them into the
// type categories the routing rules key on.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// AllowedExtensions lists the accepted upload extensions in the order they
// are reported in validation errors.
var AllowedExtensions = []string{"pdf", "txt", "doc", "docx", "csv", "xlsx", "json", "xml"}

var typeCategories = map[string]string{
	"pdf":  "PDF",
	"doc":  "Word Document",
	"docx": "Word Document",
	"txt":  "Text File",
	"csv":  "CSV",
	"xlsx": "Excel",
	"json": "JSON",
	"xml":  "XML",
}

// FileInfo describes a stored upload.
type FileInfo struct {
	Filename      string `json:"filename"` // name on disk
	OriginalName  string `json:"original_name"`
	Size          int64  `json:"size"`
	SizeFormatted string `json:"size_formatted"`
	Type          string `json:"type"` // category, e.g. "PDF"
}

// Allowed reports whether the filename carries an accepted extension.
func Allowed(filename string) bool {
	ext := extension(filename)
	if ext == "" {
		return false
	}
	_, ok := typeCategories[ext]
	return ok
}

// TypeCategory maps a filename to its routing category, "Unknown" for
// anything outside the allow-list.
func TypeCategory(filename string) string {
	if category, ok := typeCategories[extension(filename)]; ok {
		return category
	}
	return "Unknown"
}

// FormatSize renders a byte count with base-1024 units, one decimal place.
func FormatSize(sizeBytes int64) string {
	size := float64(sizeBytes)
	for _, unit := range []string{"B", "KB", "MB"} {
		if size < 1024 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1f GB", size)
}

// Processor saves uploads under a single directory.
type Processor struct {
	dir string
}

// NewProcessor creates the upload directory if needed.
func NewProcessor(dir string) (*Processor, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Processor{dir: dir}, nil
}

// Save writes the upload to disk under a collision-free name and returns its
// descriptor. Callers must have checked Allowed first; Save does not
// re-validate the extension.
func (p *Processor) Save(header *multipart.FileHeader) (*FileInfo, error) {
	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	storedName := uuid.New().String()[:8] + "_" + sanitizeFilename(header.Filename)
	path := filepath.Join(p.dir, storedName)

	dst, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(path)
		return nil, err
	}

	return &FileInfo{
		Filename:      storedName,
		OriginalName:  header.Filename,
		Size:          size,
		SizeFormatted: FormatSize(size),
		Type:          TypeCategory(header.Filename),
	}, nil
}

// sanitizeFilename strips any path components and replaces characters outside
// a conservative allow-list so client-supplied names cannot escape the upload
// directory.
func sanitizeFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == ".." || base == "/" {
		return "upload"
	}
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "upload"
	}
	return b.String()
}

func extension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}
