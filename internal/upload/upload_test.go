package upload

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAllowed(t *testing.T) {
	for _, name := range []string{"report.pdf", "notes.TXT", "data.csv", "sheet.xlsx", "doc.docx"} {
		if !Allowed(name) {
			t.Errorf("expected %q to be allowed", name)
		}
	}
	for _, name := range []string{"malware.exe", "archive.zip", "noextension", "trailingdot."} {
		if Allowed(name) {
			t.Errorf("expected %q to be rejected", name)
		}
	}
}

func TestTypeCategory(t *testing.T) {
	cases := map[string]string{
		"a.pdf":   "PDF",
		"a.doc":   "Word Document",
		"a.docx":  "Word Document",
		"a.txt":   "Text File",
		"a.csv":   "CSV",
		"a.xlsx":  "Excel",
		"a.json":  "JSON",
		"a.xml":   "XML",
		"a.exe":   "Unknown",
		"a.PDF":   "PDF",
		"weirdly": "Unknown",
	}
	for name, want := range cases {
		if got := TypeCategory(name); got != want {
			t.Errorf("TypeCategory(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestFormatSize(t *testing.T) {
	cases := map[int64]string{
		500:             "500.0 B",
		2048:            "2.0 KB",
		5 * 1024 * 1024: "5.0 MB",
		3 << 30:         "3.0 GB",
	}
	for size, want := range cases {
		if got := FormatSize(size); got != want {
			t.Errorf("FormatSize(%d) = %q, want %q", size, got, want)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"report.pdf":          "report.pdf",
		"../../etc/passwd":    "passwd",
		`..\..\evil.txt`:      "evil.txt",
		"my file (1).pdf":     "my_file__1_.pdf",
		"":                    "upload",
	}
	for in, want := range cases {
		if got := sanitizeFilename(in); got != want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSave(t *testing.T) {
	processor, err := NewProcessor(t.TempDir())
	if err != nil {
		t.Fatalf("new processor: %v", err)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "quarterly report.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	content := strings.Repeat("x", 2048)
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("parse form: %v", err)
	}
	header := req.MultipartForm.File["file"][0]

	info, err := processor.Save(header)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if info.OriginalName != "quarterly report.pdf" {
		t.Errorf("original name: got %q", info.OriginalName)
	}
	if !strings.HasSuffix(info.Filename, "_quarterly_report.pdf") {
		t.Errorf("stored name not sanitized with unique prefix: %q", info.Filename)
	}
	if info.Size != int64(len(content)) {
		t.Errorf("size: got %d, want %d", info.Size, len(content))
	}
	if info.SizeFormatted != "2.0 KB" {
		t.Errorf("size formatted: got %q", info.SizeFormatted)
	}
	if info.Type != "PDF" {
		t.Errorf("type: got %q", info.Type)
	}

	saved, err := os.ReadFile(filepath.Join(processor.dir, info.Filename))
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(saved) != content {
		t.Error("saved content mismatch")
	}
}
