// Package bundle moves courses in and out of the database as portable files.
package bundle

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Format of a bundle file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// Document is the portable form of one or more courses.
type Document struct {
	Courses []Course `yaml:"courses"`
}

type Course struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Questions   []Question `yaml:"questions"`
}

type Question struct {
	Title  string `yaml:"title"`
	Answer string `yaml:"answer,omitempty"`
}

// ParseFormat accepts a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("bundle: unsupported format %q", s)
	}
}

// DetectFormat infers the format from a file extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("bundle: cannot infer format of %q", path)
	}
	return ParseFormat(ext)
}

// CourseNameFromPath derives a course name from a file name, for formats
// that carry only questions.
func CourseNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSpace(strings.TrimSuffix(base, filepath.Ext(base)))
}

// Decode reads a document. courseName names the course of CSV input.
func Decode(r io.Reader, format Format, courseName string) (*Document, error) {
	switch format {
	case FormatYAML:
		return decodeYAML(r)
	case FormatXLSX:
		return decodeXLSX(r)
	case FormatCSV:
		return decodeCSV(r, courseName)
	default:
		return nil, fmt.Errorf("bundle: unsupported format %q", format)
	}
}

// Encode writes doc in the given format. CSV holds exactly one course.
func Encode(w io.Writer, format Format, doc *Document) error {
	switch format {
	case FormatYAML:
		return encodeYAML(w, doc)
	case FormatXLSX:
		return encodeXLSX(w, doc)
	case FormatCSV:
		return encodeCSV(w, doc)
	default:
		return fmt.Errorf("bundle: unsupported format %q", format)
	}
}
