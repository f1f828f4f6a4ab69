package candidate

import (
	"bytes"
	"strings"
	"unicode/utf8"

	apperrors "github.com/haulhire/crm/errors"
)

// ResumeExtractor turns an uploaded resume into plain text suitable for
// the candidate's summary field.
type ResumeExtractor interface {
	Extract(data []byte) (string, error)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// PlainTextExtractor handles plain-text resumes. PDF and DOCX extraction
// happen upstream of this service; by the time a resume reaches the API
// it is expected to be text.
type PlainTextExtractor struct{}

// Extract validates and normalizes a plain-text resume
func (PlainTextExtractor) Extract(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", apperrors.ErrInvalidArgument("resume is not valid UTF-8 text")
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", apperrors.ErrInvalidArgument("resume is empty")
	}

	return text, nil
}
