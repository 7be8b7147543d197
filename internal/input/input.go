// Package input classifies user-provided document references.
package input

import (
	"strings"

	"flipbook-viewer/internal/logger"
	"flipbook-viewer/internal/types"
)

// SourceType is the kind of document reference the user handed us
type SourceType string

const (
	// SourceTypeURL is an http(s) link to a document
	SourceTypeURL SourceType = "url"
	// SourceTypeLocalPDF is a local PDF file path
	SourceTypeLocalPDF SourceType = "local_pdf"
)

// ParseInput analyzes the input string and determines its type.
//
// Input type rules:
// - Starts with http:// or https:// → URL type
// - Ends with .pdf (case-insensitive) → LocalPDF type
// - Otherwise → error (invalid input)
func ParseInput(input string) (SourceType, error) {
	logger.Debug("parsing input", logger.String("input", input))

	input = strings.TrimSpace(input)
	if input == "" {
		logger.Warn("parse input failed: empty input")
		return "", types.NewAppError(types.ErrInvalidInput, "input cannot be empty", nil)
	}

	if isURL(input) {
		logger.Info("input identified as URL", logger.String("input", input))
		return SourceTypeURL, nil
	}
	if isLocalPDF(input) {
		logger.Info("input identified as local PDF file", logger.String("input", input))
		return SourceTypeLocalPDF, nil
	}

	logger.Warn("invalid input format", logger.String("input", input))
	return "", types.NewAppError(types.ErrInvalidInput, "input is neither a URL nor a .pdf path", nil)
}

// isURL checks if the input starts with an http or https scheme
func isURL(input string) bool {
	lower := strings.ToLower(input)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// isLocalPDF checks if the input looks like a local PDF file path
func isLocalPDF(input string) bool {
	return strings.HasSuffix(strings.ToLower(input), ".pdf")
}
