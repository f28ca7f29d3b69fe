package chatmd

import (
	"errors"

	"github.com/alnah/go-chatmd/internal/assets"
	"github.com/alnah/go-chatmd/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrUnknownEngine  = errors.New("unknown engine")
	ErrUnknownStyle   = pipeline.ErrUnknownStyle
	ErrUnsafeOutput   = errors.New("rendered output failed verification")
	ErrHTMLConversion = errors.New("HTML conversion failed")

	// Transcript errors.
	ErrEmptyTranscript   = errors.New("transcript is empty")
	ErrTranscriptParse   = errors.New("failed to parse transcript")
	ErrInvalidTranscript = errors.New("invalid transcript")
	ErrTemplateRender    = errors.New("transcript template rendering failed")

	// Asset loading errors.
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrTemplateNotFound = assets.ErrTemplateNotFound
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
