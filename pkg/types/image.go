// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for scivector: the uploaded
// image, the conversion style, the processing state and the generated SVG
// artifact, plus the configuration structs read by the CLI.
package types

import "time"

// MaxImageSize is the largest image accepted for conversion (10 MiB).
const MaxImageSize int64 = 10 * 1024 * 1024

// Accepted image MIME types.
const (
	MIMEJPEG = "image/jpeg"
	MIMEPNG  = "image/png"
	MIMEWEBP = "image/webp"
)

// UploadedImage is a raster image selected for conversion.
type UploadedImage struct {
	// Name is the base name of the source file (display only).
	Name string `json:"name" yaml:"name"`

	// MIMEType is one of MIMEJPEG, MIMEPNG or MIMEWEBP once validated.
	MIMEType string `json:"mime_type" yaml:"mime_type"`

	// Size is the image size in bytes.
	Size int64 `json:"size" yaml:"size"`

	// Data holds the raw image bytes.
	Data []byte `json:"-" yaml:"-"`
}

// ConversionStyle selects how faithfully the SVG reproduces the source.
type ConversionStyle string

const (
	// StyleExact preserves layout and colors and keeps every label as editable text.
	StyleExact ConversionStyle = "exact"
	// StyleSimplified flattens gradients and straightens hand-drawn lines.
	StyleSimplified ConversionStyle = "simplified"
	// StyleWireframe produces a black-and-white schematic without fills.
	StyleWireframe ConversionStyle = "wireframe"
)

// ProcessingStatus is the phase of the workspace state machine.
type ProcessingStatus string

const (
	StatusIdle       ProcessingStatus = "idle"
	StatusUploading  ProcessingStatus = "uploading"
	StatusProcessing ProcessingStatus = "processing"
	StatusCompleted  ProcessingStatus = "completed"
	StatusError      ProcessingStatus = "error"
)

// ProcessingState pairs a status with the message shown in the error phase.
type ProcessingState struct {
	Status ProcessingStatus `json:"status" yaml:"status"`

	// Message is only set when Status is StatusError.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// GeneratedArtifact is the SVG returned by one successful conversion.
type GeneratedArtifact struct {
	// ID uniquely identifies the artifact within the process.
	ID string `json:"id" yaml:"id"`

	// Code is the SVG source text.
	Code string `json:"code" yaml:"code"`

	// CreatedAt is when the conversion completed.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
