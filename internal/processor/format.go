package processor

import (
	"bytes"
)

// Format is the detected type of a submitted attachment
type Format int

const (
	FormatUnknown Format = iota
	FormatPDF
	FormatImage
	FormatOFD
	FormatXML
)

func (f Format) String() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatImage:
		return "image"
	case FormatOFD:
		return "ofd"
	case FormatXML:
		return "xml"
	default:
		return "unknown"
	}
}

// Supported reports whether the analysis service accepts the format
func (f Format) Supported() bool {
	return f != FormatUnknown
}

var (
	magicPDF      = []byte("%PDF")
	magicPNG      = []byte{0x89, 0x50, 0x4E, 0x47}
	magicJPEG     = []byte{0xFF, 0xD8, 0xFF}
	magicTIFFLE   = []byte{0x49, 0x49, 0x2A, 0x00}
	magicTIFFBE   = []byte{0x4D, 0x4D, 0x00, 0x2A}
	magicZIP      = []byte("PK\x03\x04")
	ofdEntry      = []byte("OFD.xml")
	xmlDecl       = []byte("<?xml")
	maxSniffBytes = 4096
)

// DetectFormat identifies an attachment from its leading bytes
func DetectFormat(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, magicPDF):
		return FormatPDF
	case bytes.HasPrefix(data, magicPNG),
		bytes.HasPrefix(data, magicJPEG),
		bytes.HasPrefix(data, magicTIFFLE),
		bytes.HasPrefix(data, magicTIFFBE):
		return FormatImage
	case bytes.HasPrefix(data, magicZIP):
		head := data[:min(len(data), maxSniffBytes)]
		if bytes.Contains(head, ofdEntry) {
			return FormatOFD
		}
		return FormatUnknown
	}
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, xmlDecl) || (len(trimmed) > 0 && trimmed[0] == '<' && bytes.HasSuffix(trimmed, []byte(">"))) {
		return FormatXML
	}
	return FormatUnknown
}

// MimeType returns the content type sent for the format
func (f Format) MimeType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatOFD:
		return "application/ofd"
	case FormatXML:
		return "application/xml"
	default:
		return "application/octet-stream"
	}
}

// ImageMimeType refines the content type of an image attachment
func ImageMimeType(data []byte) string {
	switch {
	case bytes.HasPrefix(data, magicPNG):
		return "image/png"
	case bytes.HasPrefix(data, magicJPEG):
		return "image/jpeg"
	default:
		return "image/tiff"
	}
}
