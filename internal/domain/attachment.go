package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// AttachmentKind classifies the stored file by extension.
type AttachmentKind string

const (
	AttachmentKindImage AttachmentKind = "IMAGE"
	AttachmentKindPDF   AttachmentKind = "PDF"
)

// AttachmentKindFromName infers the kind from the file name extension.
// Anything that is not a PDF is treated as an image.
func AttachmentKindFromName(name string) AttachmentKind {
	if strings.ToLower(filepath.Ext(name)) == ".pdf" {
		return AttachmentKindPDF
	}
	return AttachmentKindImage
}

// AttachmentReference points at a stored file. File bytes are managed by the
// storage collaborator; this core only tracks the opaque reference.
type AttachmentReference struct {
	ID        string
	ClaimID   string
	Name      string
	Kind      AttachmentKind
	URL       string
	CreatedAt time.Time
}
