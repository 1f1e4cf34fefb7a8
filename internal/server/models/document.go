package models

import "time"

type DocumentType string

const (
	DocumentPassport    DocumentType = "passport"
	DocumentIDCard      DocumentType = "id_card"
	DocumentCertificate DocumentType = "certificate"
	DocumentPermit      DocumentType = "permit"
	DocumentOther       DocumentType = "other"
)

func (t DocumentType) Valid() bool {
	switch t {
	case DocumentPassport, DocumentIDCard, DocumentCertificate, DocumentPermit, DocumentOther:
		return true
	}
	return false
}

// Document describes a citizen document. The file itself lives in object
// storage under StorageKey.
type Document struct {
	ID           string
	UserEmail    string
	DocumentName string
	DocumentType DocumentType
	StorageKey   string
	Notes        string
	CreatedAt    time.Time
}
