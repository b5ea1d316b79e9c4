package model

import "time"

// Verification statuses written by the verification pipeline.
const (
	VerificationPending     = "pending"
	VerificationVerified    = "Verified"
	VerificationIssuesFound = "Issues Found"
)

// Document represents an uploaded file awaiting or having passed verification.
type Document struct {
	ID                 string    `json:"id"`
	OwnerID            string    `json:"ownerId"`
	FileName           string    `json:"fileName"`
	StoragePath        string    `json:"storagePath"`
	Size               int64     `json:"size"`
	ContentType        string    `json:"contentType"`
	VerificationStatus string    `json:"verificationStatus"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// DocumentSnapshot is the part of a document observed by change consumers.
type DocumentSnapshot struct {
	OwnerID            string `json:"ownerId,omitempty"`
	FileName           string `json:"fileName,omitempty"`
	VerificationStatus string `json:"verificationStatus"`
}

// DocumentChange carries the before and after state of one document update.
// Either snapshot may be nil when the producer could not supply it.
type DocumentChange struct {
	DocID  string            `json:"docId"`
	Before *DocumentSnapshot `json:"before"`
	After  *DocumentSnapshot `json:"after"`
}
