package domain

import "time"

// UploadTicket is a presigned write URL for one media object.
type UploadTicket struct {
	UploadURL string    `json:"uploadUrl"`
	FilePath  string    `json:"filePath"`
	Method    string    `json:"method"`
	ExpiresAt time.Time `json:"expiresAt"`
}
