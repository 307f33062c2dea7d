package dto

// CreateUploadRequest asks for a presigned upload URL.
type CreateUploadRequest struct {
	Filename    string `json:"filename" binding:"required,max=200"`
	ContentType string `json:"contentType" binding:"omitempty,max=100"`
}
