package httpdto

// PresignPhotoRequest is used for POST /upload-photo
type PresignPhotoRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	FileSize    int64  `json:"fileSize"`
}

// PresignPhotoResponse carries the presigned PUT target and the public
// URL to use as profilephoto once the upload completes.
type PresignPhotoResponse struct {
	Message   string            `json:"message"`
	UploadURL string            `json:"uploadUrl"`
	PhotoURL  string            `json:"photoUrl"`
	Headers   map[string]string `json:"headers,omitempty"`
}
