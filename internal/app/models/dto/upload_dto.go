package dto

// UploadResponse describes a stored file
type UploadResponse struct {
	URL      string `json:"url" example:"http://localhost:8080/uploads/resumes/4f1c.pdf"`
	FileName string `json:"fileName" example:"resume.pdf"`
	Size     int64  `json:"size" example:"183204"`
	MimeType string `json:"mimeType" example:"application/pdf"`
}
