package model

type File struct {
	Name string
	Data []byte
}

// FileUpload is the multipart payload sent to the bills API: the chosen file
// and the email of its owner.
type FileUpload struct {
	File  File
	Email string
}

type UploadResult struct {
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
	Key      string `json:"key"`
}
