package entity

// UploadedDocument is one file received for a case. Content is read-only once
// received; the pipeline owns it for the duration of a single validation run.
type UploadedDocument struct {
	FileName  string
	MediaType string
	Content   []byte
}

// Size returns the payload size in bytes.
func (d UploadedDocument) Size() int64 {
	return int64(len(d.Content))
}
