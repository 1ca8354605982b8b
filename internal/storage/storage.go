package storage

// File carries a decoded upload: raw bytes plus the metadata the transport
// delivered alongside them.
type File struct {
	Buffer       []byte
	OriginalName string
	Encoding     string
	MimeType     string
	Size         int64
}

// Uploader stores a byte buffer in an object store and returns a publicly
// readable URL for it.
type Uploader interface {
	Upload(data []byte, originalName, contentType string) (string, error)
}
