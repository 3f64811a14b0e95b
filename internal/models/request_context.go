package models

// RequestContext carries the request-scoped data the usecases need: the
// authenticated principal and the file descriptors the upload middleware
// extracted. It is always passed explicitly, never looked up ambiently.
type RequestContext struct {
	UserID string
	Files  []UploadedFile
}

// UploadedFile describes one uploaded image. Storage of the bytes is owned
// by the upload layer; only the filename is persisted on the product.
type UploadedFile struct {
	Filename string
	Size     int64
}

// Filenames returns the uploaded filenames in their original order.
func (rc RequestContext) Filenames() []string {
	if len(rc.Files) == 0 {
		return nil
	}
	names := make([]string, 0, len(rc.Files))
	for _, f := range rc.Files {
		names = append(names, f.Filename)
	}
	return names
}
