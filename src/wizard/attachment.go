package wizard

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// Attachment is the wizard's owned file resource. It is acquired from a
// local file or from in-memory bytes, validated by size and sniffed
// content type, and released when the form resets or the attachment is
// replaced. Open always reads from the start, so a failed submission can
// be retried with the full content.
type Attachment struct {
	Name        string
	Size        int64
	ContentType string

	file *os.File // nil when the content is held in memory
	data []byte
}

// AttachmentFromFile opens path and sniffs its content type from the first
// bytes. The caller owns the result until it is handed to a FormState.
func AttachmentFromFile(path string) (*Attachment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	head := make([]byte, 512)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		f.Close()
		return nil, err
	}

	return &Attachment{
		Name:        filepath.Base(path),
		Size:        info.Size(),
		ContentType: http.DetectContentType(head[:n]),
		file:        f,
	}, nil
}

// NewAttachment wraps in-memory content, for callers that do not read
// from the filesystem.
func NewAttachment(name string, size int64, contentType string, data []byte) *Attachment {
	return &Attachment{Name: name, Size: size, ContentType: contentType, data: data}
}

// Open returns a reader over the full attachment content. Each call
// starts from the beginning.
func (a *Attachment) Open() (io.Reader, error) {
	if a.file != nil {
		if _, err := a.file.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		return a.file, nil
	}
	return bytes.NewReader(a.data), nil
}

// Release closes the underlying file when one is held. Safe to call twice.
func (a *Attachment) Release() {
	if a.file != nil {
		a.file.Close()
		a.file = nil
	}
	a.data = nil
}
