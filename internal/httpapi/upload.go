package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/joelkehle/healthgenie/internal/genai"
)

// Uploads are capped at 10MB and must sniff as JPEG, PNG or BMP.
const maxUploadBytes = 10 << 20

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/bmp":  {},
}

var errUnsupportedImage = errors.New("unsupported image type (expected JPEG, PNG or BMP)")

// formImage reads one optional image field from the parsed multipart form.
// A missing field returns (nil, nil); a present but invalid file is an
// error. The MIME type comes from content sniffing, not the client header.
func formImage(r *http.Request, field string) (*genai.Media, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if header.Size > maxUploadBytes {
		return nil, fmt.Errorf("file exceeds %dMB limit", maxUploadBytes>>20)
	}
	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("empty file")
	}
	if len(data) > maxUploadBytes {
		return nil, fmt.Errorf("file exceeds %dMB limit", maxUploadBytes>>20)
	}
	mime := http.DetectContentType(data)
	if _, ok := allowedImageTypes[mime]; !ok {
		return nil, errUnsupportedImage
	}
	return &genai.Media{MIMEType: mime, Data: data}, nil
}
