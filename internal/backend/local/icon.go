package local

import (
	"encoding/base64"
	"strings"

	"github.com/studiowebux/launcher/internal/backend"
)

const (
	iconFile      = "icon.png"
	iconURLPrefix = "data:image/png;base64,"
)

// IconDataURL builds the data URL returned for an instance icon
func IconDataURL(png []byte) string {
	return iconURLPrefix + base64.StdEncoding.EncodeToString(png)
}

// decodeIcon extracts the image bytes from a data URL
func decodeIcon(dataURL string) ([]byte, error) {
	idx := strings.Index(dataURL, ",")
	if idx == -1 {
		return nil, backend.Errorf(backend.ErrInvalid, "Invalid icon data format: missing comma separator")
	}

	data, err := base64.StdEncoding.DecodeString(dataURL[idx+1:])
	if err != nil {
		return nil, backend.Errorf(backend.ErrInvalid, "Failed to decode icon: %v", err)
	}
	return data, nil
}
