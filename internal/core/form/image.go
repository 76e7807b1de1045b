package form

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"
)

// ImageField is the multipart field carrying a book cover.
const ImageField = "image"

var imageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// CheckImage validates an uploaded cover from its declared size and its
// leading bytes. present is false when no file was sent. On success the
// returned extension (with dot) is the one matching the sniffed content.
func CheckImage(present bool, size, maxBytes int64, head []byte) (string, error) {
	if !present {
		return "", FieldError(ImageField, MsgUploadMissing)
	}
	if maxBytes > 0 && size > maxBytes {
		return "", FieldError(ImageField, fmt.Sprintf(
			"The file is too large (%d bytes). Allowed maximum size is %d bytes.", size, maxBytes))
	}

	mtype := mimetype.Detect(head)
	if !mimetype.EqualsAny(mtype.String(), imageTypes...) {
		return "", FieldError(ImageField, MsgNotImage)
	}
	return mtype.Extension(), nil
}
