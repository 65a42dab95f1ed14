package transfer

import (
	"strings"

	"github.com/Obkeldiyev/gold-front/pkg/gateway"
)

// MaxImageSize is the evidence attachment size limit.
const MaxImageSize = 5 << 20 // 5 MiB

// Attachment is a user-selected evidence image, validated before any
// network call is made.
type Attachment struct {
	Name    string
	MIME    string
	Content []byte
}

// Validate checks the attachment rules: the MIME type must start with
// "image/" and the content must not exceed MaxImageSize.
func (a *Attachment) Validate() error {
	if !strings.HasPrefix(a.MIME, "image/") {
		return ErrNotAnImage
	}
	if len(a.Content) > MaxImageSize {
		return ErrImageTooLarge
	}
	return nil
}

// file converts a validated attachment to the gateway's wire shape.
// A nil attachment yields nil.
func (a *Attachment) file() *gateway.File {
	if a == nil {
		return nil
	}
	return &gateway.File{Field: "image", Name: a.Name, MIME: a.MIME, Content: a.Content}
}
