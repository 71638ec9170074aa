// Package sharelink builds the shareable representations of an invite code:
// the nestnote:// deep link, the web fallback URL, and a QR image of the deep
// link. The QR decode path on clients extracts the first 6 digits from the
// scanned payload, so both URL forms round-trip through invitecode.Normalize.
package sharelink

import (
	"bytes"
	"fmt"
	"image/png"
	"net/url"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"

	"github.com/nestnote/nestnote/pkg/invitecode"
)

// DefaultWebBase is the public web fallback host for invite links.
const DefaultWebBase = "https://nestnoteapp.com"

const deepLinkScheme = "nestnote"

// DefaultQRSize is the pixel width/height used when no size is requested.
const DefaultQRSize = 256

// Links bundles every shareable form of one invite code.
type Links struct {
	Code     string `json:"code"`      // user-facing XXX-XXX form
	DeepLink string `json:"deep_link"` // nestnote://invite?code=XXX-XXX
	WebURL   string `json:"web_url"`   // https fallback for devices without the app
}

// Build returns the link bundle for a canonical 6-digit code. webBase may be
// empty to use DefaultWebBase.
func Build(code, webBase string) (Links, error) {
	if !invitecode.Valid(code) {
		return Links{}, invitecode.ErrInvalid
	}
	if webBase == "" {
		webBase = DefaultWebBase
	}

	display := invitecode.Format(code)
	q := url.Values{"code": {display}}.Encode()

	return Links{
		Code:     display,
		DeepLink: fmt.Sprintf("%s://invite?%s", deepLinkScheme, q),
		WebURL:   fmt.Sprintf("%s/invite?%s", webBase, q),
	}, nil
}

// QRPNG renders the deep link as a PNG-encoded QR image of size x size
// pixels. A non-positive size falls back to DefaultQRSize.
func (l Links) QRPNG(size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}

	code, err := qr.Encode(l.DeepLink, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("sharelink: qr encode: %w", err)
	}
	code, err = barcode.Scale(code, size, size)
	if err != nil {
		return nil, fmt.Errorf("sharelink: qr scale: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, code); err != nil {
		return nil, fmt.Errorf("sharelink: png encode: %w", err)
	}
	return buf.Bytes(), nil
}
