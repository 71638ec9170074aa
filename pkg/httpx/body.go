package httpx

import (
	"bytes"
	"io"
	"net/http"
)

const maxPeekBytes = 1 << 16

// peekBody reads up to maxPeekBytes of the request body and restores it so
// downstream handlers can still decode it.
func peekBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, io.EOF
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxPeekBytes))
	if err != nil {
		return nil, err
	}
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}
