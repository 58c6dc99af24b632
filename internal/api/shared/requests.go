package shared

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// maxRequestBodySize bounds request bodies to keep bulk payloads sane.
const maxRequestBodySize = 1 << 20 // 1 MB

// DecodeJSON decodes the request body into v, limiting the body size and
// rejecting payloads that do not match the expected shape.
func DecodeJSON(r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxRequestBodySize)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
