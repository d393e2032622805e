package restapi

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"
)

const (
	HeaderContentType  = "Content-Type"
	HeaderAccept       = "Accept"
	HeaderRequestID    = "X-Request-Id"
	HeaderAPIKey       = "X-Api-Key"
	HeaderAPISecretKey = "X-Api-Secret-Key"

	ContentTypeJSON = "application/json"

	UserAgent = "redisctl-go"
)

// IsContentTypeJSON reports whether a response declares a JSON body. Parameters such as charset are ignored and
// structured suffixes like application/problem+json count as JSON, since both APIs send them on errors.
func IsContentTypeJSON(header http.Header) bool {
	mediaType, _, err := mime.ParseMediaType(header.Get(HeaderContentType))
	if err != nil {
		return false
	}
	return mediaType == ContentTypeJSON || strings.HasSuffix(mediaType, "+json")
}

// A Marshaler encodes request bodies.
type Marshaler func(v any) ([]byte, error)

var DefaultMarshaler Marshaler = json.Marshal
