// etag translates between the opaque Version bytes that stores assign and the
// weak ETag string that travels over the wire: W/"<base64 of the bytes>".
//
// Encode and Decode are a pure bijection; callers round-trip Versions through
// them without ever inspecting the contents.
package etag

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/tasklink/tasklink/internal/domain/metadata"
)

// Encode renders a Version as a weak ETag. The output is printable ASCII and
// safe to send as an HTTP header value.
func Encode(version metadata.Version) string {
	return fmt.Sprintf(`W/"%s"`, base64.StdEncoding.EncodeToString(version))
}

// Decode parses a weak ETag back into Version bytes. The W/ marker and the
// surrounding quotes are both optional, so a bare base64 payload is accepted
// too.
//
// An empty or all-whitespace token returns Missing; anything present whose
// payload is not base64 returns Malformed. The two are distinct because
// callers surface them differently (428 vs 400).
func Decode(raw string) (metadata.Version, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, Missing{}
	}
	payload := strings.TrimPrefix(trimmed, "W/")
	payload = strings.Trim(payload, `"`)
	if payload == "" {
		return nil, Malformed{Raw: raw}
	}
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, Malformed{Raw: raw}
	}
	return decoded, nil
}

// <-- Errors

// Missing is returned when no token was supplied at all
type Missing struct{}

func (m Missing) Error() string {
	return "No concurrency token (If-Match) was provided"
}

// Malformed is returned when a token was supplied but could not be parsed
type Malformed struct {
	Raw string
}

func (m Malformed) Error() string {
	return fmt.Sprintf("The provided concurrency token could not be parsed: [%v]", m.Raw)
}

//     Errors -->
