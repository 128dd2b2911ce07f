package normalize

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrShortCFEmail is returned when the obfuscated payload has no key byte.
var ErrShortCFEmail = errors.New("cloudflare email: payload shorter than one hex pair")

// DecodeCloudflareEmail reverses Cloudflare's data-cfemail obfuscation. The
// first hex pair is the XOR key and every following pair XOR the key is one
// byte of the address. A trailing unpaired digit is ignored.
func DecodeCloudflareEmail(encoded string) (string, error) {
	s := strings.TrimSpace(encoded)
	if len(s) < 2 {
		return "", ErrShortCFEmail
	}
	raw, err := hex.DecodeString(s[:len(s)-len(s)%2])
	if err != nil {
		return "", fmt.Errorf("cloudflare email: %w", err)
	}
	key := raw[0]
	out := make([]byte, len(raw)-1)
	for i := range out {
		out[i] = raw[i+1] ^ key
	}
	return string(out), nil
}

// CFEmailFromHref extracts the payload from a "/cdn-cgi/l/email-protection#..."
// link. Returns "" when href is not such a link.
func CFEmailFromHref(href string) string {
	const marker = "/cdn-cgi/l/email-protection#"
	i := strings.Index(href, marker)
	if i < 0 {
		return ""
	}
	return href[i+len(marker):]
}
