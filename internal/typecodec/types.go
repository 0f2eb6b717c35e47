package typecodec

import (
	"encoding/hex"
	"fmt"
	"net/netip"
	"regexp"
	"strings"
)

var hexPattern = regexp.MustCompile(`^[0-9a-fA-F]+$`)

// encodeHex accepts hex digits of either case. Odd-length text gains a leading
// zero, so the decoded form is always lower-case with an even length.
func encodeHex(_ *Codec, in *input) ([]byte, bool, error) {
	if !hexPattern.MatchString(in.text) {
		return nil, false, nil
	}

	s := strings.ToLower(in.text)
	if len(s)%2 == 1 {
		s = "0" + s
	}

	b, err := hex.DecodeString(s)
	return b, err == nil, err
}

func decodeHex(_ *Codec, payload []byte) (any, error) {
	return hex.EncodeToString(payload), nil
}

// encodeIP stores IPv4 addresses in 4 bytes and everything else in 16.
// Scoped IPv6 addresses are left to the string type.
func encodeIP(_ *Codec, in *input) ([]byte, bool, error) {
	addr, err := netip.ParseAddr(in.text)
	if err != nil || addr.Zone() != "" || addr.String() != in.text {
		return nil, false, nil
	}

	if addr.Is4() {
		b := addr.As4()
		return b[:], true, nil
	}

	b := addr.As16()
	return b[:], true, nil
}

func decodeIP(_ *Codec, payload []byte) (any, error) {
	switch len(payload) {
	case 4:
		return netip.AddrFrom4([4]byte(payload)).String(), nil
	case 16:
		return netip.AddrFrom16([16]byte(payload)).String(), nil
	default:
		return nil, fmt.Errorf("address of %d bytes", len(payload))
	}
}

func encodeString(c *Codec, in *input) ([]byte, bool, error) {
	if in.text == "" {
		return nil, true, nil
	}

	b, err := c.opts.Strings.Compress([]byte(in.text))
	if err != nil {
		return nil, false, err
	}

	return b, true, nil
}

func decodeString(c *Codec, payload []byte) (any, error) {
	b, err := c.opts.Strings.Decompress(payload)
	if err != nil {
		return nil, err
	}

	return string(b), nil
}
