package keystream

// Legacy returns the secret repeated cyclically to length bytes.
//
// This is the keystream of the first token generation. It is periodic in the
// secret length and should only be used to read or issue tokens for systems
// that have not moved to Derive.
//
// Tokens from the JavaScript port are not compatible with either Legacy or
// Derive: that port XORs with blocks of md5(md5(hash + "+" + secret)).
func Legacy(length int, secret []byte) []byte {
	if length <= 0 || len(secret) == 0 {
		return make([]byte, max(length, 0))
	}

	out := make([]byte, length)
	for i := range out {
		out[i] = secret[i%len(secret)]
	}

	return out
}
