// Package encoding implements arbitrary-base digit conversion.
//
// A single long-division routine, Rebase, serves every conversion hashpack needs:
// decimal to hex (and back) for integer payloads, and base 256 to an arbitrary
// output alphabet (and back) for the final token.
package encoding
