package format

type (
	ValueType       uint8
	CompressionType uint8
	ChecksumMode    uint8
	KeystreamMode   uint8
)

// Value types in the order encoders are tried. The numeric value is NOT the
// wire code: wire codes are assigned per secret by the type permutation.
const (
	TypeUnused   ValueType = 0x0 // TypeUnused is reserved and never matches a value.
	TypeInteger  ValueType = 0x1 // TypeInteger represents non-negative decimal integers and booleans.
	TypeNegative ValueType = 0x2 // TypeNegative represents negative decimal integers.
	TypeFloat    ValueType = 0x3 // TypeFloat represents short decimals packed as digits.
	TypeReal     ValueType = 0x4 // TypeReal represents raw IEEE-754 doubles.
	TypeHex      ValueType = 0x5 // TypeHex represents lowercase hex strings.
	TypeIP       ValueType = 0x6 // TypeIP represents IPv4 and IPv6 addresses.
	TypeString   ValueType = 0x7 // TypeString represents arbitrary compressed text.

	CompressionDeflate CompressionType = 0x1 // CompressionDeflate represents raw deflate (canonical).
	CompressionNone    CompressionType = 0x2 // CompressionNone represents no compression.
	CompressionZstd    CompressionType = 0x3 // CompressionZstd represents Zstandard compression.
	CompressionS2      CompressionType = 0x4 // CompressionS2 represents S2 compression.
	CompressionLZ4     CompressionType = 0x5 // CompressionLZ4 represents LZ4 compression.

	ChecksumByte ChecksumMode = 0x1 // ChecksumByte folds into 8 bits.
	ChecksumWord ChecksumMode = 0x2 // ChecksumWord folds into 16 bits.

	KeystreamKDF    KeystreamMode = 0x1 // KeystreamKDF is the iterated-MD5 keystream.
	KeystreamLegacy KeystreamMode = 0x2 // KeystreamLegacy repeats the secret bytes.
)

// ValueTypes lists every assignable value type in encoder order.
var ValueTypes = [...]ValueType{
	TypeInteger, TypeNegative, TypeFloat, TypeReal, TypeHex, TypeIP, TypeString,
}

func (t ValueType) String() string {
	switch t {
	case TypeUnused:
		return "Unused"
	case TypeInteger:
		return "Integer"
	case TypeNegative:
		return "Negative"
	case TypeFloat:
		return "Float"
	case TypeReal:
		return "Real"
	case TypeHex:
		return "Hex"
	case TypeIP:
		return "IP"
	case TypeString:
		return "String"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionDeflate:
		return "Deflate"
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType maps a case-sensitive lowercase name to a CompressionType.
func ParseCompressionType(name string) (CompressionType, bool) {
	switch name {
	case "deflate", "":
		return CompressionDeflate, true
	case "none":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}

func (m ChecksumMode) String() string {
	switch m {
	case ChecksumByte:
		return "Byte"
	case ChecksumWord:
		return "Word"
	default:
		return "Unknown"
	}
}

func (m KeystreamMode) String() string {
	switch m {
	case KeystreamKDF:
		return "KDF"
	case KeystreamLegacy:
		return "Legacy"
	default:
		return "Unknown"
	}
}
