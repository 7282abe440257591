// Package steamid - encoding.go classifies textual SteamIDs and decodes each
// accepted shape.
//
// # Classification
//
// Shapes are tested in a fixed, non-overlapping order:
//   - all ASCII digits: community number (fits 32 bits) or packed value
//   - ^STEAM_[0-5]:[01]:\d+$
//   - ^(\[[IiUMGAPCgTLca]:1:\d+\]|[IiUMGAPCgTLca]:1:\d+)$
//
// Anything else is ShapeUnknown. The patterns and the hex lookup table are
// built once at package init and are read-only afterwards.

package steamid

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// Shape identifies which textual form an input string has.
type Shape int

const (
	// ShapeUnknown matches no accepted form.
	ShapeUnknown Shape = iota

	// ShapeCommunityNumber is a bare integer that fits in 32 bits.
	ShapeCommunityNumber

	// ShapePacked is a bare integer that does not fit in 32 bits.
	ShapePacked

	// ShapeStandard is STEAM_X:Y:Z.
	ShapeStandard

	// ShapeBracket is [T:1:N] or T:1:N.
	ShapeBracket
)

// String returns a short name for the shape.
func (s Shape) String() string {
	switch s {
	case ShapeCommunityNumber:
		return "community"
	case ShapePacked:
		return "packed"
	case ShapeStandard:
		return "standard"
	case ShapeBracket:
		return "bracket"
	default:
		return "unknown"
	}
}

var (
	standardPattern = regexp.MustCompile(`^STEAM_([0-5]):([01]):(\d+)$`)
	bracketPattern  = regexp.MustCompile(`^(\[[IiUMGAPCgTLca]:1:\d+\]|[IiUMGAPCgTLca]:1:\d+)$`)
)

// MaxHexLen is the longest accepted hexadecimal input (16 nibbles).
const MaxHexLen = 16

// HexPrefix is the optional prefix accepted by ParseHex and written by
// Format("steamhex").
const HexPrefix = "steam:"

var (
	errInvalidHex  = errors.New("invalid hexadecimal encoding")
	errHexTooLong  = errors.New("hexadecimal string exceeds 16 characters")
	errHexEmpty    = errors.New("empty hexadecimal string")
	encodeHexTable = "0123456789abcdef"
	decodeHexTable [256]byte
)

func init() {
	for i := range decodeHexTable {
		decodeHexTable[i] = 0xFF
	}
	for i := 0; i < len(encodeHexTable); i++ {
		decodeHexTable[encodeHexTable[i]] = byte(i)
		if c := encodeHexTable[i]; c >= 'a' && c <= 'f' {
			decodeHexTable[c-32] = byte(i)
		}
	}
}

// Classify reports which accepted form s has without decoding it.
//
// Classification is purely syntactic: a ShapeCommunityNumber or
// ShapeStandard input can still fail Parse with an out-of-range error.
func Classify(s string) Shape {
	if isDigits(s) {
		if _, err := strconv.ParseUint(s, 10, 32); err == nil {
			return ShapeCommunityNumber
		}
		return ShapePacked
	}
	if standardPattern.MatchString(s) {
		return ShapeStandard
	}
	if bracketPattern.MatchString(s) {
		return ShapeBracket
	}
	return ShapeUnknown
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func decodeCommunityNumber(s string) (SteamID, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, newRangeError(s, RuleOutOfRange32, 0)
	}
	return fromCommunityNumber(s, n)
}

func decodePacked(s string) (SteamID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		// Digits only, so the only possible failure is overflow.
		return 0, newRangeError(s, RuleOutOfRange64, 0)
	}
	return fromPacked(s, v)
}

// decodeStandard packs STEAM_X:Y:Z. The universe digit X is ignored.
func decodeStandard(s string) (SteamID, error) {
	m := standardPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, newFormatError(s)
	}
	typeBit := uint64(m[2][0] - '0')
	account, err := strconv.ParseUint(m[3], 10, 64)
	if err != nil || account > MaxAccountNumber {
		return 0, newRangeError(s, RuleOutOfRange64, account)
	}
	return fromPacked(s, publicBits|account<<1|typeBit)
}

// decodeBracket reads the community number from [T:1:N] or T:1:N.
func decodeBracket(s string) (SteamID, error) {
	if !bracketPattern.MatchString(s) {
		return 0, newFormatError(s)
	}
	body := strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	segment := body[strings.LastIndexByte(body, ':')+1:]
	n, err := strconv.ParseUint(segment, 10, 32)
	if err != nil {
		return 0, newRangeError(s, RuleOutOfRange32, 0)
	}
	return fromCommunityNumber(s, n)
}

// ParseHex parses a hexadecimal packed value, with or without the "steam:"
// prefix. Upper and lower case digits are accepted.
//
// Example:
//
//	id, err := steamid.ParseHex("steam:11000011336c479")
func ParseHex(s string) (SteamID, error) {
	v, err := decodeHex(strings.TrimPrefix(s, HexPrefix))
	switch {
	case errors.Is(err, errHexTooLong):
		return 0, newRangeError(s, RuleOutOfRange64, 0)
	case err != nil:
		return 0, newFormatError(s)
	}
	return fromPacked(s, v)
}

// encodeHex writes v as lowercase hexadecimal, 4 bits per character.
func encodeHex(v uint64) string {
	if v == 0 {
		return "0"
	}

	b := make([]byte, 0, MaxHexLen)
	for v > 0 {
		b = append(b, encodeHexTable[v&0x0F])
		v >>= 4
	}

	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}

	return string(b)
}

// decodeHex reads at most 16 hex digits; 16 nibbles cannot overflow uint64.
func decodeHex(s string) (uint64, error) {
	if s == "" {
		return 0, errHexEmpty
	}
	if len(s) > MaxHexLen {
		return 0, errHexTooLong
	}

	var v uint64
	for i := 0; i < len(s); i++ {
		d := decodeHexTable[s[i]]
		if d == 0xFF {
			return 0, errInvalidHex
		}
		v = v<<4 | uint64(d)
	}
	return v, nil
}
