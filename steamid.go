// Package steamid provides a validated codec for the 64-bit packed player
// identifier ("SteamID") used by community game-statistics services.
//
// # Overview
//
// A SteamID is a single uint64 that can be written in several textual forms:
//   - Community number: "322356345" (bare integer that fits in 32 bits)
//   - Packed 64-bit:    "76561198282622073"
//   - Standard:         "STEAM_1:1:161178172"
//   - Bracketed:        "[U:1:322356345]" or "U:1:322356345"
//
// All forms parse into the same canonical packed value and can be rendered
// back losslessly.
//
// # ID Structure (64 bits)
//
//	┌──────────────┬──────────┬────────────────────┬───────────────────────────────┬────────┐
//	│   8 bits:    │  4 bits: │     20 bits:       │          31 bits:             │ 1 bit: │
//	│   Universe   │  Type    │     Instance       │       Account Number          │ Parity │
//	│   (0-5)      │  (0-10)  │                    │                               │ (0-1)  │
//	└──────────────┴──────────┴────────────────────┴───────────────────────────────┴────────┘
//	 63         56  55     52  51               32  31                           1    0
//
// Within this ecosystem bits 32 and 52 are always set and the universe is
// always Public, so every valid value lies in (Offset, Max].
//
// # Validation
//
// Every construction path (Parse, New, FromCommunityNumber, ParseHex and the
// JSON/text/binary/SQL unmarshalers) checks the bounds and fails with a
// *ParseError instead of clamping. Values that pass construction are safe to
// pass to every accessor.
//
// # Concurrency
//
// SteamID is an immutable value type. The package holds no mutable state:
// patterns and lookup tables are built once during package initialization.
//
// # Usage
//
//	id, err := steamid.Parse("STEAM_0:1:161178172")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(id)          // 76561198282622073
//	fmt.Println(id.Steam2()) // STEAM_1:1:161178172
//	fmt.Println(id.Steam3()) // [U:1:322356345]
package steamid

import (
	"math"
	"strconv"
)

const (
	// Offset is the packed value of community number zero. Every valid SteamID
	// is strictly greater than Offset.
	Offset uint64 = 76561197960265728

	// Max is the largest valid packed value (Offset + MaxUint32).
	Max uint64 = 76561202255233023

	// MaxAccountNumber is the largest account number representable in the
	// standard form (31 bits).
	MaxAccountNumber = 1<<31 - 1

	// MaxCommunityNumber is the largest community number (32 bits).
	MaxCommunityNumber = math.MaxUint32

	// publicBits is the fixed upper pattern of every identifier built from
	// the standard form: Public universe, bit 52 and bit 32.
	publicBits = uint64(UniversePublic)<<UniverseShift | 1<<AccountTypeShift | 1<<InstanceShift
)

// SteamID is the canonical packed 64-bit player identifier.
//
// The zero value is not a valid identifier; it is what an unset struct field
// holds. Use IsValid to tell the two apart.
//
// Example:
//
//	id := steamid.MustParse("[U:1:322356345]")
//	fmt.Printf("%d %s\n", id.AccountNumber(), id.Steam2())
type SteamID uint64

// ============================================================================
// Constructors
// ============================================================================

// New validates a packed 64-bit value.
//
// Returns a *ParseError with RuleOutOfRange64 when packed is not in
// (Offset, Max].
//
// Example:
//
//	id, err := steamid.New(76561198282622073)
func New(packed uint64) (SteamID, error) {
	return fromPacked(strconv.FormatUint(packed, 10), packed)
}

// FromCommunityNumber builds a SteamID from a community number, the value used
// by the bracketed form.
//
// Only zero is rejected: every other uint32 maps into (Offset, Max].
func FromCommunityNumber(n uint32) (SteamID, error) {
	return fromCommunityNumber(strconv.FormatUint(uint64(n), 10), uint64(n))
}

// Parse converts any accepted textual form into a SteamID.
//
// The input is classified first (see Classify) and then decoded by exactly
// one rule:
//   - ShapeCommunityNumber: value + Offset
//   - ShapePacked: value validated as-is
//   - ShapeStandard: STEAM_X:Y:Z packed with a Public universe
//   - ShapeBracket: last segment used as a community number
//
// A bare integer that fits in 32 bits is always a community number.
//
// Errors are *ParseError values carrying the original input.
//
// Example:
//
//	id, err := steamid.Parse("STEAM_1:1:161178172")
//	id, err := steamid.Parse("[U:1:322356345]")
//	id, err := steamid.Parse("76561198282622073")
func Parse(s string) (SteamID, error) {
	switch Classify(s) {
	case ShapeCommunityNumber:
		return decodeCommunityNumber(s)
	case ShapePacked:
		return decodePacked(s)
	case ShapeStandard:
		return decodeStandard(s)
	case ShapeBracket:
		return decodeBracket(s)
	default:
		return 0, newFormatError(s)
	}
}

// MustParse is like Parse but panics on error.
//
// Intended for tests and package-level values built from literals.
func MustParse(s string) SteamID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// fromPacked is the single bounds check every construction path ends in.
func fromPacked(input string, packed uint64) (SteamID, error) {
	if packed <= Offset || packed > Max {
		return 0, newRangeError(input, RuleOutOfRange64, packed)
	}
	return SteamID(packed), nil
}

// fromCommunityNumber converts a community number and applies the 32-bit rule.
func fromCommunityNumber(input string, n uint64) (SteamID, error) {
	if n > MaxCommunityNumber {
		return 0, newRangeError(input, RuleOutOfRange32, n)
	}
	packed := n + Offset
	if packed <= Offset || packed > Max {
		return 0, newRangeError(input, RuleOutOfRange32, n)
	}
	return SteamID(packed), nil
}
