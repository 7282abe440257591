// Package steamid - id.go provides field extraction, rendering and the
// serialization boundary (JSON, text, binary, SQL) for SteamID.

package steamid

import (
	"database/sql/driver"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// ============================================================================
// Basic Conversions
// ============================================================================

// Uint64 returns the raw packed value.
func (id SteamID) Uint64() uint64 {
	return uint64(id)
}

// Int64 returns the packed value as an int64. Valid values are below 2^63, so
// the conversion is lossless.
func (id SteamID) Int64() int64 {
	return int64(id)
}

// String returns the 64-bit decimal form, e.g. "76561198282622073".
//
// This implements fmt.Stringer.
func (id SteamID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// IsValid reports whether id lies in (Offset, Max]. Values produced by this
// package's constructors always do; the zero value does not.
func (id SteamID) IsValid() bool {
	return uint64(id) > Offset && uint64(id) <= Max
}

// ============================================================================
// Field Extraction
// ============================================================================

// Universe returns the account universe stored in the top byte.
//
// Panics with *InvariantError if the byte is outside the enumeration, which
// construction rules out.
func (id SteamID) Universe() Universe {
	u := uint64(id) >> UniverseShift
	if u > uint64(UniverseReleaseCandidate) {
		panic(&InvariantError{Field: "universe", Value: u, Packed: uint64(id)})
	}
	return Universe(u)
}

// AccountType returns the account type carried by the low (parity) bit:
// AccountTypeInvalid for 0, AccountTypeIndividual for 1. This is the value
// written as Y in STEAM_X:Y:Z.
//
// Panics with *InvariantError if the value is outside the enumeration.
func (id SteamID) AccountType() AccountType {
	t := uint64(id) & parityMask
	if t > uint64(AccountTypeAnonUser) {
		panic(&InvariantError{Field: "account_type", Value: t, Packed: uint64(id)})
	}
	return AccountType(t)
}

// EncodedAccountType returns the 4-bit type field at bits 52-55. For every
// valid identifier this is AccountTypeIndividual.
func (id SteamID) EncodedAccountType() AccountType {
	t := (uint64(id) >> AccountTypeShift) & accountTypeMask
	if t > uint64(AccountTypeAnonUser) {
		panic(&InvariantError{Field: "encoded_account_type", Value: t, Packed: uint64(id)})
	}
	return AccountType(t)
}

// Instance returns the 20-bit instance field at bits 32-51.
func (id SteamID) Instance() uint32 {
	return uint32((uint64(id) >> InstanceShift) & instanceMask)
}

// AccountNumber returns ((packed - Offset) - AccountType) / 2, the Z in
// STEAM_X:Y:Z.
//
// Not the same number as CommunityNumber.
func (id SteamID) AccountNumber() uint32 {
	return uint32(((uint64(id) - Offset) - uint64(id.AccountType())) / 2)
}

// CommunityNumber returns ((AccountNumber + AccountType) * 2) - AccountType,
// the N in [U:1:N] and the value accepted by FromCommunityNumber.
func (id SteamID) CommunityNumber() uint32 {
	t := uint64(id.AccountType())
	return uint32((uint64(id.AccountNumber())+t)*2 - t)
}

// ============================================================================
// Rendering
// ============================================================================

// Steam2 returns the standard form "STEAM_1:Y:Z". The universe digit is always
// 1 regardless of the stored universe.
//
// Example:
//
//	steamid.MustParse("STEAM_0:0:79208088").Steam2() // "STEAM_1:0:79208088"
func (id SteamID) Steam2() string {
	b := make([]byte, 0, 24)
	b = append(b, "STEAM_1:"...)
	b = strconv.AppendUint(b, uint64(id.AccountType()), 10)
	b = append(b, ':')
	b = strconv.AppendUint(b, uint64(id.AccountNumber()), 10)
	return string(b)
}

// Steam3 returns the bracketed form "[U:1:N]" using the community number.
func (id SteamID) Steam3() string {
	b := make([]byte, 0, 16)
	b = append(b, "[U:1:"...)
	b = strconv.AppendUint(b, uint64(id.CommunityNumber()), 10)
	b = append(b, ']')
	return string(b)
}

// Hex returns the packed value in lowercase hexadecimal.
func (id SteamID) Hex() string {
	return encodeHex(uint64(id))
}

// Format renders id in the named form. The caller picks the numeric view;
// "community" and "account" are different numbers.
//
// Supported formats:
//   - "steam2", "standard": STEAM_1:Y:Z
//   - "steam3", "bracket": [U:1:N]
//   - "community", "32": community number N
//   - "account": account number Z (does not parse back to the same id)
//   - "hex", "x": lowercase hexadecimal
//   - "steamhex": hexadecimal with the "steam:" prefix
//   - "steam64", "64", "decimal", "": 64-bit decimal (default)
//
// Example:
//
//	id.Format("steam3")    // "[U:1:322356345]"
//	id.Format("community") // "322356345"
//	id.Format("account")   // "161178172"
func (id SteamID) Format(format string) string {
	switch format {
	case "steam2", "standard":
		return id.Steam2()
	case "steam3", "bracket":
		return id.Steam3()
	case "community", "32":
		return strconv.FormatUint(uint64(id.CommunityNumber()), 10)
	case "account":
		return strconv.FormatUint(uint64(id.AccountNumber()), 10)
	case "hex", "x":
		return id.Hex()
	case "steamhex":
		return HexPrefix + id.Hex()
	default:
		return id.String()
	}
}

// ============================================================================
// Comparison
// ============================================================================

// Equal reports whether both identifiers have the same packed value.
func (id SteamID) Equal(other SteamID) bool {
	return id == other
}

// Compare returns -1, 0 or 1 ordering by packed value.
func (id SteamID) Compare(other SteamID) int {
	if id < other {
		return -1
	}
	if id > other {
		return 1
	}
	return 0
}

// Shard maps id onto one of numShards partitions by community number.
// Returns 0 when numShards is 0.
//
// Example:
//
//	table := fmt.Sprintf("players_%d", id.Shard(16))
func (id SteamID) Shard(numShards uint32) uint32 {
	if numShards == 0 {
		return 0
	}
	return id.CommunityNumber() % numShards
}

// ============================================================================
// Binary Encoding
// ============================================================================

// IntBytes returns the packed value as 8 big-endian bytes.
func (id SteamID) IntBytes() [8]byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(id))
	return b
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (id SteamID) MarshalBinary() ([]byte, error) {
	b := id.IntBytes()
	return b[:], nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. The decoded value is
// bounds-checked like New. Input that is not exactly 8 bytes fails with
// RuleUnrecognizedFormat, its hex encoding as the error input.
func (id *SteamID) UnmarshalBinary(data []byte) error {
	if len(data) != 8 {
		return newFormatError(hex.EncodeToString(data))
	}
	v, err := New(binary.BigEndian.Uint64(data))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// ============================================================================
// JSON Marshaling
// ============================================================================

// MarshalJSON implements json.Marshaler.
//
// The 64-bit value is written as a JSON string: it exceeds 2^53 and would lose
// precision as a JavaScript number.
//
// Example:
//
//	type Player struct {
//	    SteamID steamid.SteamID `json:"steamid"`
//	}
//	// Marshals as: {"steamid":"76561198282622073"}
func (id SteamID) MarshalJSON() ([]byte, error) {
	b := make([]byte, 0, 20)
	b = append(b, '"')
	b = strconv.AppendUint(b, uint64(id), 10)
	b = append(b, '"')
	return b, nil
}

// UnmarshalJSON implements json.Unmarshaler.
//
// Accepts a JSON number (a community number or a packed value) or a JSON
// string in any form Parse accepts. null leaves id unchanged. A number in
// fraction or exponent form is accepted when its value is an exact integer,
// so 322356345.0 and 7.6561198282622073e16 decode like their plain digits.
//
// Example:
//
//	json.Unmarshal([]byte(`"STEAM_0:1:161178172"`), &id)
//	json.Unmarshal([]byte(`76561198282622073`), &id)
//	json.Unmarshal([]byte(`322356345`), &id)
func (id *SteamID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	raw := string(data)
	switch {
	case len(data) > 0 && data[0] == '"':
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("invalid steamid JSON %s: %w", data, err)
		}
	case strings.ContainsAny(raw, ".eE"):
		digits, err := integralDigits(raw)
		if err != nil {
			return err
		}
		raw = digits
	}

	v, err := Parse(raw)
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// integralDigits rewrites a JSON number in fraction or exponent form as plain
// decimal digits. The value must be a non-negative integer below 2^64.
func integralDigits(number string) (string, error) {
	f, err := strconv.ParseFloat(number, 64)
	switch {
	case errors.Is(err, strconv.ErrRange) && f != 0, err == nil && f >= math.MaxUint64:
		return "", newRangeError(number, RuleOutOfRange64, 0)
	case err != nil, f < 0:
		return "", newFormatError(number)
	}

	r, ok := new(big.Rat).SetString(number)
	if !ok || !r.IsInt() || !r.Num().IsUint64() {
		return "", newFormatError(number)
	}
	return r.Num().String(), nil
}

// ============================================================================
// Text Marshaling
// ============================================================================

// MarshalText implements encoding.TextMarshaler with the 64-bit decimal form.
func (id SteamID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Any form accepted by
// Parse is allowed, so config files and query strings may use STEAM_X:Y:Z.
func (id *SteamID) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// ============================================================================
// SQL Database Integration
// ============================================================================

// Scan implements sql.Scanner.
//
// Supported column values:
//   - int64: packed value (BIGINT / INTEGER columns)
//   - []byte, string: any form accepted by Parse (TEXT columns)
//   - nil: zero SteamID
//
// Example:
//
//	var id steamid.SteamID
//	err := db.QueryRow("SELECT steamid FROM players WHERE name = ?", name).Scan(&id)
func (id *SteamID) Scan(value interface{}) error {
	if value == nil {
		*id = 0
		return nil
	}

	var (
		v   SteamID
		err error
	)
	switch src := value.(type) {
	case int64:
		if src < 0 {
			return newRangeError(strconv.FormatInt(src, 10), RuleOutOfRange64, 0)
		}
		v, err = New(uint64(src))
	case []byte:
		v, err = Parse(string(src))
	case string:
		v, err = Parse(src)
	default:
		return fmt.Errorf("cannot scan %T into SteamID", value)
	}
	if err != nil {
		return err
	}

	*id = v
	return nil
}

// Value implements driver.Valuer, storing the packed value as an int64.
//
// Recommended schema:
//
//	CREATE TABLE players (steamid INTEGER PRIMARY KEY, ...);
func (id SteamID) Value() (driver.Value, error) {
	return int64(id), nil
}
