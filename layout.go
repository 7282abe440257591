// Package steamid - layout.go describes the bit allocation of a packed SteamID
// and the enumerations stored in its fields.

package steamid

import "fmt"

// Bit widths and positions of the packed fields.
const (
	// AccountIDBits is the width of the low field (account number + parity).
	AccountIDBits = 32

	// InstanceBits is the width of the instance field.
	InstanceBits = 20

	// AccountTypeBits is the width of the encoded account type field.
	AccountTypeBits = 4

	// UniverseBits is the width of the universe field.
	UniverseBits = 8

	// InstanceShift positions the instance field above the account id.
	InstanceShift = AccountIDBits // 32

	// AccountTypeShift positions the encoded account type above the instance.
	AccountTypeShift = InstanceShift + InstanceBits // 52

	// UniverseShift positions the universe in the top byte.
	UniverseShift = AccountTypeShift + AccountTypeBits // 56

	accountIDMask   = 1<<AccountIDBits - 1
	instanceMask    = 1<<InstanceBits - 1
	accountTypeMask = 1<<AccountTypeBits - 1
	parityMask      = 1
)

// Universe is the top-level namespace of an account.
type Universe uint8

const (
	UniverseIndividual Universe = iota
	UniversePublic
	UniverseBeta
	UniverseInternal
	UniverseDev
	UniverseReleaseCandidate
)

// String returns the universe name.
func (u Universe) String() string {
	switch u {
	case UniverseIndividual:
		return "Individual"
	case UniversePublic:
		return "Public"
	case UniverseBeta:
		return "Beta"
	case UniverseInternal:
		return "Internal"
	case UniverseDev:
		return "Dev"
	case UniverseReleaseCandidate:
		return "ReleaseCandidate"
	default:
		return fmt.Sprintf("Universe(%d)", uint8(u))
	}
}

// Valid reports whether u is one of the six defined universes.
func (u Universe) Valid() bool {
	return u <= UniverseReleaseCandidate
}

// AccountType is the role classification of an account.
type AccountType uint8

const (
	AccountTypeInvalid AccountType = iota
	AccountTypeIndividual
	AccountTypeMultiseat
	AccountTypeGameServer
	AccountTypeAnonGameServer
	AccountTypePending
	AccountTypeContentServer
	AccountTypeClan
	AccountTypeChat
	AccountTypeP2PSuperSeeder
	AccountTypeAnonUser
)

var accountTypeNames = [...]string{
	AccountTypeInvalid:        "Invalid",
	AccountTypeIndividual:     "Individual",
	AccountTypeMultiseat:      "Multiseat",
	AccountTypeGameServer:     "GameServer",
	AccountTypeAnonGameServer: "AnonGameServer",
	AccountTypePending:        "Pending",
	AccountTypeContentServer:  "ContentServer",
	AccountTypeClan:           "Clan",
	AccountTypeChat:           "Chat",
	AccountTypeP2PSuperSeeder: "P2PSuperSeeder",
	AccountTypeAnonUser:       "AnonUser",
}

// String returns the account type name.
func (t AccountType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("AccountType(%d)", uint8(t))
	}
	return accountTypeNames[t]
}

// Valid reports whether t is one of the eleven defined account types.
func (t AccountType) Valid() bool {
	return t <= AccountTypeAnonUser
}

// Char returns the letter used for t in the bracketed form, or 0 when the type
// has no letter (P2PSuperSeeder and out-of-range values).
//
// Chat accounts have three letters on input (T, L, c); Char returns 'T'.
func (t AccountType) Char() byte {
	switch t {
	case AccountTypeInvalid:
		return 'I'
	case AccountTypeIndividual:
		return 'U'
	case AccountTypeMultiseat:
		return 'M'
	case AccountTypeGameServer:
		return 'G'
	case AccountTypeAnonGameServer:
		return 'A'
	case AccountTypePending:
		return 'P'
	case AccountTypeContentServer:
		return 'C'
	case AccountTypeClan:
		return 'g'
	case AccountTypeChat:
		return 'T'
	case AccountTypeAnonUser:
		return 'a'
	default:
		return 0
	}
}

// AccountTypeFromChar maps a bracketed-form letter to its account type.
func AccountTypeFromChar(c byte) (AccountType, bool) {
	switch c {
	case 'I', 'i':
		return AccountTypeInvalid, true
	case 'U':
		return AccountTypeIndividual, true
	case 'M':
		return AccountTypeMultiseat, true
	case 'G':
		return AccountTypeGameServer, true
	case 'A':
		return AccountTypeAnonGameServer, true
	case 'P':
		return AccountTypePending, true
	case 'C':
		return AccountTypeContentServer, true
	case 'g':
		return AccountTypeClan, true
	case 'T', 'L', 'c':
		return AccountTypeChat, true
	case 'a':
		return AccountTypeAnonUser, true
	default:
		return AccountTypeInvalid, false
	}
}
