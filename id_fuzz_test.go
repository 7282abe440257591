package steamid

import (
	"encoding/json"
	"errors"
	"testing"
)

// FuzzIDComponents checks the relationship between the derived numbers for
// every community number.
func FuzzIDComponents(f *testing.F) {
	seeds := []uint32{1, 2, 3, testCommunity, 158416176, 1<<31 - 1, 1 << 31, 1<<32 - 1}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, n uint32) {
		id, err := FromCommunityNumber(n)
		if n == 0 {
			if !errors.Is(err, ErrOutOfRange) {
				t.Errorf("FromCommunityNumber(0) error = %v, want ErrOutOfRange", err)
			}
			return
		}
		if err != nil {
			t.Fatalf("FromCommunityNumber(%d) error = %v", n, err)
		}

		if id.CommunityNumber() != n {
			t.Errorf("CommunityNumber() = %d, want %d", id.CommunityNumber(), n)
		}

		typ := uint32(id.AccountType())
		if typ != n&1 {
			t.Errorf("AccountType() = %d, want parity %d", typ, n&1)
		}
		if id.AccountNumber() != n>>1 {
			t.Errorf("AccountNumber() = %d, want %d", id.AccountNumber(), n>>1)
		}
		if id.AccountNumber() > MaxAccountNumber {
			t.Errorf("AccountNumber() = %d exceeds 31 bits", id.AccountNumber())
		}
	})
}

// FuzzNew tests that New accepts exactly the (Offset, Max] window.
func FuzzNew(f *testing.F) {
	seeds := []uint64{0, 1, Offset - 1, Offset, Offset + 1, testPacked, Max, Max + 1, 1<<64 - 1}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, v uint64) {
		id, err := New(v)
		valid := v > Offset && v <= Max
		if valid {
			if err != nil {
				t.Fatalf("New(%d) error = %v", v, err)
			}
			if id.Uint64() != v {
				t.Errorf("New(%d) = %d", v, id)
			}
			return
		}

		parseErr, ok := GetParseError(err)
		if !ok {
			t.Fatalf("New(%d) error = %v, want *ParseError", v, err)
		}
		if parseErr.Rule != RuleOutOfRange64 {
			t.Errorf("New(%d) rule = %v, want %v", v, parseErr.Rule, RuleOutOfRange64)
		}
	})
}

// FuzzIDJSON tests JSON marshaling/unmarshaling round-trips.
func FuzzIDJSON(f *testing.F) {
	seeds := []uint32{1, testCommunity, 1<<32 - 1}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, n uint32) {
		if n == 0 {
			return
		}
		id := SteamID(uint64(n) + Offset)

		data, err := json.Marshal(id)
		if err != nil {
			t.Fatalf("json.Marshal() failed for %d: %v", id, err)
		}

		var decoded SteamID
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("json.Unmarshal() failed for %d (JSON: %s): %v", id, data, err)
		}
		if decoded != id {
			t.Errorf("JSON round-trip failed: original=%d, decoded=%d (JSON: %s)", id, decoded, data)
		}
	})
}

// FuzzIDSharding tests that shard assignment stays in range and is stable.
func FuzzIDSharding(f *testing.F) {
	f.Add(testCommunity, uint32(16))
	f.Add(uint32(1), uint32(1))
	f.Add(uint32(1<<32-1), uint32(0))

	f.Fuzz(func(t *testing.T, n uint32, shards uint32) {
		if n == 0 {
			return
		}
		id := SteamID(uint64(n) + Offset)

		shard := id.Shard(shards)
		if shards == 0 {
			if shard != 0 {
				t.Errorf("Shard(0) = %d, want 0", shard)
			}
			return
		}
		if shard >= shards {
			t.Errorf("Shard(%d) = %d, out of range", shards, shard)
		}
		if shard != id.Shard(shards) {
			t.Error("Shard() is not deterministic")
		}
	})
}

// FuzzIntBytes tests binary encoding round-trips.
func FuzzIntBytes(f *testing.F) {
	seeds := []uint64{0, Offset, testPacked, Max, 1<<64 - 1}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, v uint64) {
		id := SteamID(v)
		data, err := id.MarshalBinary()
		if err != nil {
			t.Fatalf("MarshalBinary() error = %v", err)
		}
		if len(data) != 8 {
			t.Fatalf("MarshalBinary() length = %d, want 8", len(data))
		}

		var decoded SteamID
		err = decoded.UnmarshalBinary(data)
		if id.IsValid() != (err == nil) {
			t.Errorf("UnmarshalBinary(%x) error = %v, valid = %v", data, err, id.IsValid())
		}
		if err == nil && decoded != id {
			t.Errorf("binary round-trip failed: original=%d, decoded=%d", id, decoded)
		}
	})
}
