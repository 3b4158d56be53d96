package contract

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"

	"guild_dao/sdk"
)

// -----------------------------------------------------------------------------
// Record persistence helpers
// -----------------------------------------------------------------------------

// saveRecord marshals any record to JSON and writes it under key.
func saveRecord(st sdk.State, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	st.Set(key, string(b))
	return nil
}

// loadRecord reads and unmarshals a record; ok is false when absent.
func loadRecord(st sdk.State, key string, v any) (bool, error) {
	ptr := st.Get(key)
	if ptr == nil {
		return false, nil
	}
	if err := json.Unmarshal([]byte(*ptr), v); err != nil {
		return false, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return true, nil
}

// -----------------------------------------------------------------------------
// Counter operations
// -----------------------------------------------------------------------------

// getCount reads the string counter under the key and defaults to zero.
func getCount(st sdk.State, key string) uint64 {
	ptr := st.Get(key)
	if ptr == nil || *ptr == "" {
		return 0
	}
	n, err := strconv.ParseUint(*ptr, 10, 64)
	if err != nil {
		// counters are only ever written by setCount; anything else under
		// the key reads as zero
		return 0
	}
	return n
}

// setCount stores uint64 counters back as decimal strings for the host kv.
func setCount(st sdk.State, key string, n uint64) {
	st.Set(key, strconv.FormatUint(n, 10))
}

// -----------------------------------------------------------------------------
// Amount encoding
// -----------------------------------------------------------------------------

// Amounts are 256-bit unsigned integers stored as decimal strings, which
// keeps records human-readable in state dumps and round-trips exactly.

func encodeAmount(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func decodeAmount(s string) *big.Int {
	if s == "" {
		return new(big.Int)
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return new(big.Int)
	}
	return v
}
