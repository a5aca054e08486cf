package ratelimit

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// EncodeStamp renders a Stamp into its wire format: a JSON object mapping
// decimal timestamp strings to counts. Entry order in the payload carries
// no meaning; decoding re-sorts.
func EncodeStamp(stamp *Stamp) ([]byte, error) {
	counts := make(map[string]uint64, stamp.Len())
	for ts, count := range stamp.Counts() {
		counts[strconv.FormatInt(ts, 10)] = count
	}

	payload, err := json.Marshal(counts)
	if err != nil {
		return nil, fmt.Errorf("encode window record: %w", err)
	}

	return payload, nil
}

// DecodeStamp parses a wire-format payload back into a Stamp. Payloads
// that are not a valid timestamp/count object are reported as
// ErrCorruptRecord; the caller decides whether to fail open or closed.
func DecodeStamp(payload []byte) (*Stamp, error) {
	var raw map[string]uint64
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptRecord, err)
	}

	counts := make(map[int64]uint64, len(raw))

	for key, count := range raw {
		ts, err := strconv.ParseInt(key, 10, 64)
		if err != nil || ts < 0 {
			return nil, fmt.Errorf("%w: invalid timestamp %q", ErrCorruptRecord, key)
		}

		counts[ts] = count
	}

	return NewStamp(counts), nil
}
