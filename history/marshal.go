package history

import "github.com/vmihailenco/msgpack/v5"

// MarshalSnapshots encodes every snapshot recorded so far as msgpack,
// letting a recorded run be written out and later reloaded without pandas.
func (h *History) MarshalSnapshots() ([]byte, error) {
	return msgpack.Marshal(h.snapshots)
}

// UnmarshalSnapshots decodes a []Snapshot previously produced by
// MarshalSnapshots.
func UnmarshalSnapshots(data []byte) ([]Snapshot, error) {
	var snapshots []Snapshot
	if err := msgpack.Unmarshal(data, &snapshots); err != nil {
		return nil, err
	}
	return snapshots, nil
}
