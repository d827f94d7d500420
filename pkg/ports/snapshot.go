package ports

import (
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/aretw0/blockscript/pkg/block"
)

var snapshotEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("ports: failed to create CBOR enc mode: %v", err))
	}
	snapshotEncMode = em
}

// snapshot is the stored form of a record's metadata.
type snapshot struct {
	Stats     block.Stats `cbor:"1,keyasint"`
	UpdatedAt int64       `cbor:"2,keyasint"`
}

// MarshalSnapshot encodes the statistics and timestamp of rec as canonical
// CBOR. Equal records always produce identical bytes.
func MarshalSnapshot(rec ScriptRecord) ([]byte, error) {
	s := snapshot{Stats: rec.Stats}
	if !rec.UpdatedAt.IsZero() {
		s.UpdatedAt = rec.UpdatedAt.UnixNano()
	}
	return snapshotEncMode.Marshal(s)
}

// UnmarshalSnapshot decodes a snapshot into rec. A zero timestamp stays zero.
func UnmarshalSnapshot(data []byte, rec *ScriptRecord) error {
	var s snapshot
	if err := cbor.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("ports: unmarshal snapshot: %w", err)
	}
	rec.Stats = s.Stats
	rec.UpdatedAt = time.Time{}
	if s.UpdatedAt != 0 {
		rec.UpdatedAt = time.Unix(0, s.UpdatedAt).UTC()
	}
	return nil
}
