package canvas

import (
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/recopt/recopt/bridge"
	"github.com/recopt/recopt/record"
)

// FilePictureSource loads a persisted picture from a CBOR-encoded file.
// The exact on-disk picture format is an external collaborator's concern;
// this implementation reuses bridge's wire entry shape as a convenient
// concrete encoding rather than inventing a second one, since both are
// unspecified "structured message" contracts at this module's boundary.
type FilePictureSource struct{}

func (FilePictureSource) Load(path string) (*record.Stream, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("canvas: read picture %q: %w", path, err)
	}
	var wr bridge.WireRecord
	if err := cbor.Unmarshal(data, &wr); err != nil {
		return nil, fmt.Errorf("canvas: decode picture %q: %w", path, err)
	}
	s, err := bridge.Deserialize(&wr)
	if err != nil {
		return nil, fmt.Errorf("canvas: malformed picture %q: %w", path, err)
	}
	return s, nil
}

// SavePicture encodes s and writes it to path, for use by tests and the
// benchmark driver's sample-program generation.
func SavePicture(path string, s *record.Stream) error {
	data, err := cbor.Marshal(bridge.Serialize(s))
	if err != nil {
		return fmt.Errorf("canvas: encode picture: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("canvas: write picture %q: %w", path, err)
	}
	return nil
}

// MemoryPictureSource serves streams from an in-memory map, keyed by a
// caller-chosen name rather than a filesystem path. Useful in tests that
// want a PictureSource without touching disk.
type MemoryPictureSource map[string]*record.Stream

func (m MemoryPictureSource) Load(path string) (*record.Stream, error) {
	s, ok := m[path]
	if !ok {
		return nil, fmt.Errorf("canvas: no picture registered for %q", path)
	}
	return s, nil
}

var (
	_ PictureSource = FilePictureSource{}
	_ PictureSource = MemoryPictureSource(nil)
)
