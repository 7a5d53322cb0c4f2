package eval

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

const (
	weightMagic   = 0x45444158 // "EDAX"
	weightVersion = 1
)

type weightHeader struct {
	Magic    uint32
	Version  uint32
	_        uint32 // reserved, written as zero; Checksum follows at byte offset 12
	Checksum uint64
}

// Weights holds one loaded table per entry of Patterns. Beyond the
// header's magic, version and checksum, the payload is opaque — spec.md
// §6: "the core validates... otherwise treats the blob as opaque."
type Weights struct {
	Tables [][]int16
}

// LoadWeights reads and validates an evaluation-weight blob from disk.
func LoadWeights(path string) (*Weights, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open weights file: %w", err)
	}
	defer f.Close()
	return LoadWeightsFromReader(f)
}

// LoadWeightsFromReader is LoadWeights against an already-open reader,
// split out the way the teacher splits file- and reader-based loaders.
func LoadWeightsFromReader(r io.Reader) (*Weights, error) {
	var hdr weightHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("failed to read weights header: %w", err)
	}
	if hdr.Magic != weightMagic {
		return nil, fmt.Errorf("%w: bad magic %#x", ErrBadWeights, hdr.Magic)
	}
	if hdr.Version != weightVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadWeights, hdr.Version)
	}

	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read weights payload: %w", err)
	}
	// xxhash catches truncation or bit-rot that the magic/version check
	// alone would miss, without this package needing to know anything
	// about what the payload actually encodes.
	if got := xxhash.Sum64(payload); got != hdr.Checksum {
		return nil, fmt.Errorf("%w: checksum mismatch: expected %x, got %x", ErrBadWeights, hdr.Checksum, got)
	}

	w := &Weights{Tables: make([][]int16, len(Patterns))}
	buf := bytes.NewReader(payload)
	for i, p := range Patterns {
		w.Tables[i] = make([]int16, pow3(len(p.Squares)))
		if err := binary.Read(buf, binary.LittleEndian, w.Tables[i]); err != nil {
			return nil, fmt.Errorf("failed to read weights for pattern %d (%s): %w", i, p.Name, err)
		}
	}
	return w, nil
}

// SaveWeights writes a blob LoadWeights can read back, computing the
// header's checksum over the encoded payload.
func SaveWeights(path string, w *Weights) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create weights file: %w", err)
	}
	defer f.Close()

	var payload bytes.Buffer
	for i, p := range Patterns {
		if len(w.Tables[i]) != pow3(len(p.Squares)) {
			return fmt.Errorf("%w: pattern %d (%s) has %d weights, want %d", ErrBadWeights, i, p.Name, len(w.Tables[i]), pow3(len(p.Squares)))
		}
		if err := binary.Write(&payload, binary.LittleEndian, w.Tables[i]); err != nil {
			return fmt.Errorf("failed to encode weights for pattern %d (%s): %w", i, p.Name, err)
		}
	}

	hdr := weightHeader{
		Magic:    weightMagic,
		Version:  weightVersion,
		Checksum: xxhash.Sum64(payload.Bytes()),
	}
	if err := binary.Write(f, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("failed to write weights header: %w", err)
	}
	if _, err := f.Write(payload.Bytes()); err != nil {
		return fmt.Errorf("failed to write weights payload: %w", err)
	}
	return nil
}

// ZeroWeights returns an all-zero weight set sized for Patterns: a
// usable (if positionally blind) evaluator before a trained blob is
// available, and the baseline tests build weights off of.
func ZeroWeights() *Weights {
	w := &Weights{Tables: make([][]int16, len(Patterns))}
	for i, p := range Patterns {
		w.Tables[i] = make([]int16, pow3(len(p.Squares)))
	}
	return w
}
