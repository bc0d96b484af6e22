// recorder/recorder.go
// Copyright(c) 2025-2026 fmgc contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package recorder implements the flight-data recorder: a per-tick stream
// of the guidance engine's inputs and outputs for offline analysis and
// replay. The file format is an 8-byte magic header followed by a zstd
// stream of length-prefixed msgpack frames, one frame per tick.
package recorder

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/aerosim/fmgc/ap"
)

// Magic identifies an FDR file and its format version.
const Magic = "FMGCFDR1"

// Frames larger than this are rejected as corruption rather than
// allocated.
const maxFrameBytes = 1 << 24

var (
	ErrMagic   = errors.New("not an FDR file")
	ErrCorrupt = errors.New("corrupt FDR stream")
)

// A Writer records one engine output per tick. Close must be called to
// flush the compressed stream.
type Writer struct {
	zw *zstd.Encoder
}

func NewWriter(w io.Writer) (*Writer, error) {
	if _, err := io.WriteString(w, Magic); err != nil {
		return nil, fmt.Errorf("writing magic: %w", err)
	}
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return nil, fmt.Errorf("creating zstd writer: %w", err)
	}
	return &Writer{zw: zw}, nil
}

func (w *Writer) Record(out ap.EngineOutput) error {
	b, err := msgpack.Marshal(&out)
	if err != nil {
		return fmt.Errorf("encoding frame: %w", err)
	}

	var hdr [4]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(len(b)))
	if _, err := w.zw.Write(hdr[:]); err != nil {
		return err
	}
	_, err = w.zw.Write(b)
	return err
}

func (w *Writer) Close() error {
	return w.zw.Close()
}

// A Reader replays recorded frames in order; Next returns io.EOF at a
// clean end of stream.
type Reader struct {
	zr *zstd.Decoder
}

func NewReader(r io.Reader) (*Reader, error) {
	var magic [len(Magic)]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("reading magic: %w", ErrMagic)
	}
	if string(magic[:]) != Magic {
		return nil, fmt.Errorf("%q: %w", magic, ErrMagic)
	}

	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("creating zstd reader: %w", err)
	}
	return &Reader{zr: zr}, nil
}

func (r *Reader) Next() (ap.EngineOutput, error) {
	var out ap.EngineOutput

	var hdr [4]byte
	if _, err := io.ReadFull(r.zr, hdr[:]); err != nil {
		if err == io.EOF {
			return out, io.EOF
		}
		return out, fmt.Errorf("frame header: %w", ErrCorrupt)
	}

	n := binary.BigEndian.Uint32(hdr[:])
	if n == 0 || n > maxFrameBytes {
		return out, fmt.Errorf("frame length %d: %w", n, ErrCorrupt)
	}

	b := make([]byte, n)
	if _, err := io.ReadFull(r.zr, b); err != nil {
		return out, fmt.Errorf("frame body: %w", ErrCorrupt)
	}
	if err := msgpack.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("decoding frame: %v: %w", err, ErrCorrupt)
	}
	return out, nil
}

func (r *Reader) Close() {
	r.zr.Close()
}
