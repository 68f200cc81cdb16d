// Copyright 2023 Astrodyne
// License: MIT

// Se1: reader for the segmented SE1 ephemeris file format.
//
// An SE1 file carries one body as a sequence of fixed-length time
// segments, each holding three Chebyshev series (longitude, latitude,
// distance).  A fixed-layout header points at an offset table indexing
// the segments.  Files on the current corpus are little-endian; the
// reader detects the byte order from the header's sanity invariants and
// records it for diagnostics.
//
// A Reader owns the fully-read file buffer and its parsed header, both
// immutable after Open.  Readers are therefore safe to share between
// goroutines.
package se1

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/pkg/errors"
)

// ErrCorruptHeader is returned when header fields violate the format
// invariants.
var ErrCorruptHeader = errors.New("se1: corrupt header")

// ErrBadEndianness is returned when no byte order yields a sane header.
var ErrBadEndianness = errors.New("se1: unrecognized byte order")

// ErrJDOutOfRange is returned when a JD falls in a gap or outside the
// file's span.
var ErrJDOutOfRange = errors.New("se1: julian day not covered")

// header layout, bytes
const (
	headerSize  = 96
	offIndexPos = 0
	offFlags    = 4
	offNCoeffs  = 8
	offRMax     = 12
	offStartJD  = 16
	offEndJD    = 24
	offSegDays  = 32
	offOrbital  = 40
)

// Flag bits of the header flags field.
const (
	FlagHeliocentric = 1 << 0
	FlagOrbital      = 1 << 1
)

// Header is the parsed per-planet file header.
type Header struct {
	IndexPos int32   // byte position of the segment-offset table
	Flags    int32   // bitfield: helio/bary, orbital-element presence
	NCoeffs  int32   // Chebyshev degree + 1 per coordinate
	RMax     float64 // distance normalization
	StartJD  float64 // first JD covered
	EndJD    float64 // last JD covered
	SegDays  float64 // segment length in days, typically 32
	Orbital  [7]float64
}

// NSegments returns the number of entries in the segment index.
func (h *Header) NSegments() int {
	return int((h.EndJD - h.StartJD + .1) / h.SegDays)
}

// Record is one decoded time segment.
//
// A nil coefficient slice denotes a coordinate that is identically
// zero.
type Record struct {
	StartJD float64
	EndJD   float64
	Long    []float64
	Lat     []float64
	Dist    []float64
}

// Reader reads one SE1 file.
type Reader struct {
	Header    Header
	ByteOrder binary.ByteOrder
	buf       []byte
	index     []int32
}

// Open reads an SE1 file fully into memory and parses its header and
// segment index.
func Open(path string) (*Reader, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "se1: open")
	}
	r, err := NewReader(buf)
	return r, errors.Wrapf(err, "se1: %s", path)
}

// NewReader parses an SE1 file image.
func NewReader(buf []byte) (*Reader, error) {
	if len(buf) < headerSize {
		return nil, ErrCorruptHeader
	}
	r := &Reader{buf: buf}
	order, err := detectOrder(buf)
	if err != nil {
		return nil, err
	}
	r.ByteOrder = order
	h := &r.Header
	h.IndexPos = int32(order.Uint32(buf[offIndexPos:]))
	h.Flags = int32(order.Uint32(buf[offFlags:]))
	h.NCoeffs = int32(order.Uint32(buf[offNCoeffs:]))
	h.RMax = float64(int32(order.Uint32(buf[offRMax:]))) / 1000
	h.StartJD = f64(order, buf[offStartJD:])
	h.EndJD = f64(order, buf[offEndJD:])
	h.SegDays = f64(order, buf[offSegDays:])
	for i := range h.Orbital {
		h.Orbital[i] = f64(order, buf[offOrbital+8*i:])
	}
	if err := h.validate(); err != nil {
		return nil, err
	}
	n := h.NSegments()
	end := int(h.IndexPos) + 4*n
	if h.IndexPos < headerSize || end > len(buf) {
		return nil, errors.Wrap(ErrCorruptHeader, "segment index out of bounds")
	}
	r.index = make([]int32, n)
	for i := range r.index {
		r.index[i] = int32(order.Uint32(buf[int(h.IndexPos)+4*i:]))
	}
	return r, nil
}

func (h *Header) validate() error {
	switch {
	case h.NCoeffs < 1 || h.NCoeffs > 99:
		return errors.Wrapf(ErrCorruptHeader, "n_coeffs %d", h.NCoeffs)
	case h.StartJD <= 0:
		return errors.Wrapf(ErrCorruptHeader, "start_jd %g", h.StartJD)
	case h.EndJD <= h.StartJD:
		return errors.Wrapf(ErrCorruptHeader, "end_jd %g ≤ start_jd %g",
			h.EndJD, h.StartJD)
	case h.SegDays < 1 || h.SegDays > 10000:
		return errors.Wrapf(ErrCorruptHeader, "seg_days %g", h.SegDays)
	}
	return nil
}

// detectOrder finds the byte order under which the coefficient count
// and segment length are plausible.
func detectOrder(buf []byte) (binary.ByteOrder, error) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		n := int32(order.Uint32(buf[offNCoeffs:]))
		seg := f64(order, buf[offSegDays:])
		if n >= 1 && n <= 99 && seg >= 1 && seg <= 10000 &&
			!math.IsNaN(seg) {
			return order, nil
		}
	}
	return nil, ErrBadEndianness
}

func f64(order binary.ByteOrder, b []byte) float64 {
	return math.Float64frombits(order.Uint64(b))
}

// ReadRecord decodes segment k.
func (r *Reader) ReadRecord(k int) (*Record, error) {
	if k < 0 || k >= len(r.index) {
		return nil, errors.Wrapf(ErrJDOutOfRange, "segment %d", k)
	}
	off := int(r.index[k])
	n := int(r.Header.NCoeffs)
	size := 16 + 3*8*n
	if off < headerSize || off+size > len(r.buf) {
		// a gap in the file
		return nil, errors.Wrapf(ErrJDOutOfRange, "segment %d not present", k)
	}
	order := r.ByteOrder
	rec := &Record{
		StartJD: f64(order, r.buf[off:]),
		EndJD:   f64(order, r.buf[off+8:]),
	}
	rec.Long = r.series(off+16, n)
	rec.Lat = r.series(off+16+8*n, n)
	rec.Dist = r.series(off+16+16*n, n)
	if rec.EndJD <= rec.StartJD {
		return nil, errors.Wrapf(ErrCorruptHeader, "segment %d bounds", k)
	}
	return rec, nil
}

// series decodes n doubles; an all-zero run is collapsed to nil,
// denoting an identically zero coordinate.
func (r *Reader) series(off, n int) []float64 {
	c := make([]float64, n)
	zero := true
	for i := range c {
		c[i] = f64(r.ByteOrder, r.buf[off+8*i:])
		if c[i] != 0 {
			zero = false
		}
	}
	if zero {
		return nil
	}
	return c
}

// FindRecord locates the segment covering jd by binary search on
// segment start times.
func (r *Reader) FindRecord(jd float64) (*Record, error) {
	h := &r.Header
	if jd < h.StartJD || jd >= h.EndJD {
		return nil, errors.Wrapf(ErrJDOutOfRange, "jd %g outside [%g,%g)",
			jd, h.StartJD, h.EndJD)
	}
	// first segment starting after jd, minus one
	k := sort.Search(len(r.index), func(i int) bool {
		return h.StartJD+float64(i)*h.SegDays > jd
	}) - 1
	if k < 0 {
		return nil, errors.Wrapf(ErrJDOutOfRange, "jd %g", jd)
	}
	rec, err := r.ReadRecord(k)
	if err != nil {
		return nil, err
	}
	if jd < rec.StartJD || jd > rec.EndJD {
		return nil, errors.Wrapf(ErrJDOutOfRange, "jd %g in segment gap", jd)
	}
	return rec, nil
}

// FileName builds the conventional SE1 file name for a body-class
// prefix and a calendar year: prefix, two-digit century, extension.
func FileName(prefix string, year int) string {
	return fmt.Sprintf("%s_%02d.se1", prefix, year/100)
}
