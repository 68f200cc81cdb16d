// Copyright 2023 Astrodyne
// License: MIT

// Jplde: reader for JPL DE-series binary ephemeris files.
//
// A DE file is a sequence of fixed-size records of doubles.  Record 1
// is the header: title text, constant names, the time span, physical
// constants and the interpolation index table.  Each following data
// record covers interval_days and begins with its own JD bounds; the
// remainder is partitioned per body into equal sub-intervals of
// Chebyshev coefficients, three components per body, two for the
// nutations.
//
// Files exist in both byte orders; the order is detected by
// sanity-checking the interval field and retrying swapped.  A Reader
// keeps the file handle, the parsed header, and a single-slot cache of
// the most recently read record.  The cache makes a Reader unsafe to
// share between goroutines without external synchronization; clone one
// Reader per goroutine instead (Clone shares the header and file
// handle).
package jplde

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ErrCorruptHeader is returned when header fields violate the format
// invariants.
var ErrCorruptHeader = errors.New("jplde: corrupt header")

// ErrBadEndianness is returned when the interval field is implausible
// under both byte orders.
var ErrBadEndianness = errors.New("jplde: unrecognized byte order")

// ErrJDOutOfRange is returned when a JD falls outside the file's span.
var ErrJDOutOfRange = errors.New("jplde: julian day not covered")

// ErrBodyUnavailable is returned when the index table carries no data
// for the requested body.
var ErrBodyUnavailable = errors.New("jplde: body not present in file")

// header layout, bytes
const (
	offTitle     = 0
	titleLen     = 252
	offNames     = 252
	nNames       = 400
	nameLen      = 6
	offStartJD   = 2652
	offEndJD     = 2660
	offInterval  = 2668
	offNConst    = 2676
	offAU        = 2680
	offEMRatio   = 2688
	offIndex     = 2696
	offDENum     = 2840
	offLibration = 2844
	headerBytes  = 2856
)

// nBodies is the number of index-table triples: Mercury through Sun,
// the nutations (index 11), and the librations (index 12).
const nBodies = 13

// NutationIndex is the index-table slot holding the two-component
// nutation series.
const NutationIndex = 11

// LibrationIndex is the index-table slot holding the lunar libration
// series.
const LibrationIndex = 12

// IndexEntry locates one body's coefficients inside a data record.
type IndexEntry struct {
	Offset     int32 // 1-based start position in doubles
	NCoef      int32 // coefficients per component per sub-interval
	NIntervals int32 // equal sub-intervals per record
}

// Header is the parsed record 1.
type Header struct {
	Title           string
	DENumber        int32
	StartJD         float64
	EndJD           float64
	IntervalDays    float64
	AUKm            float64
	EarthMoonRatio  float64
	NConstants      int32
	ConstantNames   []string
	Index           [nBodies]IndexEntry
	RecordSizeBytes int
}

// NComponents returns the number of coordinate components stored for
// an index-table slot.
func NComponents(body int) int {
	if body == NutationIndex {
		return 2
	}
	return 3
}

// Coefficients is one body's slice of a data record: per-component
// Chebyshev series valid over one sub-interval.
type Coefficients struct {
	SubStartJD float64
	SubEndJD   float64
	Series     [][]float64 // one per component
}

// Reader reads one DE file.
type Reader struct {
	Header    Header
	ByteOrder binary.ByteOrder

	f io.ReaderAt

	// single-slot record cache
	cacheNum int
	cache    []float64
}

// Open opens a DE file and parses its header.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "jplde: open")
	}
	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "jplde: %s", path)
	}
	return r, nil
}

// NewReader parses the header of a DE file image.
func NewReader(f io.ReaderAt) (*Reader, error) {
	buf := make([]byte, headerBytes)
	if _, err := f.ReadAt(buf, 0); err != nil {
		return nil, errors.Wrap(ErrCorruptHeader, "short header")
	}
	order, err := detectOrder(buf)
	if err != nil {
		return nil, err
	}
	r := &Reader{ByteOrder: order, f: f, cacheNum: -1}
	h := &r.Header
	h.Title = strings.TrimRight(string(buf[offTitle:offTitle+titleLen]), " \x00")
	h.ConstantNames = make([]string, 0, nNames)
	for i := 0; i < nNames; i++ {
		name := strings.TrimRight(
			string(buf[offNames+i*nameLen:offNames+(i+1)*nameLen]), " \x00")
		if name != "" {
			h.ConstantNames = append(h.ConstantNames, name)
		}
	}
	h.StartJD = f64(order, buf[offStartJD:])
	h.EndJD = f64(order, buf[offEndJD:])
	h.IntervalDays = f64(order, buf[offInterval:])
	h.NConstants = int32(order.Uint32(buf[offNConst:]))
	h.AUKm = f64(order, buf[offAU:])
	h.EarthMoonRatio = f64(order, buf[offEMRatio:])
	for i := 0; i < nBodies-1; i++ {
		h.Index[i] = IndexEntry{
			Offset:     int32(order.Uint32(buf[offIndex+12*i:])),
			NCoef:      int32(order.Uint32(buf[offIndex+12*i+4:])),
			NIntervals: int32(order.Uint32(buf[offIndex+12*i+8:])),
		}
	}
	h.DENumber = int32(order.Uint32(buf[offDENum:]))
	h.Index[LibrationIndex] = IndexEntry{
		Offset:     int32(order.Uint32(buf[offLibration:])),
		NCoef:      int32(order.Uint32(buf[offLibration+4:])),
		NIntervals: int32(order.Uint32(buf[offLibration+8:])),
	}
	if err := h.validate(); err != nil {
		return nil, err
	}
	h.RecordSizeBytes = recordSize(&h.Index)
	return r, nil
}

func (h *Header) validate() error {
	switch {
	case h.EndJD <= h.StartJD:
		return errors.Wrapf(ErrCorruptHeader, "span [%g,%g]", h.StartJD, h.EndJD)
	case h.NConstants < 0 || h.NConstants > 10000:
		return errors.Wrapf(ErrCorruptHeader, "n_constants %d", h.NConstants)
	case h.AUKm < 1.49e8 || h.AUKm > 1.50e8:
		return errors.Wrapf(ErrCorruptHeader, "au_km %g", h.AUKm)
	case h.EarthMoonRatio < 80 || h.EarthMoonRatio > 82:
		return errors.Wrapf(ErrCorruptHeader, "earth_moon_ratio %g", h.EarthMoonRatio)
	}
	return nil
}

// recordSize computes the record size in bytes from the index table:
// the number of doubles reached by the body starting farthest into the
// record.  One historical ephemeris requires the 1546→1652 padding
// adjustment.
func recordSize(idx *[nBodies]IndexEntry) int {
	kmx, m := int32(-1), -1
	for i, e := range idx {
		if e.Offset > kmx {
			kmx, m = e.Offset, i
		}
	}
	nd := int(kmx) + NComponents(m)*int(idx[m].NCoef)*int(idx[m].NIntervals) - 1
	if nd == 1546 {
		nd = 1652
	}
	return 8 * nd
}

// detectOrder sanity-checks the interval field, retrying swapped when
// the value falls outside [1,200].
func detectOrder(buf []byte) (binary.ByteOrder, error) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		iv := f64(order, buf[offInterval:])
		if iv >= 1 && iv <= 200 {
			return order, nil
		}
	}
	return nil, ErrBadEndianness
}

func f64(order binary.ByteOrder, b []byte) float64 {
	return math.Float64frombits(order.Uint64(b))
}

// Clone returns a Reader sharing the immutable header and file handle
// but owning its own record cache, for use from another goroutine.
func (r *Reader) Clone() *Reader {
	return &Reader{
		Header:    r.Header,
		ByteOrder: r.ByteOrder,
		f:         r.f,
		cacheNum:  -1,
	}
}

// Close closes the underlying file when the Reader owns one.
func (r *Reader) Close() error {
	if c, ok := r.f.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// FindRecord returns the data record number covering jd.
func (r *Reader) FindRecord(jd float64) (int, error) {
	h := &r.Header
	if jd < h.StartJD || jd > h.EndJD {
		return 0, errors.Wrapf(ErrJDOutOfRange, "jd %g outside [%g,%g]",
			jd, h.StartJD, h.EndJD)
	}
	n := int((jd - h.StartJD) / h.IntervalDays)
	// the final instant belongs to the last record
	if max := int((h.EndJD-h.StartJD)/h.IntervalDays) - 1; n > max {
		n = max
	}
	return n, nil
}

// ReadRecord returns the doubles of data record n.  The most recently
// read record is cached; a repeated read returns the cached buffer.
func (r *Reader) ReadRecord(n int) ([]float64, error) {
	if n == r.cacheNum {
		return r.cache, nil
	}
	size := r.Header.RecordSizeBytes
	buf := make([]byte, size)
	// record 1 is the header, data records follow contiguously
	if _, err := r.f.ReadAt(buf, int64(size)*int64(n+1)); err != nil {
		return nil, errors.Wrapf(err, "jplde: record %d", n)
	}
	rec := make([]float64, size/8)
	for i := range rec {
		rec[i] = f64(r.ByteOrder, buf[8*i:])
	}
	r.cacheNum, r.cache = n, rec
	return rec, nil
}

// ExtractCoefficients slices one body's coefficient series for jd out
// of a data record.
func (r *Reader) ExtractCoefficients(rec []float64, body int, jd float64) (*Coefficients, error) {
	if body < 0 || body >= nBodies {
		return nil, errors.Wrapf(ErrBodyUnavailable, "body %d", body)
	}
	e := r.Header.Index[body]
	if e.Offset < 1 || e.NCoef < 1 || e.NIntervals < 1 {
		return nil, errors.Wrapf(ErrBodyUnavailable, "body %d", body)
	}
	recStart, recEnd := rec[0], rec[1]
	if jd < recStart || jd > recEnd {
		return nil, errors.Wrapf(ErrJDOutOfRange, "jd %g outside record [%g,%g]",
			jd, recStart, recEnd)
	}
	nc := NComponents(body)
	dur := (recEnd - recStart) / float64(e.NIntervals)
	sub := int((jd - recStart) / dur)
	if sub < 0 {
		sub = 0
	}
	if sub > int(e.NIntervals)-1 {
		sub = int(e.NIntervals) - 1
	}
	base := int(e.Offset) - 1 + sub*int(e.NCoef)*nc
	if base+nc*int(e.NCoef) > len(rec) {
		return nil, errors.Wrapf(ErrCorruptHeader, "body %d overruns record", body)
	}
	c := &Coefficients{
		SubStartJD: recStart + float64(sub)*dur,
		SubEndJD:   recStart + float64(sub+1)*dur,
		Series:     make([][]float64, nc),
	}
	for i := 0; i < nc; i++ {
		off := base + i*int(e.NCoef)
		c.Series[i] = rec[off : off+int(e.NCoef)]
	}
	return c, nil
}

// Coefficients is the one-call form: locate the record for jd, read it
// through the cache, and slice out the body's series.
func (r *Reader) Coefficients(body int, jd float64) (*Coefficients, error) {
	n, err := r.FindRecord(jd)
	if err != nil {
		return nil, err
	}
	rec, err := r.ReadRecord(n)
	if err != nil {
		return nil, err
	}
	return r.ExtractCoefficients(rec, body, jd)
}

// FileName builds the conventional DE file name for an ephemeris
// number.
func FileName(deNumber int) string {
	return fmt.Sprintf("de%d.eph", deNumber)
}
