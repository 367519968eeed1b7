// Package savecodec serialises a generated world to the spec's version-2
// save format: heightmap as a raw little-endian float32 buffer,
// settlements as plain records, and roads as a flat typed-array blob
// plus metadata — grounded on the teacher's habit of marshalling nested
// state to flat encodings before it touches SQLite
// (internal/persistence/db.go SaveAgents' skills_json/needs_json/
// soul_json columns), generalized from per-field JSON blobs to the
// spec's binary heightmap/points layout since those need to round-trip
// byte-for-byte, not just structurally.
package savecodec

import (
	"encoding/binary"
	"math"

	"github.com/c1921/worldforge/internal/road"
	"github.com/c1921/worldforge/internal/settlement"
	"github.com/c1921/worldforge/internal/terrain"
	"github.com/c1921/worldforge/internal/worlderr"
)

// CurrentVersion is the only version new records are written as.
const CurrentVersion = 2

// LegacyVersion is the oldest version the codec can still read: roads
// stored inline as a Segment list instead of the flat typed-array blob.
const LegacyVersion = 1

// SettlementRecord is the flat, renderer-proxy-free on-disk shape of a
// settlement.
type SettlementRecord struct {
	X, Y           float64
	Elevation      float64
	Suitability    float64
	IslandID       int32
	IslandArea     int
	RoadDegree     int
	SecondHopReach int
	CityScore      float64
	Category       uint8
}

// RoadMeta is one road's metadata entry in the flat road blob.
type RoadMeta struct {
	X1, Y1, X2, Y2 float64
	Length         float64
	AIndex, BIndex int
	PointsOffset   int // counts point PAIRS from the start of PointsData
	PointsCount    int // number of points (pairs) for this road
}

// TimeRecord is the persisted clock state.
type TimeRecord struct {
	TotalDays int64
	TimeSpeed int
}

// PlayerRecord is the optional player placement.
type PlayerRecord struct {
	X, Y                 float64
	CurrentSettlementIdx *int
}

// Record is the full in-memory save record. HeightmapBytes and
// RoadPointsData hold the raw little-endian float32 buffers described
// in spec §6; everything else is already a plain Go value.
type Record struct {
	Version       int
	Seed          int64
	Width, Height int
	UseShading    bool
	EnableErosion bool
	CreatedAt     int64

	HeightmapBytes []byte

	Settlements []SettlementRecord

	// RoadMetadata/RoadPointsData hold version 2's flat typed-array
	// road blob. RoadsInline holds version 1's layout instead: roads
	// stored directly as a Segment list. A given record populates
	// whichever one matches its Version; the codec never writes
	// RoadsInline (spec §6: version 1 is readable but not written).
	RoadMetadata   []RoadMeta
	RoadPointsData []byte
	RoadsInline    []road.Segment

	Time TimeRecord

	Player *PlayerRecord
}

// EncodeHeightmap packs a heightmap into a contiguous little-endian
// float32 buffer, row-major, length 4*W*H.
func EncodeHeightmap(hm *terrain.Heightmap) []byte {
	buf := make([]byte, 4*len(hm.Cells))
	for i, v := range hm.Cells {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(float32(v)))
	}
	return buf
}

// DecodeHeightmap reverses EncodeHeightmap.
func DecodeHeightmap(data []byte, width, height int) (*terrain.Heightmap, error) {
	want := 4 * width * height
	if len(data) != want {
		return nil, &worlderr.SaveFormatError{Reason: "heightmap buffer length mismatch"}
	}
	hm := terrain.New(width, height)
	for i := range hm.Cells {
		bits := binary.LittleEndian.Uint32(data[i*4:])
		hm.Cells[i] = float64(math.Float32frombits(bits))
	}
	return hm, nil
}

// EncodeSettlements converts in-memory settlements to their flat record
// form.
func EncodeSettlements(settlements []settlement.Settlement) []SettlementRecord {
	out := make([]SettlementRecord, len(settlements))
	for i, s := range settlements {
		out[i] = SettlementRecord{
			X: s.X, Y: s.Y,
			Elevation: s.Elevation, Suitability: s.Suitability,
			IslandID: s.IslandID, IslandArea: s.IslandArea,
			RoadDegree: s.RoadDegree, SecondHopReach: s.SecondHopReach,
			CityScore: s.CityScore, Category: uint8(s.Category),
		}
	}
	return out
}

// DecodeSettlements reverses EncodeSettlements.
func DecodeSettlements(records []SettlementRecord) []settlement.Settlement {
	out := make([]settlement.Settlement, len(records))
	for i, r := range records {
		out[i] = settlement.Settlement{
			X: r.X, Y: r.Y,
			Elevation: r.Elevation, Suitability: r.Suitability,
			IslandID: r.IslandID, IslandArea: r.IslandArea,
			RoadDegree: r.RoadDegree, SecondHopReach: r.SecondHopReach,
			CityScore: r.CityScore, Category: settlement.Category(r.Category),
		}
	}
	return out
}

// EncodeRoads flattens the road list into per-road metadata plus one
// contiguous little-endian float32 buffer of xy point pairs.
func EncodeRoads(roads []road.Segment) ([]RoadMeta, []byte) {
	meta := make([]RoadMeta, len(roads))
	totalPoints := 0
	for _, r := range roads {
		totalPoints += len(r.Points)
	}
	points := make([]byte, 8*totalPoints)

	offset := 0
	for i, r := range roads {
		meta[i] = RoadMeta{
			X1: r.AX, Y1: r.AY, X2: r.BX, Y2: r.BY,
			Length: r.Length, AIndex: r.A, BIndex: r.B,
			PointsOffset: offset, PointsCount: len(r.Points),
		}
		for _, p := range r.Points {
			binary.LittleEndian.PutUint32(points[offset*8:], math.Float32bits(float32(p.X)))
			binary.LittleEndian.PutUint32(points[offset*8+4:], math.Float32bits(float32(p.Y)))
			offset++
		}
	}
	return meta, points
}

// DecodeRoads reverses EncodeRoads, rebuilding the full Segment list
// (version 2's flat-buffer layout).
func DecodeRoads(meta []RoadMeta, points []byte) ([]road.Segment, error) {
	out := make([]road.Segment, len(meta))
	for i, m := range meta {
		if (m.PointsOffset+m.PointsCount)*8 > len(points) {
			return nil, &worlderr.SaveFormatError{Reason: "road points buffer too short for metadata"}
		}
		pts := make([]road.Point, m.PointsCount)
		for j := 0; j < m.PointsCount; j++ {
			base := (m.PointsOffset + j) * 8
			x := math.Float32frombits(binary.LittleEndian.Uint32(points[base:]))
			y := math.Float32frombits(binary.LittleEndian.Uint32(points[base+4:]))
			pts[j] = road.Point{X: float64(x), Y: float64(y)}
		}
		out[i] = road.Segment{
			A: m.AIndex, B: m.BIndex,
			AX: m.X1, AY: m.Y1, BX: m.X2, BY: m.Y2,
			Length: m.Length, Points: pts,
		}
	}
	return out, nil
}

// DecodeRoadsInline reads a version-1 record's roads, which are stored
// directly as a Segment list rather than the flat-buffer scheme, into
// the same in-memory []road.Segment shape DecodeRoads produces. Version
// 1 is readable but the codec never writes it (callers should persist
// through EncodeRoads/Record.RoadMetadata instead).
func DecodeRoadsInline(segments []road.Segment) []road.Segment {
	return segments
}
