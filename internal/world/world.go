// Package world owns the generated World value end to end: building it
// from a config, answering travel and calendar queries against it, and
// producing/consuming save records. This package is what
// internal/world used to be in the teacher repo — a hex-grid map plus
// a desirability-sorted settlement placer
// (internal/world/generation.go, internal/world/settlement_placer.go)
// — but the spec's dense row-major heightmap and settlement/road/time
// data model has nothing in common with hex coordinates, so the grid
// primitives are rewritten from scratch; what survives is the package's
// role (the thing cmd/worldsim/main.go built and wired callbacks onto)
// and its build-then-wire shape, now expressed as a single Build entry
// point instead of a main()-level sequence of steps.
package world

import (
	"log/slog"

	"github.com/c1921/worldforge/internal/classify"
	"github.com/c1921/worldforge/internal/config"
	"github.com/c1921/worldforge/internal/islands"
	"github.com/c1921/worldforge/internal/prng"
	"github.com/c1921/worldforge/internal/road"
	"github.com/c1921/worldforge/internal/roadgraph"
	"github.com/c1921/worldforge/internal/savecodec"
	"github.com/c1921/worldforge/internal/settlement"
	"github.com/c1921/worldforge/internal/terrain"
	"github.com/c1921/worldforge/internal/worlderr"
	"github.com/c1921/worldforge/internal/worldtime"
)

// World is the fully built, exclusively owned result of one generation
// run: heightmap, islands, settlements, roads, the queryable road
// graph, and the game clock. External collaborators hold read-only
// views; nothing here is mutated except through Tick/SetTimeSpeed.
type World struct {
	Config config.Config

	Heightmap   *terrain.Heightmap
	Islands     *islands.Labelling
	Settlements []settlement.Settlement
	Roads       []road.Segment
	Cities      []int
	Names       []string

	graph *roadgraph.Graph
	Clock worldtime.Clock

	Player *PlayerPlacement
}

// PlayerPlacement is the optional player position carried in save
// records.
type PlayerPlacement struct {
	X, Y                 float64
	CurrentSettlementIdx *int
}

// Build runs the full pipeline in strict order — noise, contrast,
// erosion (if enabled), islands, settlements, roads, classification —
// each stage observing the finalised output of every earlier stage, per
// spec §5.
func Build(cfg config.Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hm := terrain.Build(cfg.Width, cfg.Height, cfg.Seed)

	if cfg.EnableErosion {
		erosionCfg := terrain.ErosionConfig{
			Iterations:          cfg.ErosionIterations,
			Rainfall:            cfg.Rainfall,
			Strength:            cfg.Strength,
			FlowExponent:        cfg.FlowExponent,
			MinSlope:            cfg.MinSlope,
			SmoothingIterations: cfg.SmoothingIterations,
			SmoothingBlend:      cfg.SmoothingBlend,
		}
		terrain.Erode(hm, erosionCfg)
	}

	lbl := islands.Label(hm, cfg.CoastThreshold)

	stream := prng.New(cfg.Seed)
	settlements := settlement.Sample(hm, lbl, stream, settlement.SamplerConfig{
		Stride:         cfg.Stride,
		CoastThreshold: cfg.CoastThreshold,
		FadeOutHeight:  cfg.FadeOutHeight,
		IslandBase:     cfg.IslandBase,
		IslandExponent: cfg.IslandExponent,
		BaseChance:     cfg.BaseChance,
		MinDistance:    cfg.MinDistance,
		MaxSettlements: cfg.MaxSettlements,
	})

	roads := road.Plan(settlements, hm, road.Config{
		KNearest:     cfg.KNearest,
		MaxEdgeDist:  cfg.MaxEdgeDist,
		PathFactor:   cfg.PathFactor,
		ForceMST:     cfg.ForceMST,
		GridStep:     cfg.GridStep,
		SlopeCost:    cfg.SlopeCost,
		WaterThresh:  cfg.WaterThresh,
		WaterPenalty: cfg.WaterPenalty,
	})

	cities := classify.Classify(settlements, roads, classify.Config{
		CityShare:       cfg.CityShare,
		MinCities:       cfg.MinCities,
		MaxCities:       cfg.MaxCities,
		MinScoreForCity: cfg.MinScoreForCity,
		MinCityHops:     cfg.MinCityHops,
	})

	names := settlement.Names(stream, len(settlements))

	landCells := 0
	for _, v := range hm.Cells {
		if v >= cfg.CoastThreshold {
			landCells++
		}
	}
	slog.Info("world built",
		"seed", cfg.Seed, "width", cfg.Width, "height", cfg.Height,
		"land_cells", landCells, "islands", len(lbl.Areas),
		"settlements", len(settlements), "roads", len(roads), "cities", len(cities),
	)

	w := &World{
		Config:      cfg,
		Heightmap:   hm,
		Islands:     lbl,
		Settlements: settlements,
		Roads:       roads,
		Cities:      cities,
		Names:       names,
		graph:       roadgraph.Build(len(settlements), roads),
	}
	w.Clock.Speed = 1
	return w, nil
}

// PathResult is a resolved travel request: node path, polyline, and
// total distance.
type PathResult struct {
	Nodes    []int
	Polyline []road.Point
	Distance float64
}

// ShortestPath resolves a travel request between two settlement
// indices to a node path, total distance, and polyline. Returns nil
// when unreachable or either index is out of range.
func (w *World) ShortestPath(from, to int) *PathResult {
	res := w.graph.ShortestPath(from, to)
	if res == nil {
		return nil
	}
	return &PathResult{
		Nodes:    res.Nodes,
		Polyline: w.graph.Polyline(res.Nodes, w.Roads, w.Settlements),
		Distance: res.Distance,
	}
}

// Tick advances the world's game clock.
func (w *World) Tick(nowMS int64) {
	w.Clock.Tick(nowMS)
}

// SetTimeSpeed changes the clock's days-per-wall-clock-second rate.
func (w *World) SetTimeSpeed(speed int) error {
	return w.Clock.SetSpeed(speed)
}

// CurrentDate returns the calendar view of the clock's current day
// count.
func (w *World) CurrentDate() worldtime.Date {
	return w.Clock.CurrentDate()
}

// SaveRecord flattens the world into a version-2 save record. Island
// labelling is not persisted: it is cheap to recompute from the
// heightmap and coast threshold on load, and the settlements already
// carry the island id/area they were sampled against.
func (w *World) SaveRecord(createdAt int64) *savecodec.Record {
	meta, points := savecodec.EncodeRoads(w.Roads)

	var player *savecodec.PlayerRecord
	if w.Player != nil {
		player = &savecodec.PlayerRecord{
			X: w.Player.X, Y: w.Player.Y,
			CurrentSettlementIdx: w.Player.CurrentSettlementIdx,
		}
	}

	return &savecodec.Record{
		Version:        savecodec.CurrentVersion,
		Seed:           w.Config.Seed,
		Width:          w.Config.Width,
		Height:         w.Config.Height,
		UseShading:     w.Config.UseShading,
		EnableErosion:  w.Config.EnableErosion,
		CreatedAt:      createdAt,
		HeightmapBytes: savecodec.EncodeHeightmap(w.Heightmap),
		Settlements:    savecodec.EncodeSettlements(w.Settlements),
		RoadMetadata:   meta,
		RoadPointsData: points,
		Time: savecodec.TimeRecord{
			TotalDays: w.Clock.TotalDays,
			TimeSpeed: w.Clock.Speed,
		},
		Player: player,
	}
}

// LoadFromRecord rebuilds a World from a save record without rerunning
// generation: the heightmap, settlements, and roads are decoded
// directly, islands are recomputed (cheap, deterministic from the
// heightmap), the road graph is rebuilt from the decoded roads, and the
// city list is read off the decoded settlements' categories (the
// classifier is not re-run). cfg supplies the tunables not captured in
// the record (coast threshold and sampler settings); its Seed, Width,
// Height, UseShading, and EnableErosion are overwritten from the record.
//
// Both version 2 (flat typed-array road blob) and version 1 (roads
// stored inline as a Segment list) are accepted on read, per spec §6 —
// the codec only ever writes version 2. Any other version is a
// SaveFormatError.
func LoadFromRecord(rec *savecodec.Record, cfg config.Config) (*World, error) {
	var roads []road.Segment
	switch rec.Version {
	case savecodec.CurrentVersion:
		decoded, err := savecodec.DecodeRoads(rec.RoadMetadata, rec.RoadPointsData)
		if err != nil {
			return nil, err
		}
		roads = decoded
	case savecodec.LegacyVersion:
		roads = savecodec.DecodeRoadsInline(rec.RoadsInline)
	default:
		return nil, &worlderr.SaveFormatError{Reason: "unsupported save version"}
	}

	hm, err := savecodec.DecodeHeightmap(rec.HeightmapBytes, rec.Width, rec.Height)
	if err != nil {
		return nil, err
	}
	settlements := savecodec.DecodeSettlements(rec.Settlements)

	cfg.Seed = rec.Seed
	cfg.Width = rec.Width
	cfg.Height = rec.Height
	cfg.UseShading = rec.UseShading
	cfg.EnableErosion = rec.EnableErosion

	lbl := islands.Label(hm, cfg.CoastThreshold)

	cities := make([]int, 0)
	for i, s := range settlements {
		if s.Category == settlement.City {
			cities = append(cities, i)
		}
	}

	// Names aren't persisted. Re-running Sample against the same seed
	// and decoded heightmap/islands advances a stream identically to
	// Build, so drawing Names off that stream (rather than a fresh
	// one) reproduces the same names Build assigned, keeping naming
	// inside the single-stream discipline instead of forking a second
	// source.
	stream := prng.New(cfg.Seed)
	settlement.Sample(hm, lbl, stream, settlement.SamplerConfig{
		Stride:         cfg.Stride,
		CoastThreshold: cfg.CoastThreshold,
		FadeOutHeight:  cfg.FadeOutHeight,
		IslandBase:     cfg.IslandBase,
		IslandExponent: cfg.IslandExponent,
		BaseChance:     cfg.BaseChance,
		MinDistance:    cfg.MinDistance,
		MaxSettlements: cfg.MaxSettlements,
	})
	names := settlement.Names(stream, len(settlements))

	w := &World{
		Config:      cfg,
		Heightmap:   hm,
		Islands:     lbl,
		Settlements: settlements,
		Roads:       roads,
		Cities:      cities,
		Names:       names,
		graph:       roadgraph.Build(len(settlements), roads),
	}
	w.Clock.TotalDays = rec.Time.TotalDays
	w.Clock.Speed = rec.Time.TimeSpeed

	if rec.Player != nil {
		w.Player = &PlayerPlacement{
			X: rec.Player.X, Y: rec.Player.Y,
			CurrentSettlementIdx: rec.Player.CurrentSettlementIdx,
		}
	}

	return w, nil
}
