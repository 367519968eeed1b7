// Package persistence is SQLite-backed save-record storage, grounded
// on the teacher's internal/persistence/db.go: same sqlx-over-
// modernc.org/sqlite connection style, same WAL-mode open string, same
// migrate-then-exec shape. The teacher keyed rows by a small integer id
// per entity (agents, settlements); a save file has no natural integer
// key, so rows are keyed by a generated UUID instead, newest-first by
// created_at.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/c1921/worldforge/internal/savecodec"
	"github.com/c1921/worldforge/internal/worlderr"
)

// DB wraps a SQLite connection for save-record storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saves (
		id TEXT PRIMARY KEY,
		version INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		use_shading INTEGER NOT NULL,
		enable_erosion INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		heightmap_bytes BLOB NOT NULL,
		settlements_json TEXT NOT NULL,
		road_metadata_json TEXT NOT NULL,
		road_points_bytes BLOB NOT NULL,
		total_days INTEGER NOT NULL,
		time_speed INTEGER NOT NULL,
		player_json TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_saves_created_at ON saves(created_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// saveRow is the flat SQLite row shape for a save record. The
// heightmap and road-point buffers stay raw BLOBs; the record's other
// nested slices are small enough to carry as JSON text columns, the
// way the teacher's SaveAgents flattens per-agent skill/need/soul maps
// into *_json columns.
type saveRow struct {
	ID              string  `db:"id"`
	Version         int     `db:"version"`
	Seed            int64   `db:"seed"`
	Width           int     `db:"width"`
	Height          int     `db:"height"`
	UseShading      int     `db:"use_shading"`
	EnableErosion   int     `db:"enable_erosion"`
	CreatedAt       int64   `db:"created_at"`
	HeightmapBytes  []byte  `db:"heightmap_bytes"`
	SettlementsJSON string  `db:"settlements_json"`
	RoadMetaJSON    string  `db:"road_metadata_json"`
	RoadPointsBytes []byte  `db:"road_points_bytes"`
	TotalDays       int64   `db:"total_days"`
	TimeSpeed       int     `db:"time_speed"`
	PlayerJSON      *string `db:"player_json"`
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func toRow(id string, rec *savecodec.Record) (saveRow, error) {
	settlementsJSON, err := json.Marshal(rec.Settlements)
	if err != nil {
		return saveRow{}, fmt.Errorf("marshal settlements: %w", err)
	}
	roadMetaJSON, err := json.Marshal(rec.RoadMetadata)
	if err != nil {
		return saveRow{}, fmt.Errorf("marshal road metadata: %w", err)
	}

	var playerJSON *string
	if rec.Player != nil {
		b, err := json.Marshal(rec.Player)
		if err != nil {
			return saveRow{}, fmt.Errorf("marshal player: %w", err)
		}
		s := string(b)
		playerJSON = &s
	}

	// A record with no roads may carry nil points; store it as an empty
	// blob so the NOT NULL column accepts it.
	roadPoints := rec.RoadPointsData
	if roadPoints == nil {
		roadPoints = []byte{}
	}

	return saveRow{
		ID:              id,
		Version:         rec.Version,
		Seed:            rec.Seed,
		Width:           rec.Width,
		Height:          rec.Height,
		UseShading:      boolToInt(rec.UseShading),
		EnableErosion:   boolToInt(rec.EnableErosion),
		CreatedAt:       rec.CreatedAt,
		HeightmapBytes:  rec.HeightmapBytes,
		SettlementsJSON: string(settlementsJSON),
		RoadMetaJSON:    string(roadMetaJSON),
		RoadPointsBytes: roadPoints,
		TotalDays:       rec.Time.TotalDays,
		TimeSpeed:       rec.Time.TimeSpeed,
		PlayerJSON:      playerJSON,
	}, nil
}

func fromRow(row *saveRow) (*savecodec.Record, error) {
	var settlements []savecodec.SettlementRecord
	if err := json.Unmarshal([]byte(row.SettlementsJSON), &settlements); err != nil {
		return nil, &worlderr.SaveFormatError{Reason: "corrupt settlements_json: " + err.Error()}
	}
	var roadMeta []savecodec.RoadMeta
	if err := json.Unmarshal([]byte(row.RoadMetaJSON), &roadMeta); err != nil {
		return nil, &worlderr.SaveFormatError{Reason: "corrupt road_metadata_json: " + err.Error()}
	}

	var player *savecodec.PlayerRecord
	if row.PlayerJSON != nil {
		player = &savecodec.PlayerRecord{}
		if err := json.Unmarshal([]byte(*row.PlayerJSON), player); err != nil {
			return nil, &worlderr.SaveFormatError{Reason: "corrupt player_json: " + err.Error()}
		}
	}

	return &savecodec.Record{
		Version:        row.Version,
		Seed:           row.Seed,
		Width:          row.Width,
		Height:         row.Height,
		UseShading:     row.UseShading != 0,
		EnableErosion:  row.EnableErosion != 0,
		CreatedAt:      row.CreatedAt,
		HeightmapBytes: row.HeightmapBytes,
		Settlements:    settlements,
		RoadMetadata:   roadMeta,
		RoadPointsData: row.RoadPointsBytes,
		Time: savecodec.TimeRecord{
			TotalDays: row.TotalDays,
			TimeSpeed: row.TimeSpeed,
		},
		Player: player,
	}, nil
}

// Save writes a record under a freshly minted id and returns it.
func (db *DB) Save(rec *savecodec.Record) (string, error) {
	id := uuid.NewString()

	row, err := toRow(id, rec)
	if err != nil {
		return "", err
	}

	_, err = db.conn.NamedExec(`INSERT INTO saves
		(id, version, seed, width, height, use_shading, enable_erosion, created_at,
		 heightmap_bytes, settlements_json, road_metadata_json, road_points_bytes,
		 total_days, time_speed, player_json)
		VALUES (:id, :version, :seed, :width, :height, :use_shading, :enable_erosion, :created_at,
		 :heightmap_bytes, :settlements_json, :road_metadata_json, :road_points_bytes,
		 :total_days, :time_speed, :player_json)`, row)
	if err != nil {
		return "", fmt.Errorf("insert save: %w", err)
	}

	slog.Info("save written", "id", id, "bytes", humanize.Bytes(rowSize(row)))
	return id, nil
}

// Load reads a save record by id.
func (db *DB) Load(id string) (*savecodec.Record, error) {
	var row saveRow
	err := db.conn.Get(&row, "SELECT * FROM saves WHERE id = ?", id)
	if err != nil {
		return nil, &worlderr.SaveFormatError{Reason: fmt.Sprintf("save %q not found: %v", id, err)}
	}
	return fromRow(&row)
}

// ListMeta is a save's identifying metadata, without the bulk payload,
// for listing UIs.
type ListMeta struct {
	ID        string
	Seed      int64
	Width     int
	Height    int
	CreatedAt int64
}

// List returns every save's metadata, most recently created first.
func (db *DB) List() ([]ListMeta, error) {
	var rows []struct {
		ID        string `db:"id"`
		Seed      int64  `db:"seed"`
		Width     int    `db:"width"`
		Height    int    `db:"height"`
		CreatedAt int64  `db:"created_at"`
	}
	err := db.conn.Select(&rows, "SELECT id, seed, width, height, created_at FROM saves ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	out := make([]ListMeta, len(rows))
	for i, r := range rows {
		out[i] = ListMeta{ID: r.ID, Seed: r.Seed, Width: r.Width, Height: r.Height, CreatedAt: r.CreatedAt}
	}
	return out, nil
}

// Delete removes a save by id.
func (db *DB) Delete(id string) error {
	_, err := db.conn.Exec("DELETE FROM saves WHERE id = ?", id)
	return err
}

func rowSize(r saveRow) uint64 {
	return uint64(len(r.HeightmapBytes) + len(r.SettlementsJSON) + len(r.RoadMetaJSON) + len(r.RoadPointsBytes))
}
