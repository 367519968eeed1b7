package settlement

import "github.com/c1921/worldforge/internal/prng"

// prefixes and suffixes combine into procedural settlement names, the
// same prefix+suffix table shape the teacher uses in
// internal/world/settlement_placer.go generateNames, reseeded from the
// single build stream instead of a side math/rand source so naming
// stays inside the spec's PRNG discipline.
var namePrefixes = []string{
	"Iron", "Green", "Ash", "Stone", "Mill", "Cross", "Black",
	"Silver", "Red", "White", "Dark", "Bright", "High", "Low",
	"Old", "New", "Far", "Deep", "Long", "Broad", "Gold", "Frost",
	"Storm", "Thorn", "Elm", "Oak", "Pine", "Copper", "River",
}

var nameSuffixes = []string{
	"haven", "ford", "hollow", "wick", "bridge", "gate", "keep",
	"stead", "wood", "field", "dale", "crest", "vale", "port",
	"town", "bury", "marsh", "well", "brook", "cliff", "moor",
	"ridge", "watch", "fall", "rest", "point", "reach", "helm",
}

// Names draws count procedural names from the stream. Names are unique
// while count is at most len(namePrefixes)*len(nameSuffixes); beyond
// that, repeats are returned. This is
// not part of the Settlement record's identity (positional index is);
// names exist purely for display, so callers that don't need them can
// skip calling this.
func Names(stream *prng.Stream, count int) []string {
	maxUnique := len(namePrefixes) * len(nameSuffixes)
	used := make(map[string]bool, count)
	names := make([]string, 0, count)
	for len(names) < count {
		p := namePrefixes[int(stream.Float64()*float64(len(namePrefixes)))%len(namePrefixes)]
		s := nameSuffixes[int(stream.Float64()*float64(len(nameSuffixes)))%len(nameSuffixes)]
		name := p + s
		// Once every prefix+suffix combo is in use, stop rejecting
		// repeats — with count > maxUnique the name space can't stay
		// unique, and the alternative is spinning forever.
		if used[name] && len(used) < maxUnique {
			continue
		}
		used[name] = true
		names = append(names, name)
	}
	return names
}
