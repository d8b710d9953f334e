package patience

import (
	"log/slog"
	"time"
)

// Variant names reported in Stats.
const (
	VariantContiguous = "contiguous"
	VariantLinked     = "linked"
)

// Stats describes one sort call.
type Stats struct {
	Variant     string
	Elements    int
	Piles       int
	Rounds      int
	Merges      int
	Comparisons int
	Duration    time.Duration
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("variant", s.Variant),
		slog.Int("elements", s.Elements),
		slog.Int("piles", s.Piles),
		slog.Int("rounds", s.Rounds),
		slog.Int("merges", s.Merges),
		slog.Int("comparisons", s.Comparisons),
		slog.Duration("duration", s.Duration),
	)
}
