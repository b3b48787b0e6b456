package swiss

// Stats is a point-in-time snapshot of a table's internal bookkeeping,
// kept from the teacher's table.Stats and extended with Capacity/MaxLoad so
// callers can observe spec §4.3's max_load threshold directly (spec §8
// scenarios S3/S4 assert on exactly this).
type Stats struct {
	Size                    int
	Capacity                int
	MaxLoad                 int
	Tombstones              int
	TombstonesCapacityRatio float32
	TombstonesSizeRatio     float32
}

func (t *table[K, V]) stats() Stats {
	var tombstonesCapacityRatio, tombstonesSizeRatio float32
	if t.capacity > 0 {
		tombstonesCapacityRatio = float32(t.tombstones) / float32(t.capacity)
	}
	if t.live > 0 {
		tombstonesSizeRatio = float32(t.tombstones) / float32(t.live)
	}

	return Stats{
		Size:                    int(t.live),
		Capacity:                int(t.capacity),
		MaxLoad:                 int(t.maxLoad),
		Tombstones:              int(t.tombstones),
		TombstonesCapacityRatio: tombstonesCapacityRatio,
		TombstonesSizeRatio:     tombstonesSizeRatio,
	}
}
