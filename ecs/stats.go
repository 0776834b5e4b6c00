package ecs

// WorldStats summarizes the contents of a World.
type WorldStats struct {
	TotalEntityCount     int
	CachedSignatureCount int
	ComponentCounts      map[ComponentType]int
	CacheBreakdown       []CacheStats
}

// CacheStats describes one cached signature. LiveCount excludes ids whose
// entity has since been deleted.
type CacheStats struct {
	Signature string
	IDCount   int
	LiveCount int
}

// CollectStats walks the world and its cache.
func (w *World) CollectStats() WorldStats {
	stats := WorldStats{
		TotalEntityCount:     len(w.entities),
		CachedSignatureCount: w.cache.len(),
		ComponentCounts:      make(map[ComponentType]int),
	}

	for _, ref := range w.Entities() {
		entity := ref.Lock()
		for _, t := range entity.order {
			stats.ComponentCounts[t]++
		}
		ref.Unlock()
	}

	for _, entry := range w.cache.entries() {
		live := 0
		for _, id := range entry.IDs {
			if _, ok := w.entities[id]; ok {
				live++
			}
		}
		stats.CacheBreakdown = append(stats.CacheBreakdown, CacheStats{
			Signature: entry.Signature,
			IDCount:   len(entry.IDs),
			LiveCount: live,
		})
	}

	return stats
}
