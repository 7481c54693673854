package orchestration

// MaxChunkSize is the default upper bound on the number of combinations
// handed to a worker in one dispatch.
const MaxChunkSize = 10

// ChooseChunkSize returns clamp(total/workers, 1, MaxChunkSize). Worker
// counts below one are treated as one.
func ChooseChunkSize(total, workers int) int {
	return ChooseChunkSizeWithLimit(total, workers, MaxChunkSize)
}

// ChooseChunkSizeWithLimit is ChooseChunkSize with a caller-supplied upper
// bound. A non-positive limit selects MaxChunkSize.
func ChooseChunkSizeWithLimit(total, workers, limit int) int {
	if workers < 1 {
		workers = 1
	}
	if limit < 1 {
		limit = MaxChunkSize
	}
	return max(1, min(total/workers, limit))
}

// span is a half-open range [lo, hi) of positions in the parameter space.
type span struct {
	lo, hi int
}

// splitChunks cuts n positions into consecutive spans of at most size.
func splitChunks(n, size int) []span {
	if size < 1 {
		size = 1
	}
	chunks := make([]span, 0, (n+size-1)/size)
	for lo := 0; lo < n; lo += size {
		chunks = append(chunks, span{lo: lo, hi: min(lo+size, n)})
	}
	return chunks
}

// Plan is the dispatch layout chosen for a run.
type Plan struct {
	Combinations int
	Workers      int
	ChunkSize    int
	Chunks       int
}

// NewPlan computes the layout for total combinations. Worker counts below
// one degrade to a single worker, and no more workers are used than there
// are chunks.
func NewPlan(total, workers, maxChunk int) Plan {
	if workers < 1 {
		workers = 1
	}
	size := ChooseChunkSizeWithLimit(total, workers, maxChunk)
	chunks := (total + size - 1) / size
	return Plan{
		Combinations: total,
		Workers:      max(1, min(workers, chunks)),
		ChunkSize:    size,
		Chunks:       chunks,
	}
}
