// Copyright 2025 The go-raster Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

// DefaultWorkers is used when the platform cannot report its parallelism.
const DefaultWorkers = 4

// chunksPerWorker biases partitions toward more, smaller chunks than one per
// worker so early finishers are not left idle.
const chunksPerWorker = 4

// Chunk is a half-open row range [Start, End).
type Chunk struct {
	Start, End int
}

// Len returns the number of rows in the chunk.
func (c Chunk) Len() int {
	return c.End - c.Start
}

// ResolveWorkers returns the worker count to use for a request of workers
// over total rows: non-positive requests become AvailableParallelism (or
// DefaultWorkers), and the result never exceeds total.
func ResolveWorkers(total, workers int) int {
	if workers <= 0 {
		workers = AvailableParallelism()
		if workers <= 0 {
			workers = DefaultWorkers
		}
	}
	return max(1, min(workers, total))
}

// ChunkSize returns the target rows per chunk for total rows across workers.
func ChunkSize(total, workers int) int {
	if workers <= 0 {
		return max(1, total)
	}
	return max(1, min(total/workers, total/(workers*chunksPerWorker)))
}

// Partition splits [0, total) into contiguous, ordered, disjoint chunks whose
// union is exactly [0, total). The number of chunks depends on workers but is
// not equal to it: see ChunkSize. Returns nil when total <= 0.
func Partition(total, workers int) []Chunk {
	if total <= 0 {
		return nil
	}
	workers = ResolveWorkers(total, workers)
	size := ChunkSize(total, workers)

	chunks := make([]Chunk, 0, (total+size-1)/size)
	for start := 0; start < total; start += size {
		chunks = append(chunks, Chunk{Start: start, End: min(start+size, total)})
	}
	return chunks
}
