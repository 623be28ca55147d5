// Copyright 2025 The go-raster Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool splits row ranges into chunks and runs them on
// goroutines, blocking until every chunk is done.
//
// Spawn starts one goroutine per chunk for a single call and joins them
// before returning. Pool keeps its workers alive across calls for callers
// that run many short transforms back to back. Both run the same chunks
// with the same contract, so they are interchangeable:
//
//	chunks := workerpool.Partition(height, 0)
//	workerpool.Spawn(chunks, 0, func(start, end int) {
//	    processRows(start, end)
//	})
//
//	pool := workerpool.New(0)
//	defer pool.Close()
//	pool.Run(chunks, 0, processRows)
//
// Workers never communicate: each one owns the rows it was handed.
package workerpool

import (
	"math"
	"sync"
	"sync/atomic"
)

// Spawn runs fn once per chunk, each on its own goroutine, over the rows
// [chunk.Start+offset, chunk.End+offset). It returns after all calls finish.
// A single chunk runs on the calling goroutine.
func Spawn(chunks []Chunk, offset int, fn func(start, end int)) {
	switch len(chunks) {
	case 0:
		return
	case 1:
		fn(chunks[0].Start+offset, chunks[0].End+offset)
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(chunks))
	for _, c := range chunks {
		go func() {
			defer wg.Done()
			fn(c.Start+offset, c.End+offset)
		}()
	}
	wg.Wait()
}

// Pool keeps a fixed set of row workers alive across calls. Each Run hands
// its chunks to those workers instead of starting goroutines.
type Pool struct {
	workers int
	tasks   chan rowTask
	served  atomic.Uint64

	stop    sync.Once
	stopped atomic.Bool
}

// rowTask is one chunk of one Run call, already shifted by the call offset.
type rowTask struct {
	start, end int
	fn         func(start, end int)
	join       *sync.WaitGroup
}

// New starts a pool of workers goroutines. workers <= 0 resolves the same
// way Partition does.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = ResolveWorkers(math.MaxInt, 0)
	}
	p := &Pool{
		workers: workers,
		tasks:   make(chan rowTask, workers*chunksPerWorker),
	}
	for range workers {
		go p.serve()
	}
	return p
}

func (p *Pool) serve() {
	for t := range p.tasks {
		t.fn(t.start, t.end)
		p.served.Add(1)
		t.join.Done()
	}
}

// Workers returns the number of pool goroutines.
func (p *Pool) Workers() int {
	return p.workers
}

// Served returns how many chunks the pool goroutines have executed.
// Chunks run inline by Run are not counted.
func (p *Pool) Served() uint64 {
	return p.served.Load()
}

// Close stops the workers after queued chunks drain. It is idempotent.
func (p *Pool) Close() {
	p.stop.Do(func() {
		p.stopped.Store(true)
		close(p.tasks)
	})
}

// Run has the contract of Spawn. A single chunk, or any call on a closed
// pool, runs inline on the caller.
//
// Run must not race with Close.
func (p *Pool) Run(chunks []Chunk, offset int, fn func(start, end int)) {
	if len(chunks) == 1 || p.stopped.Load() {
		for _, c := range chunks {
			fn(c.Start+offset, c.End+offset)
		}
		return
	}
	if len(chunks) == 0 {
		return
	}

	var join sync.WaitGroup
	join.Add(len(chunks))
	for _, c := range chunks {
		p.tasks <- rowTask{start: c.Start + offset, end: c.End + offset, fn: fn, join: &join}
	}
	join.Wait()
}
