package artifact

import (
	"context"
	"sync"
)

// Artifact is one delivered archive
type Artifact struct {
	Name string
	Data []byte
}

// MemorySink keeps delivered archives in memory
type MemorySink struct {
	mu        sync.Mutex
	artifacts []Artifact
}

// NewMemorySink creates an empty in-memory sink
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Save records the archive
func (s *MemorySink) Save(ctx context.Context, name string, data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	s.artifacts = append(s.artifacts, Artifact{Name: name, Data: buf})
	s.mu.Unlock()
	return nil
}

// Artifacts returns all archives saved so far
func (s *MemorySink) Artifacts() []Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Artifact, len(s.artifacts))
	copy(out, s.artifacts)
	return out
}

// Last returns the most recent archive
func (s *MemorySink) Last() (Artifact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.artifacts) == 0 {
		return Artifact{}, false
	}
	return s.artifacts[len(s.artifacts)-1], true
}
