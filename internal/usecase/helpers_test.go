package usecase

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"PriceSampler/internal/domain/models"

	"github.com/stretchr/testify/require"
)

// writeSource writes a file with n rows of the form "<id>,<row index>,<price>".
func writeSource(t *testing.T, dir, id string, n int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%s,%d,%d.50\n", id, i, 100+i)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, id+".csv"), []byte(b.String()), 0o644))
}

func groupsUnder(root string, names ...string) []models.Group {
	out := make([]models.Group, 0, len(names))
	for _, n := range names {
		out = append(out, models.Group{Name: n, Dir: filepath.Join(root, n)})
	}
	return out
}

type fakeMetrics struct {
	mu        sync.Mutex
	samples   map[string]int
	artifacts map[string]int
	events    map[string]int
	errors    map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{
		samples:   map[string]int{},
		artifacts: map[string]int{},
		events:    map[string]int{},
		errors:    map[string]int{},
	}
}

func (m *fakeMetrics) RecordSample(group, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.samples[group+"/"+outcome]++
}

func (m *fakeMetrics) RecordArtifact(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.artifacts[result]++
}

func (m *fakeMetrics) RecordEvent(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[result]++
}

func (m *fakeMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[kind]++
}

func (m *fakeMetrics) RecordLatency(string, float64) {}

// diagnostics flattens the diagnostic entries into subject -> message.
func diagnostics(set models.SampleSet) map[string]string {
	out := map[string]string{}
	for _, d := range set.Diagnostics() {
		out[d.Subject] = d.Message()
	}
	return out
}
