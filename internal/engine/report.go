package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Counts are the per-entity-kind outcomes of one run.
type Counts struct {
	Created int
	Skipped int
	Failed  int
}

// Report aggregates what a run did so an operator can see what needs
// manual remediation. Owned by the Migrator; not safe for concurrent use.
type Report struct {
	RunID    string
	Started  time.Time
	Finished time.Time
	counts   map[string]*Counts
}

// NewReport starts a report for a fresh run.
func NewReport() *Report {
	return &Report{
		RunID:  uuid.NewString(),
		counts: make(map[string]*Counts),
	}
}

func (r *Report) kind(kind string) *Counts {
	c, ok := r.counts[kind]
	if !ok {
		c = &Counts{}
		r.counts[kind] = c
	}
	return c
}

// Created records a successful creation.
func (r *Report) Created(kind string) { r.kind(kind).Created++ }

// Skipped records an entity deliberately not migrated.
func (r *Report) Skipped(kind string) { r.kind(kind).Skipped++ }

// Failed records an entity that could not be migrated.
func (r *Report) Failed(kind string) { r.kind(kind).Failed++ }

// Counts returns the outcomes recorded for a kind.
func (r *Report) Counts(kind string) Counts {
	if c, ok := r.counts[kind]; ok {
		return *c
	}
	return Counts{}
}

// Summary renders the final per-kind totals as text.
func (r *Report) Summary() string {
	kinds := make([]string, 0, len(r.counts))
	for kind := range r.counts {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	var b strings.Builder
	fmt.Fprintf(&b, "Migration run %s", r.RunID)
	if !r.Finished.IsZero() {
		fmt.Fprintf(&b, " (%s)", r.Finished.Sub(r.Started).Round(time.Second))
	}
	b.WriteString("\n")
	for _, kind := range kinds {
		c := r.counts[kind]
		fmt.Fprintf(&b, "  %-12s created %d, skipped %d, failed %d\n", kind, c.Created, c.Skipped, c.Failed)
	}
	if len(kinds) == 0 {
		b.WriteString("  nothing migrated\n")
	}
	return b.String()
}
