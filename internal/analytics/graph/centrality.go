// Package graph builds the undirected counterparty graph of a transfer batch.
package graph

import (
	"sort"

	"github.com/vietddude/sniffer/internal/core/domain"
)

// DefaultMinDegree keeps every address with at least one counterparty.
const DefaultMinDegree = 1

// Graph is an undirected adjacency set keyed by lower-cased address.
// Nodes remember the order in which they were first seen.
type Graph struct {
	adjacency map[string]map[string]struct{}
	order     []string
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{adjacency: make(map[string]map[string]struct{})}
}

// Build adds an edge for every event with a valid sender and receiver.
func Build(events []*domain.DecodedEvent) *Graph {
	g := New()
	for _, e := range events {
		if e == nil {
			continue
		}
		from, okFrom := e.Sender()
		to, okTo := e.Receiver()
		if !okFrom || !okTo {
			continue
		}
		g.AddEdge(from, to)
	}
	return g
}

// AddEdge links a and b in both directions.
// A self-loop makes the address its own counterparty.
func (g *Graph) AddEdge(a, b string) {
	g.neighbors(a)[b] = struct{}{}
	g.neighbors(b)[a] = struct{}{}
}

// Degree returns the number of distinct counterparties of addr.
func (g *Graph) Degree(addr string) int {
	return len(g.adjacency[addr])
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.order)
}

func (g *Graph) neighbors(addr string) map[string]struct{} {
	set, ok := g.adjacency[addr]
	if !ok {
		set = make(map[string]struct{})
		g.adjacency[addr] = set
		g.order = append(g.order, addr)
	}
	return set
}

// Ranked returns every node with degree >= minDegree, highest degree first.
// Ties keep first-seen order.
func (g *Graph) Ranked(minDegree int) []domain.Centrality {
	out := make([]domain.Centrality, 0, len(g.order))
	for _, addr := range g.order {
		if d := len(g.adjacency[addr]); d >= minDegree {
			out = append(out, domain.Centrality{Address: addr, Degree: d})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Degree > out[j].Degree
	})
	return out
}

// Centrality ranks the addresses of a batch by degree.
func Centrality(events []*domain.DecodedEvent, minDegree int) []domain.Centrality {
	return Build(events).Ranked(minDegree)
}
