package sparsegraph_test

import (
	"errors"
	"fmt"
	"log"

	"github.com/hupe1980/sparsegraph"
)

// Example demonstrates vertices, a typed edge and the adjacency matrix.
func Example() {
	g, err := sparsegraph.New()
	if err != nil {
		log.Fatal(err)
	}
	defer g.Close()

	for _, name := range []string{"alice", "bob", "carol"} {
		if _, err := sparsegraph.AddVertex(g, name, int32(len(name))); err != nil {
			log.Fatal(err)
		}
	}

	if _, err := sparsegraph.AddEdgeType[float64](g, "knows"); err != nil {
		log.Fatal(err)
	}
	_ = sparsegraph.AddEdge(g, "knows", "alice", "bob", 0.5)
	_ = sparsegraph.AddEdge(g, "knows", "bob", "carol", 0.25)

	m, _ := sparsegraph.AdjacencyMatrix[float64](g, "knows")
	for c, w := range m.All() {
		from, _ := g.VertexKey(c.Row)
		to, _ := g.VertexKey(c.Col)
		fmt.Printf("%s -> %s (%.2f)\n", from, to, w)
	}

	// Output:
	// alice -> bob (0.50)
	// bob -> carol (0.25)
}

// Example_deleteVertex shows that deleting a vertex clears its edges and
// frees its index for reuse.
func Example_deleteVertex() {
	g, _ := sparsegraph.New(sparsegraph.WithInitialVertexCapacity(2))
	defer g.Close()

	a, _ := sparsegraph.AddVertex(g, "A", 42)
	_, _ = sparsegraph.AddVertex(g, "B", 7)
	_, _ = sparsegraph.AddEdgeType[bool](g, "blocks")
	_ = sparsegraph.AddEdge(g, "blocks", "A", "B", true)

	_ = g.DeleteVertex("A")
	_, err := sparsegraph.VertexValue[int](g, "A")
	fmt.Println(errors.Is(err, sparsegraph.ErrVertexKeyNotFound))
	fmt.Println(g.NumberOfEdges())

	c, _ := sparsegraph.AddVertex(g, "C", 1)
	fmt.Println(c == a, g.VertexCapacity())

	// Output:
	// true
	// 0
	// true 2
}

// Example_metrics demonstrates collecting operation counters.
func Example_metrics() {
	metrics := &sparsegraph.BasicMetricsCollector{}
	g, _ := sparsegraph.New(
		sparsegraph.WithInitialVertexCapacity(1),
		sparsegraph.WithMetricsCollector(metrics),
	)
	defer g.Close()

	for _, key := range []string{"a", "b", "c"} {
		_, _ = g.AddVertexKey(key)
	}

	stats := metrics.GetStats()
	fmt.Println(stats.AddVertexCount, stats.ResizeCount, stats.VertexCapacity)

	// Output: 3 2 4
}
