package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hupe1980/sparsegraph"
	"github.com/hupe1980/sparsegraph/internal/config"
)

func newRunCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Apply a scenario to a new graph and print a summary",
		Long: `Apply a YAML scenario to a new graph. Sections are applied in order:
vertices, edgeTypes, edges, deleteEdges, deleteVertices, dropEdgeTypes.
Vertices are added or replaced; a vertex without kind carries no value.

Example scenario:

  vertices:
    - {key: alice, kind: int32, value: 30}
    - {key: bob}
  edgeTypes:
    - {key: knows, kind: float64}
  edges:
    - {type: knows, kind: float64, from: alice, to: bob, weight: 0.5}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.cfgFile)
			if err != nil {
				return err
			}
			if flags.verbose {
				cfg.LogLevel = "debug"
			}
			logger, err := cfg.Logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			s, err := LoadScenario(args[0])
			if err != nil {
				return err
			}

			g, err := sparsegraph.New(cfg.Options(logger)...)
			if err != nil {
				return err
			}
			defer g.Close()

			if err := apply(g, s); err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), g, s, flags.verbose)
		},
	}
}

func apply(g *sparsegraph.Graph, s *Scenario) error {
	for i := range s.Vertices {
		v := &s.Vertices[i]
		if v.Kind == "" {
			if _, err := g.AddOrReplaceVertexKey(v.Key); err != nil {
				return fmt.Errorf("vertices[%d]: %w", i, err)
			}
			continue
		}
		_, ops, err := opsForName(v.Kind)
		if err != nil {
			return fmt.Errorf("vertices[%d]: %w", i, err)
		}
		if err := ops.addVertex(g, v.Key, &v.Value); err != nil {
			return fmt.Errorf("vertices[%d]: %w", i, err)
		}
	}

	for i, et := range s.EdgeTypes {
		_, ops, err := opsForName(et.Kind)
		if err == nil {
			err = ops.addEdgeType(g, et.Key)
		}
		if err != nil {
			return fmt.Errorf("edgeTypes[%d]: %w", i, err)
		}
	}

	for i := range s.Edges {
		e := &s.Edges[i]
		_, ops, err := opsForName(e.Kind)
		if err == nil {
			err = ops.addEdge(g, e.Type, e.From, e.To, &e.Weight)
		}
		if err != nil {
			return fmt.Errorf("edges[%d]: %w", i, err)
		}
	}

	for i, e := range s.DeleteEdges {
		_, ops, err := opsForName(e.Kind)
		if err == nil {
			err = ops.deleteEdge(g, e.Type, e.From, e.To)
		}
		if err != nil {
			return fmt.Errorf("deleteEdges[%d]: %w", i, err)
		}
	}

	for i, key := range s.DeleteVertices {
		if err := g.DeleteVertex(key); err != nil {
			return fmt.Errorf("deleteVertices[%d]: %w", i, err)
		}
	}

	for i, et := range s.DropEdgeTypes {
		_, ops, err := opsForName(et.Kind)
		if err == nil {
			err = ops.dropEdgeType(g, et.Key)
		}
		if err != nil {
			return fmt.Errorf("dropEdgeTypes[%d]: %w", i, err)
		}
	}
	return nil
}

func printSummary(w io.Writer, g *sparsegraph.Graph, s *Scenario, verbose bool) error {
	fmt.Fprintf(w, "vertices:   %d (capacity %d)\n", g.NumberOfVertices(), g.VertexCapacity())
	fmt.Fprintf(w, "edge types: %d\n", g.NumberOfEdgeTypes())
	fmt.Fprintf(w, "edges:      %d\n", g.NumberOfEdges())
	if !verbose {
		return nil
	}

	for key := range g.Vertices() {
		kind, err := g.VertexKind(key)
		if err != nil {
			return err
		}
		if kind == sparsegraph.KindNone {
			fmt.Fprintf(w, "  %s\n", key)
			continue
		}
		v, err := kinds[kind].vertexValue(g, key)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %s [%s] = %v\n", key, kind, v)
	}

	for _, et := range s.EdgeTypes {
		kind, ops, err := opsForName(et.Kind)
		if err != nil {
			return err
		}
		var walkErr error
		err = ops.edges(g, et.Key, func(from, to sparsegraph.Index, weight any) {
			if walkErr != nil {
				return
			}
			src, err := g.VertexKey(from)
			if err != nil {
				walkErr = err
				return
			}
			dst, err := g.VertexKey(to)
			if err != nil {
				walkErr = err
				return
			}
			fmt.Fprintf(w, "  %s (%s): %s -> %s = %v\n", et.Key, kind, src, dst, weight)
		})
		if errors.Is(err, sparsegraph.ErrEdgeTypeDoesNotExist) {
			continue
		}
		if err != nil {
			return err
		}
		if walkErr != nil {
			return walkErr
		}
	}
	return nil
}
