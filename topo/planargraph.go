//  Copyright (c) 2024 Couchbase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// 		http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package topo

// planarGraph holds the nodes, edges and directed edge ends of a topology
// graph. All graph entities live only for the duration of a single relate
// or overlay call.
type planarGraph struct {
	edges    []*Edge
	nodes    *nodeMap
	edgeEnds []graphEdgeEnd
}

func newPlanarGraph(newStar func() star) *planarGraph {
	return &planarGraph{nodes: newNodeMap(newStar)}
}

func newOverlayGraph() *planarGraph {
	return newPlanarGraph(func() star { return newDirectedEdgeStar() })
}

// add inserts an edge end into the graph, attaching it to its origin node.
func (g *planarGraph) add(e graphEdgeEnd) {
	g.nodes.addEdgeEnd(e)
	g.edgeEnds = append(g.edgeEnds, e)
}

// addEdges inserts a set of edges, creating the forward and reverse
// directed edges of each and linking them as twins.
func (g *planarGraph) addEdges(edges []*Edge) {
	for _, e := range edges {
		g.edges = append(g.edges, e)
		de1 := newDirectedEdge(e, true)
		de2 := newDirectedEdge(e, false)
		de1.sym = de2
		de2.sym = de1
		g.add(de1)
		g.add(de2)
	}
}

// dirEdges returns the directed edges of the graph in insertion order.
func (g *planarGraph) dirEdges() []*DirectedEdge {
	out := make([]*DirectedEdge, 0, len(g.edgeEnds))
	for _, e := range g.edgeEnds {
		if de, ok := e.(*DirectedEdge); ok {
			out = append(out, de)
		}
	}
	return out
}

// linkResultDirectedEdges links the selected directed edges at every node
// into rings.
func (g *planarGraph) linkResultDirectedEdges() error {
	for _, n := range g.nodes.values() {
		if err := n.edges.(*directedEdgeStar).linkResultDirectedEdges(); err != nil {
			return err
		}
	}
	return nil
}
