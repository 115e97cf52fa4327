package circuit

import (
	"fmt"
	"slices"
)

// DAGNode represents a gate in the sequence as a node in a DAG.
// Dependencies represent ordering constraints - a gate cannot execute before
// the earlier gates that act on the same wires.
type DAGNode struct {
	ID           string   // Unique identifier for this node
	Index        int      // Position in the source sequence
	Gate         Gate     // The recorded gate
	Step         int      // Drawing column; multi-wire gates reserve their whole span
	Level        int      // Longest dependency chain ending at this node
	Dependencies []string // IDs of nodes that must execute before this one
}

// DAG represents a gate sequence as a Directed Acyclic Graph.
type DAG struct {
	Nodes     map[string]*DAGNode // All nodes by ID
	NumQubits int                 // One more than the highest wire label
	order     []string            // Node IDs in sequence order
	rootNodes []string            // Node IDs with no dependencies (for topological sort)
}

// generateNodeID creates a unique ID for a node based on its properties.
func generateNodeID(gateType string, index int) string {
	return fmt.Sprintf("%s_%d", gateType, index)
}

// NewDAG builds the dependency graph of a sequence. Each gate depends on the
// last gate seen on every wire it touches.
func NewDAG(seq *Sequence) *DAG {
	dag := &DAG{Nodes: make(map[string]*DAGNode)}

	lastGateOnWire := make(map[int]string)
	// Last drawing column used on each wire row.
	lastStepOnRow := make(map[int]int)

	for i, gate := range seq.gates {
		node := &DAGNode{
			ID:           generateNodeID(gate.Type, i),
			Index:        i,
			Gate:         gate,
			Dependencies: []string{},
		}

		wires := gate.Qubits()
		depSet := make(map[string]bool)
		for _, w := range wires {
			if lastID, ok := lastGateOnWire[w]; ok && !depSet[lastID] {
				depSet[lastID] = true
				node.Dependencies = append(node.Dependencies, lastID)
			}
		}
		for _, depID := range node.Dependencies {
			node.Level = max(node.Level, dag.Nodes[depID].Level+1)
		}

		// A gate acting on no wire occupies no column.
		if len(wires) == 0 {
			dag.addNode(node)
			continue
		}

		lo, hi := slices.Min(wires), slices.Max(wires)
		step := 0
		for row := lo; row <= hi; row++ {
			if last, ok := lastStepOnRow[row]; ok {
				step = max(step, last+1)
			}
		}
		node.Step = step
		for row := lo; row <= hi; row++ {
			lastStepOnRow[row] = step
		}

		dag.addNode(node)
		for _, w := range wires {
			lastGateOnWire[w] = node.ID
		}
	}

	return dag
}

func (dag *DAG) addNode(node *DAGNode) {
	dag.Nodes[node.ID] = node
	dag.order = append(dag.order, node.ID)
	if len(node.Dependencies) == 0 {
		dag.rootNodes = append(dag.rootNodes, node.ID)
	}
	for _, w := range node.Gate.Qubits() {
		if w+1 > dag.NumQubits {
			dag.NumQubits = w + 1
		}
	}
}

// TopologicalSort returns nodes in topological order (respecting dependencies).
func (dag *DAG) TopologicalSort() []*DAGNode {
	visited := make(map[string]bool)
	result := make([]*DAGNode, 0, len(dag.Nodes))

	var visit func(nodeID string)
	visit = func(nodeID string) {
		if visited[nodeID] {
			return
		}
		visited[nodeID] = true

		node := dag.Nodes[nodeID]
		for _, depID := range node.Dependencies {
			visit(depID)
		}
		result = append(result, node)
	}

	for _, rootID := range dag.rootNodes {
		visit(rootID)
	}
	for _, id := range dag.order {
		visit(id)
	}

	return result
}

// Depth returns the number of layers in the sequence, counting each gate as
// one time step.
func (dag *DAG) Depth() int {
	if len(dag.Nodes) == 0 {
		return 0
	}
	depth := 0
	for _, node := range dag.Nodes {
		depth = max(depth, node.Level+1)
	}
	return depth
}

// MaxStep returns the maximum drawing column in the DAG.
func (dag *DAG) MaxStep() int {
	maxStep := 0
	for _, node := range dag.Nodes {
		maxStep = max(maxStep, node.Step)
	}
	return maxStep
}

// NodesAtStep returns all nodes drawn in the given column, in sequence order.
func (dag *DAG) NodesAtStep(step int) []*DAGNode {
	var result []*DAGNode
	for _, id := range dag.order {
		if node := dag.Nodes[id]; node.Step == step {
			result = append(result, node)
		}
	}
	return result
}

// NodesOnWire returns all nodes that act on a wire, in sequence order.
func (dag *DAG) NodesOnWire(wire int) []*DAGNode {
	var result []*DAGNode
	for _, id := range dag.order {
		if node := dag.Nodes[id]; node.Gate.references(wire) {
			result = append(result, node)
		}
	}
	return result
}

// NodeAt returns the node drawn at the given column and wire, if any.
func (dag *DAG) NodeAt(step, wire int) *DAGNode {
	for _, id := range dag.order {
		node := dag.Nodes[id]
		if node.Step == step && node.Gate.references(wire) {
			return node
		}
	}
	return nil
}

// Layers groups the gates by drawing column.
func (dag *DAG) Layers() [][]Gate {
	if len(dag.Nodes) == 0 {
		return nil
	}
	layers := make([][]Gate, dag.MaxStep()+1)
	for _, id := range dag.order {
		node := dag.Nodes[id]
		layers[node.Step] = append(layers[node.Step], node.Gate)
	}
	return layers
}
