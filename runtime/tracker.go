package runtime

import (
	"fmt"
	"log/slog"

	"github.com/navreach/playbook"
	"github.com/navreach/playbook/registry"
)

// emphasisStyle is the stroke applied to the edge the run just traversed.
func emphasisStyle() map[string]any {
	return map[string]any{
		"stroke":      "#8b5cf6",
		"strokeWidth": 2.5,
	}
}

// Tracker reconciles the automation runtime's status-event stream into
// canvas state: per-node execution status, loop-iteration counts, and
// active-path edge emphasis. All cursor state (the last active node, the
// run-active flag) lives on the instance, never at package level, so
// reset and tests are deterministic.
//
// Events are processed strictly in arrival order. Loop iterations are
// sequential: one running transition per iteration.
type Tracker struct {
	store  *playbook.Store
	reg    *registry.Registry
	runner Stopper
	logger *slog.Logger

	lastActive string // node ID of the last running event, empty at run start
	active     bool
	log        []string
}

// NewTracker creates a tracker bound to a store. A nil registry falls
// back to the global builtin registry; runner may be nil when there is
// nothing to stop; a nil logger falls back to slog.Default().
func NewTracker(store *playbook.Store, reg *registry.Registry, runner Stopper, logger *slog.Logger) *Tracker {
	if reg == nil {
		reg = registry.Global()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		store:  store,
		reg:    reg,
		runner: runner,
		logger: logger,
	}
}

// Active reports whether a run is in progress.
func (t *Tracker) Active() bool {
	return t.active
}

// Log returns the derived log lines appended for each accepted event.
func (t *Tracker) Log() []string {
	return t.log
}

// Start marks a run as active and resets all visual state from any
// previous run.
func (t *Tracker) Start() {
	t.active = true
	t.log = nil
	t.Reset()
}

// Stop flips the run-active flag before resetting, so any events already
// in flight are discarded by the stale-event guard instead of repainting
// the cleared graph. The stop command to the runtime is idempotent.
func (t *Tracker) Stop() {
	t.active = false
	if t.runner != nil {
		t.runner.Stop()
	}
	t.Reset()
}

// Reset clears the last-active cursor, every node's execution status,
// message and loop count, and every edge's emphasis. Invoked on run
// start, explicit stop, and stream completion.
func (t *Tracker) Reset() {
	t.lastActive = ""
	t.store.ClearExecutionState()
}

// Consume processes events from the subscription channel until it closes,
// then resets the overlay (stream completion).
func (t *Tracker) Consume(events <-chan StatusEvent) {
	for e := range events {
		t.HandleEvent(e)
	}
	t.active = false
	t.Reset()
}

// HandleEvent applies one status event to the canvas.
func (t *Tracker) HandleEvent(e StatusEvent) {
	if !t.active {
		t.logger.Debug("discarding stale status event",
			"node_id", e.NodeID,
			"status", e.Status,
		)
		return
	}

	g := t.store.Snapshot()

	node, ok := findNode(g.Nodes, e.NodeID)
	if !ok {
		t.logger.Debug("status event for unknown node", "node_id", e.NodeID)
		return
	}

	if e.Status == StatusRunning {
		// Re-arm the visualization downstream: a loop body restarting a
		// branch must not keep last iteration's results painted.
		desc := descendants(g.Edges, e.NodeID)
		for i := range g.Nodes {
			if desc[g.Nodes[i].ID] {
				g.Nodes[i].Data.ExecutionStatus = ""
				g.Nodes[i].Data.ExecutionMessage = ""
			}
		}

		for i := range g.Nodes {
			if g.Nodes[i].ID != e.NodeID {
				continue
			}
			g.Nodes[i].Data.ExecutionStatus = playbook.StatusRunning
			g.Nodes[i].Data.ExecutionMessage = e.Message
			if g.Nodes[i].Type == registry.TypeLoop {
				g.Nodes[i].Data.LoopCount++
			}
		}

		// Emphasize exactly the edge the run just traversed. On the first
		// event of a run there is no prior node, so every edge arriving at
		// the target lights up.
		for i := range g.Edges {
			on := g.Edges[i].Target == e.NodeID &&
				(t.lastActive == "" || g.Edges[i].Source == t.lastActive)
			g.Edges[i].Animated = on
			if on {
				g.Edges[i].Style = emphasisStyle()
			} else {
				g.Edges[i].Style = nil
			}
		}

		t.lastActive = e.NodeID
	} else {
		for i := range g.Nodes {
			if g.Nodes[i].ID == e.NodeID {
				g.Nodes[i].Data.ExecutionStatus = playbook.ExecutionStatus(e.Status)
				g.Nodes[i].Data.ExecutionMessage = e.Message
			}
		}
	}

	t.store.ReplaceNodes(g.Nodes)
	t.store.ReplaceEdges(g.Edges)

	label := node.Data.Label
	if label == "" {
		if def, ok := t.reg.Get(node.Type); ok {
			label = def.DisplayName
		} else {
			label = node.Type
		}
	}
	line := fmt.Sprintf("%s: %s", label, e.Status)
	if e.Message != "" {
		line += " — " + e.Message
	}
	t.log = append(t.log, line)
	t.logger.Info("node status",
		"node_id", e.NodeID,
		"node_type", node.Type,
		"status", e.Status,
	)
}

// descendants returns the set of nodes reachable forward from start,
// excluding start itself. Iterative BFS with a visited set, safe on loop
// back-edges.
func descendants(edges []playbook.Edge, start string) map[string]bool {
	visited := map[string]bool{start: true}
	reached := make(map[string]bool)
	queue := []string{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, e := range edges {
			if e.Source != current || visited[e.Target] {
				continue
			}
			visited[e.Target] = true
			reached[e.Target] = true
			queue = append(queue, e.Target)
		}
	}
	return reached
}

func findNode(nodes []playbook.Node, id string) (playbook.Node, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
	}
	return playbook.Node{}, false
}
