package fsm

import (
	"bytes"
	"fmt"
	"sort"
)

// Visualize renders the transition table in Graphviz dot format, with the
// machine's current state listed first. Handy when reviewing lifecycle
// changes.
func Visualize(fsm *FSM) string {
	var buf bytes.Buffer

	type edge struct {
		source State
		event  Event
		dst    State
	}

	var edges []edge
	for k, dst := range fsm.transitions {
		edges = append(edges, edge{k.source, k.event, dst})
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].source != edges[j].source {
			// make sure the current state is at top
			if edges[i].source == fsm.currentState {
				return true
			}
			if edges[j].source == fsm.currentState {
				return false
			}
			return edges[i].source < edges[j].source
		}
		return edges[i].event < edges[j].event
	})

	states := make(map[string]bool)

	buf.WriteString("digraph fsm {\n")

	for _, e := range edges {
		states[string(e.source)] = true
		states[string(e.dst)] = true
		buf.WriteString(fmt.Sprintf(`    "%s" -> "%s" [ label = "%s" ];`, e.source, e.dst, e.event))
		buf.WriteString("\n")
	}

	buf.WriteString("\n")

	var names []string
	for k := range states {
		names = append(names, k)
	}
	sort.Strings(names)

	for _, k := range names {
		buf.WriteString(fmt.Sprintf(`    "%s";`, k))
		buf.WriteString("\n")
	}
	buf.WriteString(fmt.Sprintln("}"))

	return buf.String()
}
