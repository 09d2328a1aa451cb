package main

import (
	"fmt"

	"github.com/Malcan-Technologies/creditxpress-aws-sub009/fsm/fsm"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/fsm/state_machines/signatory_fsm"
)

// Prints the signatory lifecycle in Graphviz dot format. Pipe into
// `dot -Tpng` when reviewing transition changes.
func main() {
	fmt.Print(fsm.Visualize(signatory_fsm.New().FSM))
}
