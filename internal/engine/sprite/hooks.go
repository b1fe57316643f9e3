package sprite

import "github.com/Faultbox/sprite3d/internal/engine/model"

// StageResult is what a traversal hook returns to steer the engine.
type StageResult int

const (
	// Continue proceeds with the normal sequence.
	Continue StageResult = iota

	// Skip shortcuts the stage it is returned from:
	// from PreNode it reuses the previously resolved world transform,
	// from PreChildren it skips the children pass,
	// from PreMesh it skips the current sub-mesh.
	Skip

	// Abort stops this node's remaining processing: no children, no local
	// draw, no cleanup. From PreMesh it aborts the remaining sub-meshes.
	Abort
)

// Hooks are the optional per-stage callbacks a node invokes during traversal.
// Nil slots are simply not called. Hooks run synchronously on the traversal
// goroutine and must not block.
//
// Invocation order per node: PreNode, PreChildren, (children), PreDraw,
// (local submission with PreMesh per sub-mesh), Cleanup. Cleanup runs only
// when no earlier stage aborted.
type Hooks struct {
	// PreNode runs before transform resolution. flags is the filter mask the
	// traversal was started with.
	PreNode func(n *Node, flags uint32) StageResult

	// PreChildren runs after transform resolution, before recursing.
	PreChildren func(n *Node, flags uint32) StageResult

	// PreDraw runs after the children pass, before local submission.
	// Skip is treated as Continue here: the stage has nothing to shortcut.
	PreDraw func(n *Node, flags uint32) StageResult

	// PreMesh runs before each sub-mesh submission.
	PreMesh func(n *Node, sub *model.SubMesh, index int) StageResult

	// Cleanup runs at the end of the node's sequence.
	Cleanup func(n *Node)
}
