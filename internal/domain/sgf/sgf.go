package sgf

// GameTree is one SGF game tree: the main line of nodes and its variations.
type GameTree struct {
	Nodes    []Node
	Children []*GameTree
}

// Node holds SGF properties such as B[pd] or AB[aa][bb]; a property may repeat.
type Node struct {
	Properties map[string][]string
}

type SGF struct {
	Root *GameTree
}
