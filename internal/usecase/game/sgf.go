package game

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"suntzu/internal/domain/board"
	"suntzu/internal/domain/game"
	"suntzu/internal/domain/sgf"
	"suntzu/internal/errors"
)

const sgfLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// fixed order of SGF properties
var orderedKeys = []string{"FF", "GM", "SZ", "PB", "PW", "KM", "RU", "C", "B", "W"}

func PrepareSgfFile(g *game.Game) sgf.SGF {
	opts := g.Options()
	root := sgf.Node{
		Properties: map[string][]string{
			"FF": {"4"},
			"GM": {"1"},
			"SZ": {strconv.Itoa(opts.BoardSize)},
			"KM": {strconv.FormatFloat(opts.Komi, 'f', 1, 64)},
			"RU": {"Japanese"},
			"C":  {fmt.Sprintf("komi to %s, captures credited to %s", opts.KomiSide, opts.Credit)},
		},
	}
	if p, ok := g.Player(board.Black); ok {
		root.Properties["PB"] = []string{p.Name}
	}
	if p, ok := g.Player(board.White); ok {
		root.Properties["PW"] = []string{p.Name}
	}

	return sgf.SGF{
		Root: &sgf.GameTree{Nodes: []sgf.Node{root}},
	}
}

// AddActionsToSgf appends one node per action. A pass is an empty move value.
func AddActionsToSgf(tree *sgf.GameTree, size int, actions []game.Action) error {
	for _, a := range actions {
		value := ""
		switch act := a.(type) {
		case game.Move:
			coords, err := sgfCoordinates(size, act.Pos)
			if err != nil {
				return err
			}
			value = coords
		case game.Pass:
		default:
			return fmt.Errorf("%T: %w", a, errors.ErrUnknownAction)
		}

		tree.Nodes = append(tree.Nodes, sgf.Node{
			Properties: map[string][]string{
				sgfColor(a.Side()): {value},
			},
		})
	}
	return nil
}

func sgfColor(side board.Side) string {
	if side == board.White {
		return "W"
	}
	return "B"
}

func sgfCoordinates(size int, pos board.Position) (string, error) {
	if size > len(sgfLetters) {
		return "", fmt.Errorf("size %d: %w", size, errors.ErrSGFBoardTooLarge)
	}
	return string(sgfLetters[pos.X-1]) + string(sgfLetters[pos.Y-1]), nil
}

func SerializeSGF(s *sgf.SGF) string {
	var builder strings.Builder
	builder.WriteString("(")
	serializeGameTree(&builder, s.Root)
	builder.WriteString(")")
	return builder.String()
}

func serializeGameTree(builder *strings.Builder, tree *sgf.GameTree) {
	for _, node := range tree.Nodes {
		builder.WriteString(";")

		used := make(map[string]bool)
		for _, key := range orderedKeys {
			if values, ok := node.Properties[key]; ok {
				used[key] = true
				writeProperty(builder, key, values)
			}
		}

		var rest []string
		for key := range node.Properties {
			if !used[key] {
				rest = append(rest, key)
			}
		}
		sort.Strings(rest)
		for _, key := range rest {
			writeProperty(builder, key, node.Properties[key])
		}
	}

	for _, child := range tree.Children {
		builder.WriteString("(")
		serializeGameTree(builder, child)
		builder.WriteString(")")
	}
}

func writeProperty(builder *strings.Builder, key string, values []string) {
	builder.WriteString(key)
	for _, v := range values {
		builder.WriteString("[")
		builder.WriteString(escapeSgfValue(v))
		builder.WriteString("]")
	}
}

func escapeSgfValue(v string) string {
	return strings.NewReplacer(`\`, `\\`, "]", `\]`).Replace(v)
}
