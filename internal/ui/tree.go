package ui

import (
	"io"
	"strings"

	"github.com/nissyi-gh/taskroom/internal/board"
	"github.com/nissyi-gh/taskroom/internal/model"
)

// BuildTree flattens a board into bucket headings followed by their rows,
// with tree-drawing prefixes (├─, └─, │).
func BuildTree(b board.Board) []RowItem {
	var items []RowItem
	index := 0
	for _, g := range b.Groups {
		items = append(items, RowItem{Heading: g.Bucket, Count: len(g.Rows), Index: -1})
		for idx, r := range g.Rows {
			isLast := idx == len(g.Rows)-1
			prefix, descPrefix := " ├─ ", " │  "
			if isLast {
				prefix, descPrefix = " └─ ", "    "
			}
			items = append(items, RowItem{Row: r, Index: index, Prefix: prefix, DescPrefix: descPrefix})
			index++
		}
	}
	return items
}

// RenderPlain writes the board as uncoloured text followed by the stats line.
func RenderPlain(w io.Writer, b board.Board, stats model.Stats) error {
	var sb strings.Builder
	for _, item := range BuildTree(b) {
		sb.WriteString(item.Title())
		sb.WriteString("\n")
		if item.IsHeading() && item.Count == 0 {
			sb.WriteString(" └─ No tasks\n")
			continue
		}
		if desc := item.Description(); b.Options.ShowDescriptions && desc != "" {
			sb.WriteString(desc)
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")
	sb.WriteString(board.StatsLine(stats))
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
