package tables

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Style returns the borderless style used for all tabular console output.
func Style() table.Style {
	s := table.StyleLight
	s.Name = "wdiorun"
	s.Box.PaddingLeft = "  "
	s.Box.PaddingRight = "  "
	s.Format.Header = text.FormatDefault
	s.Format.Footer = text.FormatDefault
	s.Options.DrawBorder = false
	s.Options.SeparateColumns = false
	return s
}
