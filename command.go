package overlay

import "github.com/gogpu/gg"

// CommandType identifies the type of a draw command.
type CommandType uint8

const (
	CmdFillRegion CommandType = iota // Fill a trend region span
	CmdStrokeLine                    // Stroke a marker connector
	CmdFillShape                     // Fill a marker glyph
	CmdDrawText                      // Draw a marker label
)

var commandTypeNames = [...]string{
	CmdFillRegion: "FillRegion",
	CmdStrokeLine: "StrokeLine",
	CmdFillShape:  "FillShape",
	CmdDrawText:   "DrawText",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is one immediate-mode drawing operation handed to a Sink.
// Commands are plain values; two renders of the same state produce equal
// command lists.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// FillRegionCommand fills a region span with a vertical gradient from Top
// (at Rect.Min.Y) to Bottom (at Rect.Max.Y).
type FillRegionCommand struct {
	ID     string
	Rect   Rect
	Top    gg.RGBA
	Bottom gg.RGBA
}

// Type implements Command.
func (FillRegionCommand) Type() CommandType { return CmdFillRegion }

// StrokeLineCommand strokes the connector between a marker's anchor and
// its box.
type StrokeLineCommand struct {
	ID       string
	From, To Point
	Color    gg.RGBA
	Width    float64
	Dash     []float64 // nil for a solid line
}

// Type implements Command.
func (StrokeLineCommand) Type() CommandType { return CmdStrokeLine }

// FillShapeCommand fills a marker glyph inscribed in Rect.
type FillShapeCommand struct {
	ID    string
	Shape Shape
	Rect  Rect
	Color gg.RGBA
}

// Type implements Command.
func (FillShapeCommand) Type() CommandType { return CmdFillShape }

// DrawTextCommand draws a label centred in Rect.
type DrawTextCommand struct {
	ID    string
	Text  string
	Rect  Rect
	Color gg.RGBA
	Size  float64 // points
}

// Type implements Command.
func (DrawTextCommand) Type() CommandType { return CmdDrawText }
