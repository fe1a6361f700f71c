package overlay

import "fmt"

// Sink is the drawing surface supplied by the host. Draw receives the
// complete command list of one frame; a sink keeps nothing between frames.
type Sink interface {
	Draw(cmds []Command) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(cmds []Command) error

// Draw implements Sink.
func (f SinkFunc) Draw(cmds []Command) error { return f(cmds) }

// Painter receives commands one at a time. Replay dispatches a command
// list to a Painter, so concrete sinks only implement the four primitives.
type Painter interface {
	FillRegion(c FillRegionCommand) error
	StrokeLine(c StrokeLineCommand) error
	FillShape(c FillShapeCommand) error
	DrawText(c DrawTextCommand) error
}

// Replay dispatches every command to p in order. It stops at the first
// error.
func Replay(cmds []Command, p Painter) error {
	for i, cmd := range cmds {
		var err error
		switch c := cmd.(type) {
		case FillRegionCommand:
			err = p.FillRegion(c)
		case StrokeLineCommand:
			err = p.StrokeLine(c)
		case FillShapeCommand:
			err = p.FillShape(c)
		case DrawTextCommand:
			err = p.DrawText(c)
		default:
			err = fmt.Errorf("overlay: unknown command %T", cmd)
		}
		if err != nil {
			return fmt.Errorf("command %d (%s): %w", i, cmd.Type(), err)
		}
	}
	return nil
}

// Recorder is a Sink that keeps the last frame's commands. It is useful
// in tests and for replaying a frame into another sink.
type Recorder struct {
	frames   int
	commands []Command
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Draw implements Sink.
func (r *Recorder) Draw(cmds []Command) error {
	r.frames++
	r.commands = append(r.commands[:0:0], cmds...)
	return nil
}

// Frames returns the number of frames drawn so far.
func (r *Recorder) Frames() int { return r.frames }

// Commands returns the commands of the last frame.
func (r *Recorder) Commands() []Command {
	return append([]Command(nil), r.commands...)
}

// CommandsOf returns the commands of the last frame that belong to the
// marker or region with the given id.
func (r *Recorder) CommandsOf(id string) []Command {
	var out []Command
	for _, c := range r.commands {
		if commandID(c) == id {
			out = append(out, c)
		}
	}
	return out
}

// Playback draws the last frame into s.
func (r *Recorder) Playback(s Sink) error {
	return s.Draw(r.Commands())
}

func commandID(c Command) string {
	switch c := c.(type) {
	case FillRegionCommand:
		return c.ID
	case StrokeLineCommand:
		return c.ID
	case FillShapeCommand:
		return c.ID
	case DrawTextCommand:
		return c.ID
	}
	return ""
}
