// Package gpu defines the errors raised while bringing up the graphics stack.
package gpu

import "fmt"

// Stage identifies where graphics initialization failed.
type Stage string

const (
	StageContext  Stage = "context"
	StageVertex   Stage = "vertex shader"
	StageFragment Stage = "fragment shader"
	StageLink     Stage = "link"
)

// InitError reports a fatal failure to create the GL context or to build the
// shader program. Log holds the driver's info log when there is one.
type InitError struct {
	Stage Stage
	Log   string
	Err   error
}

func (e *InitError) Error() string {
	switch {
	case e.Err != nil && e.Log != "":
		return fmt.Sprintf("%s: %s: %v", e.Stage, e.Log, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Stage, e.Log)
	}
}

func (e *InitError) Unwrap() error {
	return e.Err
}
