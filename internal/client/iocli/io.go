// Package iocli abstracts terminal input and output so command
// handlers can be driven from tests.
package iocli

// IO is the terminal surface the CLI talks to.
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
}
