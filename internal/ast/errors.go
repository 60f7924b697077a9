package ast

import "fmt"

// fmtUnexpectedKind formats the panic message used when the walker (or any
// other pass expressed over it) meets a node kind it does not know how to
// handle. Per the specification this is a programmer error in whatever
// produced the tree, not something a pass can recover from, so every call
// site panics rather than returning an error.
func fmtUnexpectedKind(n Node) string {
	return fmt.Sprintf("ast: unexpected node kind %s (%T)", n.Kind(), n)
}
