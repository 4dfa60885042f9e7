package sqldata

import (
	"fmt"
	"strings"
)

// bind substitutes the positional markers in template with the escaped
// arguments. A bare ? binds a value; the two-character sequence i?
// binds an identifier and requires a string argument. Both marker forms
// advance the same left-to-right argument cursor.
//
// bind is pure: it never touches the connection, so a failed bind
// guarantees no partial statement reaches the engine.
func (e escaper) bind(args []any, template string) (string, *Error) {
	var b strings.Builder
	b.Grow(len(template))
	next := 0
	for i := 0; i < len(template); i++ {
		switch c := template[i]; {
		case c == '?':
			if next >= len(args) {
				return "", codeError(ErrBindInsufficientArgs)
			}
			b.WriteString(e.value(args[next]))
			next++
		case c == 'i' && i+1 < len(template) && template[i+1] == '?':
			if next >= len(args) {
				return "", codeError(ErrBindInsufficientArgs)
			}
			name, ok := args[next].(string)
			if !ok {
				return "", &Error{
					Code:    ErrBindIdentifierType,
					Message: fmt.Sprintf("argument %d bound as an identifier is not a string", next),
				}
			}
			b.WriteString(EscapeIdentifier(name))
			next++
			i++
		default:
			b.WriteByte(c)
		}
	}
	if next != len(args) {
		return "", codeError(ErrBindExcessArgs)
	}
	return b.String(), nil
}
