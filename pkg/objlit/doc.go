// Package objlit evaluates restricted object-literal expressions against a set
// of named bindings.
//
// It is the safe replacement for evaluating include parameters such as
//
//	{ title: 'Welcome Email', companyName: companyName, }
//
// Only a small value grammar is accepted:
//
//   - identifiers, resolved against the bindings (dot paths and [index] are allowed)
//   - single or double quoted strings with the usual escapes
//   - numbers (integer, decimal, exponent, hex, optional sign)
//   - true, false, null, undefined
//   - object literals with quoted, unquoted or numeric keys and shorthand properties
//   - array literals
//   - trailing commas and // or /* */ comments
//
// There are no calls, operators or assignments, so evaluation never has side
// effects. Unknown identifiers are errors.
//
// # Usage
//
//	params, err := objlit.EvalObject(`{ title: 'X', user: user.name, }`, data)
//	if err != nil {
//	    params = map[string]any{}
//	}
package objlit
