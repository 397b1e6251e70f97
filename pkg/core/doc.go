// Package core provides a small, stable facade over zerowidth's internal
// packages for external integrations: encoding text into invisible symbols,
// hiding it inside carrier text, finding it again, and scanning trees.
//
// Example:
//
//	hidden, _ := core.Embed("quad", "foo bar", "Hello World!")
//	payloads, _ := core.Detect("quad", hidden)
//	fmt.Println(payloads[0]) // Hello World!
package core
