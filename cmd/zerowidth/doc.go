// Package zerowidth provides the command-line interface for the zerowidth tool.
// It configures subcommands (encode, detect, scan, etc.), parses flags, and
// executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/redactyl/zerowidth/cmd/zerowidth"
//	func main() { zerowidth.Execute() }
package zerowidth
