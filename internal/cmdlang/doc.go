// Package cmdlang implements the palette's create-command language.
//
// Input qualifies as a command when, after trimming, it starts with "+" or
// with the keyword "create" followed by whitespace:
//
//	+ character Alice --tag protagonist --age 24
//	create chapter "Chapter One" --bind blueprint_001 --scene 0 --no-signals
//
// Tokenize splits a line shell-style, Grammar declares the closed vocabulary
// of command types and options, and Parse builds a ParsedCommand. Parse never
// fails: every problem is collected in ParsedCommand.Errors so that several
// issues can be reported from a single pass.
//
// The package also recognizes the pin mini-commands used to attach writing
// techniques to the open chapter (see ParsePin).
package cmdlang
