// Package command implements the <crea> command language: a line-oriented
// script of $create and %delete statements. Parse turns a script into typed
// commands using a small lexer and grammar; an Interpreter applies them to a
// filesystem, consulting an explicit pin table for conditional deletes.
//
// Grammar (one statement per line, text after '#' is ignored):
//
//	create    = "$create" "=" "entry" "Name" "=" STRING [ext] [dir] [","]
//	ext       = "%extension" "." WORD
//	dir       = "%notExtension"
//	delete    = "%delete" "=" ("Name" | "file") "=" STRING ["%all"] [list] [cond] [","]
//	list      = "%" WORD { "," WORD }
//	cond      = "&condition" STRING
//
// The legacy spellings $crea=file, %extencion, %Not_extencion, %borra and
// &con are accepted as aliases. Tokens after a complete statement are ignored.
package command
