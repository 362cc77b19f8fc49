// Package lang is the entry point to the brace language pipeline:
//
//	source -> lexer -> tokens -> parser -> syntax tree -> evaluator -> output
//
// A program is a single brace-delimited block of statements. Statements
// declare typed variables, assign to existing variables, print values, or open
// nested blocks, each of which introduces a scope:
//
//	{
//	    int x = 5;
//	    {
//	        int x = 10;   # shadows the outer x
//	        print(x);     # 10
//	    }
//	    x = x * 2;
//	    print(x / 4);    # 2.5
//	}
//
// # Types
//
// Values are int (64-bit, wrapping), float (64-bit), string, or bool.
// Arithmetic follows these rules; every other combination is a type
// mismatch:
//
//	int    + - *  int    -> int
//	int    /      int    -> float
//	number op     number -> float, when either operand is float
//	string +      string -> string
//
// Division by a zero int or float fails. A declared type must match the
// stored value, except that an int is widened when stored into a float
// variable; [WithTypeCheck] disables this check.
//
// # Errors
//
// Each stage reports a typed error that matches a sentinel with errors.Is:
// [lexer.ErrLex] for *lexer.Error, [parser.ErrParse] for *parser.Error, and
// [eval.ErrEval] for *eval.Error. All carry a source position and implement
// [log/slog.LogValuer].
//
// # Output
//
// Printed values are rendered as integers without a decimal point, floats
// always with one (5.0, 2.5), strings without quotes, and booleans as true or
// false.
package lang
