// Package mewa implements a calculator over booleans, 64-bit integers,
// floats, and complex numbers.
//
// Expressions use familiar infix notation. "2 + 3 * 4" is 14. Integers
// promote to floats and floats to complex numbers as needed, so "7 / 2" is
// 3.5 and "3i * 3i" is -9. Booleans are written 't and 'f and combine with
// && and ||. A postfix run of n bangs is the n-step factorial, so "5!!" is
// 15, and bars take absolute values, so "|3 + 4i|" is 5.
//
// A Parser reads any number of expressions separated by ; from a string or
// a stream. Parse trees live in an Arena, which a read-eval loop can reset
// between expressions to bound its memory. A Context evaluates them.
package mewa
