// Package record models one line of a Carmichael factor table: a candidate
// number followed by the prime divisors recorded for it.
package record

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrEmptyLine is returned when a line carries no tokens at all.
var ErrEmptyLine = errors.New("empty line: no candidate number")

// ParseError describes a token that is not a valid base-10 integer.
type ParseError struct {
	Token string
	Field int // 0-based token position within the line.
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid base-10 integer %q at field %d", e.Token, e.Field)
}

// Record is one parsed table line. Principal is the candidate number,
// Divisors are the remaining tokens in file order. Magnitudes routinely
// exceed 64 bits, so both are arbitrary-precision.
type Record struct {
	Principal *big.Int
	Divisors  []*big.Int
}

// DivisorCount returns the number of recorded divisors.
func (r *Record) DivisorCount() int {
	return len(r.Divisors)
}

// ParseLine parses one whitespace-separated line of decimal integers into a
// Record. The first token is the principal number, the rest are its divisors.
// It is a pure function of the line; the caller attaches line numbers.
func ParseLine(line string) (*Record, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, ErrEmptyLine
	}

	numbers := make([]*big.Int, len(fields))

	for i, field := range fields {
		value, ok := new(big.Int).SetString(field, 10)
		if !ok {
			return nil, &ParseError{Token: field, Field: i}
		}

		numbers[i] = value
	}

	return &Record{
		Principal: numbers[0],
		Divisors:  numbers[1:],
	}, nil
}
