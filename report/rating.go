package report

import (
	"strings"

	"github.com/staticafi/satt/bench"
	"github.com/staticafi/satt/report/store"
)

// witnessConfirmed is what the witness section holds when a validator
// reproduced a FALSE answer.
const witnessConfirmed = "confirmed"

// IsCorrect compares a verdict against the expected one. A property on
// both sides has to match as well.
func IsCorrect(expected, result, property string) bool {
	want, wantProperty, ok := bench.ParseVerdict(expected)
	if !ok || result == "" {
		return false
	}
	if want != result {
		return false
	}
	return wantProperty == "" || property == "" || strings.EqualFold(wantProperty, property)
}

// Points scores one answer. A correct FALSE only earns full points when
// its witness was confirmed.
func Points(m store.Rating, correct bool, result, witness string) int {
	switch result {
	case bench.VerdictUnknown, bench.VerdictError, bench.VerdictTimeout:
		return m.Unknown
	case bench.VerdictFalse:
		if !correct {
			return m.FalseIncorrect
		}
		if strings.TrimSpace(witness) == witnessConfirmed {
			return m.FalseCorrect
		}
		return m.Unknown
	case bench.VerdictTrue:
		if correct {
			return m.TrueCorrect
		}
		return m.TrueIncorrect
	}
	return 0
}
