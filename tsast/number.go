/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package tsast

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// FormatNumber renders v the way JavaScript's Number#toString does, with the
// exponent sign normalized away ("1e21" rather than "1e+21").
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	case v < 0:
		return "-" + FormatNumber(-v)
	}

	// Shortest round-tripping digits, e.g. "1.2345e+02".
	s := strconv.FormatFloat(v, 'e', -1, 64)
	mantissa, expPart, _ := strings.Cut(s, "e")
	digits := strings.Replace(mantissa, ".", "", 1)
	exp, _ := strconv.Atoi(expPart)

	k := len(digits)
	n := exp + 1

	switch {
	case k <= n && n <= 21:
		return digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		return digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		return "0." + strings.Repeat("0", -n) + digits
	}

	e := n - 1
	var sb strings.Builder
	sb.WriteByte(digits[0])
	if k > 1 {
		sb.WriteByte('.')
		sb.WriteString(digits[1:])
	}
	sb.WriteByte('e')
	if e < 0 {
		sb.WriteByte('-')
		e = -e
	}
	sb.WriteString(strconv.Itoa(e))
	return sb.String()
}

// ToFixed renders v with exactly digits decimals, rounding the exact binary
// value half away from zero like JavaScript's Number#toFixed.
func ToFixed(v float64, digits int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return FormatNumber(v)
	}

	neg := v < 0
	r := new(big.Rat).SetFloat64(math.Abs(v))
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	r.Mul(r, new(big.Rat).SetInt(scale))
	r.Add(r, big.NewRat(1, 2))
	n := new(big.Int).Quo(r.Num(), r.Denom()).String()

	if len(n) <= digits {
		n = strings.Repeat("0", digits-len(n)+1) + n
	}

	out := n
	if digits > 0 {
		out = n[:len(n)-digits] + "." + n[len(n)-digits:]
	}
	if neg {
		out = "-" + out
	}
	return out
}
