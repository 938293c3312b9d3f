//go:build gofuzz
// +build gofuzz

package congruential

import (
	"math/big"
	"strings"
)

// Fuzz parses "seed,k,c,p,n" and checks the linear recurrence on whatever
// validates.
func Fuzz(data []byte) int {
	parts := strings.SplitN(string(data), ",", 5)
	if len(parts) != 5 {
		return 0
	}

	req, err := ParseForm(map[string]string{
		FieldSeed:      parts[0],
		FieldIndex:     parts[1],
		FieldIncrement: parts[2],
		FieldRange:     parts[3],
		FieldDecimals:  "2",
		FieldLength:    parts[4],
	}, false)
	if err != nil || req.Length == nil || req.Length.Cmp(big.NewInt(64)) > 0 {
		return 0
	}

	rows, meta, err := Linear(req)
	if err != nil {
		return 0
	}

	x := new(big.Int)
	for _, row := range rows {
		x.Mul(meta.Multiplier, row.Previous)
		x.Add(x, req.Increment)
		x.Mod(x, meta.Modulus)
		if x.Cmp(row.Current) != 0 {
			panic("recurrence broken")
		}
	}
	return 1
}
