package congruential

import "github.com/zeebo/errs"

// Error classes returned by the generators. Every one of them means the
// caller must supply different parameters; none are transient. Conversion
// and power-of-two failures come from the bigint package classes.
var (
	MissingParameter    = errs.Class("missing parameter")
	InvalidRange        = errs.Class("invalid range")
	NonCoprimeIncrement = errs.Class("increment not coprime with modulus")
	EvenSeed            = errs.Class("even seed")
	InvalidCount        = errs.Class("invalid count")
)
