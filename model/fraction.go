package model

import (
	"fmt"

	"github.com/jsphweid/abcplay/util"
)

// Fraction is a num/den pair. It is kept unreduced unless Reduce is called,
// so a note written A2/4 still prints as 2/4.
type Fraction struct {
	Num int
	Den int
}

func NewFraction(num, den int) Fraction {
	return Fraction{Num: num, Den: den}
}

var Zero = Fraction{Num: 0, Den: 1}

func (f Fraction) Reduce() Fraction {
	if f.Den == 0 {
		return f
	}
	g := util.Gcd(f.Num, f.Den)
	if g == 0 {
		return Zero
	}
	num, den := f.Num/g, f.Den/g
	if den < 0 {
		num, den = -num, -den
	}
	return Fraction{Num: num, Den: den}
}

func (f Fraction) Mul(o Fraction) Fraction {
	return Fraction{Num: f.Num * o.Num, Den: f.Den * o.Den}.Reduce()
}

func (f Fraction) Add(o Fraction) Fraction {
	return Fraction{Num: f.Num*o.Den + o.Num*f.Den, Den: f.Den * o.Den}.Reduce()
}

// Cmp returns -1, 0 or 1. Both denominators must be positive.
func (f Fraction) Cmp(o Fraction) int {
	l, r := f.Num*o.Den, o.Num*f.Den
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	}
	return 0
}

func (f Fraction) Equal(o Fraction) bool {
	return f.Cmp(o) == 0
}

func (f Fraction) Float() float64 {
	return float64(f.Num) / float64(f.Den)
}

func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Num, f.Den)
}
