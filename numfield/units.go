package numfield

import "math/big"

// UnitGens returns generators of the unit group O_K^*: the torsion
// generator, and for real fields a fundamental unit as well.
func (f *Field) UnitGens() ([]Elem, error) {
	if f.units != nil {
		return f.units, nil
	}
	var gens []Elem
	switch {
	case f.D == -1:
		gens = []Elem{NewElem(new(big.Rat), big.NewRat(1, 1))} // i
	case f.D == -3:
		gens = []Elem{NewElem(big.NewRat(1, 2), big.NewRat(1, 2))} // zeta_6
	default:
		gens = []Elem{IntElem(-1)}
	}
	if f.D > 0 {
		eps, err := f.FundamentalUnit()
		if err != nil {
			return nil, err
		}
		gens = append(gens, eps)
	}
	f.units = gens
	return gens, nil
}
