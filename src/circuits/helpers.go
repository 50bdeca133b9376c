package circuits

import "github.com/consensys/gnark/frontend"

// isLessOrEqual returns a boolean variable set to 1 when a <= b. Inputs must
// be small integers (days, years, fixed-point scores), well below the
// comparison bound of api.Cmp.
func isLessOrEqual(api frontend.API, a, b frontend.Variable) frontend.Variable {
	isGreater := api.IsZero(api.Sub(api.Cmp(a, b), 1))
	return api.Sub(1, isGreater)
}
