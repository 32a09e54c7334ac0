package design

import (
	"fmt"

	"github.com/katalvlaran/coxdev/coxdev"
	"gonum.org/v1/gonum/mat"
)

// information is the subset of *coxdev.Information that XtHX needs,
// narrowed to ease testing with a fake.
type information interface {
	Apply(v []float64) ([]float64, error)
}

// XtHX assembles XᵀHX, the p×p curvature matrix a Newton-Raphson Cox fit
// needs at each step, by calling info.Apply once per column of X (p calls,
// each O(n)) rather than ever materializing the n×n Hessian H.
//
// X is an n×p dense design matrix in row-major (gonum) layout; info must
// have been built from the same n subjects as X has rows.
func XtHX(info *coxdev.Information, x *mat.Dense) (*mat.Dense, error) {
	return xtHX(info, x)
}

func xtHX(info information, x *mat.Dense) (*mat.Dense, error) {
	n, p := x.Dims()

	hx := mat.NewDense(n, p, nil)
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		mat.Col(col, j, x)
		hv, err := info.Apply(col)
		if err != nil {
			return nil, fmt.Errorf("design: XtHX: column %d: %w", j, err)
		}
		hx.SetCol(j, hv)
	}

	result := mat.NewDense(p, p, nil)
	result.Mul(x.T(), hx)

	return result, nil
}
