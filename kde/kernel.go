package kde

import "gonum.org/v1/gonum/stat/distuv"

type Kernel interface {
	NormalReferenceConstant() float64
	Shape(u float64) float64
}

// GuassianKernel is the standard normal kernel.
type GuassianKernel struct{}

func NewGuassianKernel() *GuassianKernel {
	return &GuassianKernel{}
}

func (k *GuassianKernel) Shape(u float64) float64 {
	return distuv.UnitNormal.Prob(u)
}

// NormalReferenceConstant is the rule-of-thumb constant for a second order
// gaussian kernel, (4/3)^(1/5).
func (k *GuassianKernel) NormalReferenceConstant() float64 {
	return 1.0592238410488122
}
