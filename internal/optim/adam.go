package optim

import (
	"fmt"

	"github.com/born-ml/minnet/internal/nn"
	"github.com/born-ml/minnet/internal/tensor"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)   // Parameter update
//
// Moments and the timestep t are tracked per parameter record, so each
// trainable layer is corrected by the number of updates it has received.
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
//
// Example:
//
//	optimizer, err := optim.NewAdam[float64](optim.AdamConfig{LR: 0.01})
//	net.Update(optimizer)
type Adam[T tensor.Float] struct {
	lr    T
	beta1 T
	beta2 T
	eps   T
	state map[*nn.Params[T]]*adamState[T]
}

type adamState[T tensor.Float] struct {
	t int           // Timestep for bias correction
	m *nn.Params[T] // First moment estimates
	v *nn.Params[T] // Second moment estimates
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig struct {
	LR    float64    // Learning rate (default: 0.001)
	Betas [2]float64 // Coefficients for computing running averages (default: [0.9, 0.999])
	Eps   float64    // Term for numerical stability (default: 1e-8)
}

// NewAdam creates a new Adam optimizer.
//
// Default hyperparameters:
//   - LR: 0.001
//   - Beta1: 0.9
//   - Beta2: 0.999
//   - Eps: 1e-8
func NewAdam[T tensor.Float](config AdamConfig) (*Adam[T], error) {
	if config.LR < 0 {
		return nil, fmt.Errorf("adam: learning rate must be >= 0 (got %g)", config.LR)
	}
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas == [2]float64{} {
		config.Betas = [2]float64{0.9, 0.999}
	}
	for i, b := range config.Betas {
		if b < 0 || b >= 1 {
			return nil, fmt.Errorf("adam: beta%d must be in [0, 1) (got %g)", i+1, b)
		}
	}
	if config.Eps < 0 {
		return nil, fmt.Errorf("adam: eps must be >= 0 (got %g)", config.Eps)
	}
	if config.Eps == 0 {
		config.Eps = 1e-8
	}

	return &Adam[T]{
		lr:    T(config.LR),
		beta1: T(config.Betas[0]),
		beta2: T(config.Betas[1]),
		eps:   T(config.Eps),
		state: make(map[*nn.Params[T]]*adamState[T]),
	}, nil
}

// Update applies one Adam step to params in place.
func (a *Adam[T]) Update(params, grads *nn.Params[T]) {
	checkPair("Adam.Update", params, grads)

	st, ok := a.state[params]
	if !ok {
		st = &adamState[T]{m: nn.ZeroParamsLike(params), v: nn.ZeroParamsLike(params)}
		a.state[params] = st
	}
	st.t++

	c1 := 1 - tensor.Pow(a.beta1, T(st.t))
	c2 := 1 - tensor.Pow(a.beta2, T(st.t))
	a.step(params.Weight.Data(), grads.Weight.Data(), st.m.Weight.Data(), st.v.Weight.Data(), c1, c2)
	a.step(params.Bias.Data(), grads.Bias.Data(), st.m.Bias.Data(), st.v.Bias.Data(), c1, c2)
}

func (a *Adam[T]) step(p, g, m, v []T, c1, c2 T) {
	for i := range p {
		m[i] = a.beta1*m[i] + (1-a.beta1)*g[i]
		v[i] = a.beta2*v[i] + (1-a.beta2)*g[i]*g[i]
		mHat := m[i] / c1
		vHat := v[i] / c2
		p[i] -= a.lr * mHat / (tensor.Sqrt(vHat) + a.eps)
	}
}

// LR returns the current learning rate.
func (a *Adam[T]) LR() T {
	return a.lr
}

// SetLR sets the learning rate (for learning rate scheduling).
func (a *Adam[T]) SetLR(lr T) {
	a.lr = lr
}

// Reset drops all moment estimates and timesteps.
func (a *Adam[T]) Reset() {
	a.state = make(map[*nn.Params[T]]*adamState[T])
}

var _ Optimizer[float64] = (*Adam[float64])(nil)
