package nn

import (
	"fmt"

	"github.com/born-ml/minnet/internal/tensor"
)

// ParamUpdater applies one optimization step to a trainable layer's
// parameters given its gradients. optim.SGD implements it.
type ParamUpdater[T tensor.Float] interface {
	Update(params, grads *Params[T])
}

// Network chains transform layers and terminates them with a
// SoftmaxCrossEntropy loss layer.
//
// Each layer's output becomes the next layer's input. Backward walks the
// layers in reverse, and Update hands every trainable layer's parameters and
// gradients to the optimizer.
//
// Example:
//
//	net, err := nn.NewNetwork[float64](2, []int{10}, 3, nn.ActivationSigmoid, nn.DefaultConfig())
//
//	loss := net.Forward(x, t)
//	net.Backward(1)
//	net.Update(sgd)
//
// This is equivalent to:
//
//	h1 := affine1.Forward(x)
//	h2 := sigmoid.Forward(h1)
//	scores := affine2.Forward(h2)
//	loss := softmaxCE.Forward(nn.LossInput[float64]{Scores: scores, Labels: t})
//
// Predict shares the layers' caches with training: calling it between
// Forward and Backward overwrites the state Backward needs.
type Network[T tensor.Float] struct {
	layers []TransformLayer[T]
	loss   *SoftmaxCrossEntropy[T]
}

// NewNetwork builds a fully connected classifier.
//
// For each entry of hiddenSizes it appends an Affine layer followed by act,
// then a final Affine layer to outputSize. Weights are drawn from
// N(cfg.WeightInitMean, cfg.WeightInitStdDev²) using cfg.Seed; biases are
// zeros.
func NewNetwork[T tensor.Float](inputSize int, hiddenSizes []int, outputSize int, act Activation, cfg Config) (*Network[T], error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid init config: %w", err)
	}
	if inputSize <= 0 || outputSize <= 0 {
		return nil, fmt.Errorf("input and output sizes must be positive (got %d, %d)", inputSize, outputSize)
	}

	src := cfg.source()
	layers := make([]TransformLayer[T], 0, 2*len(hiddenSizes)+1)
	prev := inputSize
	for i, size := range hiddenSizes {
		if size <= 0 {
			return nil, fmt.Errorf("hidden layer %d: size must be positive (got %d)", i, size)
		}
		activation, err := newActivationLayer[T](act)
		if err != nil {
			return nil, err
		}
		params := NormalParams[T](prev, size, cfg.WeightInitMean, cfg.WeightInitStdDev, src)
		layers = append(layers, NewAffine(params), activation)
		prev = size
	}
	params := NormalParams[T](prev, outputSize, cfg.WeightInitMean, cfg.WeightInitStdDev, src)
	layers = append(layers, NewAffine(params))

	return NewSequential(NewSoftmaxCrossEntropy[T](), layers...), nil
}

// NewSequential creates a Network from hand-built layers.
//
// Parameters:
//   - loss: Loss layer terminating the network
//   - layers: Transform layers to chain together, input first
func NewSequential[T tensor.Float](loss *SoftmaxCrossEntropy[T], layers ...TransformLayer[T]) *Network[T] {
	return &Network[T]{
		layers: layers,
		loss:   loss,
	}
}

// Predict returns the raw class scores for x.
func (n *Network[T]) Predict(x *tensor.Matrix[T]) *tensor.Matrix[T] {
	out := x
	for _, layer := range n.layers {
		out = layer.Forward(out)
	}
	return out
}

// Forward computes the mean loss of the batch (x, t).
func (n *Network[T]) Forward(x, t *tensor.Matrix[T]) T {
	return n.loss.Forward(LossInput[T]{Scores: n.Predict(x), Labels: t})
}

// Backward propagates dout from the loss back to the input and returns the
// gradient with respect to x. Trainable layers keep their parameter
// gradients for Update.
func (n *Network[T]) Backward(dout T) *tensor.Matrix[T] {
	d := n.loss.Backward(dout)
	for i := len(n.layers) - 1; i >= 0; i-- {
		d = n.layers[i].Backward(d)
	}
	return d
}

// Update applies opt once to every trainable layer.
func (n *Network[T]) Update(opt ParamUpdater[T]) {
	for _, layer := range n.layers {
		if tl, ok := layer.(Trainable[T]); ok {
			opt.Update(tl.ParamsAndGrads())
		}
	}
}

// Parameters returns the parameter records of all trainable layers, input
// side first.
func (n *Network[T]) Parameters() []*Params[T] {
	var params []*Params[T]
	for _, layer := range n.layers {
		if tl, ok := layer.(Trainable[T]); ok {
			p, _ := tl.ParamsAndGrads()
			params = append(params, p)
		}
	}
	return params
}

// Loss returns the network's loss layer.
func (n *Network[T]) Loss() *SoftmaxCrossEntropy[T] {
	return n.loss
}

// Len returns the number of transform layers.
func (n *Network[T]) Len() int {
	return len(n.layers)
}

// Layer returns the transform layer at the given index.
//
// Panics if index is out of bounds.
func (n *Network[T]) Layer(index int) TransformLayer[T] {
	if index < 0 || index >= len(n.layers) {
		panic(fmt.Sprintf("Network.Layer: index %d out of bounds [0, %d)", index, len(n.layers)))
	}
	return n.layers[index]
}

// StateDict returns copies of all trainable parameters keyed by layer index
// (e.g., "0.weight", "0.bias", "2.weight").
func (n *Network[T]) StateDict() map[string][]T {
	state := make(map[string][]T)
	for i, layer := range n.layers {
		tl, ok := layer.(Trainable[T])
		if !ok {
			continue
		}
		p, _ := tl.ParamsAndGrads()
		state[fmt.Sprintf("%d.weight", i)] = append([]T(nil), p.Weight.Data()...)
		state[fmt.Sprintf("%d.bias", i)] = append([]T(nil), p.Bias.Data()...)
	}
	return state
}

// LoadStateDict copies parameters from a state dictionary produced by
// StateDict into the network's layers.
func (n *Network[T]) LoadStateDict(state map[string][]T) error {
	for i, layer := range n.layers {
		tl, ok := layer.(Trainable[T])
		if !ok {
			continue
		}
		p, _ := tl.ParamsAndGrads()
		if err := loadInto(state, fmt.Sprintf("%d.weight", i), p.Weight.Data()); err != nil {
			return err
		}
		if err := loadInto(state, fmt.Sprintf("%d.bias", i), p.Bias.Data()); err != nil {
			return err
		}
	}
	return nil
}

func loadInto[T tensor.Float](state map[string][]T, key string, dst []T) error {
	src, ok := state[key]
	if !ok {
		return fmt.Errorf("missing parameter %q", key)
	}
	if len(src) != len(dst) {
		return fmt.Errorf("parameter %q: size mismatch (got %d, want %d)", key, len(src), len(dst))
	}
	copy(dst, src)
	return nil
}
