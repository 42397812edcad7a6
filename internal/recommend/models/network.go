// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

package models

import (
	"errors"
	"fmt"
	"math"
)

// Activation names a layer's output function.
type Activation string

// Supported activations.
const (
	ActivationIdentity Activation = "identity"
	ActivationReLU     Activation = "relu"
	ActivationLogistic Activation = "logistic"
	ActivationTanh     Activation = "tanh"
	ActivationSoftmax  Activation = "softmax"
)

// ErrInvalidNetwork is returned when network parameters are inconsistent.
var ErrInvalidNetwork = errors.New("invalid network")

// ErrInputWidth is returned when a feature vector does not match the network.
var ErrInputWidth = errors.New("feature vector width mismatch")

// Layer is a fully connected layer. Weights is laid out output-major:
// Weights[j][i] is the weight from input i to output j.
type Layer struct {
	Weights    [][]float64 `json:"weights"`
	Bias       []float64   `json:"bias"`
	Activation Activation  `json:"activation"`
}

// Network is a feed-forward stack of dense layers. It holds no mutable state
// and may be evaluated concurrently.
type Network struct {
	Layers []Layer `json:"layers"`
}

// InputWidth returns the expected feature vector length.
func (n *Network) InputWidth() int {
	if len(n.Layers) == 0 || len(n.Layers[0].Weights) == 0 {
		return 0
	}
	return len(n.Layers[0].Weights[0])
}

// OutputWidth returns the length of vectors produced by Forward.
func (n *Network) OutputWidth() int {
	if len(n.Layers) == 0 {
		return 0
	}
	return len(n.Layers[len(n.Layers)-1].Bias)
}

// Validate checks that every layer is rectangular and that consecutive layers
// agree on their widths.
func (n *Network) Validate() error {
	if len(n.Layers) == 0 {
		return fmt.Errorf("%w: no layers", ErrInvalidNetwork)
	}

	in := n.InputWidth()
	if in == 0 {
		return fmt.Errorf("%w: zero input width", ErrInvalidNetwork)
	}

	for li, layer := range n.Layers {
		out := len(layer.Bias)
		if out == 0 {
			return fmt.Errorf("%w: layer %d has no outputs", ErrInvalidNetwork, li)
		}
		if len(layer.Weights) != out {
			return fmt.Errorf("%w: layer %d has %d weight rows for %d outputs", ErrInvalidNetwork, li, len(layer.Weights), out)
		}
		for j, row := range layer.Weights {
			if len(row) != in {
				return fmt.Errorf("%w: layer %d row %d has width %d, want %d", ErrInvalidNetwork, li, j, len(row), in)
			}
		}
		switch layer.Activation {
		case ActivationIdentity, ActivationReLU, ActivationLogistic, ActivationTanh, ActivationSoftmax:
		case "":
			return fmt.Errorf("%w: layer %d has no activation", ErrInvalidNetwork, li)
		default:
			return fmt.Errorf("%w: layer %d has unknown activation %q", ErrInvalidNetwork, li, layer.Activation)
		}
		in = out
	}
	return nil
}

// Forward evaluates the network on x.
func (n *Network) Forward(x []float64) ([]float64, error) {
	if len(x) != n.InputWidth() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInputWidth, len(x), n.InputWidth())
	}

	cur := x
	for _, layer := range n.Layers {
		next := make([]float64, len(layer.Bias))
		for j, row := range layer.Weights {
			sum := layer.Bias[j]
			for i, w := range row {
				sum += w * cur[i]
			}
			next[j] = sum
		}
		activate(layer.Activation, next)
		cur = next
	}

	for i, v := range cur {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("non-finite output at index %d", i)
		}
	}
	return cur, nil
}

func activate(a Activation, v []float64) {
	switch a {
	case ActivationReLU:
		for i := range v {
			if v[i] < 0 {
				v[i] = 0
			}
		}
	case ActivationLogistic:
		for i := range v {
			v[i] = 1 / (1 + math.Exp(-v[i]))
		}
	case ActivationTanh:
		for i := range v {
			v[i] = math.Tanh(v[i])
		}
	case ActivationSoftmax:
		maxV := math.Inf(-1)
		for _, x := range v {
			if x > maxV {
				maxV = x
			}
		}
		var sum float64
		for i := range v {
			v[i] = math.Exp(v[i] - maxV)
			sum += v[i]
		}
		for i := range v {
			v[i] /= sum
		}
	case ActivationIdentity:
	}
}
