// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

package models

import (
	"fmt"
	"sort"
)

// Candidate is one crop label with the classifier's posterior probability.
type Candidate struct {
	Crop     string  `json:"crop"`
	RawScore float64 `json:"raw_score"`
}

// CropClassifier ranks crop labels for an encoded (region, soil type) vector.
type CropClassifier struct {
	labels []string
	net    *Network
}

// NewCropClassifier pairs a network with its output labels. The network must
// produce exactly one probability per label through a softmax output layer.
func NewCropClassifier(labels []string, net *Network) (*CropClassifier, error) {
	if net == nil {
		return nil, fmt.Errorf("%w: classifier network is nil", ErrInvalidNetwork)
	}
	if err := net.Validate(); err != nil {
		return nil, fmt.Errorf("crop classifier: %w", err)
	}
	if got := net.OutputWidth(); got != len(labels) {
		return nil, fmt.Errorf("%w: classifier outputs %d scores for %d labels", ErrInvalidNetwork, got, len(labels))
	}
	if last := net.Layers[len(net.Layers)-1].Activation; last != ActivationSoftmax {
		return nil, fmt.Errorf("%w: classifier output activation is %q, want softmax", ErrInvalidNetwork, last)
	}

	l := make([]string, len(labels))
	copy(l, labels)
	return &CropClassifier{labels: l, net: net}, nil
}

// Labels returns the crop labels in output order.
func (c *CropClassifier) Labels() []string {
	out := make([]string, len(c.labels))
	copy(out, c.labels)
	return out
}

// InputWidth returns the expected feature vector length.
func (c *CropClassifier) InputWidth() int {
	return c.net.InputWidth()
}

// Classify runs one inference and returns every label ranked by descending
// probability, ties broken by label name.
func (c *CropClassifier) Classify(features []float64) ([]Candidate, error) {
	probs, err := c.net.Forward(features)
	if err != nil {
		return nil, fmt.Errorf("crop classifier: %w", err)
	}

	out := make([]Candidate, len(c.labels))
	for i, label := range c.labels {
		out[i] = Candidate{Crop: label, RawScore: probs[i]}
	}
	SortCandidates(out)
	return out, nil
}

// SortCandidates orders candidates by descending RawScore, then by crop name.
func SortCandidates(c []Candidate) {
	sort.SliceStable(c, func(i, j int) bool {
		if c[i].RawScore != c[j].RawScore {
			return c[i].RawScore > c[j].RawScore
		}
		return c[i].Crop < c[j].Crop
	})
}
