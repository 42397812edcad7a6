// Crop Advisor - Crop Recommendation and Agronomic Prediction Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cropadvisor

// Package testinfra provides test infrastructure shared across packages.
//
// ArtifactFixture writes a complete, loadable artifact directory with
// constant-output networks, so tests exercise the real loader, encoder and
// predictors with hand-computable results:
//
//	func TestRank(t *testing.T) {
//	    dir := testinfra.WriteArtifacts(t, nil)
//	    bundle, err := artifact.Load(dir)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    // bundle.Classifier ranks Wheat, Rice, Cotton first for any input.
//	}
//
// Fixtures are written to t.TempDir and need no network or containers.
package testinfra
