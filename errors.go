package hierarchy

import (
	"errors"
	"fmt"
)

var (
	// ErrContractViolation reports malformed input: mismatched lengths,
	// invalid parent arrays, non-ultrametric altitudes, disconnected graphs.
	ErrContractViolation = errors.New("contract violation")

	// ErrNoSuchCut reports a horizontal cut that the hierarchy cannot produce.
	ErrNoSuchCut = errors.New("no such cut")

	// ErrUnsupportedConfiguration reports a request that cannot be served
	// with the inputs given, such as an attribute that needs leaf weights.
	ErrUnsupportedConfiguration = errors.New("unsupported configuration")
)

func contractf(format string, args ...any) error {
	return fmt.Errorf("hierarchy: %s: %w", fmt.Sprintf(format, args...), ErrContractViolation)
}

func unsupportedf(format string, args ...any) error {
	return fmt.Errorf("hierarchy: %s: %w", fmt.Sprintf(format, args...), ErrUnsupportedConfiguration)
}

func noCutf(format string, args ...any) error {
	return fmt.Errorf("hierarchy: %s: %w", fmt.Sprintf(format, args...), ErrNoSuchCut)
}

// checkLeafLength verifies that a per-leaf array of the given row width
// matches the tree.
func checkLeafLength(t *Tree, name string, n, dims int) error {
	if n != t.NumLeaves()*dims {
		return contractf("%s length %d does not match %d leaves x %d", name, n, t.NumLeaves(), dims)
	}
	return nil
}

// checkNodeLength verifies that a per-node array matches the tree.
func checkNodeLength(t *Tree, name string, n int) error {
	if n != t.NumNodes() {
		return contractf("%s length %d does not match %d nodes", name, n, t.NumNodes())
	}
	return nil
}
