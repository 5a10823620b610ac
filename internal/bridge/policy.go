package bridge

import "fmt"

// OverlapPolicy decides what happens to a confirmation request that
// arrives while another dialog is still open or closing.
type OverlapPolicy string

const (
	// PolicyQueue holds overlapping requests and opens them one after the
	// other. Outcomes are delivered in request order.
	PolicyQueue OverlapPolicy = "queue"
	// PolicyReject answers overlapping requests with Cancelled right away
	// and leaves the open dialog alone.
	PolicyReject OverlapPolicy = "reject"
)

func ParsePolicy(s string) (OverlapPolicy, error) {
	switch OverlapPolicy(s) {
	case "", PolicyQueue:
		return PolicyQueue, nil
	case PolicyReject:
		return PolicyReject, nil
	default:
		return "", fmt.Errorf("unknown overlap policy %q", s)
	}
}
