package monitor

// Window returns a chronological subsequence of the most recent lookback
// samples of h containing at most points samples.
//
// The stride is ceil(lookback/points). Leading samples are dropped so that the
// kept positions line up on stride boundaries counted back from the newest
// sample, which is therefore always included; then every stride-th sample is
// kept. Samples are selected, never averaged.
//
// When the history holds fewer samples than one stride, the result is the
// single oldest sample. An empty history yields nil. Non-positive lookback or
// points are treated as 1.
func Window[T any](h *History[T], lookback, points int) []T {
	if lookback <= 0 {
		lookback = 1
	}
	if points <= 0 {
		points = 1
	}
	stride := lookback / points
	if lookback%points != 0 {
		stride++
	}

	n := h.Len()
	if n == 0 {
		return nil
	}
	if n < stride {
		return []T{h.At(0)}
	}

	take := min(lookback, n)
	start := n - take + take%stride
	out := make([]T, 0, take/stride)
	for i := start + stride - 1; i < n; i += stride {
		out = append(out, h.At(i))
	}
	return out
}
