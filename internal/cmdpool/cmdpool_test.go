package cmdpool

import "testing"

func TestSubmitHandleEmpty(t *testing.T) {
	var h SubmitHandle
	if !h.Empty() {
		t.Error("zero-value SubmitHandle should be empty")
	}

	h.SubmissionID = 1
	if h.Empty() {
		t.Error("SubmitHandle with non-zero SubmissionID should not be empty")
	}
}

func TestNextSubmitCounterSkipsZero(t *testing.T) {
	if got := nextSubmitCounter(0); got != 1 {
		t.Errorf("nextSubmitCounter(0) = %d, want 1", got)
	}

	if got := nextSubmitCounter(^uint32(0)); got != 1 {
		t.Errorf("nextSubmitCounter(math.MaxUint32) = %d, want 1 (must skip 0 on wrap)", got)
	}

	if got := nextSubmitCounter(41); got != 42 {
		t.Errorf("nextSubmitCounter(41) = %d, want 42", got)
	}
}
