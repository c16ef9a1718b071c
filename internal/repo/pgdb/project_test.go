package pgdb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Receive numbers continue past gaps left by deletions, so a number freed by
// a delete is never handed out again.
func TestNextReceiveNo_NeverReissuesAfterDeletion(t *testing.T) {
	issued := map[int]bool{}
	maxIssued := 0

	issue := func() int {
		n := nextReceiveNo(maxIssued)
		require.False(t, issued[n], "receive number %d issued twice", n)
		require.Greater(t, n, maxIssued)
		issued[n] = true
		maxIssued = n
		return n
	}

	first := issue()
	second := issue()
	third := issue()
	require.Equal(t, []int{1, 2, 3}, []int{first, second, third})

	// Deleting a mid-sequence project must not shift the sequence back.
	delete(issued, second)
	require.Equal(t, 4, issue())
	require.Equal(t, 5, issue())
}

func TestNextReceiveNo_StartsAtOne(t *testing.T) {
	require.Equal(t, 1, nextReceiveNo(0))
}
