package steps

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rebalance/internal/scan"
)

func rankedCandidates(paths ...string) []scan.Candidate {
	candidates := make([]scan.Candidate, len(paths))
	size := int64(10000 * len(paths))
	for i, p := range paths {
		candidates[i] = scan.Candidate{Path: p, SizeKB: size}
		size -= 10000
	}
	return candidates
}

func TestSelectorApprovesInRankOrder(t *testing.T) {
	fakeUI := &fakeSelectorUI{answers: []bool{true, false, true}}
	selector := NewSelector(fakeUI, 10)

	approved, err := selector.Select(rankedCandidates("/home/a", "/home/b", "/home/c"))
	require.NoError(t, err)

	require.Len(t, approved, 2)
	assert.Equal(t, "/home/a", approved[0].Path)
	assert.Equal(t, "/home/c", approved[1].Path)
	assert.Equal(t, 3, fakeUI.promptCount)
}

func TestSelectorNeverShowsBeyondLimit(t *testing.T) {
	fakeUI := &fakeSelectorUI{answers: []bool{true, true, true, true, true}}
	selector := NewSelector(fakeUI, 2)

	approved, err := selector.Select(rankedCandidates("/home/a", "/home/b", "/home/c", "/home/d", "/home/e"))
	require.NoError(t, err)

	assert.Len(t, approved, 2)
	assert.Equal(t, 2, fakeUI.promptCount, "candidates beyond the limit must never be prompted")

	shown := strings.Join(fakeUI.lines, "\n")
	assert.NotContains(t, shown, "/home/c")
	assert.NotContains(t, shown, "/home/d")
}

func TestSelectorDisplaysIndexAndSize(t *testing.T) {
	fakeUI := &fakeSelectorUI{answers: []bool{false}}
	selector := NewSelector(fakeUI, 10)

	_, err := selector.Select([]scan.Candidate{{Path: "/home/user/videos", SizeKB: 1536}})
	require.NoError(t, err)

	shown := strings.Join(fakeUI.lines, "\n")
	assert.Contains(t, shown, "1/1")
	assert.Contains(t, shown, "Directory: /home/user/videos")
	assert.Contains(t, shown, "Size: 1.50 MB")
	assert.Contains(t, shown, "Skipping: /home/user/videos")
}

func TestSelectorNonInteractiveApprovesShown(t *testing.T) {
	fakeUI := &fakeSelectorUI{nonInteractive: true}
	selector := NewSelector(fakeUI, 2)

	approved, err := selector.Select(rankedCandidates("/home/a", "/home/b", "/home/c"))
	require.NoError(t, err)

	assert.Len(t, approved, 2)
	assert.Equal(t, 0, fakeUI.promptCount, "non-interactive mode must not prompt")
}

func TestSelectorEmptyInput(t *testing.T) {
	selector := NewSelector(&fakeSelectorUI{}, 10)

	approved, err := selector.Select(nil)
	require.NoError(t, err)
	assert.Empty(t, approved)
}
