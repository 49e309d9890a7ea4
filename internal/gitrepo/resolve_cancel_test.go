package gitrepo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwtools/git-cw/internal/gitrepo"
	"github.com/cwtools/git-cw/internal/wizard"
)

// Dismissing the repository pick must end the run like any other prompt
// cancellation, so the sentinel has to come back from Resolve unwrapped.
func TestResolvePickCancelKeepsSentinel(t *testing.T) {
	cands := []gitrepo.Candidate{
		{Path: "/ws/alpha", Name: "alpha"},
		{Path: "/ws/beta", Name: "beta"},
	}

	_, err := gitrepo.Resolve(cands, "", func([]gitrepo.Candidate) (int, error) {
		return 0, wizard.ErrCancelled
	})

	require.ErrorIs(t, err, wizard.ErrCancelled)
}
