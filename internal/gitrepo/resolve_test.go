package gitrepo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noPick(t *testing.T) func([]Candidate) (int, error) {
	return func([]Candidate) (int, error) {
		t.Fatal("pick must not be called")
		return 0, nil
	}
}

func TestResolveNoCandidates(t *testing.T) {
	_, err := Resolve(nil, "", noPick(t))

	require.ErrorIs(t, err, ErrNoRepository)
}

func TestResolveSingleCandidateWithoutPrompt(t *testing.T) {
	cands := []Candidate{{Path: "/ws/alpha", Name: "alpha"}}

	got, err := Resolve(cands, "", noPick(t))

	require.NoError(t, err)
	require.Equal(t, "alpha", got.Name)
}

func TestResolveExplicitNameMatch(t *testing.T) {
	cands := []Candidate{
		{Path: "/ws/alpha", Name: "alpha"},
		{Path: "/ws/beta", Name: "beta"},
	}

	got, err := Resolve(cands, "beta", noPick(t))

	require.NoError(t, err)
	require.Equal(t, "/ws/beta", got.Path)
}

func TestResolveExplicitPathMatch(t *testing.T) {
	cands := []Candidate{
		{Path: "/ws/alpha", Name: "alpha"},
		{Path: "/ws/beta", Name: "beta"},
	}

	got, err := Resolve(cands, "/ws/alpha/", noPick(t))

	require.NoError(t, err)
	require.Equal(t, "alpha", got.Name)
}

func TestResolveExplicitMiss(t *testing.T) {
	cands := []Candidate{{Path: "/ws/alpha", Name: "alpha"}}

	_, err := Resolve(cands, "gamma", noPick(t))

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "gamma", nf.Path)
}

func TestResolveMultiplePrompts(t *testing.T) {
	cands := []Candidate{
		{Path: "/ws/alpha", Name: "alpha"},
		{Path: "/ws/beta", Name: "beta"},
		{Path: "/ws/gamma", Name: "gamma"},
	}

	var asked int
	got, err := Resolve(cands, "", func(cs []Candidate) (int, error) {
		asked = len(cs)
		return 1, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, asked)
	require.Equal(t, "beta", got.Name)
}

func TestResolvePickCancelPropagates(t *testing.T) {
	cands := []Candidate{
		{Path: "/ws/alpha", Name: "alpha"},
		{Path: "/ws/beta", Name: "beta"},
	}
	cancelled := errors.New("dismissed")

	_, err := Resolve(cands, "", func([]Candidate) (int, error) {
		return 0, cancelled
	})

	require.ErrorIs(t, err, cancelled)
}

func TestAnnotationWithoutRepo(t *testing.T) {
	assert.Empty(t, Candidate{Name: "alpha"}.Annotation())
}
