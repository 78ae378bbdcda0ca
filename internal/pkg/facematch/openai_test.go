package facematch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpretVerdict(t *testing.T) {
	v := &OpenAIVerifier{threshold: 0.8}

	t.Run("match above threshold", func(t *testing.T) {
		m, err := v.interpret(verdict{FacesInCandidate: 1, ReferenceUsable: true, SamePerson: true, Confidence: 0.92})
		assert.NoError(t, err)
		assert.True(t, m.Matched)
		assert.Equal(t, 0.92, m.Confidence)
	})

	t.Run("same person but below threshold", func(t *testing.T) {
		m, err := v.interpret(verdict{FacesInCandidate: 1, ReferenceUsable: true, SamePerson: true, Confidence: 0.6})
		assert.NoError(t, err)
		assert.False(t, m.Matched)
		assert.Contains(t, m.Reason, "threshold")
	})

	t.Run("different person", func(t *testing.T) {
		m, err := v.interpret(verdict{FacesInCandidate: 1, ReferenceUsable: true, SamePerson: false, Confidence: 0.95})
		assert.NoError(t, err)
		assert.False(t, m.Matched)
	})

	t.Run("no face", func(t *testing.T) {
		_, err := v.interpret(verdict{FacesInCandidate: 0, ReferenceUsable: true})
		assert.ErrorIs(t, err, ErrNoFace)
	})

	t.Run("multiple faces", func(t *testing.T) {
		_, err := v.interpret(verdict{FacesInCandidate: 3, ReferenceUsable: true})
		assert.ErrorIs(t, err, ErrMultipleFaces)
	})

	t.Run("reference unusable", func(t *testing.T) {
		_, err := v.interpret(verdict{FacesInCandidate: 1, ReferenceUsable: false})
		assert.ErrorIs(t, err, ErrReferenceUnavailable)
	})
}
