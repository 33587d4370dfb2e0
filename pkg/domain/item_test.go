package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerdict_HasType(t *testing.T) {
	v := Verdict{Contains: true, Types: []string{"politics", "News"}}
	assert.True(t, v.HasType("politics"))
	assert.True(t, v.HasType(" news "))
	assert.True(t, v.HasType("POLITICS"))
	assert.False(t, v.HasType("war"))
	assert.False(t, Verdict{}.HasType("politics"))
}

func TestVerdict_Clone(t *testing.T) {
	v := Verdict{Contains: true, Types: []string{"war"}}
	c := v.Clone()
	c.Types[0] = "changed"
	assert.Equal(t, []string{"war"}, v.Types)
	assert.Equal(t, []string{}, Verdict{}.Clone().Types)
}
