package shellerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderPrefixesPreconditionAsActionRequired(t *testing.T) {
	err := Preconditionf("disable table 'u' before dropping it")
	assert.Equal(t, "Action required: disable table 'u' before dropping it", Render(err))
}

func TestRenderPrefixesOthersAsError(t *testing.T) {
	assert.Equal(t, "Error: table 'u' not found", Render(NotFoundf("table 'u' not found")))
	assert.Equal(t, "Error: boom", Render(errors.New("boom")))
}

func TestRenderNilIsEmpty(t *testing.T) {
	assert.Equal(t, "", Render(nil))
}
