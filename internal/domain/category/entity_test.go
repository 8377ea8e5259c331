package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	c, err := NewCategory("  Poetry ", "verses")
	require.NoError(t, err)
	assert.Equal(t, "Poetry", c.Name)

	_, err = NewCategory(" ", "")
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestCategory_Update(t *testing.T) {
	c, err := NewCategory("Poetry", "")
	require.NoError(t, err)

	assert.ErrorIs(t, c.Update("", "x"), ErrNameRequired)
	assert.Equal(t, "Poetry", c.Name)

	require.NoError(t, c.Update("Fiction", "novels"))
	assert.Equal(t, "Fiction", c.Name)
	assert.Equal(t, "novels", c.Description)
}
