package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillAdd_LevelDefaultsToFifty(t *testing.T) {
	add, _, err := skillCmd(&app{}).Find([]string{"add"})
	require.NoError(t, err)
	require.Equal(t, "add", add.Name())

	level, err := add.Flags().GetInt("level")
	require.NoError(t, err)
	assert.Equal(t, 50, level)
}

func TestSkillUpdate_LevelOnlySentWhenChanged(t *testing.T) {
	update, _, err := skillCmd(&app{}).Find([]string{"update"})
	require.NoError(t, err)

	assert.Nil(t, intFlag(update, "level"))
	require.NoError(t, update.Flags().Set("level", "80"))
	level := intFlag(update, "level")
	require.NotNil(t, level)
	assert.Equal(t, 80, *level)
}
