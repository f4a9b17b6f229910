package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amterp/boardkit/internal/model"
)

func TestConfigFromArgs_Equals(t *testing.T) {
	args := []string{"boardkit", "show", "--config=/tmp/bk.toml"}
	assert.Equal(t, "/tmp/bk.toml", configFromArgs(args))
}

func TestConfigFromArgs_Space(t *testing.T) {
	args := []string{"boardkit", "--config", "/tmp/bk.yaml", "show"}
	assert.Equal(t, "/tmp/bk.yaml", configFromArgs(args))
}

func TestConfigFromArgs_NoFlag(t *testing.T) {
	assert.Empty(t, configFromArgs([]string{"boardkit", "show"}))
	assert.Empty(t, configFromArgs(nil))
}

func TestConfigFromArgs_EmptyEqualsValue(t *testing.T) {
	// --config= with no value should fall through to the default
	assert.Empty(t, configFromArgs([]string{"boardkit", "--config=", "show"}))
}

func TestMatchBoards(t *testing.T) {
	boards := []model.Board{
		model.NewBoard("b-1", "Groceries"),
		model.NewBoard("b-2", "Garden"),
		model.NewBoard("x-3", "Work"),
	}

	assert.Equal(t, []string{"Groceries", "Garden"}, matchBoards(boards, "G"))
	assert.Equal(t, []string{"b-1", "b-2"}, matchBoards(boards, "b-"))
	assert.Len(t, matchBoards(boards, ""), 6)
	assert.Nil(t, matchBoards(boards, "zzz"))
}
