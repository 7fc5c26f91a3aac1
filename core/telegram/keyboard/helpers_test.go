package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInlineButtonsRowsRawData(t *testing.T) {
	markup := InlineButtonsRows(
		[]InlineBtn{{Text: "arm64", Data: "arch_app_arm64"}, {Text: "x86", Data: "arch_app_x86"}},
		nil,
		[]InlineBtn{{Text: "Go Back", Data: "files"}},
	)
	require.NotNil(t, markup)
	require.Len(t, markup.InlineKeyboard, 2)
	assert.Equal(t, "arch_app_arm64", markup.InlineKeyboard[0][0].Data)
	assert.Empty(t, markup.InlineKeyboard[0][0].Unique)
	assert.Equal(t, "files", markup.InlineKeyboard[1][0].Data)
}

func TestInlineButtonsEncoded(t *testing.T) {
	markup := InlineButtons([]InlineBtn{{Text: "OK", Unique: "confirm", Data: "1"}})
	require.NotNil(t, markup)
	assert.Equal(t, "confirm", markup.InlineKeyboard[0][0].Unique)
}

func TestInlineButtonsRowsEmpty(t *testing.T) {
	assert.Nil(t, InlineButtonsRows())
	assert.Nil(t, InlineButtonsRows(nil, []InlineBtn{}))
}
