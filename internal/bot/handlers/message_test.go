package handlers

import (
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
)

func TestMediaFingerprint(t *testing.T) {
	t.Parallel()

	gifType := "image/gif"
	pngType := "image/png"

	tests := []struct {
		name     string
		message  discord.Message
		expected string
	}{
		{
			name: "sticker",
			message: discord.Message{
				StickerItems: []discord.MessageSticker{{ID: snowflake.ID(123)}},
			},
			expected: "sticker:123",
		},
		{
			name: "sticker wins over attachment",
			message: discord.Message{
				StickerItems: []discord.MessageSticker{{ID: snowflake.ID(123)}},
				Attachments: []discord.Attachment{
					{Filename: "cat.gif", ContentType: &gifType, Size: 10},
				},
			},
			expected: "sticker:123",
		},
		{
			name: "gif by content type",
			message: discord.Message{
				Attachments: []discord.Attachment{
					{Filename: "cat", ContentType: &gifType, Size: 2048},
				},
			},
			expected: "gif:cat:2048",
		},
		{
			name: "gif by extension",
			message: discord.Message{
				Attachments: []discord.Attachment{
					{Filename: "Cat.GIF", Size: 2048},
				},
			},
			expected: "gif:Cat.GIF:2048",
		},
		{
			name: "non-gif attachment ignored",
			message: discord.Message{
				Attachments: []discord.Attachment{
					{Filename: "cat.png", ContentType: &pngType, Size: 2048},
				},
			},
			expected: "",
		},
		{
			name:     "plain text",
			message:  discord.Message{Content: "hello"},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, mediaFingerprint(tt.message))
		})
	}
}
