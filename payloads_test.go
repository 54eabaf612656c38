package stayhooks

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessagePayload_Build(t *testing.T) {
	t.Run("requires text", func(t *testing.T) {
		_, err := MessagePayload{}.build("")
		assert.True(t, IsValidation(err))

		_, err = MessagePayload{Text: "   "}.build("")
		assert.True(t, IsValidation(err), "whitespace-only text must fail")
	})

	t.Run("trims text and applies alias fallback", func(t *testing.T) {
		body, err := MessagePayload{Text: "  hello  "}.build("RoomBot")
		require.NoError(t, err)
		assert.Equal(t, "hello", body["text"])
		assert.Equal(t, "RoomBot", body["alias"])
	})

	t.Run("explicit alias wins over default", func(t *testing.T) {
		body, err := MessagePayload{Text: "hi", Alias: "Override"}.build("RoomBot")
		require.NoError(t, err)
		assert.Equal(t, "Override", body["alias"])
	})

	t.Run("no alias configured omits the field", func(t *testing.T) {
		body, err := MessagePayload{Text: "hi"}.build("")
		require.NoError(t, err)
		_, ok := body["alias"]
		assert.False(t, ok)
	})

	t.Run("extra map passes through verbatim", func(t *testing.T) {
		extra := map[string]any{"attachment": "a.txt", "pinned": true}
		body, err := MessagePayload{Text: "hi", Extra: extra}.build("")
		require.NoError(t, err)
		assert.Equal(t, extra, body["extra"])
	})
}

func TestEmbedPayload_Build(t *testing.T) {
	t.Run("requires title", func(t *testing.T) {
		_, err := EmbedPayload{Description: "text without title"}.build("")
		assert.True(t, IsValidation(err))
	})

	t.Run("color validation", func(t *testing.T) {
		for _, bad := range []string{"#FFF", "A1B2C3", "#12AB3G", "#1234567", "red"} {
			_, err := EmbedPayload{Title: "t", Color: bad}.build("")
			assert.True(t, IsValidation(err), "color %q must fail", bad)
		}
		for _, good := range []string{"#A1B2C3", "#ffffff", "#000000", "#ff00AA"} {
			body, err := EmbedPayload{Title: "t", Color: good}.build("")
			require.NoError(t, err, "color %q must pass", good)
			embed := body["embed"].(map[string]any)
			assert.Equal(t, good, embed["color"], "color must pass through unchanged")
		}
	})

	t.Run("notes become a bullet block after the description", func(t *testing.T) {
		body, err := EmbedPayload{
			Title:       "Release",
			Description: "Changes:",
			Notes:       []string{"faster sync", "fewer crashes"},
		}.build("")
		require.NoError(t, err)
		embed := body["embed"].(map[string]any)
		description := embed["description"].(string)
		assert.True(t, strings.HasPrefix(description, "Changes:\n\n"))
		assert.Contains(t, description, "• faster sync\n• fewer crashes")
	})

	t.Run("notes alone form the description", func(t *testing.T) {
		body, err := EmbedPayload{Title: "t", Notes: []string{"only note"}}.build("")
		require.NoError(t, err)
		embed := body["embed"].(map[string]any)
		assert.Equal(t, "• only note", embed["description"])
	})

	t.Run("empty note rejected", func(t *testing.T) {
		_, err := EmbedPayload{Title: "t", Notes: []string{"ok", "  "}}.build("")
		assert.True(t, IsValidation(err))
	})

	t.Run("supplementary text and alias sit beside the embed", func(t *testing.T) {
		body, err := EmbedPayload{Title: "t", Text: "see card", Alias: "Bot"}.build("")
		require.NoError(t, err)
		assert.Equal(t, "see card", body["text"])
		assert.Equal(t, "Bot", body["alias"])
	})

	t.Run("extra embed fields merged", func(t *testing.T) {
		body, err := EmbedPayload{Title: "t", Fields: map[string]any{"thumbnail": "x.png"}}.build("")
		require.NoError(t, err)
		embed := body["embed"].(map[string]any)
		assert.Equal(t, "x.png", embed["thumbnail"])
	})
}

func TestPollPayload_Build(t *testing.T) {
	t.Run("option count bounds", func(t *testing.T) {
		_, err := PollPayload{Question: "q", Options: []string{"solo"}}.build("")
		assert.True(t, IsValidation(err), "1 option must fail")

		nine := make([]string, 9)
		for i := range nine {
			nine[i] = "opt" + string(rune('a'+i))
		}
		_, err = PollPayload{Question: "q", Options: nine}.build("")
		assert.True(t, IsValidation(err), "9 options must fail, not truncate")
	})

	t.Run("duplicate options rejected", func(t *testing.T) {
		_, err := PollPayload{Question: "q", Options: []string{"yes", "no", "yes"}}.build("")
		assert.True(t, IsValidation(err))
	})

	t.Run("case-sensitive uniqueness allows Yes and yes", func(t *testing.T) {
		_, err := PollPayload{Question: "q", Options: []string{"Yes", "yes"}}.build("")
		assert.NoError(t, err)
	})

	t.Run("empty option rejected", func(t *testing.T) {
		_, err := PollPayload{Question: "q", Options: []string{"a", " "}}.build("")
		assert.True(t, IsValidation(err))
	})

	t.Run("requires question", func(t *testing.T) {
		_, err := PollPayload{Options: []string{"a", "b"}}.build("")
		assert.True(t, IsValidation(err))
	})

	t.Run("end time must be in the future", func(t *testing.T) {
		_, err := PollPayload{
			Question: "q",
			Options:  []string{"a", "b"},
			EndsAt:   time.Now().Add(-time.Minute),
		}.build("")
		assert.True(t, IsValidation(err))
	})

	t.Run("valid poll wire shape", func(t *testing.T) {
		body, err := PollPayload{
			Question:       "lunch?",
			Options:        []string{"pizza", "sushi"},
			MultipleChoice: true,
			EndsAt:         time.Now().Add(30 * time.Minute),
		}.build("")
		require.NoError(t, err)
		assert.Equal(t, "lunch?", body["question"])
		assert.Equal(t, []string{"pizza", "sushi"}, body["options"])
		assert.Equal(t, true, body["multipleChoice"])
		minutes := body["endsInMinutes"].(int)
		assert.InDelta(t, 30, minutes, 1)
	})

	t.Run("no end time omits endsInMinutes", func(t *testing.T) {
		body, err := PollPayload{Question: "q", Options: []string{"a", "b"}}.build("")
		require.NoError(t, err)
		_, ok := body["endsInMinutes"]
		assert.False(t, ok)
	})
}

func TestImagePayload_Build(t *testing.T) {
	t.Run("requires http url", func(t *testing.T) {
		for _, bad := range []string{"", "ftp://files/cat.png", "not a url", "cat.png"} {
			_, err := ImagePayload{URL: bad}.build("")
			assert.True(t, IsValidation(err), "url %q must fail", bad)
		}
	})

	t.Run("size hints must be positive", func(t *testing.T) {
		_, err := ImagePayload{URL: "https://img.test/cat.png", Width: -10}.build("")
		assert.True(t, IsValidation(err))
		_, err = ImagePayload{URL: "https://img.test/cat.png", Height: -1}.build("")
		assert.True(t, IsValidation(err))
	})

	t.Run("zero hints are simply omitted", func(t *testing.T) {
		body, err := ImagePayload{URL: "https://img.test/cat.png"}.build("")
		require.NoError(t, err)
		_, hasW := body["w"]
		_, hasH := body["h"]
		assert.False(t, hasW)
		assert.False(t, hasH)
	})

	t.Run("placement coordinates set together", func(t *testing.T) {
		_, err := ImagePayload{URL: "https://img.test/cat.png", X: Int(4)}.build("")
		assert.True(t, IsValidation(err))

		body, err := ImagePayload{URL: "https://img.test/cat.png", X: Int(4), Y: Int(-2)}.build("")
		require.NoError(t, err)
		assert.Equal(t, 4, body["x"])
		assert.Equal(t, -2, body["y"])
	})

	t.Run("full wire shape", func(t *testing.T) {
		body, err := ImagePayload{
			URL:    "https://img.test/cat.png",
			Width:  320,
			Height: 240,
		}.build("")
		require.NoError(t, err)
		assert.Equal(t, "https://img.test/cat.png", body["url"])
		assert.Equal(t, 320, body["w"])
		assert.Equal(t, 240, body["h"])
	})
}
