package aigen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	t.Run("FencedJSON", func(t *testing.T) {
		raw := "```json\n{\"topics\": [\"Algebra\"]}\n```"
		assert.Equal(t, `{"topics": ["Algebra"]}`, stripFences(raw))
	})

	t.Run("BareFences", func(t *testing.T) {
		raw := "```\n[1, 2]\n```"
		assert.Equal(t, "[1, 2]", stripFences(raw))
	})

	t.Run("NoFences", func(t *testing.T) {
		assert.Equal(t, `{"a": 1}`, stripFences(`  {"a": 1}  `))
	})
}

func TestDecodeQuestions(t *testing.T) {
	t.Run("ValidArray", func(t *testing.T) {
		raw := `[
			{
				"question_text": "What is 2 + 2?",
				"options": {"A": "3", "B": "4", "C": "5", "D": "22"},
				"correct_answer": "B",
				"explanation": "Basic addition."
			}
		]`

		questions, err := decodeQuestions(raw)
		require.NoError(t, err)
		require.Len(t, questions, 1)
		assert.Equal(t, "What is 2 + 2?", questions[0].QuestionText)
		assert.Equal(t, "B", questions[0].CorrectAnswer)
		assert.Equal(t, "4", questions[0].Options["B"])
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		_, err := decodeQuestions(`{"not": "an array"}`)
		assert.Error(t, err)
	})

	t.Run("EmptyArray", func(t *testing.T) {
		questions, err := decodeQuestions(`[]`)
		require.NoError(t, err)
		assert.Empty(t, questions)
	})
}
