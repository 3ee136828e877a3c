//go:build unit
// +build unit

package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turrs/bank-skd/internal/domain/catalog"
)

const twkQuestion = `{
	"category": "TWK",
	"tag": "pancasila",
	"content": "Sila pertama Pancasila adalah",
	"options": [
		{"key": "A", "text": "Ketuhanan Yang Maha Esa"},
		{"key": "B", "text": "Persatuan Indonesia"}
	],
	"correct_option": "A"
}`

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestReadQuestionFile(t *testing.T) {
	packageID := uuid.NewString()

	t.Run("bare array", func(t *testing.T) {
		path := writeTempFile(t, "["+twkQuestion+"]")

		questions, err := readQuestionFile(path, packageID)
		require.NoError(t, err)
		require.Len(t, questions, 1)
		assert.Equal(t, packageID, questions[0].PackageID)
		assert.Equal(t, catalog.CategoryTWK, questions[0].Category)
		assert.Equal(t, "A", questions[0].CorrectOption)
		assert.NotEmpty(t, questions[0].ID)
	})

	t.Run("import body", func(t *testing.T) {
		path := writeTempFile(t, `{"questions": [`+twkQuestion+`,`+twkQuestion+`]}`)

		questions, err := readQuestionFile(path, packageID)
		require.NoError(t, err)
		assert.Len(t, questions, 2)
		assert.NotEqual(t, questions[0].ID, questions[1].ID)
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeTempFile(t, `{"questions": []}`)

		_, err := readQuestionFile(path, packageID)
		assert.Error(t, err)
	})

	t.Run("invalid question", func(t *testing.T) {
		path := writeTempFile(t, `[{"category": "TKP", "content": "x", "options": [{"key": "A", "text": "a"}, {"key": "B", "text": "b"}]}]`)

		_, err := readQuestionFile(path, packageID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "question 1")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := readQuestionFile(filepath.Join(t.TempDir(), "nope.json"), packageID)
		assert.Error(t, err)
	})
}
