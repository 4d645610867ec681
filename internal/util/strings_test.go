package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddSpace(t *testing.T) {
	cases := map[string]string{
		"":                   "",
		"english":            "english",
		"日本語english":         "日本語 english",
		"fromは必須フィールドです":    "from は必須フィールドです",
		"from は必須フィールドです":   "from は必須フィールドです",
		"toは2006-01-02形式です": "to は 2006-01-02 形式です",
	}
	for in, want := range cases {
		assert.Equal(t, want, AddSpace(in), in)
	}
	assert.True(t, IsASCII("abc"))
	assert.False(t, IsASCII("アヒル"))
}
