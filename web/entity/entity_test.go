package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoUpdateFormPatch(t *testing.T) {
	assert.True(t, MemoUpdateForm{}.Patch().Empty())

	content := "c2"
	patch := MemoUpdateForm{Content: &content}.Patch()
	assert.Nil(t, patch.Title)
	assert.Equal(t, &content, patch.Content)
}
