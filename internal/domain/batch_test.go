package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatch_AddKeepsOrder(t *testing.T) {
	b := NewBatch()
	assert.True(t, b.Empty())

	b.Add(Record{ShortMessage: "a"})
	b.Add(Record{ShortMessage: "b"})

	assert.Equal(t, 2, b.Size())
	assert.False(t, b.Empty())
	assert.Equal(t, "a", b.Records()[0].ShortMessage)
	assert.Equal(t, "b", b.Records()[1].ShortMessage)
}

func TestBatch_Reset(t *testing.T) {
	b := NewBatch()
	b.Add(Record{ShortMessage: "a"})
	b.Reset()

	assert.True(t, b.Empty())
	assert.Empty(t, b.Records())

	b.Add(Record{ShortMessage: "c"})
	assert.Equal(t, 1, b.Size())
}
