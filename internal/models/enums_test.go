package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, status := range TaskStatuses {
		assert.True(t, ValidStatus(status))
	}

	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("todo"))
	assert.False(t, ValidStatus("CANCELLED"))
}

func TestValidPriority(t *testing.T) {
	for _, priority := range TaskPriorities {
		assert.True(t, ValidPriority(priority))
	}

	assert.False(t, ValidPriority(""))
	assert.False(t, ValidPriority("medium"))
	assert.False(t, ValidPriority("ASAP"))
}
