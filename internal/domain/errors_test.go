package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	err := fmt.Errorf("handler: %w", NotFound("list %d not found", 3))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, IsKind(err, KindNotFound))
	assert.Equal(t, "list 3 not found", Message(err))

	cause := errors.New("disk full")
	in := Internal("save", cause)
	assert.Equal(t, KindInternal, KindOf(in))
	assert.ErrorIs(t, in, cause)

	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.Equal(t, KindDuplicate, KindOf(Wrap(Duplicate("dup"), "create")))
	assert.Equal(t, KindInternal, KindOf(Wrap(cause, "create")))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Анна Петрова", DisplayName("Анна", "Петрова", "a@x.ru"))
	assert.Equal(t, "Анна", DisplayName("Анна", "", "a@x.ru"))
	assert.NotEmpty(t, DisplayName("", "", "ivan.petrov@x.ru"))
}
