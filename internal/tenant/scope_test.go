package tenant

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestBindRejectsZeroID(t *testing.T) {
	_, err := Bind(uuid.Nil)
	assert.ErrorIs(t, err, ErrUnboundScope)
}

func TestBindProducesBoundScope(t *testing.T) {
	courseID := uuid.New()
	scope, err := Bind(courseID)
	require.NoError(t, err)
	assert.True(t, scope.Bound())
	assert.Equal(t, courseID, scope.CourseID())
}

func TestUnboundScopeFailsClosed(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	var zero Scope
	assert.False(t, zero.Bound())
	_, err = zero.DB(db)
	assert.ErrorIs(t, err, ErrUnboundScope)
}

func TestScopeContextRoundTrip(t *testing.T) {
	scope, err := Bind(uuid.New())
	require.NoError(t, err)

	ctx := WithScope(context.Background(), scope)
	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, scope.CourseID(), got.CourseID())
}

func TestFromContextWithoutScope(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)
}

func TestFromContextWithUnboundScope(t *testing.T) {
	ctx := WithScope(context.Background(), Scope{})
	_, ok := FromContext(ctx)
	assert.False(t, ok)
}
