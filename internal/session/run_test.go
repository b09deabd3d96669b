package session

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/buildorder"
)

func TestRun_SyntheticNamesAreRunScoped(t *testing.T) {
	first := NewRun("Windows")
	second := NewRun("Windows")

	assert.Equal(t, "SYS_X", first.SyntheticName("SYS_X"))
	assert.Equal(t, "SYS_X_2", first.SyntheticName("SYS_X"))
	assert.Equal(t, "SYS_X", second.SyntheticName("SYS_X"))
	assert.NotEqual(t, first.ID, second.ID)
	_, err := uuid.Parse(first.ID)
	assert.NoError(t, err)
}

func TestRun_Stages(t *testing.T) {
	run := NewRun("Ubuntu")
	assert.Equal(t, StageCreated, run.Stage())

	err := run.Begin(StageOrdered)
	assert.ErrorIs(t, err, buildorder.ErrUsage)

	require.NoError(t, run.Begin(StageCreated))
	run.Complete(StageOrdered, nil)
	assert.Equal(t, StageOrdered, run.Stage())

	run.Complete(StageFinalized, errors.New("boom"))
	assert.Equal(t, StageFailed, run.Stage())
	assert.ErrorIs(t, run.Begin(StageOrdered), buildorder.ErrUsage)
	assert.Equal(t, "failed", run.Stage().String())
}
