package dock

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTarget struct {
	published []Strut
	err       error
}

func (r *recordingTarget) SetStrut(s Strut) error {
	if r.err != nil {
		return r.err
	}
	r.published = append(r.published, s)
	return nil
}

func TestReservationLifecycle(t *testing.T) {
	target := &recordingTarget{}
	_, strut, err := Place(EdgeBottom, 30, fullHD)
	require.NoError(t, err)

	res, err := Reserve(target, strut)
	require.NoError(t, err)
	assert.Equal(t, strut, res.Current())

	_, resized, err := Place(EdgeBottom, 30, Rect{Width: 1280, Height: 720})
	require.NoError(t, err)
	require.NoError(t, res.Update(resized))
	require.NoError(t, res.Update(resized))

	require.NoError(t, res.Release())
	require.NoError(t, res.Release())

	require.Len(t, target.published, 3)
	assert.Equal(t, strut, target.published[0])
	assert.Equal(t, resized, target.published[1])
	assert.True(t, target.published[2].IsZero())
	assert.True(t, res.Current().IsZero())

	assert.ErrorIs(t, res.Update(strut), ErrReservationReleased)
}

func TestReserveFailure(t *testing.T) {
	_, err := Reserve(&recordingTarget{err: errors.New("no window")}, Strut{})
	assert.Error(t, err)
}

func TestReleaseFailureIsReported(t *testing.T) {
	target := &recordingTarget{}
	res, err := Reserve(target, Strut{0, 0, 0, 10})
	require.NoError(t, err)

	target.err = errors.New("gone")
	assert.Error(t, res.Release())
	assert.NoError(t, res.Release())
}
