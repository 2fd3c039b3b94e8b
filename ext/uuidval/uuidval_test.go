package uuidval

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dzonerzy/snapopt/bind"
	"github.com/dzonerzy/snapopt/strslice"
	"github.com/dzonerzy/snapopt/value"
)

const sample = "f47ac10b-58cc-4372-a567-0e02b2c3d479"

func TestParseForms(t *testing.T) {
	want := uuid.MustParse(sample)
	for _, in := range []string{
		sample,
		"urn:uuid:" + sample,
		"{" + sample + "}",
		"f47ac10b58cc4372a5670e02b2c3d479",
	} {
		got, err := value.Parse[uuid.UUID](strslice.Of(in), 0)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := value.Parse[uuid.UUID](strslice.Of("not-a-uuid"), 0)
	var ce *value.ConversionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "uuid.UUID", ce.Type)

	s, err := value.Format(want)
	require.NoError(t, err)
	assert.Equal(t, sample, s)
}

func TestRegistrationIsExclusive(t *testing.T) {
	err := value.Register[uuid.UUID](Parser{})
	assert.ErrorIs(t, err, value.ErrAmbiguous)
}

func TestSliceAndSetTargets(t *testing.T) {
	var ids []uuid.UUID
	tg, err := bind.New(&ids)
	require.NoError(t, err)
	assert.Empty(t, tg.ApplyAll([]string{sample, sample}))
	assert.Len(t, ids, 2)

	var uniq map[uuid.UUID]struct{}
	st, err := bind.New(&uniq)
	require.NoError(t, err)
	assert.Empty(t, st.ApplyAll([]string{sample, sample}))
	assert.Len(t, uniq, 1)
}

func TestNonNil(t *testing.T) {
	var id uuid.UUID
	tg, err := bind.New(&id, bind.Validate(NonNil))
	require.NoError(t, err)

	assert.ErrorIs(t, tg.Set("00000000-0000-0000-0000-000000000000"), ErrNil)
	require.NoError(t, tg.Set(sample))
	assert.Equal(t, sample, tg.String())
}
