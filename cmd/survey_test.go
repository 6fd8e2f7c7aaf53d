package cmd

import (
	"testing"

	"github.com/gnames/faunamap/pkg/errcode"
	"github.com/gnames/faunamap/pkg/region"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurveyCandidates(t *testing.T) {
	res := region.New([]region.Entry{
		{Native: "Амурская область", Key: "Amur", Survey: true},
		{Native: "Москва", Key: "Moscow"},
		{Native: "Республика Татарстан", Key: "Tatarstan", Survey: true},
	})

	t.Run("marked regions", func(t *testing.T) {
		cands, err := surveyCandidates(res, nil)
		require.NoError(t, err)
		keys := make([]string, len(cands))
		for i, e := range cands {
			keys[i] = e.Key
		}
		assert.Equal(t, []string{"Amur", "Tatarstan"}, keys)
	})

	t.Run("named regions", func(t *testing.T) {
		cands, err := surveyCandidates(res, []string{"Москва", "Амурская"})
		require.NoError(t, err)
		require.Len(t, cands, 2)
		assert.Equal(t, "Moscow", cands[0].Key)
		assert.Equal(t, "Amur", cands[1].Key)
	})

	t.Run("unresolved name", func(t *testing.T) {
		_, err := surveyCandidates(res, []string{" "})
		require.Error(t, err)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok)
		assert.Equal(t, errcode.RegionNotResolvedError, gnErr.Code)
	})
}
