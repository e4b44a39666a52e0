package degradation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStressFlagDerivation(t *testing.T) {
	cases := []struct {
		name      string
		sel       Selector
		dai, lare bool
	}{
		{"default", Default(), false, false},
		{"dai cracking", Selector{SEI: []SEIModel{SEINone}, Cracking: []CrackModel{CrackDai}, LAM: []LAMModel{LAMNone}}, true, false},
		{"laresgoiti cracking only", Selector{SEI: []SEIModel{SEINone}, Cracking: []CrackModel{CrackLaresgoiti}, LAM: []LAMModel{LAMNone}}, false, true},
		{"dai lam", Selector{SEI: []SEIModel{SEINone}, Cracking: []CrackModel{CrackNone}, LAM: []LAMModel{LAMDai}}, true, false},
		{"both", Selector{SEI: []SEIModel{SEIKinetic}, Cracking: []CrackModel{CrackBarai, CrackLaresgoiti}, LAM: []LAMModel{LAMDelacourt, LAMDai}}, true, true},
		{"stress free models", Selector{SEI: []SEIModel{SEIDiffusion}, Cracking: []CrackModel{CrackDeshpande, CrackEkstrom}, LAM: []LAMModel{LAMKindermann, LAMNarayanrao}, Plating: PlatingYang}, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.dai, tc.sel.NeedsDai())
			assert.Equal(t, tc.lare, tc.sel.NeedsLaresgoiti())
		})
	}
}

func TestSelectorValidate(t *testing.T) {
	assert.NoError(t, Default().Validate())

	s := Default()
	s.SEI = nil
	assert.ErrorIs(t, s.Validate(), ErrInvalidSelector)

	s = Default()
	s.Cracking = []CrackModel{CrackNone, 42}
	assert.ErrorIs(t, s.Validate(), ErrInvalidSelector)

	s = Default()
	s.LAM = make([]LAMModel, MaxModels+1)
	assert.ErrorIs(t, s.Validate(), ErrInvalidSelector)

	s = Default()
	s.Plating = 7
	assert.ErrorIs(t, s.Validate(), ErrInvalidSelector)
}

func TestSelectorClone(t *testing.T) {
	s := Selector{SEI: []SEIModel{SEIKinetic}, Cracking: []CrackModel{CrackDai}, LAM: []LAMModel{LAMDai}}
	c := s.Clone()
	s.SEI[0] = SEIDiffusion
	s.Cracking[0] = CrackNone
	assert.Equal(t, SEIKinetic, c.SEI[0])
	assert.True(t, c.NeedsDai())
}

func TestModelNames(t *testing.T) {
	assert.Equal(t, "kinetic-diffusion", SEIKineticDiffusion.String())
	assert.Equal(t, "laresgoiti", CrackLaresgoiti.String())
	assert.Equal(t, "kindermann", LAMKindermann.String())
	assert.Equal(t, "yang", PlatingYang.String())
	assert.Equal(t, "unknown(9)", SEIModel(9).String())
}

func TestParseModelNames(t *testing.T) {
	sei, err := ParseSEIModel("kinetic-diffusion")
	require.NoError(t, err)
	assert.Equal(t, SEIKineticDiffusion, sei)

	crack, err := ParseCrackModel("barai")
	require.NoError(t, err)
	assert.Equal(t, CrackBarai, crack)

	lam, err := ParseLAMModel("none")
	require.NoError(t, err)
	assert.Equal(t, LAMNone, lam)

	pl, err := ParsePlatingModel("yang")
	require.NoError(t, err)
	assert.Equal(t, PlatingYang, pl)

	_, err = ParseCrackModel("paris")
	assert.ErrorIs(t, err, ErrInvalidSelector)
}
