package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProficiency(t *testing.T) {
	tests := []struct {
		in      string
		want    Proficiency
		wantErr bool
	}{
		{"NOVICE", Novice, false},
		{"intermediate", Intermediate, false},
		{"  Advanced ", Advanced, false},
		{"EXPERT", Expert, false},
		{"guru", ProficiencyUnknown, true},
		{"", ProficiencyUnknown, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseProficiency(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProficiency_Lower(t *testing.T) {
	assert.Equal(t, Intermediate, Expert.Lower(2))
	assert.Equal(t, Novice, Intermediate.Lower(3))
	assert.Equal(t, Advanced, Advanced.Lower(0))
}

func TestProficiency_JSON(t *testing.T) {
	data, err := json.Marshal(Advanced)
	require.NoError(t, err)
	assert.Equal(t, `"ADVANCED"`, string(data))

	_, err = json.Marshal(ProficiencyUnknown)
	assert.Error(t, err)

	var p Proficiency
	require.NoError(t, json.Unmarshal([]byte(`"expert"`), &p))
	assert.Equal(t, Expert, p)
	require.NoError(t, json.Unmarshal([]byte(`2`), &p))
	assert.Equal(t, Intermediate, p)

	assert.Error(t, json.Unmarshal([]byte(`7`), &p))
	assert.Error(t, json.Unmarshal([]byte(`"master"`), &p))
	assert.Error(t, json.Unmarshal([]byte(`true`), &p))
}

func TestParseInterestLevel(t *testing.T) {
	got, err := ParseInterestLevel("very high")
	require.NoError(t, err)
	assert.Equal(t, InterestVeryHigh, got)

	got, err = ParseInterestLevel("Medium")
	require.NoError(t, err)
	assert.Equal(t, InterestMedium, got)

	_, err = ParseInterestLevel("extreme")
	assert.Error(t, err)
}

func TestInterestLevel_LabelAndJSON(t *testing.T) {
	assert.Equal(t, "very high", InterestVeryHigh.Label())
	assert.Equal(t, "UNKNOWN", InterestUnknown.String())

	data, err := json.Marshal(InterestHigh)
	require.NoError(t, err)
	assert.Equal(t, `"HIGH"`, string(data))

	var l InterestLevel
	require.NoError(t, json.Unmarshal([]byte(`"VERY_HIGH"`), &l))
	assert.Equal(t, InterestVeryHigh, l)
	require.NoError(t, json.Unmarshal([]byte(`1`), &l))
	assert.Equal(t, InterestLow, l)
	assert.Error(t, json.Unmarshal([]byte(`0`), &l))
}

func TestLevelNamesAreOrdered(t *testing.T) {
	for i, name := range ProficiencyLevels() {
		p, err := ParseProficiency(name)
		require.NoError(t, err)
		assert.Equal(t, i+1, p.Rank())
	}
	for i, name := range InterestLevels() {
		l, err := ParseInterestLevel(name)
		require.NoError(t, err)
		assert.Equal(t, i+1, l.Rank())
	}
}
