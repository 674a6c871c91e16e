package importer

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Number
		wantErr bool
	}{
		{"number", `12`, Num(12), false},
		{"float", `1.25`, Num(1.25), false},
		{"string", `"42"`, Num(42), false},
		{"padded string", `" 7 "`, Num(7), false},
		{"empty string", `""`, Number{}, false},
		{"null", `null`, Number{}, false},
		{"garbage", `"abc"`, Number{}, true},
		{"bool", `true`, Number{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Number
			err := json.Unmarshal([]byte(tt.in), &n)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestNumber_MarshalOmitsUnset(t *testing.T) {
	data, err := json.Marshal(SectionRecord{SectionID: Num(3), SectionName: "A"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"section_id":3,"section_name":"A"}`, string(data))

	data, err = json.Marshal(ItemRecord{ItemID: Num(1)})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"quantity":null`)
}

func TestLoadFile_SampleFeed(t *testing.T) {
	feed, err := LoadFile("testdata/small.json")
	require.NoError(t, err)

	require.Len(t, feed.Data.EstimateItem, 3)
	second := feed.Data.EstimateItem[1]
	assert.Equal(t, int64(102), second.ItemID.Int64())
	assert.Equal(t, int64(1), second.SectionID.Int64())
	assert.Equal(t, 50.0, feed.Data.EstimateItem[0].Markup.Value)
	assert.False(t, feed.Data.EstimateItem[2].Markup.Set)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile("testdata/nope.json")
	assert.Error(t, err)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"data": {"EstimateItem": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing estimate feed")
}
