package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalizedText_PlainString(t *testing.T) {
	var text LocalizedText
	require.NoError(t, json.Unmarshal([]byte(`"under construction"`), &text))

	assert.Equal(t, "under construction", text.Plain)
	assert.False(t, text.IsZero())

	out, err := json.Marshal(text)
	require.NoError(t, err)
	assert.JSONEq(t, `"under construction"`, string(out))
}

func TestLocalizedText_Pair(t *testing.T) {
	var text LocalizedText
	require.NoError(t, json.Unmarshal([]byte(`{"en":"Completed","ar":"مكتمل"}`), &text))

	assert.Empty(t, text.Plain)
	assert.Equal(t, "Completed", text.En)
	assert.Equal(t, "مكتمل", text.Ar)

	out, err := json.Marshal(text)
	require.NoError(t, err)
	assert.JSONEq(t, `{"en":"Completed","ar":"مكتمل"}`, string(out))
}

func TestLocalizedText_InvalidShape(t *testing.T) {
	var text LocalizedText
	assert.Error(t, json.Unmarshal([]byte(`42`), &text))
}

func TestLocalizedText_ScanRoundTrip(t *testing.T) {
	original := LocalizedText{En: "Luxury Villas", Ar: "فلل فاخرة"}

	value, err := original.Value()
	require.NoError(t, err)

	var scanned LocalizedText
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, original, scanned)
}

func TestLocalizedList_PlainArray(t *testing.T) {
	var list LocalizedList
	require.NoError(t, json.Unmarshal([]byte(`["pool","gym"]`), &list))

	assert.Equal(t, []string{"pool", "gym"}, list.Plain)

	out, err := json.Marshal(list)
	require.NoError(t, err)
	assert.JSONEq(t, `["pool","gym"]`, string(out))
}

func TestLocalizedList_Pair(t *testing.T) {
	var list LocalizedList
	require.NoError(t, json.Unmarshal([]byte(`{"en":["pool"],"ar":["مسبح"]}`), &list))

	assert.Nil(t, list.Plain)
	assert.Equal(t, []string{"pool"}, list.En)
	assert.Equal(t, []string{"مسبح"}, list.Ar)

	out, err := json.Marshal(list)
	require.NoError(t, err)
	assert.JSONEq(t, `{"en":["pool"],"ar":["مسبح"]}`, string(out))
}

func TestLocalizedList_EmptyPairMarshalsEmptyArrays(t *testing.T) {
	out, err := json.Marshal(LocalizedList{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"en":[],"ar":[]}`, string(out))
}

func TestLocalizedList_ScanRoundTrip(t *testing.T) {
	original := LocalizedList{En: []string{"pool", "gym"}, Ar: []string{"مسبح"}}

	value, err := original.Value()
	require.NoError(t, err)

	var scanned LocalizedList
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, original, scanned)
}
