package effect

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutcome(t *testing.T) {
	got, err := ParseOutcome("ok")
	require.NoError(t, err)
	assert.Equal(t, Confirmed, got)

	got, err = ParseOutcome("cancel")
	require.NoError(t, err)
	assert.Equal(t, Cancelled, got)

	_, err = ParseOutcome("OK")
	assert.True(t, errors.Is(err, ErrUnknownOutcome))
}

func TestOutcomeJSON(t *testing.T) {
	b, err := json.Marshal(map[string]DialogOutcome{"dialogClosed": Confirmed})
	require.NoError(t, err)
	assert.JSONEq(t, `{"dialogClosed":"ok"}`, string(b))

	var decoded map[string]DialogOutcome
	require.NoError(t, json.Unmarshal([]byte(`{"dialogClosed":"cancel"}`), &decoded))
	assert.Equal(t, Cancelled, decoded["dialogClosed"])
}

func TestToastKindString(t *testing.T) {
	assert.Equal(t, "error", ToastError.String())
	assert.Equal(t, "info", ToastInfo.String())
	assert.Equal(t, "warning", ToastWarning.String())
	assert.Equal(t, "success", ToastSuccess.String())
}
