package rabbitmq_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"products/pkg/rabbitmq"
)

func TestRouter_DispatchSuccess(t *testing.T) {
	router := rabbitmq.NewRouter()
	router.Handle("echo", func(data json.RawMessage) (interface{}, error) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return s, nil
	})

	out, err := router.Dispatch([]byte(`{"pattern":{"cmd":"echo"},"data":"hello","id":"abc"}`))
	assert.NoError(t, err)

	var rep struct {
		Response   string `json:"response"`
		Err        string `json:"err"`
		IsDisposed bool   `json:"isDisposed"`
		ID         string `json:"id"`
	}
	assert.NoError(t, json.Unmarshal(out, &rep))
	assert.Equal(t, "hello", rep.Response)
	assert.Empty(t, rep.Err)
	assert.True(t, rep.IsDisposed)
	assert.Equal(t, "abc", rep.ID)
}

func TestRouter_DispatchHandlerError(t *testing.T) {
	router := rabbitmq.NewRouter()
	router.Handle("boom", func(data json.RawMessage) (interface{}, error) {
		return nil, fmt.Errorf("something broke")
	})

	out, err := router.Dispatch([]byte(`{"pattern":{"cmd":"boom"},"data":null,"id":"abc"}`))
	assert.NoError(t, err)

	var rep struct {
		Response json.RawMessage `json:"response"`
		Err      string          `json:"err"`
	}
	assert.NoError(t, json.Unmarshal(out, &rep))
	assert.Equal(t, "something broke", rep.Err)
	assert.Equal(t, "null", string(rep.Response))
}

func TestRouter_DispatchUnknownCommand(t *testing.T) {
	router := rabbitmq.NewRouter()

	out, err := router.Dispatch([]byte(`{"pattern":{"cmd":"nope"},"data":null,"id":"abc"}`))
	assert.NoError(t, err)

	var rep struct {
		Err string `json:"err"`
	}
	assert.NoError(t, json.Unmarshal(out, &rep))
	assert.Contains(t, rep.Err, "no handler registered for command 'nope'")
}

func TestRouter_DispatchMalformedEnvelope(t *testing.T) {
	router := rabbitmq.NewRouter()

	// A broken envelope is a dispatch error so the caller can reject the
	// delivery instead of replying.
	out, err := router.Dispatch([]byte(`{not json`))
	assert.Error(t, err)
	assert.Nil(t, out)
}
