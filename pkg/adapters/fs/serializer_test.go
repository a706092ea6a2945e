package fs

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const planDoc = `{"id":"p1","subject":"Ciências","theme":"Água","createdAt":1718000000123,` +
	`"materials":["Caderno","Lápis"],"steps":[{"time":"10 min","title":"Abertura","description":"Roda de conversa"}],` +
	`"differentiation":{"remedial":"Imagens","advanced":"Pesquisa"}}`

func TestSerializers(t *testing.T) {
	for format, s := range DefaultSerializers() {
		t.Run(format, func(t *testing.T) {
			data, err := s.Encode(json.RawMessage(planDoc))
			require.NoError(t, err)

			parsed, err := s.Decode(bytes.NewReader(data))
			require.NoError(t, err)
			assert.JSONEq(t, planDoc, string(parsed))
		})
	}
}

func TestYAMLSerializer_Numbers(t *testing.T) {
	s := NewYAMLSerializer()

	data, err := s.Encode(json.RawMessage(`{"createdAt":1718000000123,"ratio":0.5}`))
	require.NoError(t, err)
	assert.Contains(t, string(data), "createdAt: 1718000000123")
	assert.Contains(t, string(data), "ratio: 0.5")

	parsed, err := s.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.JSONEq(t, `{"createdAt":1718000000123,"ratio":0.5}`, string(parsed))
}

func TestJSONSerializer_RejectsInvalid(t *testing.T) {
	s := NewJSONSerializer()

	_, err := s.Decode(bytes.NewReader([]byte("{oops")))
	assert.Error(t, err)

	_, err = s.Encode(json.RawMessage("{oops"))
	assert.Error(t, err)
}
