package intent

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/glbpick/internal/model"
	appErr "github.com/xxxsen/glbpick/internal/pkg/errors"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want model.Intent
	}{
		{"bare", `{"tag": "Chair", "random": false}`, model.Intent{Tag: "Chair"}},
		{"filler", `Sure! Here is the JSON: {"tag":"Chair","random":true} Let me know.`, model.Intent{Tag: "Chair", Random: true}},
		{"default random", `{"tag": "Couch"}`, model.Intent{Tag: "Couch"}},
		{"non bool random", `{"tag": "Couch", "random": "yes"}`, model.Intent{Tag: "Couch"}},
		{"trimmed tag", `{"tag": "  Lamp "}`, model.Intent{Tag: "Lamp"}},
		{"code fence", "```json\n{\"tag\": \"Chair\", \"random\": true}\n```", model.Intent{Tag: "Chair", Random: true}},
		{"nested object", `{"tag": "Chair", "meta": {"score": 1}, "random": true} {"tag": "Other"}`, model.Intent{Tag: "Chair", Random: true}},
		{"brace in string", `{"tag": "Ch}air", "random": false}`, model.Intent{Tag: "Ch}air"}},
		{"escaped quote", `{"tag": "a\"}b", "random": true}`, model.Intent{Tag: `a"}b`, Random: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.raw)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParseFailures(t *testing.T) {
	cases := map[string]string{
		"no brace":       "I think you want a chair.",
		"empty":          "",
		"unbalanced":     `{"tag": "Chair"`,
		"invalid json":   `{tag: Chair}`,
		"missing tag":    `{"random": true}`,
		"blank tag":      `{"tag": "  "}`,
		"non string tag": `{"tag": 3}`,
		"earlier group":  `Options {a, b} then {"tag": "Chair"}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(raw)
			require.Error(t, err)
			require.ErrorIs(t, err, appErr.ErrParse)
		})
	}
}

func TestFirstObject(t *testing.T) {
	obj, ok := FirstObject(`prefix {"a": {"b": "}"}} suffix {"c": 1}`)
	require.True(t, ok)
	require.Equal(t, `{"a": {"b": "}"}}`, obj)

	_, ok = FirstObject("no object")
	require.False(t, ok)
}
