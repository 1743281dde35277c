package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tradein/pkg/logx"
)

func TestSensitiveDataMaskerMask(t *testing.T) {
	rq := require.New(t)

	masker := logx.NewSensitiveDataMasker()

	testCases := []struct {
		name   string
		input  []byte
		output []byte
	}{
		{
			name:   "Password",
			input:  []byte(`{"hello":"world","password":"abc123"}`),
			output: []byte(`{"hello":"world","password":"[MASKED]"}`),
		},
		{
			name:   "Password capital letter",
			input:  []byte(`{"hello":"world","Password":"abc123"}`),
			output: []byte(`{"hello":"world","Password":"[MASKED]"}`),
		},
		{
			name:   "Contact fields",
			input:  []byte(`{"email": "john@doe.com", "phone": "+441234567890", "contactChannel": "EMAIL"}`),
			output: []byte(`{"email": "[MASKED]", "phone": "[MASKED]", "contactChannel": "EMAIL"}`),
		},
		{
			name:   "Bank details",
			input:  []byte(`{"accountHolder":"John Doe","sortCode":"123456","accountNumber":"12345678","payoutType":"BANK"}`),
			output: []byte(`{"accountHolder":"[MASKED]","sortCode":"[MASKED]","accountNumber":"[MASKED]","payoutType":"BANK"}`),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			output := masker.Mask(tc.input)

			rq.Equal(tc.output, output, "%s vs %s", tc.output, output)
		})
	}
}
