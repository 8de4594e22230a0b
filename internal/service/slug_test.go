package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Consumer protection amendments enter into force": "consumer-protection-amendments-enter-into-force",
		"Tax   Law (2024) -- Update!":                     "tax-law-2024-update",
		"ALL CAPS":                                        "all-caps",
		"---":                                             "",
		"":                                                "",
		"résumé filing":                                   "r-sum-filing",
	}

	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}
