package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromName(t *testing.T) {
	cases := map[string]string{
		"Visiting Cards":            "visiting-cards",
		"  A5 Flyers (Glossy) ":     "a5-flyers-glossy",
		"300 GSM / Matte":           "300-gsm-matte",
		"---":                       "item",
		"":                          "item",
		"Already-Slugged":           "already-slugged",
		"Büro Kartvizit":            "b-ro-kartvizit",
		"UPPER lower 123":           "upper-lower-123",
		"trailing punctuation!!!":   "trailing-punctuation",
		"multi    space   collapse": "multi-space-collapse",
	}
	for in, want := range cases {
		assert.Equal(t, want, FromName(in), "FromName(%q)", in)
	}
}
