package main

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestParseCoords(t *testing.T) {
	actual, err := parseCoords(strings.NewReader("6.9558,50.941691666666664\n\n 9.188316666666667 , 45.46555 \n"))
	assert.NoError(t, err)
	assert.Equal(t, [][]float64{
		{6.9558, 50.941691666666664},
		{9.188316666666667, 45.46555},
	}, actual)

	_, err = parseCoords(strings.NewReader("6.9558 50.94"))
	assert.EqualError(t, err, `1: "6.9558 50.94": expected x,y`)

	_, err = parseCoords(strings.NewReader("1,2\nx,2"))
	assert.Error(t, err)
}
