package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLinkIDs(t *testing.T) {
	cases := []struct {
		raw  string
		want []int64
	}{
		{"", nil},
		{"1", []int64{1}},
		{"1, 3, 5", []int64{1, 3, 5}},
		{" 2 ,, 4 ,", []int64{2, 4}},
		{"1,abc,3", nil},
		{"1.5", nil},
		{"-2, 7", []int64{-2, 7}},
		{" , ", nil},
		{"1, 99999999999999999999", []int64{1}},
		{"-99999999999999999999,2", []int64{2}},
		{"99999999999999999999, x", nil},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, parseLinkIDs(tc.raw), "raw=%q", tc.raw)
	}
}

func TestFormError(t *testing.T) {
	err := &FormError{Field: "name"}
	assert.Equal(t, `form field "name" is required`, err.Error())

	cause := errors.New("bad number")
	err = &FormError{Field: "citations", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "citations")
}
