package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextID(t *testing.T) {
	cases := []struct {
		name   string
		prefix string
		ids    []string
		want   string
	}{
		{"empty", "CL", nil, "CL001"},
		{"sequential", "CL", []string{"CL001", "CL002", "CL003"}, "CL004"},
		{"gaps use max not count", "CL", []string{"CL007", "CL015", "CL008"}, "CL016"},
		{"malformed ids ignored", "CL", []string{"CL007", "CLXYZ", "", "banana"}, "CL008"},
		{"foreign prefixes ignored", "PAY", []string{"PAY002", "RCP009"}, "PAY003"},
		{"case insensitive prefix", "STU", []string{"stu004"}, "STU005"},
		{"beyond three digits", "REQ", []string{"REQ999"}, "REQ1000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NextID(tc.prefix, tc.ids))
		})
	}
}

func TestNextIDIdempotentWithoutAppend(t *testing.T) {
	ids := []string{"CL007", "CL015"}
	first := NextID("CL", ids)
	second := NextID("CL", ids)
	assert.Equal(t, first, second)
}
