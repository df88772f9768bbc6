package main

import (
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuranCmdValidate(t *testing.T) {
	assert.NoError(t, (&QuranCmd{Concurrency: 4}).Validate())
	assert.Error(t, (&QuranCmd{Concurrency: 0}).Validate())
	assert.Error(t, (&QuranCmd{Concurrency: -1}).Validate())
}

func TestHadithCmdValidate(t *testing.T) {
	assert.NoError(t, (&HadithCmd{Collection: "bukhari", From: 1, To: 10, Concurrency: 2}).Validate())
	assert.Error(t, (&HadithCmd{From: 5, To: 4, Concurrency: 2}).Validate())
	assert.Error(t, (&HadithCmd{From: 0, To: 4, Concurrency: 2}).Validate())
	assert.Error(t, (&HadithCmd{From: 1, To: 4, Concurrency: 0}).Validate())
}

func TestParseRejectsZeroConcurrency(t *testing.T) {
	var cli struct {
		Quran  QuranCmd  `cmd:""`
		Hadith HadithCmd `cmd:""`
	}
	parser, err := kong.New(&cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"quran", "--concurrency", "0"})
	assert.Error(t, err)

	_, err = parser.Parse([]string{"hadith", "--collection", "bukhari", "--to", "3", "-j", "0"})
	assert.Error(t, err)

	_, err = parser.Parse([]string{"quran"})
	assert.NoError(t, err)
}
