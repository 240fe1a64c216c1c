package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-hijri/internal/config"
	"github.com/tartampluch/go-hijri/internal/engine"
	"github.com/tartampluch/go-hijri/internal/store"
)

func TestPrintMonth_Explicit(t *testing.T) {
	var out bytes.Buffer

	err := printMonth(context.Background(), printOptions{Year: 1445, Month: 9}, &out)
	require.NoError(t, err)

	lines := strings.Split(out.String(), "\n")
	assert.Contains(t, lines[0], "Ramadan 1445")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[1]), "Su"))
	assert.Contains(t, out.String(), " 1 Ramadan")
}

func TestPrintMonth_CustomOccasions(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), config.DBFileName)

	st, err := store.Open(ctx, path)
	require.NoError(t, err)
	_, err = st.AddOccasion(ctx, engine.Occasion{Month: 8, Day: 17, Label: "Badr"})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	var out bytes.Buffer
	require.NoError(t, printMonth(ctx, printOptions{Year: 1445, Month: 9, DBPath: path}, &out))

	assert.Contains(t, out.String(), "17 Badr")
}

func TestPrintMonth_InvalidMonth(t *testing.T) {
	for _, month := range []int{-1, 13} {
		var out bytes.Buffer
		err := printMonth(context.Background(), printOptions{Year: 1445, Month: month}, &out)
		assert.EqualError(t, err, config.ErrInvalidMonth)
		assert.Empty(t, out.String())
	}
}

func TestOpenStore_NoPath(t *testing.T) {
	assert.Nil(t, openStore(context.Background(), ""))
}

func TestAppFilePath(t *testing.T) {
	base := t.TempDir()

	path, err := appFilePath(func() (string, error) { return base, nil }, config.ErrConfigDir, config.DBFileName)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, config.AppID, config.DBFileName), path)
	assert.DirExists(t, filepath.Join(base, config.AppID))

	_, err = appFilePath(func() (string, error) { return "", errors.New("no home") }, config.ErrConfigDir, config.DBFileName)
	assert.ErrorContains(t, err, config.ErrConfigDir)
}
