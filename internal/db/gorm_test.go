package db_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/habiliai/signalrank/internal/db"
	"github.com/habiliai/signalrank/internal/mylog"
)

type note struct {
	ID   uint
	Text string
}

func captureStdout(t *testing.T, fn func()) string {
	r, w, err := os.Pipe()
	require.NoError(t, err)

	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()
	require.NoError(t, w.Close())

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestOpenDBKeepsStdoutClean(t *testing.T) {
	var logs bytes.Buffer
	logger := mylog.NewLoggerWithWriter(&logs, "debug", "json")

	gormDB, err := db.OpenDB(db.MemoryDSN, logger)
	require.NoError(t, err)
	defer db.CloseDB(gormDB)
	require.NoError(t, db.AutoMigrate(context.Background(), gormDB, &note{}))

	out := captureStdout(t, func() {
		var n note
		err := gormDB.Take(&n, "text = ?", "missing").Error
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
	assert.Empty(t, out)
	assert.NotContains(t, logs.String(), "record not found")

	require.Error(t, gormDB.Exec("SELECT * FROM no_such_table").Error)
	assert.Contains(t, logs.String(), "no_such_table")
}
