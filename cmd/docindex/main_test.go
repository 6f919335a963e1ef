package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestIngestCommandFlags(t *testing.T) {
	app := &cli.App{
		Name: "docindex",
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Required: true,
					},
					&cli.StringFlag{
						Name:     "key",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "index-url",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Value: 10,
					},
				},
			},
		},
	}

	t.Run("db is required", func(t *testing.T) {
		err := app.Run([]string{"docindex", "ingest", "--key", "a.pdf", "--index-url", "http://x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db")
	})

	t.Run("key is required", func(t *testing.T) {
		err := app.Run([]string{"docindex", "ingest", "--db", "/tmp/test", "--index-url", "http://x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "key")
	})

	t.Run("index-url is required", func(t *testing.T) {
		err := app.Run([]string{"docindex", "ingest", "--db", "/tmp/test", "--key", "a.pdf"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "index-url")
	})

	t.Run("batch-size has default value of 10", func(t *testing.T) {
		cmd := app.Commands[0]
		var batchFlag *cli.IntFlag
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.IntFlag); ok && f.Name == "batch-size" {
				batchFlag = f
				break
			}
		}
		require.NotNil(t, batchFlag)
		assert.Equal(t, 10, batchFlag.Value)
	})
}

func TestSetupLogger(t *testing.T) {
	newApp := func() *cli.App {
		return &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				return nil
			},
		}
	}

	t.Run("valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "DEBUG", "WaRn"} {
			t.Run(level, func(t *testing.T) {
				err := newApp().Run([]string{"test", "--log-level", level})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := newApp().Run([]string{"test", "--log-level", "loud"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("default log level is info", func(t *testing.T) {
		err := newApp().Run([]string{"test"})
		require.NoError(t, err)
	})
}
