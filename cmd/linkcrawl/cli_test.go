package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/linkcrawl/cmd/linkcrawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	for _, cmd := range []string{"crawl", "list"} {
		assert.Contains(t, stdout.String(), cmd)
	}
}

func TestCLI_CrawlFlags(t *testing.T) {
	t.Parallel()

	t.Run("parses flags", func(t *testing.T) {
		t.Parallel()

		cli := &main.CLI{}
		parser, err := kong.New(cli, kong.Exit(func(int) {}))
		require.NoError(t, err)

		_, err = parser.Parse([]string{"crawl", "--url", "https://a.test/", "--restrict-domain", "--seconds", "30", "-w", "4", "--max-pages", "100", "--timeout", "2s"})
		require.NoError(t, err)

		assert.Equal(t, "https://a.test/", cli.Crawl.URL)
		assert.True(t, cli.Crawl.RestrictDomain)
		assert.Equal(t, 30, cli.Crawl.Seconds)
		assert.Equal(t, 4, cli.Crawl.Workers)
		assert.Equal(t, 100, cli.Crawl.MaxPages)
		assert.Equal(t, "2s", cli.Crawl.Timeout.String())
		assert.False(t, cli.Crawl.Render)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		cli := &main.CLI{}
		parser, err := kong.New(cli, kong.Exit(func(int) {}))
		require.NoError(t, err)

		_, err = parser.Parse([]string{"crawl", "--url", "https://a.test/"})
		require.NoError(t, err)

		assert.False(t, cli.Crawl.RestrictDomain)
		assert.Zero(t, cli.Crawl.Seconds)
		assert.Equal(t, 1, cli.Crawl.Workers)
		assert.Zero(t, cli.Crawl.MaxPages)
		assert.Equal(t, "10s", cli.Crawl.Timeout.String())
	})

	t.Run("requires url", func(t *testing.T) {
		t.Parallel()

		cli := &main.CLI{}
		parser, err := kong.New(cli, kong.Exit(func(int) {}))
		require.NoError(t, err)

		_, err = parser.Parse([]string{"crawl"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--url")
	})
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "crawl")
	assert.Contains(t, stdout.String(), "list")
}

func TestMain_Run_NoArgsReturnsError(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	err := m.Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}
