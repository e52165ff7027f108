package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvassist/internal/domain"
)

func TestRootCommandMetadata(t *testing.T) {
	assert.Equal(t, "cvassist", rootCmd.Use)
	assert.True(t, rootCmd.SilenceUsage)
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
}

func TestSubcommandsRegistered(t *testing.T) {
	want := []string{"ingest", "list", "delete", "ask", "chat"}
	have := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		have[strings.Fields(c.Use)[0]] = true
	}
	for _, name := range want {
		assert.True(t, have[name], "missing subcommand %s", name)
	}
}

func TestDeleteRequiresExactlyOneArg(t *testing.T) {
	require.Error(t, deleteCmd.Args(deleteCmd, nil))
	require.Error(t, deleteCmd.Args(deleteCmd, []string{"a", "b"}))
	require.NoError(t, deleteCmd.Args(deleteCmd, []string{"alice"}))
}

func TestAskRequiresAQuestion(t *testing.T) {
	require.Error(t, askCmd.Args(askCmd, nil))
	require.NoError(t, askCmd.Args(askCmd, []string{"who", "knows", "Python?"}))
	assert.NotNil(t, askCmd.Flags().Lookup("no-sources"))
}

func TestIngestAcceptsOptionalDir(t *testing.T) {
	require.NoError(t, ingestCmd.Args(ingestCmd, nil))
	require.NoError(t, ingestCmd.Args(ingestCmd, []string{"cvs"}))
	require.Error(t, ingestCmd.Args(ingestCmd, []string{"a", "b"}))
}

func TestRenderSourcesShowsRankAndProvenance(t *testing.T) {
	out := renderSources([]domain.RetrievalMatch{
		{Payload: domain.ChunkPayload{Candidate: "alice_smith", Index: 0, TotalChunks: 2, Text: "Python, SQL"}, Score: 0.91},
		{Payload: domain.ChunkPayload{Candidate: "bob_jones", Index: 1, TotalChunks: 3, Text: "Java"}, Score: 0.44},
	})

	assert.Contains(t, out, "2 retrieved")
	assert.Contains(t, out, "[1] alice_smith")
	assert.Contains(t, out, "chunk 1/2")
	assert.Contains(t, out, "score 0.910")
	assert.Contains(t, out, "[2] bob_jones")
	assert.Contains(t, out, "Python, SQL")
}
