package seqio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-lang/afdist/internal/sequence"
)

const twoRecords = `>s1 first record
ACGTACGT
ACGT
>s2
acgtnacg
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadFASTA(t *testing.T) {
	seqs, err := ReadFASTA(strings.NewReader(">s1 first record\nACGTACGT\nACGT\n>s2\nttgca\n"), "test")
	require.NoError(t, err)
	require.Len(t, seqs, 2)

	assert.Equal(t, "s1", seqs[0].ID)
	assert.Equal(t, "first record", seqs[0].Description)
	assert.Equal(t, "ACGTACGTACGT", seqs[0].Bases)
	assert.Equal(t, "s2", seqs[1].ID)
	assert.Equal(t, "TTGCA", seqs[1].Bases)
}

func TestReadFASTAInvalidSymbol(t *testing.T) {
	_, err := ReadFASTA(strings.NewReader(twoRecords), "in.fa")
	require.Error(t, err)

	var symErr *sequence.InvalidSymbolError
	require.ErrorAs(t, err, &symErr)
	assert.Equal(t, "s2", symErr.SequenceID)
	assert.Equal(t, 4, symErr.Position)
	assert.Equal(t, byte('N'), symErr.Found)
	assert.Contains(t, err.Error(), "in.fa")
}

func TestLoadFilesAndDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.fasta", ">b\nCCCCGGGG\n")
	writeFile(t, dir, "a.fa", ">a1\nACGT\n>a2\nTTTT\n")
	writeFile(t, dir, "notes.txt", "not a fasta file")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	writeFile(t, filepath.Join(dir, "nested"), "c.fa", ">c\nGGGG\n")

	extra := writeFile(t, t.TempDir(), "extra.fna", ">x\nAAAA\n")

	seqs, err := Load(dir, extra)
	require.NoError(t, err)

	ids := make([]string, len(seqs))
	for i, s := range seqs {
		ids[i] = s.ID
	}
	assert.Equal(t, []string{"a1", "a2", "b", "x"}, ids)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.fa"))
	assert.Error(t, err)

	empty := t.TempDir()
	writeFile(t, empty, "readme.md", "#")
	_, err = Load(empty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no FASTA files")
}

func TestWriteFASTARoundTrip(t *testing.T) {
	s1, err := sequence.WithID("ACGTACGTAC", "r1")
	require.NoError(t, err)
	s2, err := sequence.WithID("GGGCCC", "r2")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteFASTA(&buf, []*sequence.Sequence{s1, s2}, 4))
	assert.Contains(t, buf.String(), ">r1\n")

	back, err := ReadFASTA(&buf, "roundtrip")
	require.NoError(t, err)
	require.Len(t, back, 2)
	assert.Equal(t, s1.Bases, back[0].Bases)
	assert.Equal(t, s2.Bases, back[1].Bases)
}
