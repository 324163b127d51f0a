// Package seqio reads and writes FASTA files.
package seqio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/biogo/biogo/alphabet"
	bioseqio "github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/aria-lang/afdist/internal/sequence"
)

// Extensions lists the file suffixes picked up when loading a directory.
var Extensions = []string{".fa", ".fasta", ".fna", ".fas"}

// ReadFASTA parses every record of r. source names the input in errors.
func ReadFASTA(r io.Reader, source string) ([]*sequence.Sequence, error) {
	sc := bioseqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA)))

	var out []*sequence.Sequence
	for sc.Next() {
		ls, ok := sc.Seq().(*linear.Seq)
		if !ok {
			return nil, fmt.Errorf("%s: unexpected record type %T", source, sc.Seq())
		}
		s, err := sequence.WithID(string(alphabet.LettersToBytes(ls.Seq)), ls.ID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		s.Description = ls.Desc
		out = append(out, s)
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("%s: reading fasta: %w", source, err)
	}
	return out, nil
}

// LoadFile reads all records of one FASTA file.
func LoadFile(path string) ([]*sequence.Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadFASTA(f, path)
}

// Load reads FASTA files and directories of FASTA files, in argument
// order. Directory entries are read in name order and filtered by
// Extensions; subdirectories are not descended into.
func Load(paths ...string) ([]*sequence.Sequence, error) {
	var out []*sequence.Sequence
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}

		files := []string{p}
		if info.IsDir() {
			if files, err = fastaFiles(p); err != nil {
				return nil, err
			}
			if len(files) == 0 {
				return nil, fmt.Errorf("%s: no FASTA files (%s)", p, strings.Join(Extensions, ", "))
			}
		}

		for _, f := range files {
			seqs, err := LoadFile(f)
			if err != nil {
				return nil, err
			}
			out = append(out, seqs...)
		}
	}
	return out, nil
}

func fastaFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !hasFASTAExtension(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

func hasFASTAExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// WriteFASTA writes seqs with lines wrapped at width.
func WriteFASTA(w io.Writer, seqs []*sequence.Sequence, width int) error {
	fw := fasta.NewWriter(w, width)
	for _, s := range seqs {
		ls := linear.NewSeq(s.Name(), alphabet.BytesToLetters([]byte(s.Bases)), alphabet.DNA)
		ls.Desc = s.Description
		if _, err := fw.Write(ls); err != nil {
			return fmt.Errorf("writing %s: %w", s.Name(), err)
		}
	}
	return nil
}
