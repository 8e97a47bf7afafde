package ui

import (
	"bytes"
	"testing"
)

func TestProgressOnBufferPrintsOnlyFinalLine(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, "Indexing", 0)
	p.Update(1, 3)
	p.Update(2, 3)

	if buf.Len() != 0 {
		t.Errorf("non-terminal progress wrote %q", buf.String())
	}
	if p.Current() != 2 {
		t.Errorf("Current() = %d", p.Current())
	}

	p.Done("indexed 2 files")
	if buf.String() != "indexed 2 files\n" {
		t.Errorf("output = %q", buf.String())
	}
}
