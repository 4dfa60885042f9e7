package sqldata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sqldata/imagestore"
)

func TestEscapeStringQuoteDoubling(t *testing.T) {
	got := escaper{}.value("O'Brien")
	if got != "'O''Brien'" {
		t.Fatalf("got %q", got)
	}
}

func TestEscapeStringRoundTrip(t *testing.T) {
	// Quote doubling is its own inverse: unwrapping and collapsing the
	// doubled quotes yields the original string.
	for _, input := range []string{"", "plain", "it's", "''", "a'b'c"} {
		escaped := escaper{}.value(input)
		if !strings.HasPrefix(escaped, "'") || !strings.HasSuffix(escaped, "'") {
			t.Fatalf("escaped %q not quoted: %q", input, escaped)
		}
		inner := escaped[1 : len(escaped)-1]
		back := strings.ReplaceAll(inner, "''", "'")
		if back != input {
			t.Fatalf("round trip of %q gave %q", input, back)
		}
	}
}

func TestEscapeIdentifierRoundTrip(t *testing.T) {
	for _, input := range []string{"people", `tab"le`, `""`} {
		escaped := EscapeIdentifier(input)
		if !strings.HasPrefix(escaped, `"`) || !strings.HasSuffix(escaped, `"`) {
			t.Fatalf("escaped %q not quoted: %q", input, escaped)
		}
		inner := escaped[1 : len(escaped)-1]
		back := strings.ReplaceAll(inner, `""`, `"`)
		if back != input {
			t.Fatalf("round trip of %q gave %q", input, back)
		}
	}
}

func TestEscapeNumbersAndBools(t *testing.T) {
	e := escaper{}
	cases := []struct {
		in   any
		want string
	}{
		{42, "42"},
		{int64(-7), "-7"},
		{uint8(255), "255"},
		{1.5, "1.5"},
		{true, "1"},
		{false, "0"},
	}
	for _, c := range cases {
		if got := e.value(c.in); got != c.want {
			t.Fatalf("value(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestEscapeBlobHex(t *testing.T) {
	got := escaper{}.value([]byte{0x00, 0xAB, 0xFF})
	if got != "X'00ABFF'" {
		t.Fatalf("got %q", got)
	}
}

func TestEscapeTimestampUTC(t *testing.T) {
	ts := time.Date(2023, 5, 1, 12, 30, 45, 999, time.FixedZone("plus2", 2*3600))
	got := escaper{}.value(ts)
	if got != "'2023-05-01 10:30:45'" {
		t.Fatalf("got %q", got)
	}
}

func TestEscapeNilAndUnsupported(t *testing.T) {
	e := escaper{}
	if got := e.value(nil); got != "NULL" {
		t.Fatalf("nil: got %q", got)
	}
	// Unsupported types coerce to NULL silently; that is the contract.
	if got := e.value(struct{ X int }{1}); got != "NULL" {
		t.Fatalf("struct: got %q", got)
	}
}

func TestEscapeImagePersistsToStore(t *testing.T) {
	store := imagestore.New(t.TempDir())
	e := escaper{store: store}
	payload := []byte("fake image bytes")

	got := e.value(Image{Data: payload})
	if !strings.HasPrefix(got, "'") || !strings.HasSuffix(got, "'") {
		t.Fatalf("image escape not a string literal: %q", got)
	}
	id := got[1 : len(got)-1]
	data, err := store.Load(id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(data) != string(payload) {
		t.Fatalf("stored payload %q, want %q", data, payload)
	}
}

func TestEscapeImageWithoutStoreBindsNull(t *testing.T) {
	if got := (escaper{}).value(Image{Data: []byte("x")}); got != "NULL" {
		t.Fatalf("got %q", got)
	}
}

func TestImageStoreFilesLandInSubdir(t *testing.T) {
	root := t.TempDir()
	store := imagestore.New(root)
	id, err := store.Save([]byte("payload"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, imagestore.Subdir, id)); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
}
