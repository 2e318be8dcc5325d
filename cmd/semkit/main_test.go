package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleMRS = `[ TOP: h0 INDEX: e2 [ e TENSE: pres ]
  RELS: < [ _every_q<0:5> LBL: h4 ARG0: x3 [ x NUM: sg ] RSTR: h5 BODY: h6 ]
          [ _dog_n_1<6:9> LBL: h7 ARG0: x3 ]
          [ _bark_v_1<10:16> LBL: h1 ARG0: e2 ARG1: x3 ] >
  HCONS: < h0 qeq h1 h5 qeq h7 > ]`

func TestStem(t *testing.T) {
	for in, want := range map[string]string{
		"a.mrs":      "a",
		"a.mrs.json": "a",
		"a":          "a",
		".hidden":    ".hidden",
	} {
		if got := stem(in); got != want {
			t.Errorf("stem(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a.mrs", "b.mrs", "sub/c.mrs", "sub/d.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := expand([]string{filepath.Join(dir, "**", "*.mrs")})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 matches, got %v", files)
	}

	literal := filepath.Join(dir, "sub", "d.txt")
	files, err = expand([]string{literal, literal})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0] != literal {
		t.Fatalf("literal path not deduplicated: %v", files)
	}
}

func TestFormats(t *testing.T) {
	for name, f := range formats {
		if f.extension == "" {
			t.Errorf("format %s has no output extension", name)
		}
		if f.decode == nil && f.encode == nil {
			t.Errorf("format %s is neither readable nor writable", name)
		}
		if f.decode == nil && f.check == nil && f.encode != nil && name != "simpledmrs" {
			t.Errorf("format %s cannot be validated", name)
		}
	}
	for _, name := range []string{"simplemrs", "indexedmrs", "mrsjson", "dmrsjson", "dmrx"} {
		if formats[name].decode == nil {
			t.Errorf("format %s should be a conversion source", name)
		}
	}
	for _, name := range []string{"edsjson", "edsnative"} {
		if formats[name].decode != nil {
			t.Errorf("bare-dependency format %s must stay a one-way target", name)
		}
	}
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "sentence.mrs")
	if err := os.WriteFile(in, []byte(sampleMRS), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out")

	opts := encodeOpts{properties: true}
	err := convertFile(in, formats["simplemrs"], formats["dmrsjson"], nil, opts, out, true)
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(out, "sentence.dmrs.json"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"_bark_v_1", `"rargname":"ARG1"`, `"post":"NEQ"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("output missing %q:\n%s", want, data)
		}
	}
}

func TestConvertFile_EDS(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "sentence.mrs")
	if err := os.WriteFile(in, []byte(sampleMRS), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out")

	opts := encodeOpts{properties: true}
	err := convertFile(in, formats["simplemrs"], formats["edsnative"], nil, opts, out, false)
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(out, "sentence.eds"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "BV x3") {
		t.Errorf("quantifier edge missing from output:\n%s", data)
	}
}
