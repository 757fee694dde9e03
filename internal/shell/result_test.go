package shell

import (
	"encoding/json"
	"testing"
)

func TestResultKind(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		want Kind
	}{
		{"empty", Empty(), KindInfo},
		{"clear", Clear(), KindInfo},
		{"single", Single(KindOutput, "x"), KindOutput},
		{"first line wins", Lines(Line{KindSuccess, "a"}, Line{KindOutput, "b"}), KindSuccess},
		{"any error", Lines(Line{KindOutput, "a"}, Line{KindError, "b"}), KindError},
	}
	for _, tt := range tests {
		if got := tt.res.Kind(); got != tt.want {
			t.Fatalf("%s: kind %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestClearIsNotText(t *testing.T) {
	if !Clear().IsClear() || Clear().IsEmpty() {
		t.Fatalf("clear variant misreported")
	}
	for _, text := range []string{"CLEAR", "CLEAR_TERMINAL"} {
		if Single(KindSuccess, text).IsClear() {
			t.Fatalf("%q text treated as clear", text)
		}
	}
}

func TestLinesCopies(t *testing.T) {
	src := []Line{{KindOutput, "a"}}
	res := Lines(src...)
	src[0].Text = "changed"
	got := res.Lines()
	got[0].Text = "also changed"
	if res.Text() != "a" {
		t.Fatalf("result aliased caller slices: %q", res.Text())
	}
}

func TestBlockSplitsLines(t *testing.T) {
	res := block(KindInfo, "a\n\nb")
	if res.Len() != 3 || res.Lines()[1].Text != "" {
		t.Fatalf("unexpected lines %#v", res.Lines())
	}
}

func TestResultJSON(t *testing.T) {
	tests := []struct {
		res  Result
		want string
	}{
		{Clear(), `{"type":"clear"}`},
		{Empty(), `{"type":"lines","lines":[]}`},
		{Single(KindError, "boom"), `{"type":"lines","lines":[{"kind":"error","text":"boom"}]}`},
	}
	for _, tt := range tests {
		data, err := json.Marshal(tt.res)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(data) != tt.want {
			t.Fatalf("got %s, want %s", data, tt.want)
		}
		var back Result
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back.IsClear() != tt.res.IsClear() || back.Text() != tt.res.Text() {
			t.Fatalf("decoded %s differently", data)
		}
	}
}

func TestResultJSONRejects(t *testing.T) {
	for _, in := range []string{
		`{"type":"bogus"}`,
		`{"type":"lines","lines":[{"kind":"loud","text":"x"}]}`,
		`[]`,
	} {
		var r Result
		if err := json.Unmarshal([]byte(in), &r); err == nil {
			t.Fatalf("expected error for %s", in)
		}
	}
}
