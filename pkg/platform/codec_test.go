package platform

import (
	"encoding/json"
	"testing"
)

func TestJSONCodec_PreservesIntegers(t *testing.T) {
	data := []byte(`{"viewId": 9007199254740993, "currentTime": 1.5}`)
	v, err := DefaultCodec.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	m := asPayload(v)
	if id, ok := m.id("viewId"); !ok || id != 9007199254740993 {
		t.Errorf("viewId = %d, %v", id, ok)
	}
	if f, ok := m.num("currentTime"); !ok || f != 1.5 {
		t.Errorf("currentTime = %v, %v", f, ok)
	}
	if _, ok := m["viewId"].(json.Number); !ok {
		t.Errorf("numbers should decode as json.Number, got %T", m["viewId"])
	}
}

func TestJSONCodec_Empty(t *testing.T) {
	for _, in := range []string{"", "  \n"} {
		v, err := DefaultCodec.Decode([]byte(in))
		if err != nil || v != nil {
			t.Errorf("Decode(%q) = %v, %v", in, v, err)
		}
	}
}

func TestJSONCodec_RejectsTrailingData(t *testing.T) {
	if _, err := DefaultCodec.Decode([]byte(`{"a":1} {"b":2}`)); err == nil {
		t.Error("expected error for trailing data")
	}
	if _, err := DefaultCodec.Decode([]byte(`{"a":`)); err == nil {
		t.Error("expected error for truncated data")
	}
}

func TestPayload_Flag(t *testing.T) {
	m := payload{"a": true, "b": "true", "c": "yes", "d": 1}
	for key, want := range map[string]bool{"a": true, "b": true, "c": false, "d": false, "missing": false} {
		if got := m.flag(key); got != want {
			t.Errorf("flag(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestPayload_NotAnObject(t *testing.T) {
	m := asPayload([]any{1, 2})
	if m != nil {
		t.Fatalf("asPayload(slice) = %v", m)
	}
	if _, ok := m.num("x"); ok {
		t.Error("num on nil payload should fail")
	}
	if m.text("x") != "" {
		t.Error("text on nil payload should be empty")
	}
}

func TestRegisterDispatch_ReturnsPrevious(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)
	var ran []string
	if prev := RegisterDispatch(func(cb func()) { ran = append(ran, "first"); cb() }); prev != nil {
		t.Fatal("no dispatch should be registered after reset")
	}

	prev := RegisterDispatch(func(cb func()) { ran = append(ran, "second"); cb() })
	if prev == nil {
		t.Fatal("previous dispatch not returned")
	}
	Dispatch(func() {})
	RegisterDispatch(prev)
	Dispatch(func() {})
	if len(ran) != 2 || ran[0] != "second" || ran[1] != "first" {
		t.Errorf("ran = %v", ran)
	}

	RegisterDispatch(nil)
	if Dispatch(func() {}) {
		t.Error("Dispatch should report false without a dispatch function")
	}
}
