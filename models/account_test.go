package models

import "testing"

func TestAccountExtensionIntStrict(t *testing.T) {
	cases := []struct {
		name        string
		extensions  ExtensionMap
		wantValue   int
		wantPresent bool
		wantErr     bool
	}{
		{"absent key", ExtensionMap{}, 0, false, false},
		{"nil map", nil, 0, false, false},
		{"blank value treated as absent", ExtensionMap{"k": ""}, 0, false, false},
		{"valid integer", ExtensionMap{"k": "42"}, 42, true, false},
		{"malformed value", ExtensionMap{"k": "forty-two"}, 0, true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := Account{Extensions: tc.extensions}
			value, present, err := a.ExtensionIntStrict("k")
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if value != tc.wantValue || present != tc.wantPresent {
				t.Fatalf("got (%d, %v), want (%d, %v)", value, present, tc.wantValue, tc.wantPresent)
			}
		})
	}
}

func TestStringListContains(t *testing.T) {
	tags := StringList{"a", "b"}
	if !tags.Contains("a") || tags.Contains("c") {
		t.Fatalf("Contains misbehaved on %v", tags)
	}
	var empty StringList
	if empty.Contains("a") {
		t.Fatal("empty list must not contain anything")
	}
}
