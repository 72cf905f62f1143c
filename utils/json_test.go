package utils

import "testing"

func TestJSONHelpersRoundTrip(t *testing.T) {
	type payload struct {
		Id    string `json:"id"`
		Count int    `json:"count"`
	}
	in := payload{Id: "u1", Count: 3}

	s, err := MarshalToJSON(in)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var out payload
	if err := UnmarshalFromJSON([]byte(s), &out); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: %+v != %+v", out, in)
	}
}
