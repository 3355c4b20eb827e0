// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dag

import (
	"encoding/json"
	"testing"
)

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		text string
		want Identifier
	}{
		{"mAbc", Identifier{Digest: "mAbc"}},
		{"1:mAbc", Identifier{Label: 1, Digest: "mAbc"}},
		{"42:bafy", Identifier{Label: 42, Digest: "bafy"}},
		{"10:z:extra", Identifier{Label: 10, Digest: "z:extra"}},
		// Malformed prefixes degrade to an unlabeled digest.
		{"0:mAbc", Identifier{Digest: "0:mAbc"}},
		{"-3:mAbc", Identifier{Digest: "-3:mAbc"}},
		{"+3:mAbc", Identifier{Digest: "+3:mAbc"}},
		{"x:mAbc", Identifier{Digest: "x:mAbc"}},
		{":mAbc", Identifier{Digest: ":mAbc"}},
		{"99999999999999999999999:m", Identifier{Digest: "99999999999999999999999:m"}},
		{"", Identifier{}},
	}
	for _, test := range tests {
		if got := ParseIdentifier(test.text); got != test.want {
			t.Errorf("ParseIdentifier(%q) = %+v, want %+v", test.text, got, test.want)
		}
	}
}

func TestFormatParseRoundtrip(t *testing.T) {
	digests := []string{"mAbc", "bafkreia", "zQm123", "f0123abcd"}
	labels := []uint64{1, 2, 9, 10, 11, 100, 1 << 40}

	for _, digest := range digests {
		for _, label := range labels {
			text := FormatIdentifier(label, digest)
			got := ParseIdentifier(text)
			if got.Label != label || got.Digest != digest {
				t.Errorf("ParseIdentifier(FormatIdentifier(%d, %q)) = %+v", label, digest, got)
			}
		}
		if got := ParseIdentifier(FormatIdentifier(0, digest)); got.HasLabel() || got.Digest != digest {
			t.Errorf("unlabeled roundtrip of %q = %+v", digest, got)
		}
	}
}

func TestDigestEquality(t *testing.T) {
	labeled := Identifier{Label: 3, Digest: "mAbc"}
	relabeled := Identifier{Label: 7, Digest: "mAbc"}
	bare := Identifier{Digest: "mAbc"}
	other := Identifier{Label: 3, Digest: "mXyz"}

	if !labeled.DigestEquals(relabeled) || !labeled.DigestEquals(bare) {
		t.Error("identifiers with the same digest should be digest-equal")
	}
	if labeled.Equal(relabeled) || labeled.Equal(bare) {
		t.Error("full equality must also compare labels")
	}
	if labeled.DigestEquals(other) {
		t.Error("different digests must not be digest-equal")
	}
	if !DigestEqualsText("3:mAbc", "mAbc") {
		t.Error("DigestEqualsText should ignore labels")
	}
}

func TestIdentifierWithLabel(t *testing.T) {
	id := Identifier{Digest: "mAbc"}.WithLabel(5)
	if id.String() != "5:mAbc" {
		t.Errorf("WithLabel(5) = %q", id.String())
	}
	if id.Unlabeled().String() != "mAbc" {
		t.Errorf("Unlabeled() = %q", id.Unlabeled().String())
	}
	if !(Identifier{}).IsZero() || id.IsZero() {
		t.Error("IsZero mismatch")
	}
}

func TestIdentifierJSONIsText(t *testing.T) {
	type holder struct {
		ID Identifier `json:"id"`
	}
	data, err := json.Marshal(holder{ID: Identifier{Label: 2, Digest: "mAbc"}})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"id":"2:mAbc"}` {
		t.Errorf("json = %s", data)
	}

	var decoded holder
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.ID != (Identifier{Label: 2, Digest: "mAbc"}) {
		t.Errorf("decoded = %+v", decoded.ID)
	}
}
