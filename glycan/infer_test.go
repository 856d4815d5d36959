package glycan

import "testing"

func TestInferParentAtomTrunk(t *testing.T) {
	cases := []struct {
		parent, child string
		want          string
	}{
		{"MAN", "MAN", "O2"},
		{"MAN", "BMA", "O2"},
		{"BMA", "BMA", "O2"},
		{"man", "bma", "O2"}, // class membership is case-insensitive
		{"NAG", "NAG", "O4"},
		{"NAG", "MAN", "O4"},
		{"MAN", "NAG", "O4"},
		{"FUC", "GAL", "O4"},
	}
	for _, tc := range cases {
		if got := InferParentAtom(tc.parent, tc.child, true, 0); got != tc.want {
			t.Errorf("InferParentAtom(%s, %s, trunk) = %s, want %s", tc.parent, tc.child, got, tc.want)
		}
	}
}

func TestInferParentAtomBranch(t *testing.T) {
	// The branch sequence is fixed regardless of parent class.
	want := []string{"O3", "O6", "O4", "O2", "O4", "O2", "O4"}
	for _, parent := range []string{"MAN", "NAG"} {
		for i, atom := range want {
			ordinal := i + 1
			if got := InferParentAtom(parent, "NAG", false, ordinal); got != atom {
				t.Errorf("InferParentAtom(%s, NAG, branch %d) = %s, want %s", parent, ordinal, got, atom)
			}
		}
	}
}

func TestInferParentAtomClampsOrdinal(t *testing.T) {
	if got := InferParentAtom("NAG", "NAG", false, 0); got != "O3" {
		t.Errorf("ordinal 0 = %s, want O3", got)
	}
}
