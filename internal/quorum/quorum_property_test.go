package quorum

import "testing"

// TestQuorum_Property_MajorityIntersects checks that for every cluster size
// up to 25, two subsets of size Majority(n) must share a member.
func TestQuorum_Property_MajorityIntersects(t *testing.T) {
	for n := 1; n <= 25; n++ {
		m := Majority(n)
		if m > n {
			t.Errorf("Majority(%d) = %d exceeds peer count", n, m)
		}
		if !Intersects(n, m) {
			t.Errorf("Majority(%d) = %d does not guarantee intersection", n, m)
		}
		// One fewer than majority never guarantees intersection: two
		// disjoint sets of size m-1 always fit in n peers.
		if Intersects(n, m-1) {
			t.Errorf("Intersects(%d, %d) claims intersection for a splittable quorum", n, m-1)
		}
	}
}

// TestQuorum_Property_IntersectionWitness constructs two concrete worst-case
// quorums (first m peers, last m peers) and checks they overlap.
func TestQuorum_Property_IntersectionWitness(t *testing.T) {
	for n := 1; n <= 25; n++ {
		m := Majority(n)

		first := make(map[int]bool, m)
		for i := 0; i < m; i++ {
			first[i] = true
		}

		overlap := false
		for i := n - m; i < n; i++ {
			if first[i] {
				overlap = true
				break
			}
		}
		if !overlap {
			t.Errorf("n=%d m=%d: first-m and last-m quorums do not overlap", n, m)
		}
	}
}
