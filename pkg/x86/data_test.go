// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package x86

import "testing"

func TestUnionIdempotentAndCommutative(t *testing.T) {
	a := NewX86Data()
	AddCpuid(a, Cpuid{Function: 1, Eax: 0xF0})
	b := NewX86Data()
	AddCpuid(b, Cpuid{Function: 1, Ebx: 0x0F})

	selfUnion := Union(a, a)
	if !IsSubset(selfUnion, a) || !IsSubset(a, selfUnion) {
		t.Fatalf("union(A, A) must equal A")
	}

	ab := Union(a, b)
	ba := Union(b, a)
	if !IsSubset(ab, ba) || !IsSubset(ba, ab) {
		t.Fatalf("union(A, B) must equal union(B, A)")
	}
}

func TestSubtractNeutralizesUnion(t *testing.T) {
	a := NewX86Data()
	AddCpuid(a, Cpuid{Function: 1, Eax: 0x1})
	b := NewX86Data()
	AddCpuid(b, Cpuid{Function: 1, Eax: 0x2})

	union := Union(a, b)
	result := Diff(union, b)
	if !IsSubset(a, result) {
		t.Fatalf("subtract(union(A,B), B) must be a subset of A, got %+v vs %+v", result, a)
	}
}

func TestIntersectMonotone(t *testing.T) {
	a := NewX86Data()
	AddCpuid(a, Cpuid{Function: 1, Eax: 0xFF})
	b := NewX86Data()
	AddCpuid(b, Cpuid{Function: 1, Eax: 0x0F})

	inter := Intersect(a, b)
	if !IsSubset(a, inter) {
		t.Fatalf("is_subset(A, intersect(A,B)) must hold")
	}
}

func TestZeroLeafTreatedAsAbsent(t *testing.T) {
	d := NewX86Data()
	AddCpuid(d, Cpuid{Function: 3}) // all-zero leaf
	if _, ok := Lookup(d, 3); ok {
		t.Fatalf("an all-zero leaf must be treated as absent")
	}
	if len(Iter(d)) != 0 {
		t.Fatalf("iter must skip zero leaves")
	}
}

func TestIterOrderBasicThenExtended(t *testing.T) {
	d := NewX86Data()
	AddCpuid(d, Cpuid{Function: ExtendedBase + 1, Eax: 1})
	AddCpuid(d, Cpuid{Function: 2, Eax: 1})
	AddCpuid(d, Cpuid{Function: 0, Eax: 1})

	got := Iter(d)
	if len(got) != 3 {
		t.Fatalf("expected 3 leaves, got %d", len(got))
	}
	if got[0].Function != 0 || got[1].Function != 2 || got[2].Function != ExtendedBase+1 {
		t.Fatalf("expected basic-ascending-then-extended-ascending order, got %+v", got)
	}
}

func TestSubtractAsymmetricOnLength(t *testing.T) {
	dst := NewX86Data()
	AddCpuid(dst, Cpuid{Function: 0, Eax: 1})

	src := NewX86Data()
	AddCpuid(src, Cpuid{Function: 0, Eax: 1})
	AddCpuid(src, Cpuid{Function: 1, Eax: 1}) // beyond dst's length

	Subtract(dst, src)
	if !IsEmpty(dst) {
		t.Fatalf("overlap leaf must be subtracted")
	}
	// src's tail leaf must never have been consulted to extend dst.
	if len(dst.Basic) != 1 {
		t.Fatalf("subtract must not grow dst past its own length, got len=%d", len(dst.Basic))
	}
}

func TestIsSubsetMaskedPerLeaf(t *testing.T) {
	whole := NewX86Data()
	AddCpuid(whole, Cpuid{Function: 1, Eax: 0xFF})
	part := NewX86Data()
	AddCpuid(part, Cpuid{Function: 1, Eax: 0x0F})
	if !IsSubset(whole, part) {
		t.Fatalf("0x0F must be a subset of 0xFF")
	}

	part2 := NewX86Data()
	AddCpuid(part2, Cpuid{Function: 1, Eax: 0xF0FF})
	if IsSubset(whole, part2) {
		t.Fatalf("0xF0FF must not be a subset of 0xFF")
	}
}

func TestCopyIsDeep(t *testing.T) {
	a := NewX86Data()
	AddCpuid(a, Cpuid{Function: 1, Eax: 1})
	b := Copy(a)
	AddCpuid(b, Cpuid{Function: 1, Eax: 2})

	if av, _ := Lookup(a, 1); av.Eax != 1 {
		t.Fatalf("mutating the copy must not affect the original")
	}
}
