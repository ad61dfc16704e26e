// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package x86

// ExtendedBase is the CPUID leaf function at which the extended leaf
// range begins. Basic leaves occupy [0, ExtendedBase); extended leaves
// occupy [ExtendedBase, ...).
const ExtendedBase uint32 = 0x80000000

// Cpuid is one CPUID leaf: the four output registers for a given input
// function.
type Cpuid struct {
	Function uint32 `json:"function"`
	Eax      uint32 `json:"eax"`
	Ebx      uint32 `json:"ebx"`
	Ecx      uint32 `json:"ecx"`
	Edx      uint32 `json:"edx"`
}

func (c Cpuid) isEmpty() bool {
	return c.Eax == 0 && c.Ebx == 0 && c.Ecx == 0 && c.Edx == 0
}

func (c Cpuid) and(o Cpuid) Cpuid {
	return Cpuid{Function: c.Function, Eax: c.Eax & o.Eax, Ebx: c.Ebx & o.Ebx, Ecx: c.Ecx & o.Ecx, Edx: c.Edx & o.Edx}
}

func (c Cpuid) or(o Cpuid) Cpuid {
	return Cpuid{Function: c.Function, Eax: c.Eax | o.Eax, Ebx: c.Ebx | o.Ebx, Ecx: c.Ecx | o.Ecx, Edx: c.Edx | o.Edx}
}

func (c Cpuid) andNot(o Cpuid) Cpuid {
	return Cpuid{Function: c.Function, Eax: c.Eax &^ o.Eax, Ebx: c.Ebx &^ o.Ebx, Ecx: c.Ecx &^ o.Ecx, Edx: c.Edx &^ o.Edx}
}

// isSubsetOf reports whether every bit set in part is also set in c, i.e.
// (c & part) == part.
func (c Cpuid) isSubsetOf(part Cpuid) bool {
	return c.Eax&part.Eax == part.Eax &&
		c.Ebx&part.Ebx == part.Ebx &&
		c.Ecx&part.Ecx == part.Ecx &&
		c.Edx&part.Edx == part.Edx
}

func (c Cpuid) equal(o Cpuid) bool {
	return c.Eax == o.Eax && c.Ebx == o.Ebx && c.Ecx == o.Ecx && c.Edx == o.Edx
}

// X86Data is a sparse bit-set over CPUID leaves, represented as two dense
// arrays indexed by function: Basic covers [0, ExtendedBase) and Extended
// covers [ExtendedBase, ExtendedBase+len(Extended)). A leaf whose four
// registers are all zero is considered absent for every set operation.
type X86Data struct {
	Basic    []Cpuid `json:"basic,omitempty"`
	Extended []Cpuid `json:"extended,omitempty"`
}

// NewX86Data returns an empty CPUID data set.
func NewX86Data() *X86Data {
	return &X86Data{}
}

// arrayFor reports whether function falls in the basic range (false means
// extended) and its zero-based index within that range's array.
func arrayFor(d *X86Data, function uint32) (basic bool, index uint32) {
	if function < ExtendedBase {
		return true, function
	}
	return false, function - ExtendedBase
}

func baseOf(basic bool) uint32 {
	if basic {
		return 0
	}
	return ExtendedBase
}

// ensure grows the appropriate array so index exists, zero-initializing
// newly materialized slots except for their Function field.
func ensure(d *X86Data, basic bool, index uint32) {
	arr := &d.Basic
	base := uint32(0)
	if !basic {
		arr = &d.Extended
		base = ExtendedBase
	}
	for uint32(len(*arr)) <= index {
		*arr = append(*arr, Cpuid{Function: base + uint32(len(*arr))})
	}
}

func slot(d *X86Data, basic bool, index uint32) *Cpuid {
	if basic {
		return &d.Basic[index]
	}
	return &d.Extended[index]
}

// Lookup returns the stored leaf for function if present and non-empty.
func Lookup(data *X86Data, function uint32) (Cpuid, bool) {
	if data == nil {
		return Cpuid{}, false
	}
	basic, index := arrayFor(data, function)
	arr := data.Basic
	if !basic {
		arr = data.Extended
	}
	if index >= uint32(len(arr)) {
		return Cpuid{}, false
	}
	c := arr[index]
	if c.isEmpty() {
		return Cpuid{}, false
	}
	return c, true
}

// Iter returns every non-empty leaf in data, basic leaves ascending
// followed by extended leaves ascending. Zero leaves are skipped.
func Iter(data *X86Data) []Cpuid {
	if data == nil {
		return nil
	}
	out := make([]Cpuid, 0, len(data.Basic)+len(data.Extended))
	for _, c := range data.Basic {
		if !c.isEmpty() {
			out = append(out, c)
		}
	}
	for _, c := range data.Extended {
		if !c.isEmpty() {
			out = append(out, c)
		}
	}
	return out
}

// AddCpuid expands data if needed and ORs leaf's registers into the slot
// for leaf.Function.
func AddCpuid(data *X86Data, leaf Cpuid) {
	basic, index := arrayFor(data, leaf.Function)
	ensure(data, basic, index)
	s := slot(data, basic, index)
	merged := s.or(leaf)
	merged.Function = baseOf(basic) + index
	*s = merged
}

// UnionInto bitwise-ORs every leaf of src into dst, expanding dst as
// needed.
func UnionInto(dst *X86Data, src *X86Data) {
	if src == nil {
		return
	}
	for _, c := range src.Basic {
		if !c.isEmpty() {
			AddCpuid(dst, c)
		}
	}
	for _, c := range src.Extended {
		if !c.isEmpty() {
			AddCpuid(dst, c)
		}
	}
}

// Subtract performs an AND-NOT of src out of dst, leaf by leaf, over the
// overlap of the two arrays only. Leaves beyond min(len) are untouched:
// subtracting a leaf not present in dst is a no-op by construction.
func Subtract(dst *X86Data, src *X86Data) {
	if src == nil {
		return
	}
	n := len(dst.Basic)
	if len(src.Basic) < n {
		n = len(src.Basic)
	}
	for i := 0; i < n; i++ {
		f := dst.Basic[i].Function
		dst.Basic[i] = dst.Basic[i].andNot(src.Basic[i])
		dst.Basic[i].Function = f
	}
	n = len(dst.Extended)
	if len(src.Extended) < n {
		n = len(src.Extended)
	}
	for i := 0; i < n; i++ {
		f := dst.Extended[i].Function
		dst.Extended[i] = dst.Extended[i].andNot(src.Extended[i])
		dst.Extended[i].Function = f
	}
}

// IntersectInto ANDs every non-empty leaf of dst with the same-function
// leaf of src, or clears it entirely if src has no such leaf.
func IntersectInto(dst *X86Data, src *X86Data) {
	for i, c := range dst.Basic {
		if c.isEmpty() {
			continue
		}
		if i < len(src.Basic) {
			f := c.Function
			dst.Basic[i] = c.and(src.Basic[i])
			dst.Basic[i].Function = f
		} else {
			dst.Basic[i] = Cpuid{Function: c.Function}
		}
	}
	for i, c := range dst.Extended {
		if c.isEmpty() {
			continue
		}
		if i < len(src.Extended) {
			f := c.Function
			dst.Extended[i] = c.and(src.Extended[i])
			dst.Extended[i].Function = f
		} else {
			dst.Extended[i] = Cpuid{Function: c.Function}
		}
	}
}

// IsEmpty reports whether data has no non-empty leaves.
func IsEmpty(data *X86Data) bool {
	return len(Iter(data)) == 0
}

// IsSubset reports whether every non-empty leaf of part has a
// corresponding leaf in whole whose bits cover it.
func IsSubset(whole *X86Data, part *X86Data) bool {
	for _, p := range Iter(part) {
		w, ok := Lookup(whole, p.Function)
		if !ok {
			return false
		}
		if !w.isSubsetOf(p) {
			return false
		}
	}
	return true
}

// Copy returns a deep clone of data.
func Copy(data *X86Data) *X86Data {
	if data == nil {
		return NewX86Data()
	}
	out := &X86Data{
		Basic:    make([]Cpuid, len(data.Basic)),
		Extended: make([]Cpuid, len(data.Extended)),
	}
	copy(out.Basic, data.Basic)
	copy(out.Extended, data.Extended)
	return out
}

// Union returns a fresh X86Data holding the union of a and b.
func Union(a, b *X86Data) *X86Data {
	out := Copy(a)
	UnionInto(out, b)
	return out
}

// Intersect returns a fresh X86Data holding the intersection of a and b.
func Intersect(a, b *X86Data) *X86Data {
	out := Copy(a)
	IntersectInto(out, b)
	return out
}

// Diff returns a fresh X86Data holding a with b subtracted out.
func Diff(a, b *X86Data) *X86Data {
	out := Copy(a)
	Subtract(out, b)
	return out
}
