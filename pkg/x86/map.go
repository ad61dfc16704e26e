// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package x86

import "github.com/stratastor/vcpu/pkg/errors"

// Map is the in-memory CPU catalog: vendors, features and models, kept
// in loader insertion order. Lookup by name is linear; insertion order
// is preserved because it is observable behavior (decoder tie-breaks,
// feature-name rendering).
type Map struct {
	Vendors  []*Vendor
	Features []*Feature
	Models   []*Model
}

// NewMap returns an empty catalog.
func NewMap() *Map {
	return &Map{}
}

func (m *Map) FindVendor(name string) (*Vendor, bool) {
	for _, v := range m.Vendors {
		if v.Name == name {
			return v, true
		}
	}
	return nil, false
}

func (m *Map) FindFeature(name string) (*Feature, bool) {
	for _, f := range m.Features {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

func (m *Map) FindModel(name string) (*Model, bool) {
	for _, mo := range m.Models {
		if mo.Name == name {
			return mo, true
		}
	}
	return nil, false
}

// VendorProps is the data a loader extracts for a <vendor> element.
type VendorProps struct {
	Name   string
	String string // 12-character vendor identifier
}

// FeatureProps is the data a loader extracts for a <feature> element.
type FeatureProps struct {
	Name   string
	Cpuids []Cpuid
}

// ModelProps is the data a loader extracts for a <model> element.
type ModelProps struct {
	Name         string
	Ancestor     string // empty if none declared
	Vendor       string // empty if none declared
	FeatureNames []string
}

// AddVendor implements spec component B's on_vendor callback: packs the
// 12-byte vendor string into leaf 0 and registers it. Rejects duplicate
// names and wrong-length strings.
func (m *Map) AddVendor(props VendorProps) error {
	if props.Name == "" {
		return errors.New(errors.CatalogParseFailed, "vendor element missing name")
	}
	if _, ok := m.FindVendor(props.Name); ok {
		return errors.New(errors.CatalogDuplicateVendor, props.Name)
	}
	cpuid, err := packVendorString(props.String)
	if err != nil {
		return err
	}
	m.Vendors = append(m.Vendors, &Vendor{Name: props.Name, Cpuid: cpuid})
	return nil
}

// AddFeature implements spec component B's on_feature callback: each
// (function, eax, ebx, ecx, edx) tuple is OR-merged into the feature's
// data.
func (m *Map) AddFeature(props FeatureProps) error {
	if props.Name == "" {
		return errors.New(errors.CatalogParseFailed, "feature element missing name")
	}
	if _, ok := m.FindFeature(props.Name); ok {
		return errors.New(errors.CatalogDuplicateFeature, props.Name)
	}
	data := NewX86Data()
	for _, c := range props.Cpuids {
		AddCpuid(data, c)
	}
	m.Features = append(m.Features, &Feature{Name: props.Name, Data: data})
	return nil
}

// AddModel implements spec component B's on_model callback: resolves an
// optional ancestor (deep-copied starting point, vendor inherited) and
// optional vendor override, then unions in every referenced feature's
// data.
func (m *Map) AddModel(props ModelProps) error {
	if props.Name == "" {
		return errors.New(errors.CatalogParseFailed, "model element missing name")
	}
	if _, ok := m.FindModel(props.Name); ok {
		return errors.New(errors.CatalogDuplicateModel, props.Name)
	}

	model := &Model{Name: props.Name, Data: NewX86Data()}

	if props.Ancestor != "" {
		anc, ok := m.FindModel(props.Ancestor)
		if !ok {
			return errors.New(errors.CatalogUnknownAncestor, props.Ancestor)
		}
		model.Data = Copy(anc.Data)
		model.Vendor = anc.Vendor
	}

	if props.Vendor != "" {
		v, ok := m.FindVendor(props.Vendor)
		if !ok {
			return errors.New(errors.CatalogUnknownVendorRef, props.Vendor)
		}
		model.Vendor = v
	}

	for _, fname := range props.FeatureNames {
		f, ok := m.FindFeature(fname)
		if !ok {
			return errors.New(errors.CatalogUnknownFeatureRef, fname)
		}
		UnionInto(model.Data, f.Data)
	}

	m.Models = append(m.Models, model)
	return nil
}

// Loader is the contract the external XML walker drives: one callback
// per element, returning nil on success or an error when the element is
// rejected (pkg/catalogxml records the error and keeps walking). A
// loader may silently ignore an element by returning nil without adding
// it.
type Loader interface {
	OnVendor(props VendorProps) error
	OnFeature(props FeatureProps) error
	OnModel(props ModelProps) error
}

// loaderAdapter lets *Map itself satisfy Loader, the common case where
// the catalog is populated directly as it's walked.
type loaderAdapter struct{ m *Map }

func (l loaderAdapter) OnVendor(p VendorProps) error  { return l.m.AddVendor(p) }
func (l loaderAdapter) OnFeature(p FeatureProps) error { return l.m.AddFeature(p) }
func (l loaderAdapter) OnModel(p ModelProps) error     { return l.m.AddModel(p) }

// AsLoader returns m wrapped as a Loader, for passing to an external
// walker (e.g. pkg/catalogxml) that drives the three callbacks directly.
func (m *Map) AsLoader() Loader {
	return loaderAdapter{m: m}
}
