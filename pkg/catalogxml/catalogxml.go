// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

// Package catalogxml loads a pkg/x86 catalog from an XML document shaped
// like libvirt's cpu_map.xml:
//
//	<cpus>
//	  <vendor name="Intel" string="GenuineIntel"/>
//	  <feature name="sse4.2">
//	    <cpuid eax_in="0x01" ecx="0x00100000"/>
//	  </feature>
//	  <model name="Nehalem" usable="yes">
//	    <model name="ancestor-if-any"/>
//	    <vendor name="Intel"/>
//	    <feature name="sse4.2"/>
//	  </model>
//	</cpus>
//
// It never touches pkg/x86's internals directly - it only ever calls the
// three x86.Loader callbacks, once per element: every vendor, then every
// feature, then every model, each kind in document order.
package catalogxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/stratastor/vcpu/pkg/errors"
	"github.com/stratastor/vcpu/pkg/x86"
)

// document mirrors the cpu_map.xml element tree closely enough to
// decode with encoding/xml's struct tags - it is not a general-purpose
// libvirt schema, only the subset spec.md's catalog needs.
type document struct {
	XMLName  xml.Name      `xml:"cpus"`
	Vendors  []vendorElem  `xml:"vendor"`
	Features []featureElem `xml:"feature"`
	Models   []modelElem   `xml:"model"`
}

type vendorElem struct {
	Name   string `xml:"name,attr"`
	String string `xml:"string,attr"`
}

type featureElem struct {
	Name   string      `xml:"name,attr"`
	Cpuids []cpuidElem `xml:"cpuid"`
}

type cpuidElem struct {
	EaxIn string `xml:"eax_in,attr"`
	EcxIn string `xml:"ecx_in,attr"`
	Eax   string `xml:"eax,attr"`
	Ebx   string `xml:"ebx,attr"`
	Ecx   string `xml:"ecx,attr"`
	Edx   string `xml:"edx,attr"`
}

type modelElem struct {
	Name     string          `xml:"name,attr"`
	Ancestor *modelRefElem   `xml:"model"`
	Vendor   *vendorRefElem  `xml:"vendor"`
	Features []featureRefElem `xml:"feature"`
}

type modelRefElem struct {
	Name string `xml:"name,attr"`
}

type vendorRefElem struct {
	Name string `xml:"name,attr"`
}

type featureRefElem struct {
	Name string `xml:"name,attr"`
}

// parseHex32 parses a hexadecimal attribute, with or without a "0x"
// prefix, into a uint32,
// treating a missing attribute as zero - cpu_map.xml omits registers
// that don't contribute any bits to a given leaf.
func parseHex32(s string) (uint32, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 32)
	if err != nil {
		return 0, errors.New(errors.CatalogMalformedRegister, s)
	}
	return uint32(v), nil
}

func (c cpuidElem) toCpuid() (x86.Cpuid, error) {
	fn, err := parseHex32(c.EaxIn)
	if err != nil {
		return x86.Cpuid{}, err
	}
	eax, err := parseHex32(c.Eax)
	if err != nil {
		return x86.Cpuid{}, err
	}
	ebx, err := parseHex32(c.Ebx)
	if err != nil {
		return x86.Cpuid{}, err
	}
	ecx, err := parseHex32(c.Ecx)
	if err != nil {
		return x86.Cpuid{}, err
	}
	edx, err := parseHex32(c.Edx)
	if err != nil {
		return x86.Cpuid{}, err
	}
	return x86.Cpuid{Function: fn, Eax: eax, Ebx: ebx, Ecx: ecx, Edx: edx}, nil
}

// Load walks r once, feeding all vendor elements, then all feature
// elements, then all model elements to loader's callbacks, each kind in
// document order. Per spec.md §4.B/§7, a failure on one
// element (duplicate name, unresolved reference, malformed register) is
// a catalog error, not a fatal one: the offending element is discarded
// and the walk continues so the catalog remains usable. Load collects
// every such error and returns them joined, non-nil, once the whole
// document has been walked - callers that only care whether the
// resulting catalog is non-empty (LoadFile, LoadURL) treat that return
// value as diagnostic rather than fatal. A malformed document itself
// (the XML doesn't parse at all) is still a hard, immediate failure.
func Load(r io.Reader, loader x86.Loader) error {
	var doc document
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return errors.New(errors.CatalogParseFailed, err.Error())
	}

	var failed []string

	for _, v := range doc.Vendors {
		if err := loader.OnVendor(x86.VendorProps{Name: v.Name, String: v.String}); err != nil {
			failed = append(failed, err.Error())
		}
	}

	for _, f := range doc.Features {
		cpuids := make([]x86.Cpuid, 0, len(f.Cpuids))
		skip := false
		for _, c := range f.Cpuids {
			parsed, err := c.toCpuid()
			if err != nil {
				failed = append(failed, err.Error())
				skip = true
				break
			}
			cpuids = append(cpuids, parsed)
		}
		if skip {
			continue
		}
		if err := loader.OnFeature(x86.FeatureProps{Name: f.Name, Cpuids: cpuids}); err != nil {
			failed = append(failed, err.Error())
		}
	}

	for _, m := range doc.Models {
		props := x86.ModelProps{Name: m.Name}
		if m.Ancestor != nil {
			props.Ancestor = m.Ancestor.Name
		}
		if m.Vendor != nil {
			props.Vendor = m.Vendor.Name
		}
		for _, f := range m.Features {
			props.FeatureNames = append(props.FeatureNames, f.Name)
		}
		if err := loader.OnModel(props); err != nil {
			failed = append(failed, err.Error())
		}
	}

	if len(failed) > 0 {
		return errors.New(errors.CatalogParseFailed, strings.Join(failed, "; "))
	}
	return nil
}

// LoadFile opens path and loads it into a fresh *x86.Map.
func LoadFile(path string) (*x86.Map, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.CatalogNotFound, path)
		}
		return nil, errors.New(errors.CatalogLoadFailed, err.Error())
	}
	defer f.Close()

	m := x86.NewMap()
	loadErr := Load(f, m.AsLoader())
	if len(m.Models) == 0 {
		if loadErr != nil {
			return nil, loadErr
		}
		return nil, errors.New(errors.CatalogEmpty, fmt.Sprintf("no usable models in %s", path))
	}
	return m, nil
}
