// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package npu

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// VendorID is the PCI vendor id assigned to Rebellions, as exposed by sysfs.
const VendorID = "0x1eff"

var (
	// ErrUnknownDeviceID is returned for device ids missing from the taxonomy.
	ErrUnknownDeviceID = errors.New("unknown device id")
	// ErrUnknownProduct is returned when a product name matches no family prefix.
	ErrUnknownProduct = errors.New("unknown product name")
)

// Product identifies a specific RBLN device model.
type Product string

const (
	ProductCA02 Product = "CA02"
	ProductCA12 Product = "CA12"
	ProductCA15 Product = "CA15"
	ProductCA22 Product = "CA22"
	ProductCA25 Product = "CA25"
)

// Family groups products by generation.
type Family string

const (
	FamilyATOM  Family = "ATOM"
	FamilyREBEL Family = "REBEL"
)

// productLabelPrefix is prepended to the product name in published labels.
const productLabelPrefix = "RBLN-"

// familyPrefixes maps a product name prefix to its family.
var familyPrefixes = []struct {
	prefix string
	family Family
}{
	{prefix: "CA", family: FamilyATOM},
	{prefix: "CR", family: FamilyREBEL},
}

// deviceProducts maps lower-case hex PCI device ids (no 0x prefix) to products.
var deviceProducts = map[string]Product{
	"1020": ProductCA02,
	"1021": ProductCA02, // SR-IOV VF
	"1120": ProductCA12,
	"1121": ProductCA12, // SR-IOV VF
	"1150": ProductCA15,
	"1220": ProductCA22,
	"1221": ProductCA22, // SR-IOV VF
	"1250": ProductCA25,
}

// ProductFromDeviceID resolves a PCI device id to a Product.
// The id may carry a 0x prefix and surrounding whitespace; hex digits are
// matched case-insensitively.
func ProductFromDeviceID(id string) (Product, error) {
	key := normalizeDeviceID(id)
	p, ok := deviceProducts[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownDeviceID, id)
	}
	return p, nil
}

// KnownDeviceIDs returns every device id in the taxonomy, sorted.
func KnownDeviceIDs() []string {
	ids := make([]string, 0, len(deviceProducts))
	for id := range deviceProducts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// String returns the bare product name, e.g. "CA22".
func (p Product) String() string {
	return string(p)
}

// Label returns the product as published in the npu.product label, e.g. "RBLN-CA22".
func (p Product) Label() string {
	return productLabelPrefix + string(p)
}

// Family derives the product family from the product name prefix.
func (p Product) Family() (Family, error) {
	name := string(p)
	for _, fp := range familyPrefixes {
		if strings.HasPrefix(name, fp.prefix) {
			return fp.family, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownProduct, name)
}

// String returns the family name.
func (f Family) String() string {
	return string(f)
}

func normalizeDeviceID(id string) string {
	s := strings.ToLower(strings.TrimSpace(id))
	return strings.TrimPrefix(s, "0x")
}
