/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

/*
Package source describes the logical timing references a device can select from
and resolves their operator-facing weights into an ordered ranking.
*/
package source

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Category is a class of timing references with its own priority space
type Category int

// Supported categories
const (
	OnePPS Category = iota
	Frequency
)

// Categories lists all categories in presentation order
var Categories = []Category{OnePPS, Frequency}

var categoryToString = map[Category]string{
	OnePPS:    "one-pps",
	Frequency: "frequency",
}

func (c Category) String() string {
	s, found := categoryToString[c]
	if !found {
		return "UNSUPPORTED VALUE"
	}
	return s
}

// UnmarshalText parses Category from a config string
func (c *Category) UnmarshalText(text []byte) error {
	for k, v := range categoryToString {
		if v == string(text) {
			*c = k
			return nil
		}
	}
	return fmt.Errorf("category %s not supported", string(text))
}

// MarshalText returns the config string of the Category
func (c Category) MarshalText() ([]byte, error) {
	s, found := categoryToString[c]
	if !found {
		return nil, fmt.Errorf("category %d not supported", int(c))
	}
	return []byte(s), nil
}

// Source is a logical timing reference and its operator-facing weight.
// Higher weight means more preferred.
type Source struct {
	Name             string
	WeightedPriority int
}

// String is used in status reports
func (s Source) String() string {
	return fmt.Sprintf("weighted_priority:%d, source:%s", s.WeightedPriority, s.Name)
}

// Ranking is an ordered list of sources within one category
type Ranking []Source

// Clone returns a copy of the ranking
func (r Ranking) Clone() Ranking {
	if r == nil {
		return nil
	}
	return slices.Clone(r)
}

// Index returns position of the source with a given name, -1 if not found.
// Names are matched case-insensitively.
func (r Ranking) Index(name string) int {
	return slices.IndexFunc(r, func(s Source) bool {
		return strings.EqualFold(s.Name, name)
	})
}

// Names returns source names in ranking order
func (r Ranking) Names() []string {
	res := make([]string, 0, len(r))
	for _, s := range r {
		res = append(res, s.Name)
	}
	return res
}

// Resolve returns a new ranking ordered by weighted priority, highest first.
// Sources with equal weights keep their relative order.
func Resolve(r Ranking) Ranking {
	res := r.Clone()
	slices.SortStableFunc(res, func(a, b Source) int {
		return cmp.Compare(b.WeightedPriority, a.WeightedPriority)
	})
	return res
}
