// ABOUTME: Breed coat-length lookup feeding the environment multiplier.
// ABOUTME: Long-haired breeds get a dampened cold-climate adjustment.
package breeds

import (
	"strings"

	"github.com/feedingfriend/petfeed/internal/calc"
)

// longHairedDogs and longHairedCats hold lowercase breed names with
// notably heavy coats. Matching is substring-based so "Siberian Husky
// mix" still matches.
var longHairedDogs = []string{
	"husky",
	"malamute",
	"samoyed",
	"newfoundland",
	"great pyrenees",
	"bernese mountain",
	"chow chow",
	"keeshond",
	"leonberger",
	"saint bernard",
	"tibetan mastiff",
	"old english sheepdog",
	"rough collie",
	"shetland sheepdog",
	"pomeranian",
	"akita",
}

var longHairedCats = []string{
	"maine coon",
	"persian",
	"ragdoll",
	"norwegian forest",
	"siberian",
	"himalayan",
	"birman",
	"turkish angora",
	"british longhair",
	"somali",
}

// IsLongHaired reports whether a breed is treated as long-coated.
// Unknown and empty breeds are short-coated by default.
func IsLongHaired(species calc.Species, breed string) bool {
	breed = strings.ToLower(strings.TrimSpace(breed))
	if breed == "" {
		return false
	}

	var list []string
	switch species {
	case calc.SpeciesDog:
		list = longHairedDogs
	case calc.SpeciesCat:
		list = longHairedCats
	default:
		return false
	}

	for _, name := range list {
		if strings.Contains(breed, name) {
			return true
		}
	}
	return false
}
