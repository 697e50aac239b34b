package category

import (
	"errors"
	"strings"
)

var ErrUnknownCategory = errors.New("unknown category")

type Category struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

const (
	Aptitude    = "aptitude"
	Mathematics = "mathematics"
	English     = "english"
	Law         = "law"
	Tax         = "tax"
	ICT         = "ict"
)

var catalog = []Category{
	{ID: Aptitude, Title: "Aptitude & Logic", Description: "Abstract reasoning and pattern recognition.", Color: "indigo"},
	{ID: Mathematics, Title: "Mathematics", Description: "Numerical analysis and problem solving.", Color: "emerald"},
	{ID: English, Title: "English Proficiency", Description: "Verbal reasoning and comprehension.", Color: "sky"},
	{ID: Law, Title: "Law & Governance", Description: "Legal principles and constitution.", Color: "slate"},
	{ID: Tax, Title: "Tax & Revenue", Description: "Taxation laws and calculations.", Color: "amber"},
	{ID: ICT, Title: "ICT & Tech", Description: "Computer science and digital skills.", Color: "purple"},
}

// All returns a copy of the catalog in display order.
func All() []Category {
	out := make([]Category, len(catalog))
	copy(out, catalog)
	return out
}

func Normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

func Lookup(id string) (Category, error) {
	id = Normalize(id)
	for _, c := range catalog {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, ErrUnknownCategory
}

func IsValid(id string) bool {
	_, err := Lookup(id)
	return err == nil
}
