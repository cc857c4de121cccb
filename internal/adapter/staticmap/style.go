package staticmap

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// StyleRule is one style directive for the static-map API, rendered as
// "feature:<feature>|element:<element>|<setting>...". Element may be empty
// for whole-feature rules.
type StyleRule struct {
	Feature  string
	Element  string
	Settings []string
}

// String renders the rule in the API's pipe-separated format.
func (r StyleRule) String() string {
	parts := make([]string, 0, 2+len(r.Settings))
	parts = append(parts, "feature:"+r.Feature)
	if r.Element != "" {
		parts = append(parts, "element:"+r.Element)
	}
	parts = append(parts, r.Settings...)
	return strings.Join(parts, "|")
}

// SatelliteStyles hides all labels so the satellite capture stays clean for
// image analysis.
func SatelliteStyles() []StyleRule {
	return []StyleRule{
		{Feature: "all", Element: "labels", Settings: []string{"visibility:off"}},
	}
}

// RoadmapStyles is the built-in clean-roadmap style: labels off, flat land
// and road colors, no POIs, transit, or administrative labels. Used when no
// style document is configured.
func RoadmapStyles() []StyleRule {
	return []StyleRule{
		{Feature: "all", Element: "labels", Settings: []string{"visibility:off"}},
		{Feature: "landscape", Element: "geometry", Settings: []string{"color:0xd3f8e2"}},
		{Feature: "road", Element: "geometry", Settings: []string{"color:0xd7dfe6"}},
		{Feature: "poi", Settings: []string{"visibility:off"}},
		{Feature: "transit", Settings: []string{"visibility:off"}},
		{Feature: "administrative", Element: "labels", Settings: []string{"visibility:off"}},
	}
}

// styleDocument is the JSON style file shape used by the study
// (mapStyle.json): per-feature geometry and label settings keyed by a style
// id that maps onto API feature types.
type styleDocument struct {
	Styles []struct {
		ID       string `json:"id"`
		Geometry *struct {
			FillColor   string `json:"fillColor"`
			StrokeColor string `json:"strokeColor"`
			Visible     *bool  `json:"visible"`
		} `json:"geometry"`
		Label *struct {
			Visible         *bool  `json:"visible"`
			TextFillColor   string `json:"textFillColor"`
			TextStrokeColor string `json:"textStrokeColor"`
		} `json:"label"`
	} `json:"styles"`
}

// featureMapping translates the style document's ids to API feature types.
var featureMapping = map[string]string{
	"infrastructure":             "landscape.man_made",
	"infrastructure.roadNetwork": "road",
	"natural":                    "landscape.natural",
	"natural.land":               "landscape.natural.landcover",
	"pointOfInterest":            "poi",
	"political":                  "administrative",
	"political.landParcel":       "administrative.land_parcel",
}

// LoadStyleFile converts a JSON style document into API style rules.
func LoadStyleFile(path string) ([]StyleRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read style file: %w", err)
	}
	var doc styleDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse style file %s: %w", path, err)
	}
	return convertStyles(doc), nil
}

func convertStyles(doc styleDocument) []StyleRule {
	var rules []StyleRule
	for _, s := range doc.Styles {
		feature := s.ID
		if mapped, ok := featureMapping[s.ID]; ok {
			feature = mapped
		}

		if g := s.Geometry; g != nil {
			if g.FillColor != "" {
				rules = append(rules, StyleRule{Feature: feature, Element: "geometry.fill", Settings: []string{"color:" + hexColor(g.FillColor)}})
			}
			if g.StrokeColor != "" {
				rules = append(rules, StyleRule{Feature: feature, Element: "geometry.stroke", Settings: []string{"color:" + hexColor(g.StrokeColor)}})
			}
			if g.Visible != nil && !*g.Visible {
				rules = append(rules, StyleRule{Feature: feature, Element: "geometry", Settings: []string{"visibility:off"}})
			}
		}

		if l := s.Label; l != nil {
			if l.Visible != nil && !*l.Visible {
				rules = append(rules, StyleRule{Feature: feature, Element: "labels", Settings: []string{"visibility:off"}})
			}
			if l.TextFillColor != "" {
				rules = append(rules, StyleRule{Feature: feature, Element: "labels.text.fill", Settings: []string{"color:" + hexColor(l.TextFillColor)}})
			}
			if l.TextStrokeColor != "" {
				rules = append(rules, StyleRule{Feature: feature, Element: "labels.text.stroke", Settings: []string{"color:" + hexColor(l.TextStrokeColor)}})
			}
		}
	}
	return rules
}

// hexColor rewrites "#rrggbb" into the API's "0xrrggbb" form.
func hexColor(c string) string {
	return strings.Replace(c, "#", "0x", 1)
}
