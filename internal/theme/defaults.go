// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import "digimenu/internal/models"

// DefaultName is the label of the compiled-in configuration.
const DefaultName = "Default"

// DefaultConfiguration returns the compiled-in theme used when a tenant has
// no configuration at all, and the per-field fallback for absent leaves.
// Every leaf is set. The returned value is a fresh copy.
func DefaultConfiguration() *models.ThemeConfiguration {
	return &models.ThemeConfiguration{
		Name:     DefaultName,
		IsActive: true,
		Colors: models.Colors{
			Primary:    "#c2410c",
			Secondary:  "#1f2937",
			Accent:     "#f59e0b",
			Background: "#ffffff",
			Surface:    "#f9fafb",
			Text:       "#111827",
			TextMuted:  "#6b7280",
			Border:     "#e5e7eb",
			Price:      "#c2410c",
		},
		Typography: models.Typography{
			FontFamily:        "'Inter', system-ui, sans-serif",
			HeadingFontFamily: "'Inter', system-ui, sans-serif",
			BaseSize:          "16px",
			H1Size:            "2.25rem",
			H2Size:            "1.75rem",
			H3Size:            "1.25rem",
			LineHeight:        "1.5",
			WeightRegular:     "400",
			WeightBold:        "700",
		},
		Layout: models.Layout{
			MaxWidth:     "1200px",
			Spacing:      "1rem",
			BorderRadius: "12px",
			HeaderStyle:  "centered",
			HeaderHeight: "72px",
			LogoHeight:   "48px",
		},
		ProductCard: models.ProductCard{
			Background:       "#ffffff",
			BorderRadius:     "12px",
			Shadow:           "0 1px 3px rgba(0,0,0,0.08)",
			Padding:          "1rem",
			ImageHeight:      "180px",
			ImageFit:         "cover",
			TitleSize:        "1.125rem",
			PriceSize:        "1rem",
			DescriptionLines: 2,
		},
		ProductGrid: models.ProductGrid{
			ColumnsMobile:  1,
			ColumnsTablet:  2,
			ColumnsDesktop: 3,
			Gap:            "1rem",
		},
	}
}
