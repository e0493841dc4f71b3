// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "strings"

// ThemePatch is a partial update. Nil groups and nil fields are left
// untouched; unknown JSON keys are dropped by the decoder.
type ThemePatch struct {
	Name        *string           `json:"name"`
	Colors      *ColorsPatch      `json:"colors"`
	Typography  *TypographyPatch  `json:"typography"`
	Layout      *LayoutPatch      `json:"layout"`
	ProductCard *ProductCardPatch `json:"product_card"`
	ProductGrid *ProductGridPatch `json:"product_grid"`
}

// ColorsPatch carries optional palette changes.
type ColorsPatch struct {
	Primary    *string `json:"primary"`
	Secondary  *string `json:"secondary"`
	Accent     *string `json:"accent"`
	Background *string `json:"background"`
	Surface    *string `json:"surface"`
	Text       *string `json:"text"`
	TextMuted  *string `json:"text_muted"`
	Border     *string `json:"border"`
	Price      *string `json:"price"`
}

// TypographyPatch carries optional typography changes.
type TypographyPatch struct {
	FontFamily        *string `json:"font_family"`
	HeadingFontFamily *string `json:"heading_font_family"`
	BaseSize          *string `json:"base_size"`
	H1Size            *string `json:"h1_size"`
	H2Size            *string `json:"h2_size"`
	H3Size            *string `json:"h3_size"`
	LineHeight        *string `json:"line_height"`
	WeightRegular     *string `json:"weight_regular"`
	WeightBold        *string `json:"weight_bold"`
}

// LayoutPatch carries optional layout changes.
type LayoutPatch struct {
	MaxWidth     *string `json:"max_width"`
	Spacing      *string `json:"spacing"`
	BorderRadius *string `json:"border_radius"`
	HeaderStyle  *string `json:"header_style"`
	HeaderHeight *string `json:"header_height"`
	LogoHeight   *string `json:"logo_height"`
}

// ProductCardPatch carries optional product card changes.
type ProductCardPatch struct {
	Background       *string `json:"background"`
	BorderRadius     *string `json:"border_radius"`
	Shadow           *string `json:"shadow"`
	Padding          *string `json:"padding"`
	ImageHeight      *string `json:"image_height"`
	ImageFit         *string `json:"image_fit"`
	TitleSize        *string `json:"title_size"`
	PriceSize        *string `json:"price_size"`
	DescriptionLines *int    `json:"description_lines"`
}

// ProductGridPatch carries optional grid changes.
type ProductGridPatch struct {
	ColumnsMobile  *int    `json:"columns_mobile"`
	ColumnsTablet  *int    `json:"columns_tablet"`
	ColumnsDesktop *int    `json:"columns_desktop"`
	Gap            *string `json:"gap"`
}

// Validate trims a provided name and rejects it when blank.
func (p *ThemePatch) Validate() error {
	if p.Name == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*p.Name)
	p.Name = &trimmed
	return validateThemeName(trimmed)
}

// IsEmpty reports whether the patch changes nothing.
func (p *ThemePatch) IsEmpty() bool {
	return p.Name == nil && p.Colors == nil && p.Typography == nil &&
		p.Layout == nil && p.ProductCard == nil && p.ProductGrid == nil
}

// Apply merges the patch into cfg group by group. It never touches ID,
// TenantID, IsActive, or the timestamps.
func (p *ThemePatch) Apply(cfg *ThemeConfiguration) {
	if p.Name != nil {
		cfg.Name = *p.Name
	}
	if p.Colors != nil {
		p.Colors.apply(&cfg.Colors)
	}
	if p.Typography != nil {
		p.Typography.apply(&cfg.Typography)
	}
	if p.Layout != nil {
		p.Layout.apply(&cfg.Layout)
	}
	if p.ProductCard != nil {
		p.ProductCard.apply(&cfg.ProductCard)
	}
	if p.ProductGrid != nil {
		p.ProductGrid.apply(&cfg.ProductGrid)
	}
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func (p *ColorsPatch) apply(c *Colors) {
	set(&c.Primary, p.Primary)
	set(&c.Secondary, p.Secondary)
	set(&c.Accent, p.Accent)
	set(&c.Background, p.Background)
	set(&c.Surface, p.Surface)
	set(&c.Text, p.Text)
	set(&c.TextMuted, p.TextMuted)
	set(&c.Border, p.Border)
	set(&c.Price, p.Price)
}

func (p *TypographyPatch) apply(t *Typography) {
	set(&t.FontFamily, p.FontFamily)
	set(&t.HeadingFontFamily, p.HeadingFontFamily)
	set(&t.BaseSize, p.BaseSize)
	set(&t.H1Size, p.H1Size)
	set(&t.H2Size, p.H2Size)
	set(&t.H3Size, p.H3Size)
	set(&t.LineHeight, p.LineHeight)
	set(&t.WeightRegular, p.WeightRegular)
	set(&t.WeightBold, p.WeightBold)
}

func (p *LayoutPatch) apply(l *Layout) {
	set(&l.MaxWidth, p.MaxWidth)
	set(&l.Spacing, p.Spacing)
	set(&l.BorderRadius, p.BorderRadius)
	set(&l.HeaderStyle, p.HeaderStyle)
	set(&l.HeaderHeight, p.HeaderHeight)
	set(&l.LogoHeight, p.LogoHeight)
}

func (p *ProductCardPatch) apply(c *ProductCard) {
	set(&c.Background, p.Background)
	set(&c.BorderRadius, p.BorderRadius)
	set(&c.Shadow, p.Shadow)
	set(&c.Padding, p.Padding)
	set(&c.ImageHeight, p.ImageHeight)
	set(&c.ImageFit, p.ImageFit)
	set(&c.TitleSize, p.TitleSize)
	set(&c.PriceSize, p.PriceSize)
	set(&c.DescriptionLines, p.DescriptionLines)
}

func (p *ProductGridPatch) apply(g *ProductGrid) {
	set(&g.ColumnsMobile, p.ColumnsMobile)
	set(&g.ColumnsTablet, p.ColumnsTablet)
	set(&g.ColumnsDesktop, p.ColumnsDesktop)
	set(&g.Gap, p.Gap)
}
