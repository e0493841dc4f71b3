// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"

	"digimenu/internal/models"
)

// Tokens is the flattened style mapping consumed by the storefront, keyed
// like "color.primary" or "grid.columns.desktop".
type Tokens map[string]string

// Resolve flattens cfg into Tokens, substituting the compiled-in default
// for every absent leaf. It is pure: equal inputs give equal outputs. A nil
// cfg yields the default token set.
func Resolve(cfg *models.ThemeConfiguration) Tokens {
	def := DefaultConfiguration()
	if cfg == nil {
		cfg = def
	}

	c, dc := cfg.Colors, def.Colors
	ty, dty := cfg.Typography, def.Typography
	l, dl := cfg.Layout, def.Layout
	pc, dpc := cfg.ProductCard, def.ProductCard
	pg, dpg := cfg.ProductGrid, def.ProductGrid

	return Tokens{
		"color.primary":    or(c.Primary, dc.Primary),
		"color.secondary":  or(c.Secondary, dc.Secondary),
		"color.accent":     or(c.Accent, dc.Accent),
		"color.background": or(c.Background, dc.Background),
		"color.surface":    or(c.Surface, dc.Surface),
		"color.text":       or(c.Text, dc.Text),
		"color.text-muted": or(c.TextMuted, dc.TextMuted),
		"color.border":     or(c.Border, dc.Border),
		"color.price":      or(c.Price, dc.Price),

		"font.family":         or(ty.FontFamily, dty.FontFamily),
		"font.heading-family": or(ty.HeadingFontFamily, dty.HeadingFontFamily),
		"font.size.base":      or(ty.BaseSize, dty.BaseSize),
		"font.line-height":    or(ty.LineHeight, dty.LineHeight),
		"font.weight.regular": or(ty.WeightRegular, dty.WeightRegular),
		"font.weight.bold":    or(ty.WeightBold, dty.WeightBold),
		"heading.h1.size":     or(ty.H1Size, dty.H1Size),
		"heading.h2.size":     or(ty.H2Size, dty.H2Size),
		"heading.h3.size":     or(ty.H3Size, dty.H3Size),

		"layout.max-width":     or(l.MaxWidth, dl.MaxWidth),
		"layout.spacing":       or(l.Spacing, dl.Spacing),
		"layout.radius":        or(l.BorderRadius, dl.BorderRadius),
		"layout.header.style":  or(l.HeaderStyle, dl.HeaderStyle),
		"layout.header.height": or(l.HeaderHeight, dl.HeaderHeight),
		"layout.logo.height":   or(l.LogoHeight, dl.LogoHeight),

		"card.background":        or(pc.Background, dpc.Background),
		"card.radius":            or(pc.BorderRadius, dpc.BorderRadius),
		"card.shadow":            or(pc.Shadow, dpc.Shadow),
		"card.padding":           or(pc.Padding, dpc.Padding),
		"card.image.height":      or(pc.ImageHeight, dpc.ImageHeight),
		"card.image.fit":         or(pc.ImageFit, dpc.ImageFit),
		"card.title.size":        or(pc.TitleSize, dpc.TitleSize),
		"card.price.size":        or(pc.PriceSize, dpc.PriceSize),
		"card.description.lines": orInt(pc.DescriptionLines, dpc.DescriptionLines),

		"grid.columns.mobile":  orInt(pg.ColumnsMobile, dpg.ColumnsMobile),
		"grid.columns.tablet":  orInt(pg.ColumnsTablet, dpg.ColumnsTablet),
		"grid.columns.desktop": orInt(pg.ColumnsDesktop, dpg.ColumnsDesktop),
		"grid.gap":             or(pg.Gap, dpg.Gap),
	}
}

func or(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func orInt(v, fallback int) string {
	if v <= 0 {
		v = fallback
	}
	return strconv.Itoa(v)
}

// Keys returns the token keys in sorted order.
func (t Tokens) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// cssUnsafe strips characters that could close the declaration block.
var cssUnsafe = strings.NewReplacer("{", "", "}", "", ";", "", "<", "", ">", "", "\n", " ", "\r", "")

// CSS renders the tokens as custom properties on :root, one per line in
// key order. "color.text-muted" becomes "--color-text-muted".
func (t Tokens) CSS() string {
	var b strings.Builder
	b.WriteString(":root {\n")
	for _, k := range t.Keys() {
		b.WriteString("  --")
		b.WriteString(strings.ReplaceAll(k, ".", "-"))
		b.WriteString(": ")
		b.WriteString(cssUnsafe.Replace(t[k]))
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// Fingerprint is a stable hex digest of the token set.
func (t Tokens) Fingerprint() string {
	h := sha256.New()
	for _, k := range t.Keys() {
		h.Write([]byte(k))
		h.Write([]byte{'='})
		h.Write([]byte(t[k]))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil)[:16])
}
