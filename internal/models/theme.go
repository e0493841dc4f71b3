// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxThemeNameLen caps the display label of a theme configuration.
const MaxThemeNameLen = 200

// ThemeConfiguration is a named set of storefront style tokens owned by a
// tenant. At most one configuration per tenant has IsActive set.
type ThemeConfiguration struct {
	ID          uuid.UUID   `json:"id"`
	TenantID    uuid.UUID   `json:"tenant_id"`
	Name        string      `json:"name"`
	IsActive    bool        `json:"is_active"`
	Colors      Colors      `json:"colors"`
	Typography  Typography  `json:"typography"`
	Layout      Layout      `json:"layout"`
	ProductCard ProductCard `json:"product_card"`
	ProductGrid ProductGrid `json:"product_grid"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Colors is the palette group. Empty values mean "use the default".
type Colors struct {
	Primary    string `json:"primary,omitempty"`
	Secondary  string `json:"secondary,omitempty"`
	Accent     string `json:"accent,omitempty"`
	Background string `json:"background,omitempty"`
	Surface    string `json:"surface,omitempty"`
	Text       string `json:"text,omitempty"`
	TextMuted  string `json:"text_muted,omitempty"`
	Border     string `json:"border,omitempty"`
	Price      string `json:"price,omitempty"`
}

// Typography holds font families and the heading scale.
type Typography struct {
	FontFamily        string `json:"font_family,omitempty"`
	HeadingFontFamily string `json:"heading_font_family,omitempty"`
	BaseSize          string `json:"base_size,omitempty"`
	H1Size            string `json:"h1_size,omitempty"`
	H2Size            string `json:"h2_size,omitempty"`
	H3Size            string `json:"h3_size,omitempty"`
	LineHeight        string `json:"line_height,omitempty"`
	WeightRegular     string `json:"weight_regular,omitempty"`
	WeightBold        string `json:"weight_bold,omitempty"`
}

// Layout holds page-level spacing and header settings.
type Layout struct {
	MaxWidth     string `json:"max_width,omitempty"`
	Spacing      string `json:"spacing,omitempty"`
	BorderRadius string `json:"border_radius,omitempty"`
	HeaderStyle  string `json:"header_style,omitempty"`
	HeaderHeight string `json:"header_height,omitempty"`
	LogoHeight   string `json:"logo_height,omitempty"`
}

// ProductCard styles a single menu item card.
type ProductCard struct {
	Background       string `json:"background,omitempty"`
	BorderRadius     string `json:"border_radius,omitempty"`
	Shadow           string `json:"shadow,omitempty"`
	Padding          string `json:"padding,omitempty"`
	ImageHeight      string `json:"image_height,omitempty"`
	ImageFit         string `json:"image_fit,omitempty"`
	TitleSize        string `json:"title_size,omitempty"`
	PriceSize        string `json:"price_size,omitempty"`
	DescriptionLines int    `json:"description_lines,omitempty"`
}

// ProductGrid controls how many cards sit in a row per breakpoint.
type ProductGrid struct {
	ColumnsMobile  int    `json:"columns_mobile,omitempty"`
	ColumnsTablet  int    `json:"columns_tablet,omitempty"`
	ColumnsDesktop int    `json:"columns_desktop,omitempty"`
	Gap            string `json:"gap,omitempty"`
}

// ThemeInput is the payload for creating a theme configuration.
type ThemeInput struct {
	Name        string      `json:"name"`
	Colors      Colors      `json:"colors"`
	Typography  Typography  `json:"typography"`
	Layout      Layout      `json:"layout"`
	ProductCard ProductCard `json:"product_card"`
	ProductGrid ProductGrid `json:"product_grid"`
}

// Validate trims the name in place and checks it is present and short enough.
func (in *ThemeInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	return validateThemeName(in.Name)
}

func validateThemeName(name string) error {
	if name == "" {
		return NewValidationError("name", "name is required")
	}
	if utf8.RuneCountInString(name) > MaxThemeNameLen {
		return NewValidationError("name", fmt.Sprintf("name is too long (max %d characters)", MaxThemeNameLen))
	}
	return nil
}

// ---------- JSONB column support ----------

func jsonValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonScan(src, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported jsonb source %T", src)
	}
}

func (c Colors) Value() (driver.Value, error)      { return jsonValue(c) }
func (c *Colors) Scan(src any) error               { return jsonScan(src, c) }
func (t Typography) Value() (driver.Value, error)  { return jsonValue(t) }
func (t *Typography) Scan(src any) error           { return jsonScan(src, t) }
func (l Layout) Value() (driver.Value, error)      { return jsonValue(l) }
func (l *Layout) Scan(src any) error               { return jsonScan(src, l) }
func (p ProductCard) Value() (driver.Value, error) { return jsonValue(p) }
func (p *ProductCard) Scan(src any) error          { return jsonScan(src, p) }
func (g ProductGrid) Value() (driver.Value, error) { return jsonValue(g) }
func (g *ProductGrid) Scan(src any) error          { return jsonScan(src, g) }
